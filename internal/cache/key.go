package cache

import (
	"encoding/json"

	"github.com/crewkit-dev/crewkit/internal/fileutil"
)

// GenerationKey identifies one generation artifact. All fields participate
// in the hash, so changing the prompt version or model invalidates cached
// artifacts without touching older entries.
type GenerationKey struct {
	Kind          string `json:"kind"`
	Project       string `json:"project"`
	Name          string `json:"name"`
	PromptVersion string `json:"promptVersion"`
	Model         string `json:"model"`
}

// hash is deterministic: struct field order is fixed, so the JSON encoding
// is stable for equal keys.
func (k GenerationKey) hash() string {
	encoded, err := json.Marshal(k)
	if err != nil {
		// A struct of strings cannot fail to encode.
		return ""
	}
	return fileutil.HashBytes(encoded)[:32]
}
