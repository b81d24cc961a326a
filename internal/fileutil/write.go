package fileutil

import (
	"bytes"
	"os"
)

// WriteIfChanged writes data to path only when the on-disk content differs,
// keeping file mtimes stable across no-op runs.
func WriteIfChanged(path string, data []byte) error {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
