// Package gen defines the boundary to the markdown-generation
// collaborator. Rendering itself (the LLM call) lives outside this
// subsystem; what lives here is the caching contract around it.
package gen

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/crewkit-dev/crewkit/internal/cache"
)

// Renderer produces the markdown body for one agent or skill file, or for
// CLAUDE.md content. Implementations are supplied by the caller.
type Renderer interface {
	Render(ctx context.Context, key cache.GenerationKey) (string, error)
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(ctx context.Context, key cache.GenerationKey) (string, error)

func (f RenderFunc) Render(ctx context.Context, key cache.GenerationKey) (string, error) {
	return f(ctx, key)
}

// CachedRender returns the cached artifact for key when present, otherwise
// invokes the renderer and writes through. Cache writes are best effort:
// a write failure is logged and the freshly rendered text is still
// returned, because a broken cache must never block generation.
func CachedRender(ctx context.Context, store *cache.Store, key cache.GenerationKey, renderer Renderer, log zerolog.Logger) (string, error) {
	if text, ok := store.GetGeneration(key); ok {
		return text, nil
	}

	text, err := renderer.Render(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to render %s/%s: %w", key.Kind, key.Name, err)
	}

	if err := store.SetGeneration(key, text); err != nil {
		log.Warn().Err(err).Str("kind", key.Kind).Str("name", key.Name).Msg("generation cache write failed, continuing")
	}
	return text, nil
}
