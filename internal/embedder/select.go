package embedder

import (
	"golang.org/x/exp/slog"
)

// Select builds the process embedder. Failure to construct the real model
// never prevents startup: it is logged and the hashed fallback takes over.
// An unknown configured name resolves to whichever provider registered
// first.
func Select(name, endpoint string, log *slog.Logger) Provider {
	registry := NewRegistry()

	remote, err := NewRemote("facenet", endpoint)
	if err != nil {
		log.Warn("facenet embedder unavailable, falling back to hashed", "error", err)
	} else {
		registry.Register(remote)
	}

	registry.Register(NewHashed())

	p, err := registry.Get(name)
	if err != nil {
		log.Warn("configured embedder not found, using default", "embedder", name)
		p, _ = registry.Default()
	}

	return p
}
