package imageopt

import (
	"context"
	"log/slog"

	"fundbrief/internal/model"
)

// Passthrough skips compression entirely. Used when no optimizer provider is
// configured; images are served at their generated size.
type Passthrough struct{}

func (Passthrough) Optimize(_ context.Context, image model.ImageResult) model.ImageResult {
	if !image.Success {
		slog.Warn("optimizer received an unsuccessful image result")
		return model.ImageResult{}
	}
	return image
}
