package utils

import (
	"context"
	"errors"
)

var (
	ErrFetchFailure  = errors.New("fetch failure")  // non-2xx or transport error fetching a sitemap or robots.txt
	ErrRenderFailure = errors.New("render failure") // page could not be loaded into the renderer
	ErrInvalidLimit  = errors.New("limit must be positive")
	ErrStorage       = errors.New("storage error")
	ErrConfig        = errors.New("configuration error")
)

// CategorizeError maps an error to a short category for log fields.
func CategorizeError(err error) string {
	switch {
	case err == nil:
		return "None"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Render timeouts are wrapped with ErrRenderFailure and land below.
		if errors.Is(err, ErrRenderFailure) {
			return "Render"
		}
		return "Canceled"
	case errors.Is(err, ErrFetchFailure):
		return "Fetch"
	case errors.Is(err, ErrRenderFailure):
		return "Render"
	case errors.Is(err, ErrInvalidLimit), errors.Is(err, ErrConfig):
		return "Config"
	case errors.Is(err, ErrStorage):
		return "Storage"
	}
	return "Unknown"
}
