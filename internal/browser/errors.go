package browser

import (
	"context"
	"errors"

	"github.com/aleister1102/monstermedia/internal/common"
)

// navigationError describes why a page failed to load, preferring the
// context's verdict when the per-page budget ran out.
func navigationError(ctx context.Context, url string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return common.NewNetworkError(url, "navigation timed out", ctx.Err())
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return common.NewNetworkError(url, "navigation cancelled", ctx.Err())
	}
	return common.NewNetworkError(url, "navigation failed", err)
}
