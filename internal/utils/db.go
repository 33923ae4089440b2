package utils

import (
	"context"
	"time"
)

// DBTimeout bounds every repository call. A caller deadline that is already
// shorter wins.
var DBTimeout = 5 * time.Second

func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DBTimeout)
}
