package core

import (
	"context"
)

// ShutdownFunc is the function signature for cleanup handlers run when the
// engine closes. Each function receives a context that may carry a deadline
// and returns an error if cleanup fails.
//
// Implementations should respect the context deadline and be safe to call
// more than once.
//
//	var closeDB ShutdownFunc = func(ctx context.Context) error {
//	    return db.Close()
//	}
type ShutdownFunc func(ctx context.Context) error
