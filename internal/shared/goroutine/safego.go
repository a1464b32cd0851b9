// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/edofi/fiwe/internal/shared/logger"
)

// SafeGo launches a goroutine with panic recovery. If the goroutine panics,
// the panic is caught and logged with stack trace instead of crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}

// SafeGoContext is SafeGo for functions that take the caller's context.
// The function is expected to return once ctx is done.
func SafeGoContext(ctx context.Context, log logger.Interface, name string, fn func(context.Context)) {
	SafeGo(log, name, func() { fn(ctx) })
}
