package pool

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Run executes tasks with at most limit in flight at once. The first error
// cancels the context of the remaining tasks and is returned.
//
// Behavior:
//   - Tasks run in their own goroutines, bounded by limit
//   - Panics in a task are recovered, logged with a stack trace and
//     converted into errors
//   - Completion order is unspecified; callers must not depend on it
func Run(ctx context.Context, limit int, tasks []func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, task := range tasks {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					ctxlog.From(ctx).Error("panic in pooled task",
						"recover", r,
						"stack", string(stack))
					err = goerr.New("panic in pooled task", goerr.V("recover", r))
				}
			}()

			return task(ctx)
		})
	}

	return g.Wait()
}
