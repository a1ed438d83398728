package backup

import "context"

// Task is a pipeline running on its own goroutine.
type Task[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}
	res    T
	err    error
}

func start[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task[T]{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		defer cancel()
		t.res, t.err = fn(ctx)
	}()

	return t
}

// Cancel asks the task to stop at the next page or table boundary.
func (t *Task[T]) Cancel() { t.cancel() }

// Done is closed once the task has finished.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Wait blocks until the task finishes and returns its outcome.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	return t.res, t.err
}
