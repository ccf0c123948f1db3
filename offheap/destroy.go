package offheap

import (
	"io"

	"go.uber.org/zap"
)

// DestroyFunc releases a managed object. It is bound once when a pointer takes
// ownership and invoked exactly once, with a non-nil object.
type DestroyFunc[T any] func(objectPtr *T)

// DefaultDestroy closes objects implementing io.Closer and otherwise leaves the
// object to the garbage collector.
func DefaultDestroy[T any](objectPtr *T) {
	closer, ok := any(objectPtr).(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		bgLogger().Warn("close managed object failed", zap.Error(err))
	}
}

func destroyFuncOrDefault[T any](destroyFunc DestroyFunc[T]) DestroyFunc[T] {
	if destroyFunc == nil {
		return DefaultDestroy[T]
	}
	return destroyFunc
}
