package offheap

// UniquePtr is the sole owner of an object. It has no control block and no
// copy operations; ownership moves with Move or MoveFrom.
type UniquePtr[T any] struct {
	noCopy      noCopy
	objectPtr   *T
	destroyFunc DestroyFunc[T]
}

// NewUniquePtr takes ownership of objectPtr. A nil destroyFunc selects
// DefaultDestroy.
func NewUniquePtr[T any](objectPtr *T, destroyFunc DestroyFunc[T]) *UniquePtr[T] {
	ret := new(UniquePtr[T])
	ret.Init(objectPtr, destroyFunc)
	return ret
}

// Init destroys the currently held object, if any, then takes ownership of
// objectPtr. Passing the object p already holds is a no-op.
func (p *UniquePtr[T]) Init(objectPtr *T, destroyFunc DestroyFunc[T]) {
	if objectPtr != nil && objectPtr == p.objectPtr {
		return
	}
	p.Reset()
	p.objectPtr = objectPtr
	p.destroyFunc = destroyFuncOrDefault(destroyFunc)
}

// Reset destroys the held object. It is a no-op when nothing is held, so the
// destroy action never sees a nil object and never runs twice.
func (p *UniquePtr[T]) Reset() {
	if p.objectPtr == nil {
		return
	}
	objectPtr := p.objectPtr
	destroyFunc := destroyFuncOrDefault(p.destroyFunc)
	p.objectPtr = nil
	destroyFunc(objectPtr)
	bgLogger().Debug("unique object destroyed")
}

// Release gives up ownership without destroying the object.
func (p *UniquePtr[T]) Release() *T {
	objectPtr := p.objectPtr
	p.objectPtr = nil
	return objectPtr
}

func (p *UniquePtr[T]) Move() *UniquePtr[T] {
	ret := &UniquePtr[T]{objectPtr: p.objectPtr, destroyFunc: p.destroyFunc}
	p.objectPtr = nil
	return ret
}

// MoveFrom destroys p's object, then takes other's object and destroy action.
func (p *UniquePtr[T]) MoveFrom(other *UniquePtr[T]) {
	if other == p {
		return
	}
	if other == nil {
		p.Reset()
		return
	}
	objectPtr := other.objectPtr
	destroyFunc := other.destroyFunc
	other.objectPtr = nil

	p.Reset()
	p.objectPtr = objectPtr
	p.destroyFunc = destroyFunc
}

func (p *UniquePtr[T]) Swap(other *UniquePtr[T]) {
	p.objectPtr, other.objectPtr = other.objectPtr, p.objectPtr
	p.destroyFunc, other.destroyFunc = other.destroyFunc, p.destroyFunc
}

func (p *UniquePtr[T]) Get() *T {
	return p.objectPtr
}

func (p *UniquePtr[T]) MustGet() *T {
	if p.objectPtr == nil {
		panic(ErrEmptyPointer)
	}
	return p.objectPtr
}

func (p *UniquePtr[T]) IsEmpty() bool {
	return p.objectPtr == nil
}
