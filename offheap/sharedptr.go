package offheap

// SharedPtr is a reference-counted owner of a managed object. The object is
// destroyed when the last SharedPtr referencing its control block is reset.
//
// A SharedPtr must not be copied by value: use Clone or Assign to add an
// owner and Move or MoveFrom to transfer one. The zero value is an empty
// pointer. SharedPtr is not safe for concurrent use.
type SharedPtr[T any] struct {
	noCopy noCopy
	block  *block[T]
}

// NewSharedPtr takes ownership of objectPtr using DefaultOffheapDriver.
// A nil destroyFunc selects DefaultDestroy. On error the caller still owns
// objectPtr.
func NewSharedPtr[T any](objectPtr *T, destroyFunc DestroyFunc[T]) (*SharedPtr[T], error) {
	return NewSharedPtrWithDriver(&DefaultOffheapDriver, objectPtr, destroyFunc)
}

// NewSharedPtrWithDriver is NewSharedPtr accounted on driver; a nil driver
// selects DefaultOffheapDriver.
func NewSharedPtrWithDriver[T any](driver *OffheapDriver, objectPtr *T, destroyFunc DestroyFunc[T]) (*SharedPtr[T], error) {
	var (
		ret = new(SharedPtr[T])
		err error
	)
	err = ret.InitWithDriver(driver, objectPtr, destroyFunc)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (p *SharedPtr[T]) Init(objectPtr *T, destroyFunc DestroyFunc[T]) error {
	return p.InitWithDriver(&DefaultOffheapDriver, objectPtr, destroyFunc)
}

// InitWithDriver makes p the sole owner of objectPtr through a new control
// block, releasing whatever p referenced before. If the block cannot be
// allocated p is left untouched and ownership of objectPtr stays with the
// caller. A nil objectPtr leaves p empty; the object p already holds is kept
// as is. A nil driver selects DefaultOffheapDriver.
func (p *SharedPtr[T]) InitWithDriver(driver *OffheapDriver, objectPtr *T, destroyFunc DestroyFunc[T]) error {
	if objectPtr == nil {
		p.Reset()
		return nil
	}
	if objectPtr == p.Get() {
		return nil
	}
	if driver == nil {
		driver = &DefaultOffheapDriver
	}

	b, err := makeBlock(driver, objectPtr, destroyFunc)
	if err != nil {
		return err
	}

	old := p.block
	p.block = b
	releaseObjectRef(old)
	return nil
}

func (p *SharedPtr[T]) initFromBlock(b *block[T]) {
	p.set(b)
}

// set attaches to b before detaching from the current block, so the object
// stays alive when both are the same block.
func (p *SharedPtr[T]) set(b *block[T]) {
	acquireObjectRef(b)
	old := p.block
	p.block = b
	releaseObjectRef(old)
}

// Clone returns a new owner of the same object.
func (p *SharedPtr[T]) Clone() *SharedPtr[T] {
	ret := new(SharedPtr[T])
	ret.set(p.block)
	return ret
}

// Assign makes p another owner of other's object. A nil other empties p.
func (p *SharedPtr[T]) Assign(other *SharedPtr[T]) {
	if other == p {
		return
	}
	if other == nil {
		p.Reset()
		return
	}
	p.set(other.block)
}

// Move transfers ownership to a new SharedPtr and leaves p empty.
func (p *SharedPtr[T]) Move() *SharedPtr[T] {
	ret := &SharedPtr[T]{block: p.block}
	p.block = nil
	return ret
}

// MoveFrom releases p's current object reference and takes over other's
// reference without touching its counters. other is left empty. A nil other
// empties p.
func (p *SharedPtr[T]) MoveFrom(other *SharedPtr[T]) {
	if other == p {
		return
	}
	if other == nil {
		p.Reset()
		return
	}
	b := other.block
	other.block = nil
	old := p.block
	p.block = b
	releaseObjectRef(old)
}

func (p *SharedPtr[T]) Swap(other *SharedPtr[T]) {
	p.block, other.block = other.block, p.block
}

func (p *SharedPtr[T]) Reset() {
	p.set(nil)
}

func (p *SharedPtr[T]) Get() *T {
	if p.block == nil {
		return nil
	}
	return p.block.getObject()
}

// MustGet is the unchecked dereference: it panics with ErrEmptyPointer when p
// holds no object.
func (p *SharedPtr[T]) MustGet() *T {
	objectPtr := p.Get()
	if objectPtr == nil {
		panic(ErrEmptyPointer)
	}
	return objectPtr
}

func (p *SharedPtr[T]) IsEmpty() bool {
	return p.Get() == nil
}

func (p *SharedPtr[T]) ObjectUseCount() int32 {
	return objectUseCount(p.block)
}

func (p *SharedPtr[T]) BlockUseCount() int32 {
	return blockUseCount(p.block)
}

// BlockID identifies the control block, 0 when empty.
func (p *SharedPtr[T]) BlockID() int64 {
	if p.block == nil {
		return 0
	}
	return p.block.id
}
