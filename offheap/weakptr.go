package offheap

// WeakPtr observes an object owned by SharedPtr handles without keeping it
// alive. It keeps only the control block allocated, so Lock can tell whether
// the object still exists.
//
// Like SharedPtr, a WeakPtr must not be copied by value and is not safe for
// concurrent use.
type WeakPtr[T any] struct {
	noCopy noCopy
	block  *block[T]
}

func NewWeakPtr[T any](shared *SharedPtr[T]) *WeakPtr[T] {
	ret := new(WeakPtr[T])
	ret.InitFromShared(shared)
	return ret
}

// InitFromShared points p at shared's control block. A nil shared empties p.
func (p *WeakPtr[T]) InitFromShared(shared *SharedPtr[T]) {
	if shared == nil {
		p.Reset()
		return
	}
	p.set(shared.block)
}

func (p *WeakPtr[T]) set(b *block[T]) {
	acquireBlockRef(b)
	old := p.block
	p.block = b
	releaseBlockRef(old)
}

func (p *WeakPtr[T]) Clone() *WeakPtr[T] {
	ret := new(WeakPtr[T])
	ret.set(p.block)
	return ret
}

func (p *WeakPtr[T]) Assign(other *WeakPtr[T]) {
	if other == p {
		return
	}
	if other == nil {
		p.Reset()
		return
	}
	p.set(other.block)
}

func (p *WeakPtr[T]) Move() *WeakPtr[T] {
	ret := &WeakPtr[T]{block: p.block}
	p.block = nil
	return ret
}

func (p *WeakPtr[T]) MoveFrom(other *WeakPtr[T]) {
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
	releaseBlockRef(old)
}

func (p *WeakPtr[T]) Swap(other *WeakPtr[T]) {
	p.block, other.block = other.block, p.block
}

func (p *WeakPtr[T]) Reset() {
	p.set(nil)
}

// Lock returns a new owner of the observed object, or an empty SharedPtr when
// p is empty or the object was already destroyed. Only the strong counter is
// inspected; a destroyed object is never touched.
func (p *WeakPtr[T]) Lock() *SharedPtr[T] {
	ret := new(SharedPtr[T])
	if p.block == nil || !p.block.isObjectAlive() {
		return ret
	}
	ret.initFromBlock(p.block)
	return ret
}

// Expired reports whether the observed object is gone.
func (p *WeakPtr[T]) Expired() bool {
	return p.block == nil || !p.block.isObjectAlive()
}

func (p *WeakPtr[T]) ObjectUseCount() int32 {
	return objectUseCount(p.block)
}

func (p *WeakPtr[T]) BlockUseCount() int32 {
	return blockUseCount(p.block)
}
