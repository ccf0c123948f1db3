package offheap

import "fmt"

const (
	blockStatusUninited = int32(iota)
	blockStatusObjectAlive
	blockStatusObjectDestroyed
	blockStatusReleased
)

// block is the control block shared by the SharedPtr and WeakPtr handles of
// one managed object. objectUseCount gates object destruction, blockUseCount
// gates the release of the block itself; every strong reference is also a
// block reference.
//
// Counters are plain integers: a block and its handles belong to a single
// goroutine at a time.
type block[T any] struct {
	id     int64
	driver *OffheapDriver
	status int32

	objectPtr      *T
	objectUseCount int32
	blockUseCount  int32
	destroyFunc    DestroyFunc[T]
}

// makeBlock takes ownership of objectPtr only when it returns a nil error.
func makeBlock[T any](driver *OffheapDriver, objectPtr *T, destroyFunc DestroyFunc[T]) (*block[T], error) {
	var (
		blockID int64
		err     error
	)

	blockID, err = driver.reserveBlock()
	if err != nil {
		return nil, err
	}

	return &block[T]{
		id:             blockID,
		driver:         driver,
		status:         blockStatusObjectAlive,
		objectPtr:      objectPtr,
		objectUseCount: 1,
		blockUseCount:  1,
		destroyFunc:    destroyFuncOrDefault(destroyFunc),
	}, nil
}

func (p *block[T]) assertNotReleased() {
	if p.status == blockStatusReleased {
		panic(fmt.Sprintf("offheap: use of released control block %d", p.id))
	}
}

func (p *block[T]) addObjectRef() {
	p.assertNotReleased()
	p.objectUseCount++
}

func (p *block[T]) addBlockRef() {
	p.assertNotReleased()
	p.blockUseCount++
}

// releaseObject drops a strong reference and destroys the object when it was
// the last one. The block stays allocated.
func (p *block[T]) releaseObject() {
	p.assertNotReleased()
	p.objectUseCount--
	if p.objectUseCount != 0 {
		return
	}

	objectPtr := p.objectPtr
	destroyFunc := p.destroyFunc
	p.objectPtr = nil
	p.destroyFunc = nil
	p.status = blockStatusObjectDestroyed

	if objectPtr != nil {
		destroyFunc(objectPtr)
	}
	p.driver.noteObjectDestroyed(p.id)
}

// releaseBlock drops a block reference and returns the remaining count. The
// block must not be used by the caller once zero is returned.
func (p *block[T]) releaseBlock() int32 {
	p.assertNotReleased()
	p.blockUseCount--
	if p.blockUseCount != 0 {
		return p.blockUseCount
	}

	p.status = blockStatusReleased
	p.objectPtr = nil
	p.destroyFunc = nil
	p.driver.releaseBlock(p.id)
	return 0
}

func (p *block[T]) getObject() *T {
	if p.objectUseCount == 0 {
		return nil
	}
	return p.objectPtr
}

func (p *block[T]) isObjectAlive() bool {
	return p.status == blockStatusObjectAlive && p.objectUseCount > 0
}

func acquireObjectRef[T any](b *block[T]) {
	if b == nil {
		return
	}
	b.addObjectRef()
	b.addBlockRef()
}

func releaseObjectRef[T any](b *block[T]) {
	if b == nil {
		return
	}
	b.releaseObject()
	b.releaseBlock()
}

func acquireBlockRef[T any](b *block[T]) {
	if b == nil {
		return
	}
	b.addBlockRef()
}

func releaseBlockRef[T any](b *block[T]) {
	if b == nil {
		return
	}
	b.releaseBlock()
}

func objectUseCount[T any](b *block[T]) int32 {
	if b == nil {
		return 0
	}
	return b.objectUseCount
}

func blockUseCount[T any](b *block[T]) int32 {
	if b == nil {
		return 0
	}
	return b.blockUseCount
}
