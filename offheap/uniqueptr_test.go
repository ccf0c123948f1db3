package offheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniquePtrDefaultDestroy(t *testing.T) {
	var (
		alive  bool
		object = newTestObject(&alive)
	)

	uniq1 := NewUniquePtr(object, nil)
	assert.Same(t, object, uniq1.Get())
	assert.True(t, alive)

	uniq2 := uniq1.Move()
	assert.Nil(t, uniq1.Get())
	assert.Same(t, object, uniq2.Get())
	assert.True(t, alive)

	uniq2.Reset()
	assert.False(t, alive)
	assert.Nil(t, uniq2.Get())
}

func TestUniquePtrUserDefinedDestroy(t *testing.T) {
	var (
		alive   bool
		counter destroyCounter
		object  = newTestObject(&alive)
	)

	uniq1 := NewUniquePtr(object, counter.destroy)
	uniq2 := uniq1.Move()
	assert.True(t, uniq1.IsEmpty())
	assert.Same(t, object, uniq2.Get())

	uniq1.Reset()
	assert.Equal(t, 0, counter.calls)

	uniq2.Reset()
	uniq2.Reset()
	assert.False(t, alive)
	assert.Equal(t, 1, counter.calls)
	assert.PanicsWithValue(t, ErrEmptyPointer, func() { uniq2.MustGet() })
}

func TestUniquePtrMoveFrom(t *testing.T) {
	var (
		aliveA, aliveB bool
		counterA       destroyCounter
		counterB       destroyCounter
		objectB        = newTestObject(&aliveB)
	)

	a := NewUniquePtr(newTestObject(&aliveA), counterA.destroy)
	b := NewUniquePtr(objectB, counterB.destroy)

	a.MoveFrom(b)
	assert.False(t, aliveA)
	assert.Equal(t, 1, counterA.calls)
	assert.True(t, b.IsEmpty())
	assert.Same(t, objectB, a.MustGet())

	a.MoveFrom(a)
	assert.Same(t, objectB, a.Get())

	// the destroy action travels with the object
	a.Reset()
	assert.False(t, aliveB)
	assert.Equal(t, 1, counterA.calls)
	assert.Equal(t, 1, counterB.calls)
}

func TestUniquePtrInitRelease(t *testing.T) {
	var (
		aliveA, aliveB bool
		counter        destroyCounter
		objectB        = newTestObject(&aliveB)
		uniq           UniquePtr[TestObject]
	)

	uniq.Init(newTestObject(&aliveA), counter.destroy)
	uniq.Init(objectB, counter.destroy)
	assert.False(t, aliveA)
	assert.Equal(t, 1, counter.calls)

	released := uniq.Release()
	assert.Same(t, objectB, released)
	assert.True(t, uniq.IsEmpty())
	uniq.Reset()
	assert.True(t, aliveB)
	assert.Equal(t, 1, counter.calls)
}

func TestUniquePtrSwap(t *testing.T) {
	var (
		aliveA, aliveB bool
		counterA       destroyCounter
		objectA        = newTestObject(&aliveA)
		objectB        = newTestObject(&aliveB)
	)

	a := NewUniquePtr(objectA, counterA.destroy)
	b := NewUniquePtr(objectB, nil)

	a.Swap(b)
	assert.Same(t, objectB, a.Get())
	assert.Same(t, objectA, b.Get())

	b.Reset()
	assert.False(t, aliveA)
	assert.Equal(t, 1, counterA.calls)
	a.Reset()
	assert.False(t, aliveB)
	assert.Equal(t, 1, counterA.calls)
}

func TestUniquePtrInitSameObject(t *testing.T) {
	var (
		alive   bool
		counter destroyCounter
		uniq    = NewUniquePtr(newTestObject(&alive), nil)
	)

	uniq.Init(uniq.Get(), counter.destroy)
	assert.True(t, alive)
	assert.Equal(t, 0, counter.calls)
	assert.False(t, uniq.IsEmpty())

	uniq.Reset()
	assert.False(t, alive)
	assert.Equal(t, 0, counter.calls)
}

func TestUniquePtrMoveFromNil(t *testing.T) {
	var alive bool

	uniq := NewUniquePtr(newTestObject(&alive), nil)
	uniq.MoveFrom(nil)
	assert.False(t, alive)
	assert.True(t, uniq.IsEmpty())
}
