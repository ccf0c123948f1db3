package offheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockCounters(t *testing.T) {
	var (
		driver  = newTestDriver(t, BlocksUnlimited)
		alive   bool
		counter destroyCounter
		object  = newTestObject(&alive)
	)

	b, err := makeBlock(driver, object, counter.destroy)
	require.NoError(t, err)
	assert.Equal(t, int32(1), b.objectUseCount)
	assert.Equal(t, int32(1), b.blockUseCount)
	assert.Same(t, object, b.getObject())

	acquireObjectRef(b)
	acquireBlockRef(b)
	assert.Equal(t, int32(2), b.objectUseCount)
	assert.Equal(t, int32(3), b.blockUseCount)

	releaseObjectRef(b)
	assert.True(t, alive)
	assert.Equal(t, 0, counter.calls)

	releaseObjectRef(b)
	assert.False(t, alive)
	assert.Equal(t, 1, counter.calls)
	assert.Nil(t, b.getObject())
	assert.Nil(t, b.objectPtr)
	assert.Equal(t, int32(1), b.blockUseCount)
	assert.Equal(t, int32(1), driver.ActiveBlocks())

	assert.Equal(t, int32(0), b.releaseBlock())
	assert.Equal(t, int32(0), driver.ActiveBlocks())
	assert.Equal(t, 1, counter.calls)

	stats := driver.Stats()
	assert.Equal(t, int64(1), stats.AllocatedBlocks)
	assert.Equal(t, int64(1), stats.ReleasedBlocks)
	assert.Equal(t, int64(1), stats.DestroyedObjects)
}

func TestBlockDefaultDestroyClosesObject(t *testing.T) {
	var (
		driver = newTestDriver(t, BlocksUnlimited)
		alive  bool
	)

	b, err := makeBlock(driver, newTestObject(&alive), nil)
	require.NoError(t, err)
	releaseObjectRef(b)
	assert.False(t, alive)
	assert.Equal(t, int32(0), driver.ActiveBlocks())
}

func TestBlockUseAfterRelease(t *testing.T) {
	var (
		driver = newTestDriver(t, BlocksUnlimited)
		alive  bool
	)

	b, err := makeBlock(driver, newTestObject(&alive), nil)
	require.NoError(t, err)
	releaseObjectRef(b)

	assert.Panics(t, func() { b.addBlockRef() })
	assert.Panics(t, func() { b.releaseBlock() })
}

func TestBlockNilHelpers(t *testing.T) {
	var b *block[TestObject]

	assert.NotPanics(t, func() {
		acquireObjectRef(b)
		releaseObjectRef(b)
		acquireBlockRef(b)
		releaseBlockRef(b)
	})
	assert.Equal(t, int32(0), objectUseCount(b))
	assert.Equal(t, int32(0), blockUseCount(b))
}
