package offheap

const (
	// BlocksUnlimited disables the driver's control block limit.
	BlocksUnlimited = int32(-1)

	DefaultBlocksLimit = BlocksUnlimited
)

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
