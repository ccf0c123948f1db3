package offheap

import "github.com/pkg/errors"

var (
	ErrAllocBlockOutOfLimit = errors.New("alloc control block out of limit")
	ErrEmptyPointer         = errors.New("dereference of empty pointer")
	ErrDriverBusy           = errors.New("offheap driver has active blocks")
	ErrInvalidBlocksLimit   = errors.New("invalid blocks limit")
)
