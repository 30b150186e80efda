package blockdev

import "fmt"

// DeviceIOError is any failure of a single sector read or write: a medium
// fault, an absent device, or a short transfer.
type DeviceIOError struct {
	Op  string // "read" or "write"
	LBA uint64
	Err error
}

func (e *DeviceIOError) Error() string {
	return fmt.Sprintf("device %s of sector %d failed: %v", e.Op, e.LBA, e.Err)
}

func (e *DeviceIOError) Unwrap() error {
	return e.Err
}

func NewDeviceIOError(op string, lba uint64, err error) *DeviceIOError {
	return &DeviceIOError{
		Op:  op,
		LBA: lba,
		Err: err,
	}
}

// IncompleteTransferError is the cause carried by a DeviceIOError when the
// storage moved fewer bytes than a full sector
type IncompleteTransferError struct {
	transferred int
}

func (e *IncompleteTransferError) Error() string {
	return fmt.Sprintf("transferred %d bytes of sector size %d", e.transferred, SectorSize)
}
