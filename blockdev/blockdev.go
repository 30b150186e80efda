// Package blockdev gives sector-granular access to a disk.
//
// A Device reads and writes exactly one 512-byte sector per call, synchronously.
// Each call either completes or fails as a whole with a *DeviceIOError; there is
// no retry, cancellation or timeout. Devices do no locking: callers that issue
// read-modify-write sequences from several goroutines must serialize them.
package blockdev

import (
	"errors"
	"io"
	"math"

	"github.com/diskfs/go-mbrtable/backend"
)

// SectorSize is the only sector size supported
const SectorSize = 512

// Sector is the buffer for a single sector transfer
type Sector [SectorSize]byte

// Device is a disk addressed by logical block address
type Device interface {
	// ReadSector fills s with the contents of sector lba
	ReadSector(lba uint64, s *Sector) error
	// WriteSector replaces sector lba with the contents of s
	WriteSector(lba uint64, s *Sector) error
}

type storageDevice struct {
	storage backend.Storage
}

// New returns a Device that reads and writes sectors of the given storage at
// byte offset lba*SectorSize
func New(storage backend.Storage) Device {
	return &storageDevice{storage: storage}
}

// Device interface guard
var _ Device = (*storageDevice)(nil)

func offset(lba uint64) (int64, error) {
	if lba > math.MaxInt64/SectorSize {
		return 0, errors.New("sector address out of range")
	}
	return int64(lba) * SectorSize, nil
}

func (d *storageDevice) ReadSector(lba uint64, s *Sector) error {
	off, err := offset(lba)
	if err != nil {
		return NewDeviceIOError("read", lba, err)
	}
	n, err := d.storage.ReadAt(s[:], off)
	// io.ReaderAt may return io.EOF alongside a full buffer at the end of the device
	if err != nil && (err != io.EOF || n != SectorSize) {
		if err == io.EOF {
			err = &IncompleteTransferError{transferred: n}
		}
		return NewDeviceIOError("read", lba, err)
	}
	if n != SectorSize {
		return NewDeviceIOError("read", lba, &IncompleteTransferError{transferred: n})
	}
	return nil
}

func (d *storageDevice) WriteSector(lba uint64, s *Sector) error {
	off, err := offset(lba)
	if err != nil {
		return NewDeviceIOError("write", lba, err)
	}
	w, err := d.storage.Writable()
	if err != nil {
		return NewDeviceIOError("write", lba, err)
	}
	n, err := w.WriteAt(s[:], off)
	if err != nil {
		return NewDeviceIOError("write", lba, err)
	}
	if n != SectorSize {
		return NewDeviceIOError("write", lba, &IncompleteTransferError{transferred: n})
	}
	return nil
}
