// Package backend describes the storage that a partition table lives on: a
// disk image file or an OS block device.
package backend

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

var (
	ErrIncorrectOpenMode = errors.New("disk file or device not open for write")
	ErrNotSuitable       = errors.New("backing file is not suitable")
)

// File is the read side of a storage, addressed by byte offset
type File interface {
	fs.File
	io.ReaderAt
	io.Seeker
	io.Closer
}

// WritableFile is a File that also accepts positioned writes
type WritableFile interface {
	File
	io.WriterAt
}

// Storage is a disk image or block device opened for partition table access
type Storage interface {
	File
	// Sys returns the OS file, for ioctl calls via fd
	Sys() (*os.File, error)
	// Writable returns the file for read-write operations, or ErrIncorrectOpenMode
	// if the storage was opened read-only
	Writable() (WritableFile, error)
	// ReadOnly reports whether Writable will always fail
	ReadOnly() bool
}
