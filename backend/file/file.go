// Package file provides a backend.Storage over a disk image file or a block
// device node such as /dev/sda.
package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/diskfs/go-mbrtable/backend"
)

type fileStorage struct {
	storage  fs.File
	readOnly bool
}

// New wraps an already open fs.File. Positioned reads need the file to implement
// io.ReaderAt; writes additionally need io.WriterAt and readOnly=false.
func New(f fs.File, readOnly bool) backend.Storage {
	return fileStorage{
		storage:  f,
		readOnly: readOnly,
	}
}

// OpenFromPath opens an existing image file or block device.
// Read-write opens are exclusive, so a mounted device cannot be opened for writing.
func OpenFromPath(pathName string, readOnly bool) (backend.Storage, error) {
	if pathName == "" {
		return nil, errors.New("must pass device or file name")
	}

	if _, err := os.Stat(pathName); os.IsNotExist(err) {
		return nil, fmt.Errorf("provided device/file %s does not exist", pathName)
	}

	openMode := os.O_RDONLY
	if !readOnly {
		openMode = os.O_RDWR | os.O_EXCL
	}

	f, err := os.OpenFile(pathName, openMode, 0o600)
	if err != nil {
		return nil, fmt.Errorf("could not open device %s with mode %v: %w", pathName, openMode, err)
	}

	return fileStorage{
		storage:  f,
		readOnly: readOnly,
	}, nil
}

// CreateFromPath creates a new, zero-filled image file of the given size.
// The file must not exist yet.
func CreateFromPath(pathName string, size int64) (backend.Storage, error) {
	if pathName == "" {
		return nil, errors.New("must pass device name")
	}
	if size <= 0 {
		return nil, errors.New("must pass valid device size to create")
	}
	f, err := os.OpenFile(pathName, os.O_RDWR|os.O_EXCL|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("could not create device %s: %w", pathName, err)
	}
	if err := f.Truncate(size); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("could not expand device %s to size %d: %w", pathName, size, err)
	}

	return fileStorage{
		storage:  f,
		readOnly: false,
	}, nil
}

// backend.Storage interface guard
var _ backend.Storage = (*fileStorage)(nil)

func (f fileStorage) Sys() (*os.File, error) {
	if osFile, ok := f.storage.(*os.File); ok {
		return osFile, nil
	}
	return nil, backend.ErrNotSuitable
}

func (f fileStorage) Writable() (backend.WritableFile, error) {
	if f.readOnly {
		return nil, backend.ErrIncorrectOpenMode
	}
	if rwFile, ok := f.storage.(backend.WritableFile); ok {
		return rwFile, nil
	}
	return nil, backend.ErrNotSuitable
}

func (f fileStorage) ReadOnly() bool {
	return f.readOnly
}

func (f fileStorage) Stat() (fs.FileInfo, error) {
	return f.storage.Stat()
}

func (f fileStorage) Read(b []byte) (int, error) {
	return f.storage.Read(b)
}

func (f fileStorage) Close() error {
	return f.storage.Close()
}

func (f fileStorage) ReadAt(p []byte, off int64) (n int, err error) {
	if readerAt, ok := f.storage.(io.ReaderAt); ok {
		return readerAt.ReadAt(p, off)
	}
	return -1, backend.ErrNotSuitable
}

func (f fileStorage) Seek(offset int64, whence int) (int64, error) {
	if seeker, ok := f.storage.(io.Seeker); ok {
		return seeker.Seek(offset, whence)
	}
	return -1, backend.ErrNotSuitable
}
