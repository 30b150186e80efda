// Package mbrtable opens disks and disk images for reading and writing their
// Master Boot Record (MBR) partition table.
//
// It does **not** mount anything and does not parse filesystems. It reads and
// writes the 64-byte partition table in a single 512-byte sector, leaving the
// boot code and boot signature of that sector untouched.
//
// Read the table of an image:
//
//	d, err := mbrtable.Open("/tmp/disk.img", mbrtable.WithOpenMode(mbrtable.ReadOnly))
//	table, err := d.ReadTable(0)
//
// Create an image with a single bootable Linux partition:
//
//	d, err := mbrtable.Create("/tmp/disk.img", 10*1024*1024)
//	err = d.WriteTable(0, mbr.Table{
//	  {Attributes: mbr.AttrBootable, Type: mbr.Linux, StartLBA: 2048, Sectors: 18432},
//	})
package mbrtable

import (
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/diskfs/go-mbrtable/backend"
	"github.com/diskfs/go-mbrtable/backend/file"
	"github.com/diskfs/go-mbrtable/blockdev"
	"github.com/diskfs/go-mbrtable/disk"
)

// ErrUnsupportedSectorSize is returned for block devices whose logical sector
// size is not 512 bytes
var ErrUnsupportedSectorSize = errors.New("unsupported logical sector size")

// OpenModeOption represents file open modes
type OpenModeOption int

const (
	// ReadOnly open file in read only mode
	ReadOnly OpenModeOption = iota
	// ReadWriteExclusive open file in read-write exclusive mode
	ReadWriteExclusive
)

// OpenModeOption.String()
func (m OpenModeOption) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case ReadWriteExclusive:
		return "read-write exclusive"
	default:
		return "unknown"
	}
}

type openOpts struct {
	mode OpenModeOption
}

func openOptsDefaults() *openOpts {
	return &openOpts{
		mode: ReadWriteExclusive,
	}
}

// OpenOpt func that process Open options
type OpenOpt func(o *openOpts) error

// WithOpenMode sets the opening mode to the requested mode of type OpenModeOption.
// Default is ReadWriteExclusive, i.e. os.O_RDWR | os.O_EXCL
func WithOpenMode(mode OpenModeOption) OpenOpt {
	return func(o *openOpts) error {
		switch mode {
		case ReadOnly, ReadWriteExclusive:
			o.mode = mode
			return nil
		default:
			return fmt.Errorf("unknown open mode %d", mode)
		}
	}
}

// Open a Disk from a path to a device
// Should pass a path to a block device e.g. /dev/sda or a path to a file /tmp/foo.img
// The provided device must exist at the time you call Open()
func Open(device string, opts ...OpenOpt) (*disk.Disk, error) {
	if device == "" {
		return nil, errors.New("must pass device name")
	}
	openOpts := openOptsDefaults()
	for _, opt := range opts {
		if err := opt(openOpts); err != nil {
			return nil, err
		}
	}

	storage, err := file.OpenFromPath(device, openOpts.mode == ReadOnly)
	if err != nil {
		return nil, err
	}
	d, err := initDisk(device, storage)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	log.WithFields(log.Fields{
		"device": device,
		"type":   d.Type,
		"mode":   openOpts.mode,
	}).Debugf("opened disk of %d bytes", d.Size)
	return d, nil
}

// Create a Disk image at a path, of the given size in bytes
// The provided file must not exist at the time you call Create()
func Create(device string, size int64) (*disk.Disk, error) {
	if device == "" {
		return nil, errors.New("must pass device name")
	}
	if size <= 0 {
		return nil, errors.New("must pass valid device size to create")
	}
	storage, err := file.CreateFromPath(device, size)
	if err != nil {
		return nil, err
	}
	return disk.New(storage, disk.DeviceTypeFile, size), nil
}

func initDisk(device string, storage backend.Storage) (*disk.Disk, error) {
	osFile, err := storage.Sys()
	if err != nil {
		return nil, fmt.Errorf("could not get OS file for %s: %w", device, err)
	}
	diskType, err := disk.DetermineDeviceType(osFile)
	if err != nil {
		return nil, err
	}

	// works for regular files and for block devices alike
	size, err := storage.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("could not get size of device %s: %w", device, err)
	}
	if _, err := storage.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("could not rewind device %s: %w", device, err)
	}
	if size < blockdev.SectorSize {
		return nil, fmt.Errorf("device %s is %d bytes, smaller than one sector", device, size)
	}

	d := disk.New(storage, diskType, size)
	if diskType == disk.DeviceTypeBlockDevice {
		lblksize, pblksize, err := getSectorSizes(osFile)
		if err != nil {
			return nil, fmt.Errorf("unable to get block sizes for device %s: %w", device, err)
		}
		if lblksize != blockdev.SectorSize {
			return nil, fmt.Errorf("device %s has %d byte sectors: %w", device, lblksize, ErrUnsupportedSectorSize)
		}
		d.PhysicalBlocksize = pblksize
	}
	return d, nil
}
