package testhelper

import (
	"github.com/diskfs/go-mbrtable/blockdev"
)

type sectorFunc func(lba uint64, s *blockdev.Sector) error

// DeviceImpl implements blockdev.Device
// used for testing to stub out sector reads and writes and count the calls
type DeviceImpl struct {
	Reader sectorFunc
	Writer sectorFunc
	Reads  int
	Writes int
}

// blockdev.Device interface guard
var _ blockdev.Device = (*DeviceImpl)(nil)

func (d *DeviceImpl) ReadSector(lba uint64, s *blockdev.Sector) error {
	d.Reads++
	return d.Reader(lba, s)
}

func (d *DeviceImpl) WriteSector(lba uint64, s *blockdev.Sector) error {
	d.Writes++
	return d.Writer(lba, s)
}

// MemDevice is an in-memory blockdev.Device backed by a map of sectors.
// Sectors never written read back as zeros.
type MemDevice struct {
	Sectors map[uint64]blockdev.Sector
}

// blockdev.Device interface guard
var _ blockdev.Device = (*MemDevice)(nil)

func NewMemDevice() *MemDevice {
	return &MemDevice{Sectors: map[uint64]blockdev.Sector{}}
}

func (m *MemDevice) ReadSector(lba uint64, s *blockdev.Sector) error {
	*s = m.Sectors[lba]
	return nil
}

func (m *MemDevice) WriteSector(lba uint64, s *blockdev.Sector) error {
	m.Sectors[lba] = *s
	return nil
}
