package mbr

import (
	"errors"
	"fmt"

	"github.com/diskfs/go-mbrtable/blockdev"
)

const (
	// EntryCount is the fixed number of slots in an MBR partition table
	EntryCount = 4
	// TableOffset is the byte offset of the table within the sector
	TableOffset = 446
	// TableSize is the size of the table region
	TableSize      = EntryCount * EntrySize
	signatureStart = 510
)

// Table is the complete partition table, in on-disk slot order
type Table [EntryCount]Entry

func getMbrSignature() [2]byte {
	return [2]byte{0x55, 0xaa}
}

// HasSignature reports whether the sector ends with the 0x55 0xAA boot
// signature. Read and Write do not check it.
func HasSignature(s *blockdev.Sector) bool {
	var sig [2]byte
	copy(sig[:], s[signatureStart:])
	return sig == getMbrSignature()
}

// SetSignature writes the 0x55 0xAA boot signature into the sector
func SetSignature(s *blockdev.Sector) {
	sig := getMbrSignature()
	copy(s[signatureStart:], sig[:])
}

// TableFromBytes decodes the 64-byte table region
func TableFromBytes(b [TableSize]byte) Table {
	var t Table
	for i := range t {
		var raw [EntrySize]byte
		copy(raw[:], b[i*EntrySize:(i+1)*EntrySize])
		t[i] = Decode(raw)
	}
	return t
}

// Bytes encodes the table into its 64-byte on-disk region
func (t *Table) Bytes() [TableSize]byte {
	var b [TableSize]byte
	for i, e := range t {
		raw := e.Encode()
		copy(b[i*EntrySize:], raw[:])
	}
	return b
}

// Bootable returns the first slot marked bootable
func (t *Table) Bootable() (int, bool) {
	for i, e := range t {
		if e.Bootable() {
			return i, true
		}
	}
	return -1, false
}

// Overlaps checks that no two non-empty entries share a sector, and that no
// partition overlaps the table sector at lba
func (t *Table) Overlaps(lba uint64) error {
	for i, e := range t {
		if e.IsEmpty() || e.Sectors == 0 {
			continue
		}
		if uint64(e.StartLBA) <= lba && lba < e.End() {
			return &OverlapError{first: i, second: -1}
		}
		for j := i + 1; j < EntryCount; j++ {
			o := t[j]
			if o.IsEmpty() || o.Sectors == 0 {
				continue
			}
			if uint64(e.StartLBA) < o.End() && uint64(o.StartLBA) < e.End() {
				return &OverlapError{first: i, second: j}
			}
		}
	}
	return nil
}

// Equal compares all four slots
func (t *Table) Equal(t2 *Table) bool {
	if t2 == nil {
		return false
	}
	return *t == *t2
}

// Type report the type of table, always the string "mbr"
func (t *Table) Type() string {
	return "mbr"
}

func deviceError(op string, lba uint64, err error) error {
	var ioErr *blockdev.DeviceIOError
	if errors.As(err, &ioErr) {
		return err
	}
	return blockdev.NewDeviceIOError(op, lba, err)
}

// Read reads the partition table from sector lba of the device.
// A failed sector read is returned as a *blockdev.DeviceIOError.
func Read(dev blockdev.Device, lba uint64) (Table, error) {
	var s blockdev.Sector
	if err := dev.ReadSector(lba, &s); err != nil {
		return Table{}, deviceError("read", lba, err)
	}
	var region [TableSize]byte
	copy(region[:], s[TableOffset:TableOffset+TableSize])
	return TableFromBytes(region), nil
}

// Write replaces the partition table in sector lba of the device.
//
// The sector is read first so that the boot code and signature around the table
// are written back unchanged. If that read fails nothing is written. A failed
// write leaves the sector in whatever state the device left it; there is no
// retry or rollback. Both failures are returned as a *blockdev.DeviceIOError.
func Write(dev blockdev.Device, lba uint64, t Table) error {
	var s blockdev.Sector
	if err := dev.ReadSector(lba, &s); err != nil {
		return deviceError("read", lba, err)
	}
	region := t.Bytes()
	copy(s[TableOffset:TableOffset+TableSize], region[:])
	if err := dev.WriteSector(lba, &s); err != nil {
		return deviceError("write", lba, err)
	}
	return nil
}

// OverlapError reports partitions that share sectors
type OverlapError struct {
	first  int
	second int // -1 when first overlaps the table sector itself
}

func (e *OverlapError) Error() string {
	if e.second < 0 {
		return fmt.Sprintf("partition %d overlaps the partition table sector", e.first)
	}
	return fmt.Sprintf("partition %d overlaps partition %d", e.first, e.second)
}
