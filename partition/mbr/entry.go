package mbr

import (
	"encoding/binary"
	"fmt"

	"github.com/diskfs/go-mbrtable/blockdev"
)

// EntrySize is the on-disk size of one partition entry
const EntrySize = 16

// AttrBootable is the attribute bit marking the active (bootable) partition
const AttrBootable byte = 0x80

// CHS is a cylinder/head/sector address as stored on disk. Its bit layout is
// not interpreted.
type CHS [3]byte

// Uint32 returns the address zero-extended to 32 bits, first byte lowest
func (c CHS) Uint32() uint32 {
	return uint32(c[0]) | uint32(c[1])<<8 | uint32(c[2])<<16
}

// CHSFromUint32 takes the low three bytes of v; the top byte is dropped
func CHSFromUint32(v uint32) CHS {
	return CHS{byte(v), byte(v >> 8), byte(v >> 16)}
}

// Entry is a single partition table slot
type Entry struct {
	Attributes byte // bit 7 is the bootable flag, other bits are preserved as-is
	StartCHS   CHS
	Type       Type
	EndCHS     CHS
	StartLBA   uint32 // first absolute sector of the partition
	Sectors    uint32 // number of sectors in the partition
}

// Decode converts the 16 on-disk bytes of a partition entry.
// Every input decodes; nothing is validated.
func Decode(raw [EntrySize]byte) Entry {
	var e Entry
	e.Attributes = raw[0]
	copy(e.StartCHS[:], raw[1:4])
	e.Type = Type(raw[4])
	copy(e.EndCHS[:], raw[5:8])
	e.StartLBA = binary.LittleEndian.Uint32(raw[8:12])
	e.Sectors = binary.LittleEndian.Uint32(raw[12:16])
	return e
}

// Encode returns the 16 on-disk bytes of the entry, the exact inverse of Decode
func (e Entry) Encode() [EntrySize]byte {
	var b [EntrySize]byte
	b[0] = e.Attributes
	copy(b[1:4], e.StartCHS[:])
	b[4] = byte(e.Type)
	copy(b[5:8], e.EndCHS[:])
	binary.LittleEndian.PutUint32(b[8:12], e.StartLBA)
	binary.LittleEndian.PutUint32(b[12:16], e.Sectors)
	return b
}

// Bootable reports whether bit 7 of the attributes is set
func (e Entry) Bootable() bool {
	return e.Attributes&AttrBootable != 0
}

// SetBootable sets or clears bit 7 of the attributes, leaving the others alone
func (e *Entry) SetBootable(bootable bool) {
	if bootable {
		e.Attributes |= AttrBootable
	} else {
		e.Attributes &^= AttrBootable
	}
}

// IsEmpty reports whether the slot is unused
func (e Entry) IsEmpty() bool {
	return e.Type == Empty && e.Sectors == 0
}

// End returns the first sector after the partition
func (e Entry) End() uint64 {
	return uint64(e.StartLBA) + uint64(e.Sectors)
}

// GetStart returns the partition start in bytes
func (e Entry) GetStart() int64 {
	return int64(e.StartLBA) * blockdev.SectorSize
}

// GetSize returns the partition size in bytes
func (e Entry) GetSize() int64 {
	return int64(e.Sectors) * blockdev.SectorSize
}

// Equal compares every field, CHS addresses included
func (e Entry) Equal(e2 Entry) bool {
	return e == e2
}

func (e Entry) String() string {
	boot := " "
	if e.Bootable() {
		boot = "*"
	}
	return fmt.Sprintf("%s start=%d sectors=%d type=%s", boot, e.StartLBA, e.Sectors, e.Type)
}
