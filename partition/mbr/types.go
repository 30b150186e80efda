package mbr

import "fmt"

// Type is the partition type code of an entry. Values are not validated; codes
// not listed here are carried through unchanged.
// See https://en.wikipedia.org/wiki/Partition_type
type Type byte

// List of common MBR partition types
const (
	Empty         Type = 0x00
	Fat12         Type = 0x01
	XenixRoot     Type = 0x02
	XenixUsr      Type = 0x03
	Fat16         Type = 0x04
	ExtendedCHS   Type = 0x05
	Fat16b        Type = 0x06
	NTFS          Type = 0x07
	CommodoreFAT  Type = 0x08
	Fat32CHS      Type = 0x0b
	Fat32LBA      Type = 0x0c
	Fat16bLBA     Type = 0x0e
	ExtendedLBA   Type = 0x0f
	LinuxSwap     Type = 0x82
	Linux         Type = 0x83
	LinuxExtended Type = 0x85
	LinuxLVM      Type = 0x8e
	Iso9660       Type = 0x96
	MacOSXUFS     Type = 0xa8
	MacOSXBoot    Type = 0xab
	HFS           Type = 0xaf
	Solaris8Boot  Type = 0xbe
	GPTProtective Type = 0xee
	EFISystem     Type = 0xef
	VMWareFS      Type = 0xfb
	VMWareSwap    Type = 0xfc
	LinuxRAID     Type = 0xfd
)

var typeNames = map[Type]string{
	Empty:         "Empty",
	Fat12:         "FAT12",
	XenixRoot:     "XENIX root",
	XenixUsr:      "XENIX usr",
	Fat16:         "FAT16 <32M",
	ExtendedCHS:   "Extended",
	Fat16b:        "FAT16",
	NTFS:          "HPFS/NTFS/exFAT",
	CommodoreFAT:  "AIX",
	Fat32CHS:      "W95 FAT32",
	Fat32LBA:      "W95 FAT32 (LBA)",
	Fat16bLBA:     "W95 FAT16 (LBA)",
	ExtendedLBA:   "W95 Ext'd (LBA)",
	LinuxSwap:     "Linux swap / Solaris",
	Linux:         "Linux",
	LinuxExtended: "Linux extended",
	LinuxLVM:      "Linux LVM",
	Iso9660:       "ISO9660",
	MacOSXUFS:     "Darwin UFS",
	MacOSXBoot:    "Darwin boot",
	HFS:           "HFS / HFS+",
	Solaris8Boot:  "Solaris boot",
	GPTProtective: "GPT",
	EFISystem:     "EFI (FAT-12/16/32)",
	VMWareFS:      "VMware VMFS",
	VMWareSwap:    "VMware VMKCORE",
	LinuxRAID:     "Linux raid autodetect",
}

// String returns the name fdisk shows for well-known types, or the hex code
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%02x", byte(t))
}
