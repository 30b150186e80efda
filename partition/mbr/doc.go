// Package mbr reads and writes the partition table of a Master Boot Record (MBR).
//
// An MBR is the first sector of a partitioned disk: 446 bytes of boot code, a
// table of exactly four 16-byte partition entries at offset 446, and the boot
// signature 0x55 0xAA in the last two bytes. This package only touches the
// 64-byte table region. Boot code and signature are never interpreted; Write
// preserves them by reading the sector before overlaying the new table.
//
// Cylinder/head/sector (CHS) addresses are carried as opaque 3-byte values so a
// table survives a read and write unchanged. Extents are handled as LBA.
//
// Here is a simple example of writing a table with a single bootable Linux
// partition of 100MB starting at 1MB, on a disk image:
//
//	storage, err := file.OpenFromPath("/tmp/disk.img", false)
//	dev := blockdev.New(storage)
//	table := mbr.Table{
//	  {
//	    Attributes: mbr.AttrBootable,
//	    Type:       mbr.Linux,
//	    StartLBA:   2048,
//	    Sectors:    204800,
//	  },
//	}
//	err = mbr.Write(dev, 0, table)
//
// Write is a read-modify-write of one sector and is not atomic. Callers sharing
// a device between goroutines must serialize access; see package disk.
package mbr
