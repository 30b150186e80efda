// Package disk provides utilities for working directly with a disk
//
// A Disk serializes every partition table access on its device, so that the
// read-modify-write performed by mbr.Write cannot interleave with another
// goroutine's read or write through the same Disk.
package disk

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/diskfs/go-mbrtable/backend"
	"github.com/diskfs/go-mbrtable/blockdev"
	"github.com/diskfs/go-mbrtable/partition/mbr"
)

// Disk is a reference to a single disk block device or image that has been Create() or Open()
type Disk struct {
	Backend           backend.Storage
	Device            blockdev.Device
	Type              DeviceType
	Size              int64
	LogicalBlocksize  int64
	PhysicalBlocksize int64

	mu sync.Mutex
}

// New creates a Disk over the given storage, addressing it in 512-byte sectors
func New(storage backend.Storage, deviceType DeviceType, size int64) *Disk {
	return &Disk{
		Backend:           storage,
		Device:            blockdev.New(storage),
		Type:              deviceType,
		Size:              size,
		LogicalBlocksize:  blockdev.SectorSize,
		PhysicalBlocksize: blockdev.SectorSize,
	}
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= mbr.EntryCount {
		return NewInvalidSlotError(slot)
	}
	return nil
}

// ReadSector returns the raw contents of sector lba
func (d *Disk) ReadSector(lba uint64) (blockdev.Sector, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var s blockdev.Sector
	if err := d.Device.ReadSector(lba, &s); err != nil {
		log.WithField("lba", lba).Debugf("read sector failed: %v", err)
		return s, err
	}
	log.WithField("lba", lba).Debug("read sector")
	return s, nil
}

// ReadTable reads the partition table stored in sector lba, normally 0
func (d *Disk) ReadTable(lba uint64) (mbr.Table, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	table, err := mbr.Read(d.Device, lba)
	if err != nil {
		return table, err
	}
	log.WithField("lba", lba).Debugf("read partition table: %v", table)
	return table, nil
}

// WriteTable replaces the partition table stored in sector lba, keeping the
// boot code and signature of that sector
func (d *Disk) WriteTable(lba uint64, table mbr.Table) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	log.WithField("lba", lba).Debugf("writing partition table: %v", table)
	return mbr.Write(d.Device, lba, table)
}

// UpdateEntry reads the table at lba, passes the entry at slot to fn and writes
// the table back if fn returns nil. The whole sequence holds the disk lock.
func (d *Disk) UpdateEntry(lba uint64, slot int, fn func(*mbr.Entry) error) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	table, err := mbr.Read(d.Device, lba)
	if err != nil {
		return err
	}
	if err := fn(&table[slot]); err != nil {
		return fmt.Errorf("not updating partition %d: %w", slot, err)
	}
	log.WithFields(log.Fields{"lba": lba, "slot": slot}).Debugf("updating entry: %v", table[slot])
	return mbr.Write(d.Device, lba, table)
}

// SetBootable marks the partition at slot as the only bootable one
func (d *Disk) SetBootable(lba uint64, slot int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	table, err := mbr.Read(d.Device, lba)
	if err != nil {
		return err
	}
	if table[slot].IsEmpty() {
		return fmt.Errorf("cannot make partition %d bootable: slot is empty", slot)
	}
	for i := range table {
		table[i].SetBootable(i == slot)
	}
	log.WithFields(log.Fields{"lba": lba, "slot": slot}).Debug("setting bootable partition")
	return mbr.Write(d.Device, lba, table)
}

// Close releases the underlying storage
func (d *Disk) Close() error {
	return d.Backend.Close()
}
