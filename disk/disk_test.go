package disk_test

/*
 These tests the exported functions
 We want to do full-in tests with files
*/

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/diskfs/go-mbrtable/backend/file"
	"github.com/diskfs/go-mbrtable/blockdev"
	"github.com/diskfs/go-mbrtable/disk"
	"github.com/diskfs/go-mbrtable/partition/mbr"
	"github.com/diskfs/go-mbrtable/testhelper"
)

var (
	keepTmpFiles = os.Getenv("KEEPTESTFILES") == ""
)

func tmpDisk(t *testing.T) *disk.Disk {
	t.Helper()
	filename := "disk_test"
	f, err := os.CreateTemp("", filename)
	if err != nil {
		t.Fatalf("Failed to create tempfile %s :%v", filename, err)
	}
	// make it a 10MB file
	size := int64(10 * 1024 * 1024)
	if err := f.Truncate(size); err != nil {
		t.Fatalf("Failed to truncate tempfile %s :%v", f.Name(), err)
	}
	if keepTmpFiles {
		t.Cleanup(func() { os.Remove(f.Name()) })
	} else {
		fmt.Println(f.Name())
	}
	d := disk.New(file.New(f, false), disk.DeviceTypeFile, size)
	t.Cleanup(func() { d.Close() })
	return d
}

func validTable() mbr.Table {
	return mbr.Table{
		{Type: mbr.Linux, StartLBA: 2048, Sectors: 10240},
		{Type: mbr.LinuxSwap, StartLBA: 12288, Sectors: 2048},
	}
}

func TestReadWriteTable(t *testing.T) {
	d := tmpDisk(t)
	table := validTable()
	if err := d.WriteTable(0, table); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	read, err := d.ReadTable(0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !read.Equal(&table) {
		t.Errorf("mismatched table, actual %v expected %v", read, table)
	}
	// image files need no kernel re-read
	if err := d.ReReadPartitionTable(); err != nil {
		t.Errorf("unexpected err: %v", err)
	}
}

func TestReadSector(t *testing.T) {
	d := tmpDisk(t)
	if err := d.WriteTable(0, validTable()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	s, err := d.ReadSector(0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s[mbr.TableOffset+4] != byte(mbr.Linux) {
		t.Errorf("type byte was %#x instead of %#x", s[mbr.TableOffset+4], byte(mbr.Linux))
	}
}

func TestReadSectorLogging(t *testing.T) {
	hook := logtest.NewGlobal()
	level := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	defer log.SetLevel(level)

	d := &disk.Disk{Device: testhelper.NewMemDevice()}
	if _, err := d.ReadSector(0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if entry := hook.LastEntry(); entry == nil || entry.Message != "read sector" {
		t.Errorf("logged %v instead of a plain read message", entry)
	}

	hook.Reset()
	d = &disk.Disk{Device: &testhelper.DeviceImpl{
		//nolint:revive // lba is unused, but we keep it for the consistent signature
		Reader: func(lba uint64, s *blockdev.Sector) error {
			return errors.New("medium error")
		},
	}}
	if _, err := d.ReadSector(0); err == nil {
		t.Fatal("returned nil error for a failed read")
	}
	if entry := hook.LastEntry(); entry == nil || entry.Message != "read sector failed: medium error" {
		t.Errorf("logged %v instead of the read failure", entry)
	}
}

func TestReadOnly(t *testing.T) {
	f, err := os.CreateTemp("", "disk_test")
	if err != nil {
		t.Fatalf("Failed to create tempfile: %v", err)
	}
	defer os.Remove(f.Name())
	_ = f.Truncate(1024 * 1024)

	d := disk.New(file.New(f, true), disk.DeviceTypeFile, 1024*1024)
	defer d.Close()
	err = d.WriteTable(0, validTable())
	var ioErr *blockdev.DeviceIOError
	if !errors.As(err, &ioErr) {
		t.Errorf("returned error %v instead of a DeviceIOError", err)
	}
}

func TestSetBootable(t *testing.T) {
	t.Run("invalid slot", func(t *testing.T) {
		d := &disk.Disk{Device: testhelper.NewMemDevice()}
		for _, slot := range []int{-1, 4} {
			err := d.SetBootable(0, slot)
			var slotErr *disk.InvalidSlotError
			if !errors.As(err, &slotErr) {
				t.Errorf("slot %d: returned error %v instead of InvalidSlotError", slot, err)
			}
		}
	})
	t.Run("empty slot", func(t *testing.T) {
		d := &disk.Disk{Device: testhelper.NewMemDevice()}
		if err := d.SetBootable(0, 2); err == nil {
			t.Error("returned nil error for an empty slot")
		}
	})
	t.Run("single bootable", func(t *testing.T) {
		d := &disk.Disk{Device: testhelper.NewMemDevice()}
		table := validTable()
		table[0].Attributes = mbr.AttrBootable | 0x01
		if err := d.WriteTable(0, table); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if err := d.SetBootable(0, 1); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		read, err := d.ReadTable(0)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if read[0].Attributes != 0x01 {
			t.Errorf("slot 0 attributes %#x instead of 0x01", read[0].Attributes)
		}
		if !read[1].Bootable() {
			t.Error("slot 1 is not bootable")
		}
	})
}

func TestUpdateEntry(t *testing.T) {
	t.Run("rejected update writes nothing", func(t *testing.T) {
		dev := &testhelper.DeviceImpl{
			//nolint:revive // lba is unused, but we keep it for the consistent signature
			Reader: func(lba uint64, s *blockdev.Sector) error {
				return nil
			},
			//nolint:revive // lba is unused, but we keep it for the consistent signature
			Writer: func(lba uint64, s *blockdev.Sector) error {
				t.Fatal("attempted to write a rejected update")
				return nil
			},
		}
		d := &disk.Disk{Device: dev}
		err := d.UpdateEntry(0, 0, func(e *mbr.Entry) error {
			return errors.New("no")
		})
		if err == nil {
			t.Error("returned nil error")
		}
		if dev.Writes != 0 {
			t.Errorf("made %d writes instead of 0", dev.Writes)
		}
	})
	t.Run("concurrent updates are serialized", func(t *testing.T) {
		d := &disk.Disk{Device: testhelper.NewMemDevice()}
		count := 50
		var wg sync.WaitGroup
		for i := 0; i < count; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := d.UpdateEntry(0, 3, func(e *mbr.Entry) error {
					e.Sectors++
					return nil
				})
				if err != nil {
					t.Errorf("unexpected err: %v", err)
				}
			}()
		}
		wg.Wait()
		table, err := d.ReadTable(0)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if table[3].Sectors != uint32(count) {
			t.Errorf("sectors %d instead of %d, updates were lost", table[3].Sectors, count)
		}
	})
}

func TestDetermineDeviceType(t *testing.T) {
	f, err := os.CreateTemp("", "disk_test")
	if err != nil {
		t.Fatalf("Failed to create tempfile: %v", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()
	dt, err := disk.DetermineDeviceType(f)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if dt != disk.DeviceTypeFile {
		t.Errorf("device type %v instead of %v", dt, disk.DeviceTypeFile)
	}
}
