//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package disk

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const (
	blkrrpart = 0x125f
)

// ReReadPartitionTable forces the kernel to re-read the partition table
// on the disk.
//
// It is done via an ioctl call with request as BLKRRPART. Disk image files
// need no re-read, so this is a no-op for them.
func (d *Disk) ReReadPartitionTable() error {
	if d.Type != DeviceTypeBlockDevice {
		return nil
	}
	osFile, err := d.Backend.Sys()
	if err != nil {
		return err
	}
	fd := osFile.Fd()
	log.WithField("device", osFile.Name()).Debug("asking kernel to re-read partition table")
	_, err = unix.IoctlGetInt(int(fd), blkrrpart)
	if err != nil {
		return fmt.Errorf("unable to re-read the partition table. Kernel still uses old partition table: %w", err)
	}
	return nil
}
