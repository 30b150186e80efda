//go:build !aix && !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !solaris
// +build !aix,!darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd,!solaris

package disk

import "errors"

// ReReadPartitionTable is only supported for disk images on this platform
func (d *Disk) ReReadPartitionTable() error {
	if d.Type != DeviceTypeBlockDevice {
		return nil
	}
	return errors.New("re-reading the partition table is not supported on this platform")
}
