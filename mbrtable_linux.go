package mbrtable

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const (
	blksszGet  = 0x1268 // BLKSSZGET, logical sector size
	blkpbszGet = 0x127b // BLKPBSZGET, physical sector size
)

// getSectorSizes get the logical and physical sector sizes for a block device
func getSectorSizes(f *os.File) (logicalSectorSize, physicalSectorSize int64, err error) {
	fd := int(f.Fd())
	lss, err := unix.IoctlGetInt(fd, blksszGet)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to get device logical sector size: %w", err)
	}
	pss, err := unix.IoctlGetInt(fd, blkpbszGet)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to get device physical sector size: %w", err)
	}
	return int64(lss), int64(pss), nil
}
