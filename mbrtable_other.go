//go:build !linux && !darwin

package mbrtable

import (
	"errors"
	"os"
)

// getSectorSizes get the logical and physical sector sizes for a block device
//
//nolint:revive // f is unused on this platform, but we keep the signature
func getSectorSizes(f *os.File) (logicalSectorSize, physicalSectorSize int64, err error) {
	return 0, 0, errors.New("block devices not supported on this platform")
}
