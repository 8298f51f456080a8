//go:build linux || darwin

package storage

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// GetDiskSpace reports the space of the filesystem holding path, or of its
// nearest existing parent when path does not exist yet.
func GetDiskSpace(path string) (*DiskSpaceInfo, error) {
	path = nearestExisting(path)

	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return nil, fmt.Errorf("statfs %s: %w", path, err)
	}

	bsize := uint64(st.Bsize)
	return newDiskSpaceInfo(path, st.Blocks*bsize, st.Bavail*bsize), nil
}

func isDiskFullError(err error) bool {
	return err != nil && (errors.Is(err, unix.ENOSPC) || errors.Is(err, unix.EDQUOT))
}
