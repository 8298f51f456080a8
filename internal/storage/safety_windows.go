//go:build windows

package storage

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// GetDiskSpace reports the space of the volume holding path, or of its
// nearest existing parent when path does not exist yet.
func GetDiskSpace(path string) (*DiskSpaceInfo, error) {
	path = nearestExisting(path)

	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, fmt.Errorf("disk space %s: %w", path, err)
	}

	var avail, total, free uint64
	if err := windows.GetDiskFreeSpaceEx(p, &avail, &total, &free); err != nil {
		return nil, fmt.Errorf("disk space %s: %w", path, err)
	}
	return newDiskSpaceInfo(path, total, avail), nil
}

func isDiskFullError(err error) bool {
	return err != nil && (errors.Is(err, windows.ERROR_DISK_FULL) || errors.Is(err, windows.ERROR_HANDLE_DISK_FULL))
}
