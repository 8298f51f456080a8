//go:build !linux && !darwin && !windows

package storage

import "fmt"

// GetDiskSpace is unsupported here; callers treat the error as "unknown" and
// skip the free space check.
func GetDiskSpace(path string) (*DiskSpaceInfo, error) {
	return nil, fmt.Errorf("disk space %s: unsupported platform", nearestExisting(path))
}

func isDiskFullError(error) bool { return false }
