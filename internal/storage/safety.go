package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/manav03panchal/workreport/internal/errors"
)

const (
	// MinFreeSpace is the free space a write needs when the caller sets no
	// threshold.
	MinFreeSpace = 10 << 20
	// MinFreeSpaceWarning is the free space below which startup warns.
	MinFreeSpaceWarning = 50 << 20
)

// DiskSpaceInfo describes the filesystem holding the database.
type DiskSpaceInfo struct {
	Path       string `json:"path"`
	TotalBytes uint64 `json:"total_bytes"`
	FreeBytes  uint64 `json:"free_bytes"`
	UsedBytes  uint64 `json:"used_bytes"`
}

func newDiskSpaceInfo(path string, total, free uint64) *DiskSpaceInfo {
	info := &DiskSpaceInfo{Path: path, TotalBytes: total, FreeBytes: free}
	if free < total {
		info.UsedBytes = total - free
	}
	return info
}

// FreePercent returns the free share of the filesystem, 0 to 100.
func (d *DiskSpaceInfo) FreePercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.FreeBytes) / float64(d.TotalBytes) * 100
}

// nearestExisting walks up from path until it finds something that exists.
func nearestExisting(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

// CheckDiskSpace fails with ErrDiskFull when path has less than minFree bytes
// available. Unknown free space passes.
func CheckDiskSpace(path string, minFree uint64) error {
	info, err := GetDiskSpace(path)
	if err != nil || info.FreeBytes >= minFree {
		return nil
	}
	return errors.NewSystemError(
		fmt.Sprintf("not enough disk space to save work reports: %s free, %s needed",
			humanize.IBytes(info.FreeBytes), humanize.IBytes(minFree)),
		errors.ErrDiskFull,
	)
}

// CheckDiskSpaceWarning returns a warning when path has less than threshold
// bytes available, and "" otherwise.
func CheckDiskSpaceWarning(path string, threshold uint64) string {
	info, err := GetDiskSpace(path)
	if err != nil || info.FreeBytes >= threshold {
		return ""
	}
	return fmt.Sprintf("Low disk space for the report database (%s free)", humanize.IBytes(info.FreeBytes))
}

// fsError turns a filesystem failure into a SystemError for op, mapping full
// disks and permission problems onto their sentinels.
func fsError(op, path string, err error) error {
	switch {
	case isDiskFullError(err):
		return errors.NewSystemErrorWithOp(op, "disk full while writing "+path, errors.ErrDiskFull)
	case os.IsPermission(err):
		return errors.NewSystemErrorWithOp(op, "permission denied for "+path, errors.ErrPermissionDenied)
	default:
		return errors.NewSystemErrorWithOp(op, "cannot write "+path, err)
	}
}

// SafeWrite replaces path with data atomically. The data is written to a
// synced temp file next to path which is then renamed over it.
func SafeWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := CheckDiskSpace(dir, MinFreeSpace); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".workreport-*.tmp")
	if err != nil {
		return fsError("create temp file", path, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fsError("write", path, err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fsError("chmod", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fsError("rename", path, err)
	}
	committed = true
	return nil
}

// EnsureDirectory creates path and its parents with owner-only permissions.
func EnsureDirectory(path string) error {
	if err := CheckDiskSpace(filepath.Dir(path), MinFreeSpace); err != nil {
		return err
	}
	if err := os.MkdirAll(path, 0o700); err != nil {
		return fsError("mkdir", path, err)
	}
	return nil
}
