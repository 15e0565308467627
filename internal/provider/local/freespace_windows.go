//go:build windows

package local

import "golang.org/x/sys/windows"

func freeSpace(path string) (uint64, bool) {
	var freeBytes uint64
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, false
	}
	if err := windows.GetDiskFreeSpaceEx(ptr, &freeBytes, nil, nil); err != nil {
		return 0, false
	}
	return freeBytes, true
}
