package util

import (
	"os"
	"os/exec"
	"runtime"
)

// SystemInfo contains information about the host system.
type SystemInfo struct {
	Hostname string
	OS       string
	Arch     string
}

// GetSystemInfo collects system information.
func GetSystemInfo() SystemInfo {
	hostname, _ := os.Hostname()
	return SystemInfo{
		Hostname: hostname,
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
	}
}

// CommandAvailable reports whether name resolves to an executable on PATH
// (or is an existing executable path).
func CommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
