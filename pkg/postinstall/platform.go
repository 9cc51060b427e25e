package postinstall

import "runtime"

// Platform is the normalized OS/architecture pair used to pick release
// artifacts.
type Platform struct {
	OS   string
	Arch string
}

// DetectPlatform returns the current platform. The Go runtime already uses
// the normalized names (darwin/linux/windows, amd64/arm64).
func DetectPlatform() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}
