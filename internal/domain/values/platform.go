package values

import (
	"errors"
	"fmt"
	"strings"
)

// PlatformID is the coarse OS family used to select both the shader profile
// and the location of the compiler executable.
type PlatformID string

const (
	// PlatformLinux covers every POSIX host that is not macOS.
	PlatformLinux PlatformID = "linux"
	// PlatformOSX is macOS.
	PlatformOSX PlatformID = "osx"
	// PlatformWindows covers everything that is not POSIX.
	PlatformWindows PlatformID = "windows"
)

// posixGOOS lists the GOOS values that behave as POSIX systems.
var posixGOOS = map[string]bool{
	"aix":       true,
	"android":   true,
	"darwin":    true,
	"dragonfly": true,
	"freebsd":   true,
	"hurd":      true,
	"illumos":   true,
	"ios":       true,
	"linux":     true,
	"netbsd":    true,
	"openbsd":   true,
	"solaris":   true,
}

// ErrPlatformUndeducible is returned when the host OS cannot be classified.
var ErrPlatformUndeducible = errors.New("platform cannot be deduced")

// DetectPlatform classifies a GOOS value (usually runtime.GOOS).
//
// darwin maps to osx, any other POSIX system maps to linux, and everything
// else maps to windows.
func DetectPlatform(goos string) (PlatformID, error) {
	goos = strings.ToLower(strings.TrimSpace(goos))
	if goos == "" {
		return "", ErrPlatformUndeducible
	}

	isPosix := posixGOOS[goos]
	switch {
	case isPosix && goos == "darwin":
		return PlatformOSX, nil
	case isPosix:
		return PlatformLinux, nil
	default:
		return PlatformWindows, nil
	}
}

// ParsePlatformID parses an explicit platform override such as "osx".
// "macos" and "darwin" are accepted as aliases for osx.
func ParsePlatformID(s string) (PlatformID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linux":
		return PlatformLinux, nil
	case "osx", "macos", "darwin":
		return PlatformOSX, nil
	case "windows":
		return PlatformWindows, nil
	default:
		return "", fmt.Errorf("invalid platform: %q (valid: linux, osx, windows)", s)
	}
}

// String returns the platform name passed to the compiler's --platform flag.
func (p PlatformID) String() string {
	return string(p)
}

// IsZero returns true if no platform has been set
func (p PlatformID) IsZero() bool {
	return p == ""
}
