// Package misc keeps small helpers needed across the program which do not
// deserve a package of their own.
package misc

import (
	"path/filepath"
	"runtime/debug"
	"strings"
)

// set by the linker during official builds
var (
	appName = ""
	version = ""
)

// GetAppName returns short program name to be used in logs, temporary file
// names and reports.
func GetAppName() string {
	if len(appName) != 0 {
		return appName
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Path != "" {
		return filepath.Base(bi.Path)
	}
	return "rfq"
}

// GetVersion returns program version as stamped by the build or module system.
func GetVersion() string {
	if len(version) != 0 {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns vcs revision recorded in the binary, if any.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return strings.TrimSpace(s.Value)
		}
	}
	return ""
}
