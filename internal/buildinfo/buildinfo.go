// Package buildinfo resolves the name, version and author reported by
// /version and attached to telemetry.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

const (
	DefaultName    = "compute-api"
	DefaultVersion = "0.1.0"
	DefaultAuthor  = "Unknown"
)

// Set at link time:
//
//	go build -ldflags "-X go-chi-compute/internal/buildinfo.version=1.2.3"
var (
	version string
	author  string
)

// Info describes the running build.
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Author    string `json:"author"`
	GoVersion string `json:"go_version,omitempty"`
	Revision  string `json:"revision,omitempty"`
}

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Resolve fills every empty argument from the linker variables, then the
// embedded module information, then the package defaults. It never fails.
func Resolve(name, ver, auth string) Info {
	bi, ok := readBuildInfo()

	info := Info{
		Name:    first(name, modulePath(bi, ok), DefaultName),
		Version: first(ver, version, moduleVersion(bi, ok), DefaultVersion),
		Author:  first(auth, author, DefaultAuthor),
	}
	if ok {
		info.GoVersion = bi.GoVersion
		info.Revision = setting(bi, "vcs.revision")
	}
	return info
}

func modulePath(bi *debug.BuildInfo, ok bool) string {
	if !ok {
		return ""
	}
	return bi.Main.Path
}

func moduleVersion(bi *debug.BuildInfo, ok bool) string {
	if !ok || bi.Main.Version == "(devel)" {
		return ""
	}
	return strings.TrimPrefix(bi.Main.Version, "v")
}

func setting(bi *debug.BuildInfo, key string) string {
	for _, s := range bi.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

func first(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
