package buildinfo

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	prev := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = prev })
}

func TestResolveExplicitValuesWin(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Path: "example.com/mod", Version: "v9.9.9"}})

	info := Resolve("demo", "2.0.0", "Ada")
	assert.Equal(t, "demo", info.Name)
	assert.Equal(t, "2.0.0", info.Version)
	assert.Equal(t, "Ada", info.Author)
}

func TestResolveFallsBackToModuleInfo(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.25.5",
		Main:      debug.Module{Path: "example.com/mod", Version: "v1.4.0"},
		Settings:  []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	})

	info := Resolve("", "", "")
	assert.Equal(t, Info{
		Name:      "example.com/mod",
		Version:   "1.4.0",
		Author:    DefaultAuthor,
		GoVersion: "go1.25.5",
		Revision:  "abc123",
	}, info)
}

func TestResolveIgnoresDevelVersion(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Path: "example.com/mod", Version: "(devel)"}})

	assert.Equal(t, DefaultVersion, Resolve("", "", "").Version)
}

func TestResolveLinkerVersion(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "v1.0.0"}})

	prev := version
	version = "3.1.4"
	t.Cleanup(func() { version = prev })

	assert.Equal(t, "3.1.4", Resolve("", "", "").Version)
}

func TestResolveWithoutBuildInfo(t *testing.T) {
	stubBuildInfo(t, nil)

	info := Resolve("", " ", "")
	assert.Equal(t, Info{Name: DefaultName, Version: DefaultVersion, Author: DefaultAuthor}, info)
}
