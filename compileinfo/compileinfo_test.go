package compileinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	info := fromBuildInfo(&debug.BuildInfo{
		GoVersion: "go1.18",
		Path:      "github.com/carbocation/mirreport/cmd/mirreport",
		Main:      debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "1a2b3c4d5e6f"},
			{Key: "vcs.time", Value: "2022-04-01T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	if got := info.Short(); got != "v0.3.1 1a2b3c4+" {
		t.Errorf("Short() = %q", got)
	}
	if s := info.String(); !strings.Contains(s, "at commit 1a2b3c4d5e6f") || !strings.Contains(s, "modified") {
		t.Errorf("String() = %q", s)
	}
}

func TestShortWithoutVCS(t *testing.T) {
	if got := (CompileInfo{}).Short(); got != "(devel)" {
		t.Errorf("Short() = %q", got)
	}
}
