// Package compileinfo reports the version control state the running binary
// was built from. Reports carry it in their footer.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

const shortCommitLength = 7

type CompileInfo struct {
	Package    string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("This %s binary (%s) was built with %s at commit %v at time %v.%s", c.Package, c.versionOrDevel(), c.GoVersion, c.Commit, c.CommitTime, mod)
}

func (c CompileInfo) versionOrDevel() string {
	if c.Version == "" {
		return "(devel)"
	}
	return c.Version
}

// Short is a one-line build identifier such as "(devel) 1a2b3c4+".
func (c CompileInfo) Short() string {
	commit := c.Commit
	if len(commit) > shortCommitLength {
		commit = commit[:shortCommitLength]
	}
	if commit == "" {
		return c.versionOrDevel()
	}
	if c.Modified {
		commit += "+"
	}
	return c.versionOrDevel() + " " + commit
}

func Get() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	return fromBuildInfo(z)
}

func fromBuildInfo(z *debug.BuildInfo) CompileInfo {
	out := CompileInfo{
		GoVersion: z.GoVersion,
		Package:   z.Path,
		Version:   z.Main.Version,
	}
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	fmt.Fprintf(os.Stderr, "%s\n", Get())
}
