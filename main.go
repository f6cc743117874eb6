package main

import (
	"runtime/debug"
	"strings"

	"github.com/marcus/nsisync/cmd"
)

// Version is overridable at build time via -ldflags "-X main.Version=...".
var Version = "dev"

// effectiveVersion falls back to Go build info when no version was injected:
// the module version for `go install module@vX.Y.Z` builds, otherwise a
// devel+revision string from vcs stamps.
func effectiveVersion(v string) string {
	if v != "" && v != "dev" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var rev, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}
	if rev == "" {
		return v
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	parts := []string{"devel", rev}
	if modified == "true" {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "+")
}

func main() {
	cmd.SetVersion(effectiveVersion(Version))
	cmd.Execute()
}
