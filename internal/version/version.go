// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Provide build-time version information to the CLI.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set via -ldflags at release build time. When empty, the VCS
// revision from build info is used instead.
var Version = ""

// GetVersion returns the release version, the short VCS revision, or "dev".
func GetVersion() string {
	if Version != "" {
		return Version
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			if setting.Value == "true" {
				modified = true
			}
		}
	}

	if revision == "" {
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
