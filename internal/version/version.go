// Package version exposes build information for the /version endpoint.
package version

import "runtime"

// Set at build time via -ldflags "-X .../internal/version.Version=... -X .../internal/version.Commit=..."
var (
	Version = "dev"
	Commit  = "unknown"
)

// Info is the /version response payload.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		GoVersion: runtime.Version(),
	}
}
