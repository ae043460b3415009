// Package buildinfo exposes the build provenance of the running binary.
package buildinfo

import (
	"runtime/debug"
	"sync"

	"github.com/NomadCrew/pett-server/types"
)

// These variables are overridden at build time using -ldflags, e.g.
//
//	-X github.com/NomadCrew/pett-server/internal/buildinfo.Commit=$(go run ./cmd/describe)
var (
	Version     = "0.1.0"
	Description = "Pett server exposing a greeting, a health probe and build metadata"
	Commit      = ""
)

// unknownRevision is reported when no revision was injected or embedded.
const unknownRevision = "unknown"

var (
	metadata types.Metadata
	once     sync.Once

	// readBuildInfo is swapped in tests.
	readBuildInfo = debug.ReadBuildInfo
)

// Get returns the build metadata. It is computed on first use and never
// changes afterwards.
func Get() types.Metadata {
	once.Do(func() {
		metadata = types.Metadata{
			Version:       Version,
			Description:   Description,
			LastCommitSHA: resolveRevision(),
		}
	})
	return metadata
}

// resolveRevision prefers the injected Commit, then the revision stamped by
// the Go toolchain when building from a checkout.
func resolveRevision() string {
	if Commit != "" {
		return Commit
	}

	info, ok := readBuildInfo()
	if !ok {
		return unknownRevision
	}

	var revision string
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return unknownRevision
	}
	if dirty {
		return revision + "-dirty"
	}
	return revision
}
