package buildinfo

import (
	"runtime/debug"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func withCommit(t *testing.T, commit string) {
	t.Helper()
	orig := Commit
	Commit = commit
	t.Cleanup(func() { Commit = orig })
}

func TestResolveRevision(t *testing.T) {
	tests := []struct {
		name     string
		commit   string
		info     *debug.BuildInfo
		ok       bool
		expected string
	}{
		{
			name:     "injected commit wins",
			commit:   "v0.1.0-3-g1a2b3c4",
			info:     &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "deadbeef"}}},
			ok:       true,
			expected: "v0.1.0-3-g1a2b3c4",
		},
		{
			name:     "toolchain revision",
			info:     &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "deadbeef"}}},
			ok:       true,
			expected: "deadbeef",
		},
		{
			name: "dirty toolchain revision",
			info: &debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "deadbeef"},
				{Key: "vcs.modified", Value: "true"},
			}},
			ok:       true,
			expected: "deadbeef-dirty",
		},
		{
			name:     "no vcs settings",
			info:     &debug.BuildInfo{},
			ok:       true,
			expected: "unknown",
		},
		{
			name:     "no build info",
			ok:       false,
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withCommit(t, tt.commit)
			withBuildInfo(t, tt.info, tt.ok)
			assert.Equal(t, tt.expected, resolveRevision())
		})
	}
}

func TestGet_ComputedOnce(t *testing.T) {
	withCommit(t, "v9.9.9")
	once = sync.Once{}
	t.Cleanup(func() { once = sync.Once{} })

	var wg sync.WaitGroup
	results := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- Get().LastCommitSHA
		}()
	}
	wg.Wait()
	close(results)
	for sha := range results {
		assert.Equal(t, "v9.9.9", sha)
	}

	Commit = "changed"
	md := Get()
	assert.Equal(t, "v9.9.9", md.LastCommitSHA)
	assert.Equal(t, Version, md.Version)
	assert.Equal(t, Description, md.Description)
}
