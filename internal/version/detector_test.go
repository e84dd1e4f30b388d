package version_test

import (
	"fmt"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/taskr/internal/version"
)

type stubBuildInfoProvider struct {
	info      *debug.BuildInfo
	available bool
}

func (provider stubBuildInfoProvider) Read() (*debug.BuildInfo, bool) {
	if !provider.available {
		return nil, false
	}
	return provider.info, true
}

func TestDetectResolvesVersionSources(t *testing.T) {
	testCases := []struct {
		name         string
		dependencies version.Dependencies
		expected     string
	}{
		{
			name:         "LinkedVersionWins",
			dependencies: version.Dependencies{LinkedVersion: " v9.9.9 ", BuildInfoProvider: stubBuildInfoProvider{info: &debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}}, available: true}},
			expected:     "v9.9.9",
		},
		{
			name:         "ModuleVersion",
			dependencies: version.Dependencies{BuildInfoProvider: stubBuildInfoProvider{info: &debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}}, available: true}},
			expected:     "v1.2.3",
		},
		{
			name: "RevisionForDevelBuild",
			dependencies: version.Dependencies{BuildInfoProvider: stubBuildInfoProvider{info: &debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef0123"},
					{Key: "vcs.modified", Value: "false"},
				},
			}, available: true}},
			expected: "devel-0123456789ab",
		},
		{
			name: "DirtyRevision",
			dependencies: version.Dependencies{BuildInfoProvider: stubBuildInfoProvider{info: &debug.BuildInfo{
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.modified", Value: "true"},
				},
			}, available: true}},
			expected: "devel-abc123-dirty",
		},
		{
			name:         "DevelWithoutRevision",
			dependencies: version.Dependencies{BuildInfoProvider: stubBuildInfoProvider{info: &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, available: true}},
			expected:     "unknown",
		},
		{
			name:         "BuildInfoUnavailable",
			dependencies: version.Dependencies{BuildInfoProvider: stubBuildInfoProvider{}},
			expected:     "unknown",
		},
	}

	for testCaseIndex, testCase := range testCases {
		t.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			require.Equal(subtest, testCase.expected, version.Detect(testCase.dependencies))
		})
	}
}

func TestNilDetectorReportsUnknown(t *testing.T) {
	var detector *version.Detector
	require.Equal(t, "unknown", detector.Version())
}
