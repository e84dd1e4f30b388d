package version

import (
	"runtime/debug"
	"strings"
)

const (
	unknownVersionFallbackConstant = "unknown"
	buildInfoDevelVersionValue     = "(devel)"
	vcsRevisionSettingKeyConstant  = "vcs.revision"
	vcsModifiedSettingKeyConstant  = "vcs.modified"
	vcsModifiedTrueValueConstant   = "true"
	vcsRevisionPrefixConstant      = "devel-"
	vcsDirtySuffixConstant         = "-dirty"
	vcsShortRevisionLengthConstant = 12
)

// LinkedVersion is populated through -ldflags "-X" for release builds.
var LinkedVersion string

// BuildInfoProvider exposes runtime build metadata.
type BuildInfoProvider interface {
	Read() (*debug.BuildInfo, bool)
}

// Detector resolves application version strings.
type Detector struct {
	buildInfoProvider BuildInfoProvider
	linkedVersion     string
}

// Dependencies describes the collaborators required for version detection.
type Dependencies struct {
	BuildInfoProvider BuildInfoProvider
	LinkedVersion     string
}

// NewDetector constructs a Detector with the supplied dependencies or runtime defaults.
func NewDetector(dependencies Dependencies) *Detector {
	provider := dependencies.BuildInfoProvider
	if provider == nil {
		provider = runtimeBuildInfoProvider{}
	}

	linkedVersion := strings.TrimSpace(dependencies.LinkedVersion)
	if len(linkedVersion) == 0 {
		linkedVersion = strings.TrimSpace(LinkedVersion)
	}

	return &Detector{
		buildInfoProvider: provider,
		linkedVersion:     linkedVersion,
	}
}

// Detect resolves the application version using the supplied dependencies.
func Detect(dependencies Dependencies) string {
	return NewDetector(dependencies).Version()
}

// Version returns the detected application version string.
func (detector *Detector) Version() string {
	if detector == nil {
		return unknownVersionFallbackConstant
	}

	if len(detector.linkedVersion) > 0 {
		return detector.linkedVersion
	}

	buildInfo := detector.readBuildInfo()
	if buildInfo == nil {
		return unknownVersionFallbackConstant
	}

	if moduleVersion := moduleVersionFromBuildInfo(buildInfo); len(moduleVersion) > 0 {
		return moduleVersion
	}

	if revisionVersion := revisionVersionFromBuildInfo(buildInfo); len(revisionVersion) > 0 {
		return revisionVersion
	}

	return unknownVersionFallbackConstant
}

func (detector *Detector) readBuildInfo() *debug.BuildInfo {
	if detector.buildInfoProvider == nil {
		return nil
	}

	buildInfo, available := detector.buildInfoProvider.Read()
	if !available {
		return nil
	}
	return buildInfo
}

func moduleVersionFromBuildInfo(buildInfo *debug.BuildInfo) string {
	trimmedVersion := strings.TrimSpace(buildInfo.Main.Version)
	if len(trimmedVersion) == 0 || trimmedVersion == buildInfoDevelVersionValue {
		return ""
	}
	return trimmedVersion
}

func revisionVersionFromBuildInfo(buildInfo *debug.BuildInfo) string {
	var revision string
	var modified bool
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case vcsRevisionSettingKeyConstant:
			revision = strings.TrimSpace(setting.Value)
		case vcsModifiedSettingKeyConstant:
			modified = strings.EqualFold(strings.TrimSpace(setting.Value), vcsModifiedTrueValueConstant)
		}
	}

	if len(revision) == 0 {
		return ""
	}
	if len(revision) > vcsShortRevisionLengthConstant {
		revision = revision[:vcsShortRevisionLengthConstant]
	}

	resolved := vcsRevisionPrefixConstant + revision
	if modified {
		resolved += vcsDirtySuffixConstant
	}
	return resolved
}

type runtimeBuildInfoProvider struct{}

func (runtimeBuildInfoProvider) Read() (*debug.BuildInfo, bool) {
	return debug.ReadBuildInfo()
}
