package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/taskr/internal/utils"
)

const (
	testEnvironmentPrefixConstant         = "TESTTASKR"
	testConfigurationNameConstant         = "config"
	testConfigurationTypeConstant         = "yaml"
	testConfigurationFileNameConstant     = "config.yaml"
	testLogLevelKeyConstant               = "common.log_level"
	testLogLevelEnvironmentNameConstant   = "TESTTASKR_COMMON_LOG_LEVEL"
	testUsersEnvironmentNameConstant      = "TESTTASKR_ENVIRONMENT_USERS"
	testConfigurationTemplateConstant     = "common:\n  log_level: %s\nenvironment:\n  users:\n    - %s\n"
	testLoaderSubtestNameTemplateConstant = "%d_%s"
)

type loaderFixture struct {
	Common      loaderCommonFixture      `mapstructure:"common"`
	Environment loaderEnvironmentFixture `mapstructure:"environment"`
}

type loaderCommonFixture struct {
	LogLevel string `mapstructure:"log_level"`
}

type loaderEnvironmentFixture struct {
	Users []string `mapstructure:"users"`
}

func writeLoaderConfiguration(testInstance *testing.T, directoryPath string, logLevel string, userName string) string {
	testInstance.Helper()
	require.NoError(testInstance, os.MkdirAll(directoryPath, 0o755))
	configurationFilePath := filepath.Join(directoryPath, testConfigurationFileNameConstant)
	configurationContent := fmt.Sprintf(testConfigurationTemplateConstant, logLevel, userName)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
	return configurationFilePath
}

func TestConfigurationLoaderPrecedence(testInstance *testing.T) {
	testCases := []struct {
		name                string
		fileLogLevel        string
		environmentLogLevel string
		expectedLogLevel    string
		expectedUsers       []string
	}{
		{name: "embedded_only", expectedLogLevel: "debug", expectedUsers: []string{"Embedded User"}},
		{name: "file_overrides_embedded", fileLogLevel: "warn", expectedLogLevel: "warn", expectedUsers: []string{"File User"}},
		{name: "environment_overrides_file", fileLogLevel: "warn", environmentLogLevel: "error", expectedLogLevel: "error", expectedUsers: []string{"File User"}},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			configurationFilePath := ""
			if len(testCase.fileLogLevel) > 0 {
				configurationFilePath = writeLoaderConfiguration(testInstance, testInstance.TempDir(), testCase.fileLogLevel, "File User")
			}
			if len(testCase.environmentLogLevel) > 0 {
				testInstance.Setenv(testLogLevelEnvironmentNameConstant, testCase.environmentLogLevel)
			}

			loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{testInstance.TempDir()})
			loader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigurationTemplateConstant, "debug", "Embedded User")), testConfigurationTypeConstant)

			loaded := loaderFixture{}
			metadata, loadError := loader.LoadConfiguration(configurationFilePath, map[string]any{testLogLevelKeyConstant: "info"}, &loaded)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedLogLevel, loaded.Common.LogLevel)
			require.Equal(testInstance, testCase.expectedUsers, loaded.Environment.Users)
			require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
		})
	}
}

func TestConfigurationLoaderAppliesDefaultsWithoutSources(t *testing.T) {
	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	loaded := loaderFixture{}
	metadata, loadError := loader.LoadConfiguration("", map[string]any{testLogLevelKeyConstant: "info"}, &loaded)
	require.NoError(t, loadError)
	require.Equal(t, "info", loaded.Common.LogLevel)
	require.Empty(t, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderSplitsEnvironmentLists(t *testing.T) {
	t.Setenv(testUsersEnvironmentNameConstant, "A User,B User")
	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)
	loader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigurationTemplateConstant, "error", "Embedded User")), testConfigurationTypeConstant)

	loaded := loaderFixture{}
	_, loadError := loader.LoadConfiguration("", nil, &loaded)
	require.NoError(t, loadError)
	require.Equal(t, []string{"A User", "B User"}, loaded.Environment.Users)
}

func TestConfigurationLoaderSearchPathOrder(testInstance *testing.T) {
	testCases := []struct {
		name                   string
		populatedDirectories   []int
		expectedDirectoryIndex int
	}{
		{name: "first_directory", populatedDirectories: []int{0}, expectedDirectoryIndex: 0},
		{name: "second_directory", populatedDirectories: []int{1}, expectedDirectoryIndex: 1},
		{name: "first_wins", populatedDirectories: []int{0, 1}, expectedDirectoryIndex: 0},
	}
	logLevels := []string{"debug", "warn"}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			directories := []string{testInstance.TempDir(), filepath.Join(testInstance.TempDir(), ".taskr")}
			require.NoError(testInstance, os.MkdirAll(directories[1], 0o755))

			for _, directoryIndex := range testCase.populatedDirectories {
				writeLoaderConfiguration(testInstance, directories[directoryIndex], logLevels[directoryIndex], "Search User")
			}

			loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, directories)
			loaded := loaderFixture{}
			metadata, loadError := loader.LoadConfiguration("", nil, &loaded)
			require.NoError(testInstance, loadError)

			require.Equal(testInstance, logLevels[testCase.expectedDirectoryIndex], loaded.Common.LogLevel)
			require.Equal(testInstance, filepath.Join(directories[testCase.expectedDirectoryIndex], testConfigurationFileNameConstant), metadata.ConfigFileUsed)
		})
	}
}

func TestConfigurationLoaderExplicitFileOverridesSearchPaths(t *testing.T) {
	searchDirectory := filepath.Join(t.TempDir(), "search")
	explicitDirectory := filepath.Join(t.TempDir(), "explicit")
	writeLoaderConfiguration(t, searchDirectory, "debug", "Search User")
	explicitPath := writeLoaderConfiguration(t, explicitDirectory, "error", "Explicit User")

	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{searchDirectory})

	loaded := loaderFixture{}
	metadata, loadError := loader.LoadConfiguration(explicitPath, nil, &loaded)
	require.NoError(t, loadError)
	require.Equal(t, "error", loaded.Common.LogLevel)
	require.Equal(t, explicitPath, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderFailsForMissingExplicitFile(t *testing.T) {
	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	_, loadError := loader.LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml"), nil, &loaderFixture{})
	require.Error(t, loadError)
}
