package flags

import (
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestBindListingFlagsParsesArguments(testInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
		expected  ListingFlagValues
		requested bool
	}{
		{
			name:      "NoFlags",
			arguments: []string{"default"},
			expected:  ListingFlagValues{},
		},
		{
			name:      "TasksShorthand",
			arguments: []string{"-T"},
			expected:  ListingFlagValues{Tasks: true},
			requested: true,
		},
		{
			name:      "PrerequisitesLongForm",
			arguments: []string{"--prereqs"},
			expected:  ListingFlagValues{Prerequisites: true},
			requested: true,
		},
		{
			name:      "ManifestWithTasks",
			arguments: []string{"--manifest", "-T"},
			expected:  ListingFlagValues{Tasks: true, Manifest: true},
			requested: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestTemplateConstant, testCaseIndex, testCase.name), func(subtest *testing.T) {
			command := &cobra.Command{Use: testRootCommandNameConstant}
			values := BindListingFlags(command, DefaultListingFlagDefinitions())

			require.NoError(subtest, command.ParseFlags(testCase.arguments))
			require.Equal(subtest, testCase.expected, *values)
			require.Equal(subtest, testCase.requested, values.Requested())
		})
	}
}

func TestBindListingFlagsHonorsDefinitions(testInstance *testing.T) {
	command := &cobra.Command{Use: testRootCommandNameConstant}
	definitions := DefaultListingFlagDefinitions()
	definitions.Manifest.Enabled = false

	values := BindListingFlags(command, definitions)

	require.NotNil(testInstance, values)
	require.NotNil(testInstance, command.Flags().Lookup(TasksFlagName))
	require.NotNil(testInstance, command.Flags().ShorthandLookup(PrerequisitesFlagShorthand))
	require.Nil(testInstance, command.Flags().Lookup(ManifestFlagName))
}

func TestBindListingFlagsToleratesNilCommand(testInstance *testing.T) {
	values := BindListingFlags(nil, DefaultListingFlagDefinitions())
	require.NotNil(testInstance, values)
	require.False(testInstance, values.Requested())
}
