package flags

import "github.com/spf13/cobra"

const (
	// TasksFlagName exposes the flag that lists described tasks.
	TasksFlagName = "tasks"
	// TasksFlagShorthand mirrors rake -T.
	TasksFlagShorthand = "T"
	// TasksFlagUsage describes the task listing flag.
	TasksFlagUsage = "Display the tasks with descriptions, then exit"
	// PrerequisitesFlagName exposes the flag that lists task prerequisites.
	PrerequisitesFlagName = "prereqs"
	// PrerequisitesFlagShorthand mirrors rake -P.
	PrerequisitesFlagShorthand = "P"
	// PrerequisitesFlagUsage describes the prerequisite listing flag.
	PrerequisitesFlagUsage = "Display the tasks and their prerequisites, then exit"
	// ManifestFlagName exposes the flag that prints the YAML task manifest.
	ManifestFlagName = "manifest"
	// ManifestFlagUsage describes the manifest flag.
	ManifestFlagUsage = "Print every task as a YAML manifest, then exit"
)

// ListingFlagDefinition captures configuration for a single listing flag.
type ListingFlagDefinition struct {
	Name      string
	Shorthand string
	Usage     string
	Enabled   bool
}

// ListingFlagDefinitions groups the listing flag definitions.
type ListingFlagDefinitions struct {
	Tasks         ListingFlagDefinition
	Prerequisites ListingFlagDefinition
	Manifest      ListingFlagDefinition
}

// ListingFlagValues stores listing flag values.
type ListingFlagValues struct {
	Tasks         bool
	Prerequisites bool
	Manifest      bool
}

// Requested reports whether any listing mode was selected.
func (values ListingFlagValues) Requested() bool {
	return values.Tasks || values.Prerequisites || values.Manifest
}

// DefaultListingFlagDefinitions returns the rake-compatible listing flags.
func DefaultListingFlagDefinitions() ListingFlagDefinitions {
	return ListingFlagDefinitions{
		Tasks:         ListingFlagDefinition{Name: TasksFlagName, Shorthand: TasksFlagShorthand, Usage: TasksFlagUsage, Enabled: true},
		Prerequisites: ListingFlagDefinition{Name: PrerequisitesFlagName, Shorthand: PrerequisitesFlagShorthand, Usage: PrerequisitesFlagUsage, Enabled: true},
		Manifest:      ListingFlagDefinition{Name: ManifestFlagName, Usage: ManifestFlagUsage, Enabled: true},
	}
}

// BindListingFlags attaches the listing flags to the provided command's local flag set.
func BindListingFlags(command *cobra.Command, definitions ListingFlagDefinitions) *ListingFlagValues {
	values := &ListingFlagValues{}
	if command == nil {
		return values
	}

	bindListingFlag(command, &values.Tasks, definitions.Tasks)
	bindListingFlag(command, &values.Prerequisites, definitions.Prerequisites)
	bindListingFlag(command, &values.Manifest, definitions.Manifest)

	return values
}

func bindListingFlag(command *cobra.Command, target *bool, definition ListingFlagDefinition) {
	if !definition.Enabled || len(definition.Name) == 0 {
		return
	}
	flagSet := command.Flags()
	if flagSet.Lookup(definition.Name) != nil {
		return
	}
	flagSet.BoolVarP(target, definition.Name, definition.Shorthand, false, definition.Usage)
}
