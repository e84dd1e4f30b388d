// Package flags provides helpers for binding and reading the Cobra flags shared by the taskr commands.
package flags

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	choiceUsageTemplate   = "%s (`<%s>`)"
	choiceUsageSeparator  = "|"
	flagReadErrorTemplate = "unable to read flag %q: %w"
)

// ErrFlagNotDefined indicates that the requested flag is not present on the command.
var ErrFlagNotDefined = errors.New("flag not defined")

// BoolFlag returns the value of a boolean flag and whether it was set on the command line.
func BoolFlag(command *cobra.Command, name string) (bool, bool, error) {
	flagSet, flag := locateFlag(command, name)
	if flag == nil {
		return false, false, ErrFlagNotDefined
	}
	value, err := flagSet.GetBool(name)
	if err != nil {
		return false, false, fmt.Errorf(flagReadErrorTemplate, name, err)
	}
	return value, flag.Changed, nil
}

func StringFlag(command *cobra.Command, name string) (string, bool, error) {
	flagSet, flag := locateFlag(command, name)
	if flag == nil {
		return "", false, ErrFlagNotDefined
	}
	value, err := flagSet.GetString(name)
	if err != nil {
		return "", false, fmt.Errorf(flagReadErrorTemplate, name, err)
	}
	return value, flag.Changed, nil
}

// Changed reports whether the named flag was set on the command or any of its ancestors.
func Changed(command *cobra.Command, name string) bool {
	_, flag := locateFlag(command, name)
	if flag == nil {
		return false
	}
	return flag.Changed
}

// FormatChoiceUsage renders a usage string whose placeholder lists the accepted values, upper-casing the default one.
func FormatChoiceUsage(defaultChoice string, choices []string, usage string) string {
	renderedChoices := make([]string, 0, len(choices))
	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}
		if strings.EqualFold(trimmedChoice, defaultChoice) {
			trimmedChoice = strings.ToUpper(trimmedChoice)
		}
		renderedChoices = append(renderedChoices, trimmedChoice)
	}
	if len(renderedChoices) == 0 {
		return usage
	}
	return fmt.Sprintf(choiceUsageTemplate, usage, strings.Join(renderedChoices, choiceUsageSeparator))
}

func locateFlag(command *cobra.Command, name string) (*pflag.FlagSet, *pflag.Flag) {
	if command == nil {
		return nil, nil
	}

	candidateSets := []*pflag.FlagSet{
		command.Flags(),
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	if root := command.Root(); root != nil {
		candidateSets = append(candidateSets, root.PersistentFlags())
	}

	for _, set := range candidateSets {
		if set == nil {
			continue
		}
		if flag := set.Lookup(name); flag != nil {
			return set, flag
		}
	}

	return nil, nil
}
