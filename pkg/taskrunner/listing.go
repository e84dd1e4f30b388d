package taskrunner

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	taskListLineTemplateConstant            = "%-*s  # %s\n"
	taskLabelTemplateConstant               = "%s %s"
	prerequisiteLineTemplateConstant        = "    %s\n"
	argumentSuffixTemplateConstant          = "[%s]"
	argumentSuffixSeparatorConstant         = ","
	taskManifestEncodeErrorTemplateConstant = "taskrunner.manifest.encode: %w"
)

type taskManifest struct {
	Tasks []taskManifestEntry `yaml:"tasks"`
}

type taskManifestEntry struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description,omitempty"`
	Prerequisites []string `yaml:"prerequisites,omitempty"`
	Arguments     []string `yaml:"arguments,omitempty"`
}

// RenderTaskList renders described tasks one per line with aligned descriptions.
func RenderTaskList(registry Registry, commandName string) string {
	type listedTask struct {
		label       string
		description string
	}

	listed := make([]listedTask, 0)
	labelWidth := 0
	for _, definition := range registry.Definitions() {
		if len(definition.Description) == 0 {
			continue
		}
		label := formatTaskLabel(commandName, definition)
		if len(label) > labelWidth {
			labelWidth = len(label)
		}
		listed = append(listed, listedTask{label: label, description: definition.Description})
	}

	var builder strings.Builder
	for _, task := range listed {
		fmt.Fprintf(&builder, taskListLineTemplateConstant, labelWidth, task.label, task.description)
	}
	return builder.String()
}

// RenderPrerequisiteList renders every task followed by its indented prerequisites.
func RenderPrerequisiteList(registry Registry, commandName string) string {
	var builder strings.Builder
	for _, definition := range registry.Definitions() {
		builder.WriteString(strings.TrimSpace(fmt.Sprintf(taskLabelTemplateConstant, commandName, definition.Name)))
		builder.WriteString("\n")
		for _, prerequisiteName := range definition.Prerequisites {
			fmt.Fprintf(&builder, prerequisiteLineTemplateConstant, prerequisiteName)
		}
	}
	return builder.String()
}

// RenderTaskManifest encodes every task as a YAML document.
func RenderTaskManifest(registry Registry) ([]byte, error) {
	definitions := registry.Definitions()
	manifest := taskManifest{Tasks: make([]taskManifestEntry, 0, len(definitions))}
	for _, definition := range definitions {
		manifest.Tasks = append(manifest.Tasks, taskManifestEntry{
			Name:          definition.Name,
			Description:   definition.Description,
			Prerequisites: definition.Prerequisites,
			Arguments:     definition.ArgumentNames,
		})
	}

	encoded, encodeError := yaml.Marshal(manifest)
	if encodeError != nil {
		return nil, fmt.Errorf(taskManifestEncodeErrorTemplateConstant, encodeError)
	}
	return encoded, nil
}

func formatTaskLabel(commandName string, definition TaskDefinition) string {
	label := definition.Name
	if len(definition.ArgumentNames) > 0 {
		label += fmt.Sprintf(argumentSuffixTemplateConstant, strings.Join(definition.ArgumentNames, argumentSuffixSeparatorConstant))
	}
	return strings.TrimSpace(fmt.Sprintf(taskLabelTemplateConstant, commandName, label))
}
