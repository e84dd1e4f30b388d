package taskrunner

import (
	"context"
	"sort"
	"strings"
)

// Action performs the work of a task with its resolved arguments.
type Action func(ctx context.Context, arguments Arguments) error

// TaskDefinition describes a named task with its prerequisites, declared arguments, and action.
type TaskDefinition struct {
	Name          string
	Description   string
	Prerequisites []string
	ArgumentNames []string
	Action        Action
}

// RegistryBuilder collects task definitions before they are frozen into a Registry.
type RegistryBuilder struct {
	definitions map[string]TaskDefinition
}

// NewRegistryBuilder constructs an empty RegistryBuilder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{definitions: make(map[string]TaskDefinition)}
}

// Register adds a task definition, rejecting names that were already registered.
func (builder *RegistryBuilder) Register(definition TaskDefinition) error {
	taskName := strings.TrimSpace(definition.Name)
	if len(taskName) == 0 {
		return ErrTaskNameMissing
	}
	if builder.definitions == nil {
		builder.definitions = make(map[string]TaskDefinition)
	}
	if _, exists := builder.definitions[taskName]; exists {
		return DuplicateTaskError{TaskName: taskName}
	}

	builder.definitions[taskName] = TaskDefinition{
		Name:          taskName,
		Description:   strings.TrimSpace(definition.Description),
		Prerequisites: sanitizeNames(definition.Prerequisites),
		ArgumentNames: sanitizeNames(definition.ArgumentNames),
		Action:        definition.Action,
	}
	return nil
}

// Build freezes the registered definitions into a Registry. Later registrations do not affect the result.
func (builder *RegistryBuilder) Build() Registry {
	definitions := make(map[string]TaskDefinition, len(builder.definitions))
	for taskName, definition := range builder.definitions {
		definitions[taskName] = copyDefinition(definition)
	}
	return Registry{definitions: definitions}
}

// Registry is the immutable collection of known tasks keyed by name.
type Registry struct {
	definitions map[string]TaskDefinition
}

// Lookup returns the definition registered under the provided name.
func (registry Registry) Lookup(taskName string) (TaskDefinition, error) {
	trimmedName := strings.TrimSpace(taskName)
	definition, exists := registry.definitions[trimmedName]
	if !exists {
		return TaskDefinition{}, UnknownTaskError{TaskName: trimmedName}
	}
	return copyDefinition(definition), nil
}

// Prerequisites returns the ordered prerequisite names of a task.
func (registry Registry) Prerequisites(taskName string) ([]string, error) {
	definition, lookupError := registry.Lookup(taskName)
	if lookupError != nil {
		return nil, lookupError
	}
	return definition.Prerequisites, nil
}

// ArgumentNames returns the ordered declared argument names of a task.
func (registry Registry) ArgumentNames(taskName string) ([]string, error) {
	definition, lookupError := registry.Lookup(taskName)
	if lookupError != nil {
		return nil, lookupError
	}
	return definition.ArgumentNames, nil
}

// Describe returns the description of a task.
func (registry Registry) Describe(taskName string) (string, error) {
	definition, lookupError := registry.Lookup(taskName)
	if lookupError != nil {
		return "", lookupError
	}
	return definition.Description, nil
}

// Contains reports whether a task is registered under the provided name.
func (registry Registry) Contains(taskName string) bool {
	_, exists := registry.definitions[strings.TrimSpace(taskName)]
	return exists
}

// Names returns every registered task name sorted alphabetically.
func (registry Registry) Names() []string {
	names := make([]string, 0, len(registry.definitions))
	for taskName := range registry.definitions {
		names = append(names, taskName)
	}
	sort.Strings(names)
	return names
}

// Definitions returns every registered definition sorted by name.
func (registry Registry) Definitions() []TaskDefinition {
	names := registry.Names()
	definitions := make([]TaskDefinition, 0, len(names))
	for _, taskName := range names {
		definitions = append(definitions, copyDefinition(registry.definitions[taskName]))
	}
	return definitions
}

func sanitizeNames(rawNames []string) []string {
	if len(rawNames) == 0 {
		return nil
	}
	sanitized := make([]string, 0, len(rawNames))
	seen := make(map[string]struct{}, len(rawNames))
	for _, rawName := range rawNames {
		trimmed := strings.TrimSpace(rawName)
		if len(trimmed) == 0 {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}

func copyDefinition(definition TaskDefinition) TaskDefinition {
	copied := definition
	if definition.Prerequisites != nil {
		copied.Prerequisites = append([]string(nil), definition.Prerequisites...)
	}
	if definition.ArgumentNames != nil {
		copied.ArgumentNames = append([]string(nil), definition.ArgumentNames...)
	}
	return copied
}
