package rakefile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tyemirov/taskr/internal/todos"
)

const environmentLoadErrorTemplateConstant = "rakefile.environment.load: %w"

var (
	// ErrEnvironmentNotLoaded indicates that collaborators were requested before the environment task ran.
	ErrEnvironmentNotLoaded = errors.New("environment not loaded")
	// ErrCollaboratorLoaderMissing indicates an environment constructed without a loader.
	ErrCollaboratorLoaderMissing = errors.New("collaborator loader not configured")
)

// Collaborators groups the domain objects that become available once the environment is loaded.
type Collaborators struct {
	Users   todos.UserDirectory
	Todos   todos.TodoMarker
	Console todos.ConsoleLoader
}

// CollaboratorLoader resolves the collaborators when the environment task runs.
type CollaboratorLoader func(ctx context.Context) (Collaborators, error)

// EnvironmentConfiguration captures the environment section of the application configuration.
type EnvironmentConfiguration struct {
	Users []string `mapstructure:"users"`
}

// DefaultEnvironmentConfiguration returns the baseline environment configuration.
func DefaultEnvironmentConfiguration() EnvironmentConfiguration {
	return EnvironmentConfiguration{Users: []string{"User"}}
}

// NewPlaceholderLoader returns a loader that resolves placeholder collaborators writing to output.
func NewPlaceholderLoader(output io.Writer, configuration EnvironmentConfiguration) CollaboratorLoader {
	return func(context.Context) (Collaborators, error) {
		placeholders := todos.NewPlaceholderCollaborators(output, configuration.Users)
		return Collaborators{Users: placeholders, Todos: placeholders, Console: placeholders}, nil
	}
}

// Environment holds collaborators loaded by the environment task.
type Environment struct {
	loader        CollaboratorLoader
	collaborators Collaborators
	loaded        bool
}

// NewEnvironment constructs an unloaded Environment.
func NewEnvironment(loader CollaboratorLoader) *Environment {
	return &Environment{loader: loader}
}

// Load resolves the collaborators. Repeated loads keep the first result.
func (environment *Environment) Load(ctx context.Context) error {
	if environment.loaded {
		return nil
	}
	if environment.loader == nil {
		return fmt.Errorf(environmentLoadErrorTemplateConstant, ErrCollaboratorLoaderMissing)
	}

	collaborators, loadError := environment.loader(ctx)
	if loadError != nil {
		return fmt.Errorf(environmentLoadErrorTemplateConstant, loadError)
	}

	environment.collaborators = collaborators
	environment.loaded = true
	return nil
}

// Loaded reports whether the environment task has run.
func (environment *Environment) Loaded() bool {
	return environment.loaded
}

// Collaborators returns the loaded collaborators.
func (environment *Environment) Collaborators() (Collaborators, error) {
	if !environment.loaded {
		return Collaborators{}, ErrEnvironmentNotLoaded
	}
	return environment.collaborators, nil
}
