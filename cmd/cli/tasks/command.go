// Package tasks wires the task catalog into the taskr root command.
package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/taskr/internal/rakefile"
	"github.com/tyemirov/taskr/internal/utils"
	flagutils "github.com/tyemirov/taskr/internal/utils/flags"
	"github.com/tyemirov/taskr/pkg/taskrunner"
)

const (
	registryBuildErrorTemplateConstant  = "unable to define tasks: %w"
	manifestRenderErrorTemplateConstant = "unable to render task manifest: %w"
	taskInvocationMessageConstant       = "invoking task from command line"
	taskDispatchMessageConstant         = "dispatching task invocations"
	logFieldTaskConstant                = "task"
	logFieldArgumentsConstant           = "arguments"
	logFieldInvocationIndexConstant     = "invocation_index"
	logFieldInvocationsConstant         = "invocations"
	logFieldConfigurationFileConstant   = "config_file"
	logFieldLogLevelConstant            = "log_level"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// LoaderFactory builds the collaborator loader used by the environment task.
type LoaderFactory func(output io.Writer, configuration rakefile.EnvironmentConfiguration) rakefile.CollaboratorLoader

// CommandBuilder assembles task invocation for a Cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() rakefile.EnvironmentConfiguration
	LoaderFactory         LoaderFactory
	ExecutorFactory       taskrunner.Factory
}

// Handler executes the task invocations named on the command line.
type Handler struct {
	builder         CommandBuilder
	listingFlags    *flagutils.ListingFlagValues
	contextAccessor utils.CommandContextAccessor
}

// Bind attaches the listing flags to command and returns the handler that runs tasks for it.
func (builder CommandBuilder) Bind(command *cobra.Command) *Handler {
	return &Handler{
		builder:         builder,
		listingFlags:    flagutils.BindListingFlags(command, flagutils.DefaultListingFlagDefinitions()),
		contextAccessor: utils.NewCommandContextAccessor(),
	}
}

// BuildRegistry populates a fresh registry with the catalog tasks writing to output.
func (builder CommandBuilder) BuildRegistry(output io.Writer) (taskrunner.Registry, error) {
	environmentConfiguration := builder.resolveConfiguration()
	environment := rakefile.NewEnvironment(builder.resolveLoaderFactory()(output, environmentConfiguration))

	registryBuilder := taskrunner.NewRegistryBuilder()
	definitionError := rakefile.Define(registryBuilder, rakefile.Dependencies{
		Environment: environment,
		Output:      output,
		Logger:      builder.resolveLogger(),
	})
	if definitionError != nil {
		return taskrunner.Registry{}, fmt.Errorf(registryBuildErrorTemplateConstant, definitionError)
	}

	registry := registryBuilder.Build()
	if validationError := taskrunner.ValidateRegistry(registry); validationError != nil {
		return taskrunner.Registry{}, fmt.Errorf(registryBuildErrorTemplateConstant, validationError)
	}
	return registry, nil
}

// Run lists or invokes tasks. Without task names the default task runs.
func (handler *Handler) Run(command *cobra.Command, arguments []string) error {
	output := command.OutOrStdout()
	registry, registryError := handler.builder.BuildRegistry(output)
	if registryError != nil {
		return registryError
	}

	if handler.listingFlags != nil && handler.listingFlags.Requested() {
		return handler.renderListings(output, registry, command.Root().Name())
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	invocations := handler.resolveInvocations(executionContext, arguments)
	configurationFilePath, _ := handler.contextAccessor.ConfigurationFilePath(executionContext)
	logLevel, _ := handler.contextAccessor.LogLevel(executionContext)

	logger := handler.builder.resolveLogger()
	logger.Debug(
		taskDispatchMessageConstant,
		zap.Strings(logFieldInvocationsConstant, invocations),
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
		zap.String(logFieldLogLevelConstant, logLevel),
	)
	executor := taskrunner.Resolve(handler.builder.ExecutorFactory, registry, logger)
	for invocationIndex, rawInvocation := range invocations {
		taskName, positionalArguments := taskrunner.ParseTaskInvocation(rawInvocation)
		logger.Debug(
			taskInvocationMessageConstant,
			zap.String(logFieldTaskConstant, taskName),
			zap.Strings(logFieldArgumentsConstant, positionalArguments),
			zap.Int(logFieldInvocationIndexConstant, invocationIndex),
		)
		if invocationError := executor.Invoke(executionContext, taskName, positionalArguments...); invocationError != nil {
			return invocationError
		}
	}

	return nil
}

// resolveInvocations prefers the invocations recorded in the command context over the positional arguments.
func (handler *Handler) resolveInvocations(executionContext context.Context, arguments []string) []string {
	invocations, invocationsAvailable := handler.contextAccessor.TaskInvocations(executionContext)
	if !invocationsAvailable {
		invocations = arguments
	}
	if len(invocations) == 0 {
		return []string{rakefile.DefaultTaskName}
	}
	return invocations
}

func (handler *Handler) renderListings(output io.Writer, registry taskrunner.Registry, commandName string) error {
	if handler.listingFlags.Tasks {
		if _, writeError := io.WriteString(output, taskrunner.RenderTaskList(registry, commandName)); writeError != nil {
			return writeError
		}
	}

	if handler.listingFlags.Prerequisites {
		if _, writeError := io.WriteString(output, taskrunner.RenderPrerequisiteList(registry, commandName)); writeError != nil {
			return writeError
		}
	}

	if handler.listingFlags.Manifest {
		manifest, renderError := taskrunner.RenderTaskManifest(registry)
		if renderError != nil {
			return fmt.Errorf(manifestRenderErrorTemplateConstant, renderError)
		}
		if _, writeError := output.Write(manifest); writeError != nil {
			return writeError
		}
	}

	return nil
}

func (builder CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder CommandBuilder) resolveConfiguration() rakefile.EnvironmentConfiguration {
	if builder.ConfigurationProvider == nil {
		return rakefile.DefaultEnvironmentConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder CommandBuilder) resolveLoaderFactory() LoaderFactory {
	if builder.LoaderFactory == nil {
		return rakefile.NewPlaceholderLoader
	}
	return builder.LoaderFactory
}
