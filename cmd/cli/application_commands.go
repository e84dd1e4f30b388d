package cli

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	taskscmd "github.com/tyemirov/taskr/cmd/cli/tasks"
	"github.com/tyemirov/taskr/internal/rakefile"
	"github.com/tyemirov/taskr/pkg/taskrunner"
)

func (application *Application) registerCommands(cobraCommand *cobra.Command) {
	taskBuilder := taskscmd.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: application.environmentConfiguration,
		LoaderFactory:         application.resolveTaskLoaderFactory,
		ExecutorFactory:       application.resolveTaskExecutor,
	}
	application.taskHandler = taskBuilder.Bind(cobraCommand)

	versionCommand := &cobra.Command{
		Use:           versionCommandUseNameConstant,
		Short:         versionCommandShortDescriptionConstant,
		Long:          versionCommandLongDescriptionConstant,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.printVersion(command)
		},
	}
	cobraCommand.AddCommand(versionCommand)
}

func (application *Application) resolveTaskLoaderFactory(output io.Writer, configuration rakefile.EnvironmentConfiguration) rakefile.CollaboratorLoader {
	if application.taskLoaderFactory != nil {
		return application.taskLoaderFactory(output, configuration)
	}
	return rakefile.NewPlaceholderLoader(output, configuration)
}

func (application *Application) resolveTaskExecutor(registry taskrunner.Registry, logger *zap.Logger) taskrunner.Executor {
	if application.taskExecutorFactory != nil {
		return application.taskExecutorFactory(registry, logger)
	}
	return taskrunner.NewRunner(registry, logger)
}
