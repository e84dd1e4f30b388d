package cli

import (
	"github.com/tyemirov/taskr/internal/rakefile"
	"github.com/tyemirov/taskr/internal/utils"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common      ApplicationCommonConfiguration    `mapstructure:"common"`
	Environment rakefile.EnvironmentConfiguration `mapstructure:"environment"`
}

// ApplicationCommonConfiguration stores logging defaults shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

func configurationDefaultValues() map[string]any {
	return map[string]any{
		commonLogLevelConfigKeyConstant:   string(utils.LogLevelError),
		commonLogFormatConfigKeyConstant:  string(utils.LogFormatStructured),
		environmentUsersConfigKeyConstant: rakefile.DefaultEnvironmentConfiguration().Users,
	}
}

func (application *Application) environmentConfiguration() rakefile.EnvironmentConfiguration {
	configuration := application.configuration.Environment
	configuration.Users = append([]string(nil), configuration.Users...)
	return configuration
}
