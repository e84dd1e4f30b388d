package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorConstant                = "."
	environmentVariableSeparatorConstant           = "_"
	sliceValueSeparatorConstant                    = ","
	embeddedConfigurationReadErrorTemplateConstant = "unable to read embedded configuration: %w"
	configurationFileReadErrorTemplateConstant     = "unable to read configuration file %s: %w"
	configurationSearchErrorTemplateConstant       = "unable to search configuration paths: %w"
	configurationDecodeErrorTemplateConstant       = "unable to decode configuration: %w"
)

// LoadedConfiguration describes metadata about a configuration load.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// ConfigurationLoader layers embedded defaults, a configuration file, and environment variables.
type ConfigurationLoader struct {
	configurationName         string
	configurationType         string
	environmentPrefix         string
	searchPaths               []string
	embeddedConfigurationData []byte
	embeddedConfigurationType string
}

// NewConfigurationLoader constructs a ConfigurationLoader searching the provided directories in order.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName: configurationName,
		configurationType: configurationType,
		environmentPrefix: environmentPrefix,
		searchPaths:       append([]string(nil), searchPaths...),
	}
}

// SetEmbeddedConfiguration registers configuration content applied beneath file and environment values.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	loader.embeddedConfigurationData = append([]byte(nil), configurationData...)
	loader.embeddedConfigurationType = configurationType
}

// LoadConfiguration decodes the merged configuration into target. An explicit configuration file path
// takes precedence over the search paths; a missing file in the search paths is not an error.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, target any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigType(loader.configurationType)

	for key, value := range defaultValues {
		viperInstance.SetDefault(key, value)
	}

	if len(loader.embeddedConfigurationData) > 0 {
		embeddedType := loader.embeddedConfigurationType
		if len(strings.TrimSpace(embeddedType)) == 0 {
			embeddedType = loader.configurationType
		}
		viperInstance.SetConfigType(embeddedType)
		if readError := viperInstance.ReadConfig(bytes.NewReader(loader.embeddedConfigurationData)); readError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationReadErrorTemplateConstant, readError)
		}
		viperInstance.SetConfigType(loader.configurationType)
	}

	trimmedFilePath := strings.TrimSpace(configurationFilePath)
	if len(trimmedFilePath) > 0 {
		viperInstance.SetConfigFile(trimmedFilePath)
		if mergeError := viperInstance.MergeInConfig(); mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(configurationFileReadErrorTemplateConstant, trimmedFilePath, mergeError)
		}
	} else if len(loader.searchPaths) > 0 {
		viperInstance.SetConfigName(loader.configurationName)
		for _, searchPath := range loader.searchPaths {
			viperInstance.AddConfigPath(searchPath)
		}
		if mergeError := viperInstance.MergeInConfig(); mergeError != nil {
			var notFoundError viper.ConfigFileNotFoundError
			if !errors.As(mergeError, &notFoundError) {
				return LoadedConfiguration{}, fmt.Errorf(configurationSearchErrorTemplateConstant, mergeError)
			}
		}
	}

	if len(loader.environmentPrefix) > 0 {
		viperInstance.SetEnvPrefix(loader.environmentPrefix)
	}
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(environmentKeySeparatorConstant, environmentVariableSeparatorConstant))
	viperInstance.AutomaticEnv()

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(sliceValueSeparatorConstant),
	))
	if decodeError := viperInstance.Unmarshal(target, decodeHook); decodeError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationDecodeErrorTemplateConstant, decodeError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}
