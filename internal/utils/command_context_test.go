package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithConfigurationFilePathStoresValue(t *testing.T) {
	accessor := NewCommandContextAccessor()
	enriched := accessor.WithConfigurationFilePath(context.Background(), "/tmp/config.yaml")

	configurationFilePath, exists := accessor.ConfigurationFilePath(enriched)
	require.True(t, exists)
	require.Equal(t, "/tmp/config.yaml", configurationFilePath)
}

func TestWithLogLevelStoresTrimmedValue(t *testing.T) {
	accessor := NewCommandContextAccessor()
	enriched := accessor.WithLogLevel(context.Background(), " debug ")

	logLevel, exists := accessor.LogLevel(enriched)
	require.True(t, exists)
	require.Equal(t, "debug", logLevel)
}

func TestWithLogLevelSkipsEmptyValue(t *testing.T) {
	accessor := NewCommandContextAccessor()
	enriched := accessor.WithLogLevel(context.Background(), "  ")

	_, exists := accessor.LogLevel(enriched)
	require.False(t, exists)
}

func TestWithTaskInvocationsStoresCopy(t *testing.T) {
	accessor := NewCommandContextAccessor()
	invocations := []string{"environment", "user:send_summary[student@flatironschool.com]"}
	enriched := accessor.WithTaskInvocations(context.Background(), invocations)
	invocations[0] = "mutated"

	retrieved, exists := accessor.TaskInvocations(enriched)
	require.True(t, exists)
	require.Equal(t, []string{"environment", "user:send_summary[student@flatironschool.com]"}, retrieved)
}

func TestAccessorHandlesMissingValues(t *testing.T) {
	accessor := NewCommandContextAccessor()

	_, configurationExists := accessor.ConfigurationFilePath(context.Background())
	require.False(t, configurationExists)

	_, invocationsExist := accessor.TaskInvocations(context.Background())
	require.False(t, invocationsExist)
}
