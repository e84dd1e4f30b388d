package rakefile

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tyemirov/taskr/internal/todos"
	"github.com/tyemirov/taskr/pkg/taskrunner"
)

type recordingCollaborators struct {
	overdueUsers      []todos.User
	upcomingUsers     []todos.User
	overdueLookups    int
	upcomingLookups   int
	markOverdueCalls  int
	markUpcomingCalls int
	consoleLoads      int
	markOverdueError  error
}

func (collaborators *recordingCollaborators) WithOverdueTodos(context.Context) ([]todos.User, error) {
	collaborators.overdueLookups++
	return collaborators.overdueUsers, nil
}

func (collaborators *recordingCollaborators) WithUpcomingTodos(context.Context) ([]todos.User, error) {
	collaborators.upcomingLookups++
	return collaborators.upcomingUsers, nil
}

func (collaborators *recordingCollaborators) MarkOverdue(context.Context) error {
	collaborators.markOverdueCalls++
	return collaborators.markOverdueError
}

func (collaborators *recordingCollaborators) MarkUpcoming(context.Context) error {
	collaborators.markUpcomingCalls++
	return nil
}

func (collaborators *recordingCollaborators) LoadConsole(context.Context) error {
	collaborators.consoleLoads++
	return nil
}

type catalogFixture struct {
	output        *bytes.Buffer
	collaborators *recordingCollaborators
	environment   *Environment
	runner        *taskrunner.Runner
}

func newCatalogFixture(t *testing.T) catalogFixture {
	t.Helper()
	collaborators := &recordingCollaborators{
		overdueUsers:  []todos.User{{Name: "A User"}},
		upcomingUsers: []todos.User{{Name: "A User"}},
	}
	environment := NewEnvironment(func(context.Context) (Collaborators, error) {
		return Collaborators{Users: collaborators, Todos: collaborators, Console: collaborators}, nil
	})
	output := &bytes.Buffer{}

	builder := taskrunner.NewRegistryBuilder()
	require.NoError(t, Define(builder, Dependencies{Environment: environment, Output: output, Logger: zap.NewNop()}))

	return catalogFixture{
		output:        output,
		collaborators: collaborators,
		environment:   environment,
		runner:        taskrunner.NewRunner(builder.Build(), zap.NewNop()),
	}
}

func TestDefineRegistersStarterAndDefaultTasks(t *testing.T) {
	fixture := newCatalogFixture(t)
	registry := fixture.runner.Registry()

	require.True(t, registry.Contains(HelloRakeTaskName))
	require.True(t, registry.Contains(DefaultTaskName))
}

func TestDefaultTaskGreets(t *testing.T) {
	fixture := newCatalogFixture(t)

	require.NoError(t, fixture.runner.Invoke(context.Background(), DefaultTaskName))
	require.Equal(t, "Hello, from default task!\n", fixture.output.String())
}

func TestEnvironmentTaskLoadsCollaborators(t *testing.T) {
	fixture := newCatalogFixture(t)
	require.False(t, fixture.environment.Loaded())

	require.NoError(t, fixture.runner.Invoke(context.Background(), EnvironmentTaskName))

	collaborators, err := fixture.environment.Collaborators()
	require.NoError(t, err)
	require.NotNil(t, collaborators.Users)
	require.NotNil(t, collaborators.Todos)
	require.Empty(t, fixture.output.String())
}

func TestEnvironmentDependentTasksDeclarePrerequisite(testInstance *testing.T) {
	fixture := newCatalogFixture(testInstance)

	for _, taskName := range []string{UpcomingTodosTaskName, OverdueTodosTaskName, MarkOverdueTaskName, MarkUpcomingTaskName, ConsoleTaskName, SendSummaryTaskName} {
		testInstance.Run(taskName, func(testInstance *testing.T) {
			prerequisites, err := fixture.runner.Prerequisites(taskName)
			require.NoError(testInstance, err)
			require.Contains(testInstance, prerequisites, EnvironmentTaskName)
		})
	}
}

func TestUpcomingTodosEmailsUsers(t *testing.T) {
	fixture := newCatalogFixture(t)

	require.NoError(t, fixture.runner.Invoke(context.Background(), UpcomingTodosTaskName))
	require.Equal(t, 1, fixture.collaborators.upcomingLookups)
	require.Equal(t, "Emailing A User\n", fixture.output.String())
}

func TestOverdueTodosEmailsUsers(t *testing.T) {
	fixture := newCatalogFixture(t)
	fixture.collaborators.overdueUsers = []todos.User{{Name: "A User"}, {Name: "B User"}}

	require.NoError(t, fixture.runner.Invoke(context.Background(), OverdueTodosTaskName))
	require.Equal(t, 1, fixture.collaborators.overdueLookups)
	require.Equal(t, "Emailing A User\nEmailing B User\n", fixture.output.String())
}

func TestMarkTasksCallCollaboratorsOnce(t *testing.T) {
	fixture := newCatalogFixture(t)

	require.NoError(t, fixture.runner.Invoke(context.Background(), MarkOverdueTaskName))
	require.Equal(t, 1, fixture.collaborators.markOverdueCalls)
	require.Zero(t, fixture.collaborators.markUpcomingCalls)
	require.Empty(t, fixture.output.String())

	require.NoError(t, fixture.runner.Invoke(context.Background(), MarkUpcomingTaskName))
	require.Equal(t, 1, fixture.collaborators.markUpcomingCalls)
	require.Equal(t, 1, fixture.collaborators.markOverdueCalls)
}

func TestMarkOverduePropagatesCollaboratorFailure(t *testing.T) {
	fixture := newCatalogFixture(t)
	fixture.collaborators.markOverdueError = errors.New("todo store offline")

	invocationError := fixture.runner.Invoke(context.Background(), MarkOverdueTaskName)
	require.ErrorIs(t, invocationError, fixture.collaborators.markOverdueError)
}

func TestConsoleTaskLoadsConsoleAndIsDescribed(t *testing.T) {
	fixture := newCatalogFixture(t)

	require.NoError(t, fixture.runner.Invoke(context.Background(), ConsoleTaskName))
	require.Equal(t, 1, fixture.collaborators.consoleLoads)
	require.Contains(t, taskrunner.RenderTaskList(fixture.runner.Registry(), "taskr"), "taskr console")
	require.Regexp(t, `taskr console\s+# Loads an interactive console`, taskrunner.RenderTaskList(fixture.runner.Registry(), "taskr"))
}

func TestSendSummaryAcceptsEmailArgument(t *testing.T) {
	fixture := newCatalogFixture(t)

	argumentNames, err := fixture.runner.ArgumentNames(SendSummaryTaskName)
	require.NoError(t, err)
	require.Contains(t, argumentNames, "email")

	require.NoError(t, fixture.runner.Invoke(context.Background(), SendSummaryTaskName, "student@flatironschool.com"))
	require.Equal(t, "Sending summary to user with student@flatironschool.com\n", fixture.output.String())
}

func TestSendSummaryWithoutEmailBindsEmptyValue(t *testing.T) {
	fixture := newCatalogFixture(t)

	require.NoError(t, fixture.runner.Invoke(context.Background(), SendSummaryTaskName))
	require.Equal(t, "Sending summary to user with \n", fixture.output.String())
}

func TestDefineRequiresEnvironment(t *testing.T) {
	require.ErrorIs(t, Define(taskrunner.NewRegistryBuilder(), Dependencies{}), ErrEnvironmentMissing)
}

func TestDefineRejectsConflictingRegistrations(t *testing.T) {
	builder := taskrunner.NewRegistryBuilder()
	require.NoError(t, builder.Register(taskrunner.TaskDefinition{Name: ConsoleTaskName}))

	defineError := Define(builder, Dependencies{Environment: NewEnvironment(nil)})
	require.ErrorAs(t, defineError, &taskrunner.DuplicateTaskError{})
}
