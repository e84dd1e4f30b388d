package rakefile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/tyemirov/taskr/internal/todos"
	"github.com/tyemirov/taskr/pkg/taskrunner"
)

// Task names registered by Define.
const (
	DefaultTaskName       = "default"
	HelloRakeTaskName     = "hello_rake"
	EnvironmentTaskName   = "environment"
	UpcomingTodosTaskName = "upcoming_todos"
	OverdueTodosTaskName  = "overdue_todos"
	MarkOverdueTaskName   = "todos:mark_overdue"
	MarkUpcomingTaskName  = "todos:mark_upcoming"
	ConsoleTaskName       = "console"
	SendSummaryTaskName   = "user:send_summary"

	// SendSummaryEmailArgument names the recipient argument of user:send_summary.
	SendSummaryEmailArgument = "email"
)

const (
	defaultGreetingConstant           = "Hello, from default task!"
	emailingTemplateConstant          = "Emailing %s\n"
	summaryTemplateConstant           = "Sending summary to user with %s\n"
	environmentLoadedConstant         = "environment loaded"
	usersNotifiedConstant             = "users notified"
	logFieldTaskConstant              = "task"
	logFieldUserCountConstant         = "user_count"
	registrationErrorTemplateConstant = "rakefile.define.%s: %w"
)

const (
	helloRakeDescriptionConstant     = "Outputs hello to the terminal"
	environmentDescriptionConstant   = "Loads the environment"
	upcomingTodosDescriptionConstant = "Emails users with upcoming todos"
	overdueTodosDescriptionConstant  = "Emails users with overdue todos"
	markOverdueDescriptionConstant   = "Marks todos as overdue"
	markUpcomingDescriptionConstant  = "Marks todos as upcoming"
	consoleDescriptionConstant       = "Loads an interactive console."
	sendSummaryDescriptionConstant   = "Sends a summary to the user"
)

var (
	// ErrEnvironmentMissing indicates Define was called without an Environment.
	ErrEnvironmentMissing = errors.New("environment not configured")
	// ErrCollaboratorMissing indicates the loaded environment lacks a collaborator a task needs.
	ErrCollaboratorMissing = errors.New("collaborator not available")
)

// Dependencies describes the collaborators used by the catalog tasks.
type Dependencies struct {
	Environment *Environment
	Output      io.Writer
	Logger      *zap.Logger
}

type taskCatalog struct {
	environment *Environment
	output      io.Writer
	logger      *zap.Logger
}

// Define registers every catalog task with the builder.
func Define(builder *taskrunner.RegistryBuilder, dependencies Dependencies) error {
	if dependencies.Environment == nil {
		return ErrEnvironmentMissing
	}

	definitions := newCatalog(dependencies).definitions()
	for _, definition := range definitions {
		if registrationError := builder.Register(definition); registrationError != nil {
			return fmt.Errorf(registrationErrorTemplateConstant, definition.Name, registrationError)
		}
	}
	return nil
}

func newCatalog(dependencies Dependencies) taskCatalog {
	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return taskCatalog{environment: dependencies.Environment, output: output, logger: logger}
}

func (catalog taskCatalog) definitions() []taskrunner.TaskDefinition {
	environmentPrerequisite := []string{EnvironmentTaskName}
	return []taskrunner.TaskDefinition{
		{Name: DefaultTaskName, Action: catalog.greet},
		{Name: HelloRakeTaskName, Description: helloRakeDescriptionConstant},
		{Name: EnvironmentTaskName, Description: environmentDescriptionConstant, Action: catalog.loadEnvironment},
		{Name: UpcomingTodosTaskName, Description: upcomingTodosDescriptionConstant, Prerequisites: environmentPrerequisite, Action: catalog.emailUpcoming},
		{Name: OverdueTodosTaskName, Description: overdueTodosDescriptionConstant, Prerequisites: environmentPrerequisite, Action: catalog.emailOverdue},
		{Name: MarkOverdueTaskName, Description: markOverdueDescriptionConstant, Prerequisites: environmentPrerequisite, Action: catalog.markOverdue},
		{Name: MarkUpcomingTaskName, Description: markUpcomingDescriptionConstant, Prerequisites: environmentPrerequisite, Action: catalog.markUpcoming},
		{Name: ConsoleTaskName, Description: consoleDescriptionConstant, Prerequisites: environmentPrerequisite, Action: catalog.loadConsole},
		{Name: SendSummaryTaskName, Description: sendSummaryDescriptionConstant, Prerequisites: environmentPrerequisite, ArgumentNames: []string{SendSummaryEmailArgument}, Action: catalog.sendSummary},
	}
}

func (catalog taskCatalog) greet(context.Context, taskrunner.Arguments) error {
	_, writeError := fmt.Fprintln(catalog.output, defaultGreetingConstant)
	return writeError
}

func (catalog taskCatalog) loadEnvironment(ctx context.Context, _ taskrunner.Arguments) error {
	if loadError := catalog.environment.Load(ctx); loadError != nil {
		return loadError
	}
	catalog.logger.Debug(environmentLoadedConstant, zap.String(logFieldTaskConstant, EnvironmentTaskName))
	return nil
}

func (catalog taskCatalog) emailUpcoming(ctx context.Context, _ taskrunner.Arguments) error {
	directory, directoryError := catalog.userDirectory()
	if directoryError != nil {
		return directoryError
	}
	users, lookupError := directory.WithUpcomingTodos(ctx)
	if lookupError != nil {
		return lookupError
	}
	return catalog.emailUsers(UpcomingTodosTaskName, users)
}

func (catalog taskCatalog) emailOverdue(ctx context.Context, _ taskrunner.Arguments) error {
	directory, directoryError := catalog.userDirectory()
	if directoryError != nil {
		return directoryError
	}
	users, lookupError := directory.WithOverdueTodos(ctx)
	if lookupError != nil {
		return lookupError
	}
	return catalog.emailUsers(OverdueTodosTaskName, users)
}

func (catalog taskCatalog) emailUsers(taskName string, users []todos.User) error {
	for _, user := range users {
		if _, writeError := fmt.Fprintf(catalog.output, emailingTemplateConstant, user); writeError != nil {
			return writeError
		}
	}
	catalog.logger.Debug(usersNotifiedConstant, zap.String(logFieldTaskConstant, taskName), zap.Int(logFieldUserCountConstant, len(users)))
	return nil
}

func (catalog taskCatalog) markOverdue(ctx context.Context, _ taskrunner.Arguments) error {
	marker, markerError := catalog.todoMarker()
	if markerError != nil {
		return markerError
	}
	return marker.MarkOverdue(ctx)
}

func (catalog taskCatalog) markUpcoming(ctx context.Context, _ taskrunner.Arguments) error {
	marker, markerError := catalog.todoMarker()
	if markerError != nil {
		return markerError
	}
	return marker.MarkUpcoming(ctx)
}

func (catalog taskCatalog) loadConsole(ctx context.Context, _ taskrunner.Arguments) error {
	collaborators, collaboratorsError := catalog.environment.Collaborators()
	if collaboratorsError != nil {
		return collaboratorsError
	}
	if collaborators.Console == nil {
		return ErrCollaboratorMissing
	}
	return collaborators.Console.LoadConsole(ctx)
}

func (catalog taskCatalog) sendSummary(_ context.Context, arguments taskrunner.Arguments) error {
	_, writeError := fmt.Fprintf(catalog.output, summaryTemplateConstant, arguments.Value(SendSummaryEmailArgument))
	return writeError
}

func (catalog taskCatalog) userDirectory() (todos.UserDirectory, error) {
	collaborators, collaboratorsError := catalog.environment.Collaborators()
	if collaboratorsError != nil {
		return nil, collaboratorsError
	}
	if collaborators.Users == nil {
		return nil, ErrCollaboratorMissing
	}
	return collaborators.Users, nil
}

func (catalog taskCatalog) todoMarker() (todos.TodoMarker, error) {
	collaborators, collaboratorsError := catalog.environment.Collaborators()
	if collaboratorsError != nil {
		return nil, collaboratorsError
	}
	if collaborators.Todos == nil {
		return nil, ErrCollaboratorMissing
	}
	return collaborators.Todos, nil
}
