package todos

import (
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	findingOverdueUsersMessageConstant  = "Finding all users with overdue todos..."
	findingUpcomingUsersMessageConstant = "Finding all users with upcoming todos..."
	markingOverdueTodosMessageConstant  = "Marking overdue todos..."
	markingUpcomingTodosMessageConstant = "Marking upcoming todos..."
	loadingConsoleMessageConstant       = "Loading interactive console..."
	defaultPlaceholderUserNameConstant  = "User"
	announceErrorTemplateConstant       = "unable to write placeholder output: %w"
)

// PlaceholderCollaborators prints what each collaborator call would do and returns fixed users.
// It implements UserDirectory, TodoMarker, and ConsoleLoader.
type PlaceholderCollaborators struct {
	output    io.Writer
	userNames []string
}

// NewPlaceholderCollaborators constructs placeholder collaborators writing to output.
// Blank user names are dropped; an empty list falls back to a single generic user.
func NewPlaceholderCollaborators(output io.Writer, userNames []string) *PlaceholderCollaborators {
	if output == nil {
		output = io.Discard
	}

	sanitizedNames := make([]string, 0, len(userNames))
	for _, userName := range userNames {
		trimmed := strings.TrimSpace(userName)
		if len(trimmed) == 0 {
			continue
		}
		sanitizedNames = append(sanitizedNames, trimmed)
	}
	if len(sanitizedNames) == 0 {
		sanitizedNames = []string{defaultPlaceholderUserNameConstant}
	}

	return &PlaceholderCollaborators{output: output, userNames: sanitizedNames}
}

// WithOverdueTodos announces the lookup and returns the placeholder users.
func (collaborators *PlaceholderCollaborators) WithOverdueTodos(context.Context) ([]User, error) {
	if writeError := collaborators.announce(findingOverdueUsersMessageConstant); writeError != nil {
		return nil, writeError
	}
	return collaborators.users(), nil
}

// WithUpcomingTodos announces the lookup and returns the placeholder users.
func (collaborators *PlaceholderCollaborators) WithUpcomingTodos(context.Context) ([]User, error) {
	if writeError := collaborators.announce(findingUpcomingUsersMessageConstant); writeError != nil {
		return nil, writeError
	}
	return collaborators.users(), nil
}

// MarkOverdue announces the update.
func (collaborators *PlaceholderCollaborators) MarkOverdue(context.Context) error {
	return collaborators.announce(markingOverdueTodosMessageConstant)
}

// MarkUpcoming announces the update.
func (collaborators *PlaceholderCollaborators) MarkUpcoming(context.Context) error {
	return collaborators.announce(markingUpcomingTodosMessageConstant)
}

// LoadConsole announces the console session.
func (collaborators *PlaceholderCollaborators) LoadConsole(context.Context) error {
	return collaborators.announce(loadingConsoleMessageConstant)
}

func (collaborators *PlaceholderCollaborators) announce(message string) error {
	if _, writeError := fmt.Fprintln(collaborators.output, message); writeError != nil {
		return fmt.Errorf(announceErrorTemplateConstant, writeError)
	}
	return nil
}

func (collaborators *PlaceholderCollaborators) users() []User {
	users := make([]User, 0, len(collaborators.userNames))
	for _, userName := range collaborators.userNames {
		users = append(users, User{Name: userName})
	}
	return users
}
