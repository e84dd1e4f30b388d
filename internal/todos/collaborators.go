package todos

import "context"

// User identifies a recipient of todo notifications.
type User struct {
	Name string
}

// String returns the user's display name.
func (user User) String() string {
	return user.Name
}

// UserDirectory finds users by the state of their todos.
type UserDirectory interface {
	WithOverdueTodos(ctx context.Context) ([]User, error)
	WithUpcomingTodos(ctx context.Context) ([]User, error)
}

// TodoMarker updates todo states in bulk.
type TodoMarker interface {
	MarkOverdue(ctx context.Context) error
	MarkUpcoming(ctx context.Context) error
}

// ConsoleLoader opens an interactive session over the loaded environment.
type ConsoleLoader interface {
	LoadConsole(ctx context.Context) error
}
