package taskrunner

import (
	"context"

	"go.uber.org/zap"
)

const (
	taskInvokedMessageConstant   = "task invoked"
	taskSkippedMessageConstant   = "task already ran in this invocation"
	taskCompletedMessageConstant = "task completed"
	taskFailedMessageConstant    = "task failed"
	logFieldTaskConstant         = "task"
	logFieldArgumentsConstant    = "arguments"
	logFieldParentConstant       = "parent"
)

// Executor invokes registered tasks by name.
type Executor interface {
	Invoke(ctx context.Context, taskName string, positionalArguments ...string) error
}

// Factory constructs an Executor for the provided registry.
type Factory func(Registry, *zap.Logger) Executor

// Resolve returns either the provided factory result or a default Runner.
func Resolve(factory Factory, registry Registry, logger *zap.Logger) Executor {
	if factory != nil {
		if executor := factory(registry, logger); executor != nil {
			return executor
		}
	}
	return NewRunner(registry, logger)
}

// Runner executes tasks from a Registry, running prerequisites before each task body.
type Runner struct {
	registry Registry
	logger   *zap.Logger
}

// NewRunner constructs a Runner. A nil logger disables diagnostics.
func NewRunner(registry Registry, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{registry: registry, logger: logger}
}

// Registry exposes the registry the runner executes.
func (runner *Runner) Registry() Registry {
	return runner.registry
}

// Prerequisites returns the ordered prerequisite names of a task.
func (runner *Runner) Prerequisites(taskName string) ([]string, error) {
	return runner.registry.Prerequisites(taskName)
}

// ArgumentNames returns the ordered declared argument names of a task.
func (runner *Runner) ArgumentNames(taskName string) ([]string, error) {
	return runner.registry.ArgumentNames(taskName)
}

// Invoke runs the named task. Prerequisites run first, in declaration order and without
// arguments; each task body runs at most once per call. The first error stops the invocation.
func (runner *Runner) Invoke(ctx context.Context, taskName string, positionalArguments ...string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	state := &invocationState{completed: make(map[string]struct{})}
	return runner.invokeTask(ctx, state, "", taskName, positionalArguments)
}

type invocationState struct {
	chain     []string
	completed map[string]struct{}
}

func (state *invocationState) active(taskName string) bool {
	for _, activeName := range state.chain {
		if activeName == taskName {
			return true
		}
	}
	return false
}

func (runner *Runner) invokeTask(ctx context.Context, state *invocationState, parentName string, taskName string, positionalArguments []string) error {
	definition, lookupError := runner.registry.Lookup(taskName)
	if lookupError != nil {
		return lookupError
	}

	if state.active(definition.Name) {
		chain := append(append([]string(nil), state.chain...), definition.Name)
		return CircularDependencyError{Chain: chain}
	}

	if _, alreadyCompleted := state.completed[definition.Name]; alreadyCompleted {
		runner.logger.Debug(taskSkippedMessageConstant, zap.String(logFieldTaskConstant, definition.Name), zap.String(logFieldParentConstant, parentName))
		return nil
	}

	state.chain = append(state.chain, definition.Name)
	defer func() {
		state.chain = state.chain[:len(state.chain)-1]
	}()

	for _, prerequisiteName := range definition.Prerequisites {
		if prerequisiteError := runner.invokeTask(ctx, state, definition.Name, prerequisiteName, nil); prerequisiteError != nil {
			return prerequisiteError
		}
	}

	arguments := BindArguments(definition.ArgumentNames, positionalArguments)
	runner.logger.Debug(
		taskInvokedMessageConstant,
		zap.String(logFieldTaskConstant, definition.Name),
		zap.String(logFieldParentConstant, parentName),
		zap.Any(logFieldArgumentsConstant, arguments.Map()),
	)

	if definition.Action != nil {
		if actionError := definition.Action(ctx, arguments); actionError != nil {
			runner.logger.Error(taskFailedMessageConstant, zap.String(logFieldTaskConstant, definition.Name), zap.Error(actionError))
			return TaskFailedError{TaskName: definition.Name, Err: actionError}
		}
	}

	state.completed[definition.Name] = struct{}{}
	runner.logger.Debug(taskCompletedMessageConstant, zap.String(logFieldTaskConstant, definition.Name))
	return nil
}
