package taskrunner

import "strings"

const (
	invocationArgumentsOpeningConstant  = "["
	invocationArgumentsClosingConstant  = "]"
	invocationArgumentSeparatorConstant = ","
)

// Arguments holds the positional values of an invocation bound to a task's declared argument names.
type Arguments struct {
	names  []string
	values map[string]string
}

// BindArguments matches positional values to declared names. Extra values are ignored and
// names without a value stay unbound.
func BindArguments(argumentNames []string, positionalValues []string) Arguments {
	values := make(map[string]string, len(argumentNames))
	for argumentIndex, argumentName := range argumentNames {
		if argumentIndex >= len(positionalValues) {
			break
		}
		values[argumentName] = positionalValues[argumentIndex]
	}
	return Arguments{
		names:  append([]string(nil), argumentNames...),
		values: values,
	}
}

// Value returns the bound value of an argument, or an empty string when it was not supplied.
func (arguments Arguments) Value(argumentName string) string {
	return arguments.values[argumentName]
}

// Lookup returns the bound value of an argument and whether it was supplied.
func (arguments Arguments) Lookup(argumentName string) (string, bool) {
	value, exists := arguments.values[argumentName]
	return value, exists
}

// Names returns the declared argument names in order.
func (arguments Arguments) Names() []string {
	return append([]string(nil), arguments.names...)
}

// Map returns every declared argument with its bound value; unbound names map to an empty string.
func (arguments Arguments) Map() map[string]string {
	mapped := make(map[string]string, len(arguments.names))
	for _, argumentName := range arguments.names {
		mapped[argumentName] = arguments.values[argumentName]
	}
	return mapped
}

// ParseTaskInvocation splits command-line task syntax such as `user:send_summary[a@b.c]`
// into the task name and its positional arguments.
func ParseTaskInvocation(rawInvocation string) (string, []string) {
	trimmed := strings.TrimSpace(rawInvocation)
	openingIndex := strings.Index(trimmed, invocationArgumentsOpeningConstant)
	if openingIndex <= 0 || !strings.HasSuffix(trimmed, invocationArgumentsClosingConstant) {
		return trimmed, nil
	}

	taskName := strings.TrimSpace(trimmed[:openingIndex])
	rawArguments := trimmed[openingIndex+1 : len(trimmed)-1]
	if len(strings.TrimSpace(rawArguments)) == 0 {
		return taskName, nil
	}

	parts := strings.Split(rawArguments, invocationArgumentSeparatorConstant)
	positionalValues := make([]string, 0, len(parts))
	for _, part := range parts {
		positionalValues = append(positionalValues, strings.TrimSpace(part))
	}
	for len(positionalValues) > 0 && len(positionalValues[len(positionalValues)-1]) == 0 {
		positionalValues = positionalValues[:len(positionalValues)-1]
	}
	return taskName, positionalValues
}
