package taskrunner

import "fmt"

const prerequisiteValidationErrorTemplateConstant = "taskrunner.validate: task %q: %w"

// ValidateRegistry checks the whole prerequisite graph without running any action. It reports a
// prerequisite naming an unregistered task as UnknownTaskError and a cycle as CircularDependencyError.
func ValidateRegistry(registry Registry) error {
	const (
		unvisited = iota
		visiting
		visited
	)

	states := make(map[string]int, len(registry.definitions))
	chain := make([]string, 0)

	var visit func(taskName string) error
	visit = func(taskName string) error {
		switch states[taskName] {
		case visited:
			return nil
		case visiting:
			cycle := append(append([]string(nil), chain[indexOf(chain, taskName):]...), taskName)
			return CircularDependencyError{Chain: cycle}
		}

		states[taskName] = visiting
		chain = append(chain, taskName)
		for _, prerequisiteName := range registry.definitions[taskName].Prerequisites {
			if !registry.Contains(prerequisiteName) {
				return fmt.Errorf(prerequisiteValidationErrorTemplateConstant, taskName, UnknownTaskError{TaskName: prerequisiteName})
			}
			if visitError := visit(prerequisiteName); visitError != nil {
				return visitError
			}
		}
		chain = chain[:len(chain)-1]
		states[taskName] = visited
		return nil
	}

	for _, taskName := range registry.Names() {
		if visitError := visit(taskName); visitError != nil {
			return visitError
		}
	}
	return nil
}

func indexOf(values []string, target string) int {
	for index, value := range values {
		if value == target {
			return index
		}
	}
	return 0
}
