// Package rakefile declares the taskr task catalog: the greeting tasks, the environment
// marker task, and the todo notification tasks that call into the todos collaborators.
package rakefile
