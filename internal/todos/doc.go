// Package todos defines the user and todo collaborators invoked by taskr tasks along with
// placeholder implementations that only announce what they would do.
package todos
