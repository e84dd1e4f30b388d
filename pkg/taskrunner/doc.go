// Package taskrunner hosts the task graph used by taskr. Tasks are registered
// once through a `RegistryBuilder`, frozen into a `Registry`, and executed by
// a `Runner` that invokes prerequisites in declaration order before each task
// body. Listing helpers render the registry the way `rake -T` and `rake -P` do.
package taskrunner
