// Package types holds the shared data model for modinstall: modules and
// their operations as declared in config, the execution context threaded
// through a run, and the result types persisted to the status file.
package types
