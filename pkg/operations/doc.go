// Package operations implements the typed installation operations: copying
// directories and files, merging directory trees and JSON documents, and
// running shell commands. The Executor is the single dispatch site; the
// orchestrator in pkg/installer drives it one operation at a time and reads
// the outcomes.
package operations
