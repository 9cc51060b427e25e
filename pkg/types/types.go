package types

// OperationType identifies one of the typed operations a module can declare.
// The set is closed: dispatch happens in a single switch and an unrecognized
// type is reported as an operation failure, never silently ignored.
type OperationType string

const (
	// OpCopyDir recursively copies a source directory into the install dir,
	// merging with any existing target tree.
	OpCopyDir OperationType = "copy_dir"

	// OpCopyFile copies a single file. An existing target is skipped unless
	// the run is forced.
	OpCopyFile OperationType = "copy_file"

	// OpMergeDir merges the immediate subdirectories of a source directory
	// into same-named subdirectories of the install dir.
	OpMergeDir OperationType = "merge_dir"

	// OpMergeJSON merges a JSON document into a target document, optionally
	// at a dotted key path.
	OpMergeJSON OperationType = "merge_json"

	// OpRunCommand runs a shell command from the config directory.
	OpRunCommand OperationType = "run_command"
)

// Operation is a single declared step inside a module. Which fields are
// meaningful depends on Type; config validation enforces the per-type
// requirements before a run starts.
type Operation struct {
	Type     OperationType     `json:"type" koanf:"type"`
	Source   string            `json:"source,omitempty" koanf:"source"`
	Target   string            `json:"target,omitempty" koanf:"target"`
	MergeKey string            `json:"merge_key,omitempty" koanf:"merge_key"`
	Command  string            `json:"command,omitempty" koanf:"command"`
	Env      map[string]string `json:"env,omitempty" koanf:"env"`
}

// Module is a named, independently selectable unit of installation work.
// Modules are declared in the config file and immutable during a run.
type Module struct {
	Name        string
	Enabled     bool
	Description string
	Operations  []Operation
}
