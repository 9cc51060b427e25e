package main

// Message constants
const (
	MsgRootShort = "A declarative modular installation system"
	MsgRootLong  = `modinstall applies a declarative set of named installation modules to a
target directory. Each module is an ordered list of typed operations (copy
a directory, copy a file, merge directory trees, merge JSON documents, run
a command). Installs are idempotent, audited, and rolled back on failure.`

	MsgInstallShort = "Install the selected modules"
	MsgInstallLong  = `The 'install' command runs the selected modules' operations in declared
order against the install directory.

Every path a run creates is tracked; when a module fails, everything the
run created so far is removed again and the previous status file is
restored. Without --force the run stops at the first failed module.
Existing destination files are skipped unless --force is given.`

	MsgInstallExample = `  # Install all enabled modules
  modinstall install

  # Install specific modules
  modinstall install --module core,hooks

  # Install to a custom directory, overwriting existing files
  modinstall install --install-dir ~/tools --force`

	MsgListShort = "List available modules"
)
