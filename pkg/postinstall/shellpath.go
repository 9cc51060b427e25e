package postinstall

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/modinstall/pkg/auditlog"
)

// ExportLine is what gets appended to the shell rc file to put ~/bin on the
// PATH.
const ExportLine = `export PATH="$HOME/bin:$PATH"`

// AddToPath makes ~/bin reachable from the user's shell: on unix by
// appending an export line to the shell rc file, on windows via setx. Like
// every post-install step it only warns on failure.
func AddToPath(audit *auditlog.Log) {
	home, err := os.UserHomeDir()
	if err != nil {
		pterm.Printf("WARNING: Failed to update PATH: %v\n", err)
		return
	}
	binDir := filepath.Join(home, "bin")

	if runtime.GOOS == "windows" {
		addToPathWindows(binDir, audit)
		return
	}
	addToPathUnix(home, binDir, audit)
}

func addToPathUnix(home, binDir string, audit *auditlog.Log) {
	if pathContains(os.Getenv("PATH"), binDir) {
		pterm.Printf("PATH already includes %s\n", binDir)
		return
	}

	rcFile := rcFileForShell(home, os.Getenv("SHELL"))

	if content, err := os.ReadFile(rcFile); err == nil && strings.Contains(string(content), ExportLine) {
		pterm.Printf("PATH entry already exists in %s\n", rcFile)
		return
	}

	pterm.Printf("Adding ~/bin to PATH in %s...\n", rcFile)

	f, err := os.OpenFile(rcFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		pterm.Printf("WARNING: Failed to update %s: %v\n", rcFile, err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString("\n# Added by modinstall\n" + ExportLine + "\n"); err != nil {
		pterm.Printf("WARNING: Failed to update %s: %v\n", rcFile, err)
		return
	}

	pterm.Printf("Added PATH to %s\n", rcFile)
	pterm.Printf("Please run: source %s\n", rcFile)
	audit.Infof("Added PATH to %s", rcFile)
}

func addToPathWindows(binDir string, audit *auditlog.Log) {
	if pathContains(os.Getenv("PATH"), binDir) {
		pterm.Printf("User PATH already includes %s\n", binDir)
		return
	}

	pterm.Printf("Adding %s to user PATH...\n", binDir)
	newPath := os.Getenv("PATH") + ";" + binDir
	if err := exec.Command("setx", "PATH", newPath).Run(); err != nil {
		pterm.Printf("WARNING: Failed to add %s to user PATH: %v\n", binDir, err)
		return
	}

	pterm.Printf("Added %s to user PATH.\n", binDir)
	pterm.Println("Please restart your terminal for changes to take effect.")
	audit.Infof("Added %s to user PATH", binDir)
}

// rcFileForShell picks the startup file matching the user's login shell.
func rcFileForShell(home, shell string) string {
	switch filepath.Base(shell) {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		bashProfile := filepath.Join(home, ".bash_profile")
		if _, err := os.Stat(bashProfile); err == nil {
			return bashProfile
		}
		return filepath.Join(home, ".bashrc")
	default:
		return filepath.Join(home, ".profile")
	}
}

func pathContains(pathEnv, dir string) bool {
	for _, entry := range filepath.SplitList(pathEnv) {
		if entry == dir {
			return true
		}
	}
	return false
}
