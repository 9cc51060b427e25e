package postinstall

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/modinstall/pkg/auditlog"
)

// npmTimeout bounds each global package installation.
const npmTimeout = 5 * time.Minute

// InstallNpmPackages installs the configured global npm packages. A missing
// npm, a timeout, or a failed install are warnings only; the core run has
// already completed by the time this is called.
func InstallNpmPackages(packages []string, audit *auditlog.Log) {
	if len(packages) == 0 {
		return
	}

	pterm.Println()
	pterm.Println("Installing global npm packages...")

	npm, err := lookupNpm()
	if err != nil {
		pterm.Println("  WARNING: npm not found, skipping npm package installation")
		audit.Warnf("npm not found, skipping npm packages")
		return
	}

	for _, pkg := range packages {
		installOne(npm, pkg, audit)
	}

	pterm.Println("Global npm packages installation completed.")
}

func lookupNpm() (string, error) {
	if runtime.GOOS == "windows" {
		if path, err := exec.LookPath("npm.cmd"); err == nil {
			return path, nil
		}
	}
	return exec.LookPath("npm")
}

func installOne(npm, pkg string, audit *auditlog.Log) {
	pterm.Printf("Installing %s...\n", pkg)

	ctx, cancel := context.WithTimeout(context.Background(), npmTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, npm, "install", "-g", pkg)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		pterm.Printf("  WARNING: Timeout installing %s\n", pkg)
		audit.Warnf("Timeout installing %s", pkg)
		return
	}
	if err != nil {
		pterm.Printf("  WARNING: Failed to install %s\n", pkg)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			pterm.Printf("    Error: %s\n", msg)
		}
		audit.Warnf("Failed to install %s: %s", pkg, strings.TrimSpace(stderr.String()))
		return
	}

	pterm.Printf("  %s installed successfully\n", pkg)
	audit.Infof("Installed npm package: %s", pkg)
}
