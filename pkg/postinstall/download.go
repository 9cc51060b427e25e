package postinstall

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/modinstall/pkg/auditlog"
	"github.com/arthur-debert/modinstall/pkg/logging"
)

const (
	// WrapperRepo is the GitHub repository whose latest release carries the
	// wrapper binaries.
	WrapperRepo = "arthur-debert/modinstall"

	// WrapperName is the base name of the helper binary.
	WrapperName = "modinstall-wrapper"

	// verifyTimeout bounds the post-download --version check.
	verifyTimeout = 10 * time.Second
)

var downloadClient = &http.Client{Timeout: 5 * time.Minute}

// DownloadWrapper fetches the wrapper binary for the current platform from
// the latest GitHub release into ~/bin, marks it executable, and verifies it
// runs. Every failure is a warning; the bool only reports whether a binary
// landed on disk.
func DownloadWrapper(audit *auditlog.Log) bool {
	logger := logging.GetLogger("postinstall")
	pterm.Println()
	pterm.Printf("Downloading %s...\n", WrapperName)

	platform := DetectPlatform()
	binaryName := fmt.Sprintf("%s-%s-%s", WrapperName, platform.OS, platform.Arch)
	destName := WrapperName
	if platform.OS == "windows" {
		binaryName += ".exe"
		destName += ".exe"
	}

	url := fmt.Sprintf("https://github.com/%s/releases/latest/download/%s", WrapperRepo, binaryName)

	home, err := os.UserHomeDir()
	if err != nil {
		pterm.Printf("WARNING: Failed to download %s: %v\n", WrapperName, err)
		return false
	}
	binDir := filepath.Join(home, "bin")
	destPath := filepath.Join(binDir, destName)

	pterm.Printf("Downloading from %s...\n", url)

	if err := fetch(url, binDir, destPath); err != nil {
		pterm.Printf("WARNING: Failed to download %s: %v\n", WrapperName, err)
		audit.Warnf("Failed to download %s: %v", WrapperName, err)
		return false
	}

	if err := verify(destPath); err != nil {
		logger.Warn().Err(err).Str("path", destPath).Msg("Wrapper verification failed")
		pterm.Printf("WARNING: %s installation verification failed\n", WrapperName)
		// The file is on disk; verification failure is not a download failure.
		return true
	}

	pterm.Printf("%s installed successfully to %s\n", WrapperName, destPath)
	audit.Infof("Downloaded %s to %s", WrapperName, destPath)
	return true
}

func fetch(url, binDir, destPath string) error {
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}

	resp, err := downloadClient.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	f, err := os.OpenFile(destPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, resp.Body)
	return err
}

func verify(destPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()
	return exec.CommandContext(ctx, destPath, "--version").Run()
}
