package tasks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Installer installs an application's npm dependencies.
type Installer interface {
	Install(ctx context.Context, appDir string) error
}

// NPMInstaller runs `npm install` in the application directory.
type NPMInstaller struct {
	// Stdout and Stderr default to io.Discard.
	Stdout io.Writer
	Stderr io.Writer
}

// Install runs npm install when appDir has a package.json.
func (n *NPMInstaller) Install(ctx context.Context, appDir string) error {
	if _, err := os.Stat(filepath.Join(appDir, "package.json")); err != nil {
		return nil // no package.json, nothing to do
	}

	npmPath, err := exec.LookPath("npm")
	if err != nil {
		return fmt.Errorf("npm not found; install Node.js or rerun with --skip-install: %w", err)
	}

	cmd := exec.CommandContext(ctx, npmPath, "install", "--prefer-offline")
	cmd.Dir = appDir
	cmd.Stdout = orDiscard(n.Stdout)
	cmd.Stderr = orDiscard(n.Stderr)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("npm install in %s: %w", appDir, err)
	}
	return nil
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
