package bundler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// WebpackBundler runs the project's webpack through npx.
type WebpackBundler struct {
	// Stdout and Stderr can be set for testing; output is discarded when nil.
	Stdout io.Writer
	Stderr io.Writer
	// Executable overrides the npx binary (useful for testing).
	Executable string
}

// Bundle runs `npx webpack --mode production` in the app directory and
// checks that the bundle file was written.
func (w *WebpackBundler) Bundle(ctx context.Context, req Request) error {
	bin := w.Executable
	if bin == "" {
		npx, err := exec.LookPath("npx")
		if err != nil {
			return fmt.Errorf("webpack bundler requires Node.js (npx): %w", err)
		}
		bin = npx
	}

	cmd := exec.CommandContext(ctx, bin, "webpack",
		"--mode", "production",
		"--output-path", req.Paths.Staging,
		"--output-filename", req.BundleName,
	)
	cmd.Dir = req.AppDir
	cmd.Env = setEnv(os.Environ(), "NODE_ENV", "production")

	out, err := run(cmd, w.Stdout, w.Stderr)
	if err != nil {
		return fmt.Errorf("executing webpack: %w", err)
	}
	if out.ExitCode != 0 {
		return fmt.Errorf("webpack exited with code %d: %s", out.ExitCode, lastLine(out.Stderr))
	}

	if _, err := os.Stat(req.BundlePath()); err != nil {
		return fmt.Errorf("webpack did not produce %s: %w", req.BundlePath(), err)
	}
	return nil
}

// run executes cmd, capturing output while also streaming it to the given
// writers.
func run(cmd *exec.Cmd, stdout, stderr io.Writer) (*Output, error) {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	err := cmd.Run()
	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, err
	}
	return output, nil
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
