// Package fsops reads and writes files inside the sandbox roots enforced by safety.
package fsops

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/petasbytes/agent-patterns/internal/safety"
)

// Sandbox performs file I/O confined to a pair of roots.
type Sandbox struct {
	roots safety.Roots
}

// New resolves readRoot and writeRoot (see safety.ResolveRoots) into a Sandbox.
func New(readRoot, writeRoot string) (*Sandbox, error) {
	roots, err := safety.ResolveRoots(readRoot, writeRoot)
	if err != nil {
		return nil, err
	}
	return &Sandbox{roots: roots}, nil
}

// Roots returns the resolved roots.
func (s *Sandbox) Roots() safety.Roots { return s.roots }

// ReadFile returns the contents of relPath under the read root.
func (s *Sandbox) ReadFile(relPath string) (string, error) {
	absPath, err := safety.ValidateRelPath(s.roots.Read, relPath)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", relPath, err)
	}
	if fi.IsDir() {
		return "", safety.ToolError{Code: safety.CodeNotAFile, Message: "path is a directory"}
	}
	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", relPath, err)
	}
	return string(b), nil
}

// WriteFile writes content to relPath under the write root, creating parent
// directories as needed.
func (s *Sandbox) WriteFile(relPath, content string) error {
	absPath, err := safety.ValidateWritePath(s.roots.Write, relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", relPath, err)
	}
	if err := os.WriteFile(absPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", relPath, err)
	}
	slog.Debug("sandbox write", "path", relPath, "bytes", len(content))
	return nil
}

var (
	defaultOnce sync.Once
	defaultBox  *Sandbox
	defaultErr  error
)

// Default returns the process-wide sandbox rooted at AGT_READ_ROOT and
// AGT_WRITE_ROOT. The roots are resolved once, on first use.
func Default() (*Sandbox, error) {
	defaultOnce.Do(func() {
		defaultBox, defaultErr = New(os.Getenv("AGT_READ_ROOT"), os.Getenv("AGT_WRITE_ROOT"))
	})
	return defaultBox, defaultErr
}
