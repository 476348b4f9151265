// Package safety confines file access by tools and loaders to sandbox roots.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Error codes carried by ToolError.
const (
	CodeOutsideSandbox = "ERR_PATH_OUTSIDE_SANDBOX"
	CodeDeniedRead     = "ERR_DENIED_READ"
	CodeDeniedWrite    = "ERR_DENIED_WRITE"
	CodeNotAFile       = "ERR_NOT_A_FILE"
)

// ToolError is a policy violation reported back to the model as a JSON tool result.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Roots are the absolute, symlink-resolved sandbox directories.
type Roots struct {
	Read  string
	Write string
}

// ResolveRoots makes readRoot and writeRoot absolute. An empty readRoot means
// the working directory; an empty writeRoot means readRoot.
func ResolveRoots(readRoot, writeRoot string) (Roots, error) {
	if readRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Roots{}, fmt.Errorf("getwd: %w", err)
		}
		readRoot = cwd
	}
	if writeRoot == "" {
		writeRoot = readRoot
	}

	r, err := absResolved(readRoot)
	if err != nil {
		return Roots{}, fmt.Errorf("read root: %w", err)
	}
	w, err := absResolved(writeRoot)
	if err != nil {
		return Roots{}, fmt.Errorf("write root: %w", err)
	}
	return Roots{Read: r, Write: w}, nil
}

// absResolved keeps the plain absolute path when the directory does not exist yet.
func absResolved(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// resolveInside joins relPath onto absRoot, follows symlinks on the leaf or its
// parent, and checks the result stays under absRoot. It returns the absolute
// path and the slash-separated path relative to the root.
func resolveInside(absRoot, relPath string) (string, string, error) {
	if filepath.IsAbs(relPath) {
		return "", "", ToolError{Code: CodeOutsideSandbox, Message: "absolute paths are not allowed"}
	}

	candidate := filepath.Join(absRoot, filepath.Clean(relPath))
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else if parent, err := filepath.EvalSymlinks(filepath.Dir(candidate)); err == nil {
		// The leaf may not exist yet; a symlinked parent can still escape.
		candidate = filepath.Join(parent, filepath.Base(candidate))
	}

	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", "", ToolError{Code: CodeOutsideSandbox, Message: "requested path resolves outside the sandbox root"}
	}
	return candidate, filepath.ToSlash(rel), nil
}
