package safety

import (
	"path"
	"strings"
)

// Directories under the root that are never read or written.
var protectedDirs = []string{".git", ".agent"}

// Basenames that may not be written at any depth.
var protectedFiles = map[string]bool{
	"go.mod": true,
	"go.sum": true,
}

// ValidateRelPath returns the absolute path for reading relPath under absRoot.
// Violations are returned as ToolError.
func ValidateRelPath(absRoot, relPath string) (string, error) {
	abs, rel, err := resolveInside(absRoot, relPath)
	if err != nil {
		return "", err
	}
	if underProtectedDir(rel) {
		return "", ToolError{Code: CodeDeniedRead, Message: "reads under .git/ or .agent/ are not allowed"}
	}
	return abs, nil
}

// ValidateWritePath returns the absolute path for writing relPath under absRoot.
// On top of the read rules it protects module files at any depth.
func ValidateWritePath(absRoot, relPath string) (string, error) {
	abs, rel, err := resolveInside(absRoot, relPath)
	if err != nil {
		return "", err
	}
	if underProtectedDir(rel) {
		return "", ToolError{Code: CodeDeniedWrite, Message: "writes under .git/ or .agent/ are not allowed"}
	}
	if protectedFiles[path.Base(rel)] {
		return "", ToolError{Code: CodeDeniedWrite, Message: "writes to " + path.Base(rel) + " are not allowed"}
	}
	return abs, nil
}

func underProtectedDir(rel string) bool {
	for _, d := range protectedDirs {
		if rel == d || strings.HasPrefix(rel, d+"/") {
			return true
		}
	}
	return false
}
