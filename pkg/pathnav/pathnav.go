// Package pathnav computes parent paths and decides whether a path sits at,
// above or below the root boundary of a browse service.
package pathnav

import (
	"path"
	"path/filepath"
	"strings"
)

const (
	slash     = '/'
	backslash = '\\'
)

// ParentOf returns the parent of p, terminated with a separator. The separator
// convention is detected from p itself so that a backslash path is handled the
// same on every platform. The top of a tree yields its volume root, and a
// relative path bottoms out at "./". The result is never empty.
func ParentOf(p string) string {
	sep := detectSeparator(p)

	vol, rest := splitVolume(p)
	if sep == backslash {
		rest = strings.ReplaceAll(rest, `\`, "/")
	}

	absolute := vol != "" || strings.HasPrefix(rest, "/")
	if absolute && !strings.HasPrefix(rest, "/") {
		// Drive-relative paths like C:foo are treated as rooted at the drive.
		rest = "/" + rest
	}

	cleaned := path.Clean(rest)
	var parent string
	if cleaned == ".." || strings.HasSuffix(cleaned, "/..") {
		// Dir can't climb out of leading ".." segments.
		parent = cleaned + "/.."
	} else {
		parent = path.Dir(cleaned)
	}
	if parent == "/" || (absolute && parent == ".") {
		return vol + string(sep)
	}
	if parent == "." {
		return "." + string(sep)
	}
	if sep == backslash {
		parent = strings.ReplaceAll(parent, "/", `\`)
	}
	return vol + parent + string(sep)
}

// Depth returns the number of segments in p below its volume root.
func Depth(p string) int {
	sep := detectSeparator(p)
	_, rest := splitVolume(p)
	if sep == backslash {
		rest = strings.ReplaceAll(rest, `\`, "/")
	}
	cleaned := strings.Trim(path.Clean("/"+rest), "/")
	if cleaned == "" {
		return 0
	}
	return strings.Count(cleaned, "/") + 1
}

// detectSeparator picks the backslash convention for UNC paths, for paths that
// contain a backslash but no slash, and for drive paths unless they only use
// slashes.
func detectSeparator(p string) byte {
	if strings.HasPrefix(p, `\\`) {
		return backslash
	}
	hasSlash := strings.ContainsRune(p, slash)
	hasBackslash := strings.ContainsRune(p, backslash)
	if hasDrive(p) && (hasBackslash || !hasSlash) {
		return backslash
	}
	if hasBackslash && !hasSlash {
		return backslash
	}
	return slash
}

func hasDrive(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// splitVolume splits p into its volume ("C:" or `\\server\share`) and the
// remainder. Paths without a volume return an empty one.
func splitVolume(p string) (string, string) {
	if hasDrive(p) {
		return p[:2], p[2:]
	}
	if !strings.HasPrefix(p, `\\`) {
		return "", p
	}

	isSep := func(r rune) bool { return r == slash || r == backslash }
	// \\server\share
	server := strings.IndexFunc(p[2:], isSep)
	if server < 0 {
		return p, ""
	}
	share := strings.IndexFunc(p[2+server+1:], isSep)
	if share < 0 {
		return p, ""
	}
	end := 2 + server + 1 + share
	return p[:end], p[end:]
}

// Canonicalize returns the absolute, symlink-free form of p. Paths that don't
// exist can't be resolved and are returned absolute and cleaned.
func Canonicalize(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs
	}
	return resolved
}

// IsAtOrAboveRoot reports whether p is the root or one of its ancestors, after
// both are canonicalized.
func IsAtOrAboveRoot(p, root string) bool {
	cp, cr := Canonicalize(p), Canonicalize(root)
	if cp == cr {
		return true
	}
	rel, err := filepath.Rel(cp, cr)
	if err != nil {
		return false
	}
	return !escapes(rel)
}

// IsWithinRoot reports whether p is the root or one of its descendants, after
// both are canonicalized.
func IsWithinRoot(p, root string) bool {
	rel, err := filepath.Rel(Canonicalize(root), Canonicalize(p))
	if err != nil {
		return false
	}
	return !escapes(rel)
}

// UpTarget returns the directory that navigating up from dir leads to. The
// result is clamped to root so it can never escape the boundary.
func UpTarget(dir, root string) string {
	cr := Canonicalize(root)
	if IsAtOrAboveRoot(dir, root) {
		return cr
	}
	parent := ParentOf(Canonicalize(dir))
	if !IsWithinRoot(parent, root) {
		return cr
	}
	return parent
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel)
}
