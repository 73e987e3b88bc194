package naming

import (
	"path/filepath"
	"strings"
)

// Roots holds the three absolute run roots.
type Roots struct {
	Input  string
	Temp   string
	Output string
}

// IntendedPath is an input-relative path re-rooted under the temp or output
// root. Its extension is whatever the input file name claims.
type IntendedPath struct {
	path string
}

// ResolvedPath is a candidate path whose extension reflects the format the
// codec actually produced. The zero value means "no candidate".
type ResolvedPath struct {
	path string
}

// Map re-roots rel (relative to the input root) under the temp and output
// roots. rel may use either separator.
func (r Roots) Map(rel string) (temp, output IntendedPath) {
	rel = filepath.FromSlash(rel)
	return IntendedPath{filepath.Join(r.Temp, rel)}, IntendedPath{filepath.Join(r.Output, rel)}
}

// InputPath returns the absolute input path for rel.
func (r Roots) InputPath(rel string) string {
	return filepath.Join(r.Input, filepath.FromSlash(rel))
}

// NewIntendedPath wraps an absolute path. Used by tests and callers that
// compute paths outside [Roots.Map].
func NewIntendedPath(path string) IntendedPath { return IntendedPath{path} }

func (p IntendedPath) String() string { return p.path }

// Ext returns the claimed extension, including the dot, in original case.
func (p IntendedPath) Ext() string { return SplitExt(p.path) }

// Stem returns the path without its extension.
func (p IntendedPath) Stem() string { return strings.TrimSuffix(p.path, p.Ext()) }

// WithExt returns the resolved path with ext replacing the claimed
// extension. Passing the claimed extension keeps the path unchanged.
func (p IntendedPath) WithExt(ext string) ResolvedPath {
	return ResolvedPath{p.Stem() + ext}
}

func (p ResolvedPath) String() string { return p.path }

// Ext returns the resolved extension, including the dot.
func (p ResolvedPath) Ext() string { return SplitExt(p.path) }

// IsZero reports whether p names no candidate.
func (p ResolvedPath) IsZero() bool { return p.path == "" }

// CompressedPath builds the final name of a kept candidate: the intended
// output stem, then suffix, then the candidate's resolved extension.
//
//	CompressedPath("/out/2023/IMG_1.JPG", "/tmp/2023/IMG_1.jpg", "_small") = "/out/2023/IMG_1_small.jpg"
func CompressedPath(output IntendedPath, candidate ResolvedPath, suffix string) string {
	return output.Stem() + suffix + candidate.Ext()
}

// SplitExt returns the extension of name's final element, dot included.
// Leading dots of the element never start an extension, so ".DS_Store" has
// none and ".archive.tar" has ".tar".
func SplitExt(name string) string {
	base := filepath.Base(name)
	return filepath.Ext(strings.TrimLeft(base, "."))
}

// LowerExt returns the lowercase extension of name.
func LowerExt(name string) string {
	return strings.ToLower(SplitExt(name))
}

// Canonical returns rel with its extension removed and separators
// normalized to '/'. Two inputs with equal canonical names cannot be told
// apart once codecs correct extensions.
func Canonical(rel string) string {
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, SplitExt(rel))
}

// CanonicalOutput returns the canonical name of an output-relative path:
// extension removed, then one trailing suffix removed if present.
func CanonicalOutput(rel, suffix string) string {
	c := Canonical(rel)
	if suffix != "" {
		c = strings.TrimSuffix(c, suffix)
	}
	return c
}
