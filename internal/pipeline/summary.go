package pipeline

import (
	"path"
	"sort"

	"github.com/spf13/afero"

	"github.com/backmassage/mediacompress/internal/display"
	"github.com/backmassage/mediacompress/internal/naming"
)

// SizedFile is a relative path with its size in bytes.
type SizedFile struct {
	Rel   string
	Bytes int64
}

// DirectorySizeSummary totals file sizes per directory and, within each
// directory, per lowercase extension.
type DirectorySizeSummary struct {
	Dirs map[string]int64
	Exts map[string]map[string]int64
}

// Measure stats every rel under root.
func Measure(fsys afero.Fs, root string, rels []string) ([]SizedFile, error) {
	files := make([]SizedFile, 0, len(rels))
	for _, rel := range rels {
		n, err := fileSize(fsys, root, rel)
		if err != nil {
			return nil, err
		}
		files = append(files, SizedFile{Rel: rel, Bytes: n})
	}
	return files, nil
}

// Summarize reduces files into per-directory and per-extension totals.
func Summarize(files []SizedFile) DirectorySizeSummary {
	s := DirectorySizeSummary{
		Dirs: make(map[string]int64),
		Exts: make(map[string]map[string]int64),
	}
	for _, f := range files {
		dir := path.Dir(f.Rel)
		ext := naming.LowerExt(f.Rel)
		s.Dirs[dir] += f.Bytes
		if s.Exts[dir] == nil {
			s.Exts[dir] = make(map[string]int64)
		}
		s.Exts[dir][ext] += f.Bytes
	}
	return s
}

// Total returns the sum over all directories.
func (s DirectorySizeSummary) Total() int64 {
	var n int64
	for _, b := range s.Dirs {
		n += b
	}
	return n
}

// Groups returns directories largest first, each with its extensions largest
// first. Ties are broken by name so the output is stable.
func (s DirectorySizeSummary) Groups() []display.SizeGroup {
	groups := make([]display.SizeGroup, 0, len(s.Dirs))
	for dir, n := range s.Dirs {
		g := display.SizeGroup{SizeEntry: display.SizeEntry{Name: dir, Bytes: n}}
		for ext, b := range s.Exts[dir] {
			g.Children = append(g.Children, display.SizeEntry{Name: ext, Bytes: b})
		}
		sortEntries(g.Children)
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return less(groups[i].SizeEntry, groups[j].SizeEntry)
	})
	return groups
}

func sortEntries(e []display.SizeEntry) {
	sort.Slice(e, func(i, j int) bool { return less(e[i], e[j]) })
}

func less(a, b display.SizeEntry) bool {
	if a.Bytes != b.Bytes {
		return a.Bytes > b.Bytes
	}
	return a.Name < b.Name
}
