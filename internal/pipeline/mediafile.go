package pipeline

import (
	"os"

	"github.com/spf13/afero"

	"github.com/backmassage/mediacompress/internal/config"
	"github.com/backmassage/mediacompress/internal/naming"
	"github.com/backmassage/mediacompress/internal/planner"
)

// MediaFile is one input file in flight. Its identity is Rel, the path
// relative to the input root. It lives only while a worker processes it.
type MediaFile struct {
	Rel    string
	Input  string
	Temp   naming.IntendedPath
	Output naming.IntendedPath
	Kind   planner.Kind
	Plan   *planner.FilePlan

	fs afero.Fs
}

func newMediaFile(fs afero.Fs, cfg *config.Config, roots naming.Roots, rel string) *MediaFile {
	temp, out := roots.Map(rel)
	plan := planner.BuildPlan(cfg, rel)
	return &MediaFile{
		Rel:    rel,
		Input:  roots.InputPath(rel),
		Temp:   temp,
		Output: out,
		Kind:   plan.Kind,
		Plan:   plan,
		fs:     fs,
	}
}

// Stat reads the input's current file info. It is never cached: the file
// may change between stages.
func (m *MediaFile) Stat() (os.FileInfo, error) {
	return m.fs.Stat(m.Input)
}
