package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/backmassage/mediacompress/internal/config"
	"github.com/backmassage/mediacompress/internal/naming"
)

// Verification summarizes a consistent output tree.
type Verification struct {
	Pairs       int
	InputBytes  int64
	OutputBytes int64
	// MaxRate is the highest per-file compression rate seen, as a fraction.
	MaxRate float64
}

type namedFile struct {
	rel       string
	canonical string
}

// Verify checks the output tree against the enumerated inputs: equal file
// counts, strictly ordered input canonical names, pairwise-equal canonical
// names once sorted, and no single file compressed beyond
// cfg.MaxExpectedCompression percent.
func Verify(fsys afero.Fs, cfg *config.Config, inputs []string) (*Verification, error) {
	outputs, err := Discover(fsys, cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("enumerate output directory: %w", err)
	}
	if len(inputs) != len(outputs) {
		return nil, fmt.Errorf("%w: %d input files vs %d output files", ErrCountMismatch, len(inputs), len(outputs))
	}

	in := canonicalize(inputs, naming.Canonical)
	out := canonicalize(outputs, func(rel string) string { return naming.CanonicalOutput(rel, cfg.Suffix) })

	for i := 1; i < len(in); i++ {
		if in[i].canonical <= in[i-1].canonical {
			return nil, fmt.Errorf("%w: %q and %q", ErrOrdering, in[i-1].rel, in[i].rel)
		}
	}

	v := &Verification{Pairs: len(in)}
	for i := range in {
		if in[i].canonical != out[i].canonical {
			return nil, fmt.Errorf("%w: file #%d: %q (canonical %q) vs %q (canonical %q)",
				ErrNameMismatch, i+1, in[i].rel, in[i].canonical, out[i].rel, out[i].canonical)
		}
		inSize, err := fileSize(fsys, cfg.InputDir, in[i].rel)
		if err != nil {
			return nil, err
		}
		outSize, err := fileSize(fsys, cfg.OutputDir, out[i].rel)
		if err != nil {
			return nil, err
		}
		v.InputBytes += inSize
		v.OutputBytes += outSize

		rate := CompressionRate(inSize, outSize)
		if rate > v.MaxRate {
			v.MaxRate = rate
		}
		if rate*100 > cfg.MaxExpectedCompression {
			return nil, fmt.Errorf("%w of %.1f%% on %q", ErrCompressionCeiling, rate*100, in[i].rel)
		}
	}
	return v, nil
}

// CompressionRate returns 1 - output/input. A zero-size input has rate 0.
func CompressionRate(inputBytes, outputBytes int64) float64 {
	if inputBytes <= 0 {
		return 0
	}
	return 1 - float64(outputBytes)/float64(inputBytes)
}

func canonicalize(rels []string, canon func(string) string) []namedFile {
	files := make([]namedFile, len(rels))
	for i, rel := range rels {
		files[i] = namedFile{rel: rel, canonical: canon(rel)}
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].canonical < files[j].canonical
	})
	return files
}

func fileSize(fsys afero.Fs, root, rel string) (int64, error) {
	fi, err := fsys.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", rel, err)
	}
	return fi.Size(), nil
}
