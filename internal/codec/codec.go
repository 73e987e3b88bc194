// Package codec holds the adapters that write a compressed candidate for a
// single input file into the temp tree.
//
// An adapter receives the input path and the intended temp path, corrects
// the candidate's extension to the format it actually writes, and returns
// that resolved path. On failure the candidate does not exist afterwards.
package codec

import (
	"context"
	"errors"

	"github.com/backmassage/mediacompress/internal/naming"
	"github.com/backmassage/mediacompress/internal/planner"
)

// ErrUnrecognized is returned when the file's real content is not a format
// the adapter compresses. Callers treat the file as unrecognized and copy
// it through.
var ErrUnrecognized = errors.New("unrecognized media format")

// Codec writes a compressed candidate of input to (a corrected form of)
// temp. On error the returned path is either zero or a candidate the
// adapter created and already tried to remove.
type Codec interface {
	Compress(ctx context.Context, input string, temp naming.IntendedPath, plan *planner.FilePlan) (naming.ResolvedPath, error)
}
