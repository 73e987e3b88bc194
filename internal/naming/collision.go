package naming

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrCollision is returned when two or more inputs share a canonical name.
	ErrCollision = errors.New("file name collisions detected")
	// ErrSuffixedInput is returned when an input stem already ends with the
	// compression suffix, which would make its output canonical name ambiguous.
	ErrSuffixedInput = errors.New("input file names already carry the compression suffix")
)

// Collision is one canonical name claimed by more than one input.
type Collision struct {
	Canonical string
	Paths     []string // sorted
}

// Count returns the number of inputs sharing the canonical name.
func (c Collision) Count() int { return len(c.Paths) }

// CollisionReport lists every naming conflict found among the inputs.
type CollisionReport struct {
	Collisions []Collision // sorted by canonical name
	Suffixed   []string    // sorted
}

// Err returns nil when the report is clean, otherwise an error wrapping
// [ErrCollision], [ErrSuffixedInput], or both.
func (r CollisionReport) Err() error {
	var errs []error
	if n := len(r.Collisions); n > 0 {
		errs = append(errs, fmt.Errorf("%w: %d canonical name(s) shared by multiple files", ErrCollision, n))
	}
	if n := len(r.Suffixed); n > 0 {
		errs = append(errs, fmt.Errorf("%w: %d file(s)", ErrSuffixedInput, n))
	}
	return errors.Join(errs...)
}

// DetectCollisions groups rels by [Canonical] name and reports every group
// with more than one member. Inputs whose canonical name ends with suffix
// are reported separately. The result does not depend on the order of rels.
func DetectCollisions(rels []string, suffix string) CollisionReport {
	groups := make(map[string][]string, len(rels))
	var report CollisionReport
	for _, rel := range rels {
		c := Canonical(rel)
		groups[c] = append(groups[c], rel)
		if suffix != "" && strings.HasSuffix(c, suffix) {
			report.Suffixed = append(report.Suffixed, rel)
		}
	}
	for c, paths := range groups {
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		report.Collisions = append(report.Collisions, Collision{Canonical: c, Paths: paths})
	}
	sort.Slice(report.Collisions, func(i, j int) bool {
		return report.Collisions[i].Canonical < report.Collisions[j].Canonical
	})
	sort.Strings(report.Suffixed)
	return report
}
