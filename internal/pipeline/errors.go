package pipeline

import "errors"

// Fatal conditions. Any of them aborts the run; files already written stay
// in place and nothing is rolled back.
var (
	ErrDestinationExists  = errors.New("destination already exists")
	ErrInputVanished      = errors.New("input file no longer exists")
	ErrCountMismatch      = errors.New("output file count does not match input")
	ErrNameMismatch       = errors.New("output file name does not match input")
	ErrOrdering           = errors.New("input canonical names are not strictly ordered")
	ErrCompressionCeiling = errors.New("unrealistic compression rate")
	ErrTempNotEmpty       = errors.New("temp directory is not empty")
)
