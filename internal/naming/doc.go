// Package naming maps input-relative paths onto the temp and output roots,
// derives the canonical names used to pair input and output files, and
// detects inputs whose canonical names would be ambiguous.
//
// Paths move through two stages:
//
//   - [IntendedPath]: the input's relative path re-rooted under the temp or
//     output root, still carrying the extension the input file claims.
//   - [ResolvedPath]: a temp candidate path after a codec has corrected the
//     extension to the format it actually wrote.
//
// The compressed output name is built by [CompressedPath] from an intended
// output path (stem) and a resolved candidate (extension).
//
// Files: paths.go (roots, path stages, canonical names), collision.go
// (canonical-name collisions and pre-suffixed inputs).
package naming
