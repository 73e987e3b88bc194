// Package pipeline orchestrates a compression run: mirror the input tree,
// enumerate and check input names, compress every file in parallel, keep
// the smaller of original and candidate, then verify the output tree and
// reclaim the temp tree.
//
// Files:
//   - scaffold.go, discover.go: directory mirroring and file enumeration
//   - dispatch.go: the bounded worker pool driving per-file work
//   - resolve.go: the keep-original vs keep-candidate decision
//   - verify.go, reclaim.go: post-run consistency checks and cleanup
//   - summary.go, stats.go: size summaries and run counters
//   - runner.go: Run, the end-to-end sequence
package pipeline
