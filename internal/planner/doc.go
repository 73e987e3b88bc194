// Package planner classifies each input file by its claimed extension and
// builds the FilePlan naming the codec profile the dispatcher applies.
//
//   - Kind, FilePlan, ImageProfile, VideoProfile (types.go)
//   - BuildPlan, Classify, CodecLogParams (planner.go)
package planner
