// Package pipeline runs the invariant projection end to end.
//
// It validates a config.PipelineConfig up front, then chains the chroma
// stages: generate surfaces, assemble the point cloud, solve the
// invariant direction, project, bin, and summarise each surface's
// cluster. Every stage is logged through monitoring.Logf. The Result is
// what the render package and the CLI consume.
package pipeline
