// Package trace records what bigcalc does while it evaluates input.
//
// Events are spans (begin/end pairs) and points, grouped by scope:
//
//   - ScopeDriver: a whole command invocation
//   - ScopeFile: one input file of a batch run
//   - ScopeLine: one evaluated expression
//
// Verbosity is selected with a Level; LevelPhase shows driver spans,
// LevelDetail adds files and LevelDebug adds every line.
//
// Tracers travel through the call chain in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, parentID)
//	defer span.End("")
//
// Tracers either stream events to a writer as text or NDJSON, keep the last
// events in a ring buffer for dumping after a failure, or both.
package trace
