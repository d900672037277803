// Package trace records what a mergelint run is doing: run and document
// boundaries, scanner passes and failures of external tools such as the
// structural HTML linter.
//
// Enable it from the command line:
//
//	mergelint --trace=- --trace-level=detail check templates/
//
// Levels widen what is written: error keeps only failures, phase adds the
// run span, detail adds one span per document and debug adds scanner passes.
//
// The tracer travels through the driver in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "file:"+path, parent)
//	defer span.End("")
package trace
