// Package collection holds an ordered set of traces and runs batch
// operations over it.
//
// Per-trace operations fan out over a bounded worker pool, one trace per
// worker, and a failure on one trace never stops the others. Cross-trace
// steps (merge, rotate, header copy) run sequentially after any parallel
// phase. A Collection is owned by its caller and is not safe for
// concurrent use.
package collection
