// Package scenario executes YAML conformance scenarios against the ring
// container.
//
// A scenario is a list of ring operations (appends, removals, flips,
// history clears) followed by assertions on the final state: sequence
// validity, violation and history counts, pattern and palindrome search
// results, and the diagnostic rendering.
//
// Scenarios run on rings with sequential handle generators, so every
// run of the same scenario produces a byte-identical trace snapshot.
// Golden files pin those snapshots; RunWithGolden compares against
// testdata/{name}.golden and regenerates with -update.
package scenario
