// Package inherit expands entity class declarations into flat, self-contained
// classes.
//
// Declarations name their super classes; a name is looked up among the
// declarations of the requesting kind and among base classes, so a point and
// a brush class may both inherit from different declarations called "base".
// Resolution drops redundant duplicates, detects inheritance cycles, then
// folds every reachable super class into each point and brush class exactly
// once. Anomalies are reported through diag.Reporter; nothing aborts the
// batch.
package inherit
