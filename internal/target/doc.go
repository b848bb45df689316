// Package target allocates collision-free output paths for one conversion run.
//
// A Registry tracks every filename claimed during the run. The first claim of
// a name gets the plain form; later claims of the same name get a zero-padded
// counter suffix, probed against the output directory so a counter never lands
// on a file that is already on disk. The registry is owned by the caller and
// passed explicitly; it is not safe for concurrent use.
package target
