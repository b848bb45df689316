// Package workflow drives conversion runs.
//
// A Session owns everything scoped to one run: the output-directory lock, the
// collision registry, the run identifier, and the journal entry. Sources are
// processed strictly one at a time; a failing file or page is recorded and
// the run moves on, so a batch never dies on a single bad input.
package workflow
