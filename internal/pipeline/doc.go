// Package pipeline runs the download as a sequence of named steps.
//
// Each Step receives the shared *model.Run and fills in its part of it:
//
//	fetch_page → locate_script → fetch_script → extract_lists → write_lists
//
// Execution is strictly sequential and stops at the first failing step. The
// failing step's name, its error and a stack trace are stored in
// Run.Failure so the post-mortem session can show where the run stopped;
// the error itself is returned to the caller unchanged.
package pipeline
