// Package model defines the data structures shared by the download pipeline,
// the report writers and the history database.
//
// A Run holds everything collected during one invocation: the fetched page,
// the located script reference, the extracted word lists and, on failure,
// where the pipeline stopped. Summary is the serializable view of a Run used
// for reports and history rows.
package model
