// Package jsonfile persists chunks as a JSON array of
// {"page_content", "metadata"} records and reads such files back.
//
// Writes go to a temporary file in the target directory that is renamed
// into place, so readers never see a partially written file.
package jsonfile
