// Package workspace manages the directory sensorplot works in: listing
// candidate data files, resolving the name typed at the prompt, deriving
// output paths from the base name, removing stale outputs and listing what a
// run produced.
package workspace
