// Package runner drives one interactive sensorplot session.
//
// Run lists candidate data files, prompts for a name, and then, in order:
// removes stale outputs, parses the file, prints the timestamp analysis,
// repairs and smooths, writes the data file, renders the chart, writes the
// statistics file and lists everything produced for the base name.
//
// Failure handling follows three tiers. A missing file ends the run before
// anything is written. A parse or write failure aborts processing but the
// summary is still printed. A render failure is printed and the run carries
// on. Only unreadable console input or an unreadable directory is returned
// as an error.
//
// UpdateConfig lets a config watcher swap settings while the prompt waits;
// each run takes one snapshot after the name is entered.
package runner
