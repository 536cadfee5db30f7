// Package cli is the interactive terminal front end of the photo journal.
//
// It wires the record store, the export sequencer and the platform
// collaborators (headless renderer, share target, gallery, image picker,
// directory watcher) into an App and drives it from a small REPL.
package cli
