// Package export turns journal entries into shareable artifacts.
//
// A Sequencer stages one entry at a time on an off-screen Renderer, waits a
// fixed delay for layout to settle, captures a JPEG snapshot and then either
// dispatches that single page (Export) or collects every page into one PDF
// document (ExportAll). Progress and the staged entry live in a Session that
// only the Sequencer mutates; the CLI observes it.
package export
