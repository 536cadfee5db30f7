// Package render drives a headless Chromium through go-rod. It stages a
// journal entry as a scrapbook page, captures JPEG snapshots of it and
// prints document markup to PDF.
package render
