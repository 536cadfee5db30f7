package models

// Item is an entry together with the file that backs it. The path is the
// identifier the edit and delete flows operate on.
type Item struct {
	Path  string
	Entry Entry
}
