package models

import "time"

// Asset is one scrapbook page saved into the local gallery.
type Asset struct {
	ID         string
	FileName   string
	SourcePath string
	SizeBytes  int64
	CreatedAt  time.Time
}
