// Package models defines the journal entry record and its file encoding.
package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/photojournal/internal/common"
)

const (
	// StoredDateLayout is the en-GB short rendering kept in the record ("1 Jan 2024").
	StoredDateLayout = "2 Jan 2006"
	// DisplayDateLayout is the en-GB long rendering shown by the date picker ("1 January 2024").
	DisplayDateLayout = "2 January 2006"

	imagePrefix   = "data:image/"
	base64Marker  = ";base64,"
	jpegURIPrefix = "data:image/jpeg;base64,"
)

// Entry is one journal record. ID is the creation timestamp in milliseconds
// and doubles as the file name stem and the sort key. Image is either empty
// or a self-contained data URI, never a file path.
type Entry struct {
	Text  string `json:"text"`
	Image string `json:"image"`
	Date  string `json:"date"`
	ID    int64  `json:"id"`
}

// NewEntry builds a validated entry.
func NewEntry(id int64, date, text, image string) (Entry, error) {
	e := Entry{ID: id, Date: date, Text: text, Image: image}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Validate checks the fixed schema: positive id, non-empty date and an
// image that is empty or a base64 image data URI.
func (e Entry) Validate() error {
	if e.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", common.ErrInvalidEntry, e.ID)
	}
	if strings.TrimSpace(e.Date) == "" {
		return fmt.Errorf("%w: date is empty", common.ErrInvalidEntry)
	}
	if e.Image != "" {
		if _, err := DecodeImage(e.Image); err != nil {
			return err
		}
	}
	return nil
}

// IsEmpty reports whether the entry has neither text nor image.
// Empty entries are never persisted.
func (e Entry) IsEmpty() bool {
	return e.Text == "" && e.Image == ""
}

// HasImage reports whether the entry carries a photo.
func (e Entry) HasImage() bool {
	return e.Image != ""
}

// FileName is the backing file's base name.
func (e Entry) FileName() string {
	return FileNameForID(e.ID)
}

// FileNameForID returns "<id>.json".
func FileNameForID(id int64) string {
	return strconv.FormatInt(id, 10) + ".json"
}

// Marshal serialises the entry in the on-disk JSON shape.
func (e Entry) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Parse decodes and validates one record file.
func Parse(data []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", common.ErrInvalidEntry, err)
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// FormatStoredDate renders t the way records store it.
func FormatStoredDate(t time.Time) string {
	return t.Format(StoredDateLayout)
}

// FormatDisplayDate renders t in the long form.
func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// DisplayDate re-renders a stored date in the long form. Dates that do not
// parse are returned unchanged.
func (e Entry) DisplayDate() string {
	t, err := time.Parse(StoredDateLayout, e.Date)
	if err != nil {
		return e.Date
	}
	return FormatDisplayDate(t)
}

// ImageDataURI embeds JPEG bytes as a data URI.
func ImageDataURI(jpeg []byte) string {
	return jpegURIPrefix + base64.StdEncoding.EncodeToString(jpeg)
}

// DecodeImage returns the binary payload of an image data URI.
func DecodeImage(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, imagePrefix) {
		return nil, fmt.Errorf("%w: image is not a data:image URI", common.ErrInvalidEntry)
	}
	_, payload, ok := strings.Cut(uri, base64Marker)
	if !ok {
		return nil, fmt.Errorf("%w: image data URI is not base64", common.ErrInvalidEntry)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: image payload: %v", common.ErrInvalidEntry, err)
	}
	return data, nil
}
