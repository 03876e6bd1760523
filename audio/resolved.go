package audio

import (
	"path/filepath"
	"strings"
)

// Resolved is audio ready for the format gate. Data is never empty.
type Resolved struct {
	Data     []byte
	Filename string
	// ContentType is the sniffed MIME type, used for uploads.
	ContentType string
}

// Ext returns the lower-case filename extension without the dot, or "".
func (r *Resolved) Ext() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(r.Filename), "."))
}

// Size returns len(Data).
func (r *Resolved) Size() int { return len(r.Data) }
