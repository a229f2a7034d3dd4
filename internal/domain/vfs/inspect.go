package vfs

import (
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
)

// Info describes a node for the stat command
type Info struct {
	Path       string    `json:"path"`
	Kind       Kind      `json:"kind"`
	Size       int       `json:"size"`
	MIMEType   string    `json:"mime_type,omitempty"`
	Charset    string    `json:"charset,omitempty"`
	Children   int       `json:"children,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

var textDetector = chardet.NewTextDetector()

// Inspect returns metadata for path. Files are sniffed for content type
// and character set; directories report their immediate child count.
func (fs *FS) Inspect(path string) (Info, error) {
	node, err := fs.Stat(path)
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Path:       node.Path,
		Kind:       node.Kind,
		Size:       node.Size(),
		CreatedAt:  node.CreatedAt,
		ModifiedAt: node.ModifiedAt,
	}

	if node.IsDir() {
		entries, err := fs.List(node.Path)
		if err != nil {
			return Info{}, fmt.Errorf("failed to count children: %w", err)
		}
		info.Children = len(entries)
		return info, nil
	}

	data := []byte(node.Content)
	info.MIMEType = mimetype.Detect(data).String()
	if len(data) > 0 {
		if result, err := textDetector.DetectBest(data); err == nil {
			info.Charset = result.Charset
		}
	}
	return info, nil
}
