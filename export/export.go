// Package export sends generated blog content to its destinations: a local
// file download, a Notion database page, or a WordPress draft post. Each
// adapter is independent and runs only on explicit user action; a failure in
// one never affects another.
package export

import (
	"context"
	"strings"

	"github.com/EDWNKR/AI-BLOG-WRITER/apperr"
	"github.com/EDWNKR/AI-BLOG-WRITER/format"
	"github.com/EDWNKR/AI-BLOG-WRITER/imagegen"
)

// Destination identifies one export target.
type Destination string

const (
	DestFile      Destination = "file"
	DestNotion    Destination = "notion"
	DestWordPress Destination = "wordpress"
)

// Destinations lists the supported targets in display order.
func Destinations() []Destination {
	return []Destination{DestFile, DestNotion, DestWordPress}
}

// ParseDestination maps user input onto the closed destination set.
func ParseDestination(s string) (Destination, error) {
	d := Destination(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Destinations() {
		if d == known {
			return d, nil
		}
	}
	return "", apperr.NewInput("destination", "unknown export destination "+string(d))
}

// Post is the unit of content handed to an adapter. The image is optional.
type Post struct {
	Title   string
	Content format.Content
	Image   *imagegen.Image
}

// Result reports the outcome of one adapter invocation. Failures carry the
// underlying error message verbatim so the user sees what the platform said.
// Results are ephemeral and never persisted.
type Result struct {
	Destination Destination `json:"destination"`
	OK          bool        `json:"ok"`
	URL         string      `json:"url,omitempty"`
	Filename    string      `json:"filename,omitempty"`
	Message     string      `json:"message,omitempty"`
}

// Exporter is one destination adapter.
type Exporter interface {
	Destination() Destination
	Export(ctx context.Context, post Post) Result
}

func failure(d Destination, err error) Result {
	return Result{Destination: d, Message: err.Error()}
}
