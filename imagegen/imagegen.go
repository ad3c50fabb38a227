// Package imagegen requests featured images from the image-generation API.
package imagegen

import (
	"context"
	"fmt"
	"strings"

	"github.com/EDWNKR/AI-BLOG-WRITER/apperr"
)

// Image is one generated image: the raw bytes plus the prompt that produced
// it. Optional per request; absent when generation was not asked for or
// failed.
type Image struct {
	Data   []byte `json:"-"`
	MIME   string `json:"mime"`
	Prompt string `json:"prompt"`
}

// Options selects the image model parameters.
type Options struct {
	Model   string
	Size    string
	Quality string
}

// Client abstracts the image API so it can be replaced or mocked.
type Client interface {
	Generate(ctx context.Context, prompt string) (*Image, error)
}

// ImageSpec describes the image portion of one blog request.
type ImageSpec struct {
	Enabled      bool
	CustomPrompt string
	Title        string
	Keywords     []string
}

// Fetch resolves the image for one request. When the user did not ask for an
// image it returns (nil, nil) without touching the API: an explicit no-image
// result, never a placeholder. Failures are reported, not retried.
func Fetch(ctx context.Context, c Client, spec ImageSpec) (*Image, error) {
	if !spec.Enabled {
		return nil, nil
	}
	if c == nil {
		return nil, apperr.UpstreamStatus("images", 0, "image client not configured")
	}
	return c.Generate(ctx, PromptFor(spec.Title, spec.Keywords, spec.CustomPrompt))
}

// PromptFor returns the prompt sent to the image API: a custom prompt is used
// verbatim; otherwise a descriptive sentence is derived from the blog title
// and up to three keywords.
func PromptFor(title string, keywords []string, custom string) string {
	if s := strings.TrimSpace(custom); s != "" {
		return s
	}
	prompt := fmt.Sprintf("Create a professional featured image for a blog post titled '%s'", title)
	if len(keywords) > 0 {
		topical := keywords
		if len(topical) > 3 {
			topical = topical[:3]
		}
		prompt += " about " + strings.Join(topical, ", ")
	}
	return prompt
}
