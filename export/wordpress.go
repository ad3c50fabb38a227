package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/EDWNKR/AI-BLOG-WRITER/config"
	"github.com/EDWNKR/AI-BLOG-WRITER/format"
)

const (
	wpPostsPath = "/wp-json/wp/v2/posts"
	wpMediaPath = "/wp-json/wp/v2/media"
)

type wpPostPayload struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Status        string `json:"status"`
	FeaturedMedia int    `json:"featured_media,omitempty"`
}

// wpResp doubles as the error envelope; WordPress error bodies carry
// code/message instead of id/link.
type wpResp struct {
	ID        int    `json:"id"`
	Link      string `json:"link"`
	SourceURL string `json:"source_url"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// WordPressExporter creates one draft post per export via the REST API,
// uploading the featured image first when one is present.
type WordPressExporter struct {
	cfg     config.WordPressConfig
	client  *http.Client
	verbose bool
	logger  *log.Logger
}

func NewWordPressExporter(cfg config.WordPressConfig, client *http.Client, verbose bool, logger *log.Logger) *WordPressExporter {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &WordPressExporter{
		cfg:     cfg,
		client:  client,
		verbose: verbose,
		logger:  logger,
	}
}

func (w *WordPressExporter) infof(format string, args ...interface{}) {
	if !w.verbose {
		return
	}
	w.logger.Printf("[INFO] "+format, args...)
}

func (w *WordPressExporter) Destination() Destination { return DestWordPress }

// Configured reports whether the adapter has credentials to work with.
func (w *WordPressExporter) Configured() bool { return w.cfg.Configured() }

// Export creates the draft post. Missing credentials fail immediately
// without any network traffic.
func (w *WordPressExporter) Export(ctx context.Context, post Post) Result {
	if !w.cfg.Configured() {
		return failure(DestWordPress, errors.New("wordpress credentials not configured; set WORDPRESS_URL, WORDPRESS_USERNAME, and WORDPRESS_PASSWORD"))
	}

	featuredMedia := 0
	if post.Image != nil && len(post.Image.Data) > 0 {
		id, err := w.uploadMedia(ctx, post)
		if err != nil {
			return failure(DestWordPress, err)
		}
		featuredMedia = id
		w.infof("Uploaded featured image -> media id %d", id)
	}

	link, err := w.createDraft(ctx, post, featuredMedia)
	if err != nil {
		return failure(DestWordPress, err)
	}
	w.infof("WordPress draft created: %s", link)
	return Result{Destination: DestWordPress, OK: true, URL: link}
}

// createDraft posts the content as a draft. WordPress renders HTML, so
// Markdown bodies are converted first; a conversion failure falls back to
// the raw Markdown rather than dropping the export.
func (w *WordPressExporter) createDraft(ctx context.Context, post Post, featuredMedia int) (string, error) {
	body := post.Content.Body
	if post.Content.Format == format.Markdown {
		html, err := format.MarkdownToHTML(body)
		if err == nil {
			body = html
		} else {
			w.infof("markdown conversion failed, sending raw markdown: %v", err)
		}
	}

	payload, err := json.Marshal(wpPostPayload{
		Title:         post.Title,
		Content:       body,
		Status:        "draft",
		FeaturedMedia: featuredMedia,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", w.endpoint(wpPostsPath), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(w.cfg.Username, w.cfg.Password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var data wpResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.ID == 0 {
		if data.Message != "" {
			return "", fmt.Errorf("failed to create wordpress draft: %s", data.Message)
		}
		return "", fmt.Errorf("failed to create wordpress draft: status %d", resp.StatusCode)
	}
	return data.Link, nil
}

func (w *WordPressExporter) uploadMedia(ctx context.Context, post Post) (int, error) {
	filename := strings.ReplaceAll(strings.TrimSpace(post.Title), " ", "_") + "_featured_image" + extForMIME(post.Image.MIME)

	req, err := http.NewRequestWithContext(ctx, "POST", w.endpoint(wpMediaPath), bytes.NewReader(post.Image.Data))
	if err != nil {
		return 0, err
	}
	req.SetBasicAuth(w.cfg.Username, w.cfg.Password)
	req.Header.Set("Content-Type", post.Image.MIME)
	req.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	resp, err := w.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var data wpResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, err
	}
	if data.ID == 0 {
		if data.Message != "" {
			return 0, fmt.Errorf("failed to upload featured image: %s", data.Message)
		}
		return 0, fmt.Errorf("failed to upload featured image: status %d", resp.StatusCode)
	}
	return data.ID, nil
}

func (w *WordPressExporter) endpoint(path string) string {
	return strings.TrimRight(w.cfg.URL, "/") + path
}

func extForMIME(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
