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
)

const (
	notionCreatePageURL = "https://api.notion.com/v1/pages"
	notionVersion       = "2022-06-28"

	// Notion caps rich_text at 2000 characters per block and 100 children
	// per create call.
	notionTextLimit  = 2000
	notionBlockLimit = 100
)

type notionText struct {
	Type string         `json:"type"`
	Text notionTextBody `json:"text"`
}

type notionTextBody struct {
	Content string `json:"content"`
}

type notionSelect struct {
	Name string `json:"name"`
}

type notionTitleProp struct {
	Title []notionText `json:"title"`
}

type notionSelectProp struct {
	Select notionSelect `json:"select"`
}

type notionProperties struct {
	Title  notionTitleProp   `json:"title"`
	Status *notionSelectProp `json:"Status,omitempty"`
}

type notionParent struct {
	DatabaseID string `json:"database_id"`
}

type notionParagraph struct {
	RichText []notionText `json:"rich_text"`
}

type notionBlock struct {
	Object    string          `json:"object"`
	Type      string          `json:"type"`
	Paragraph notionParagraph `json:"paragraph"`
}

type notionCreatePayload struct {
	Parent     notionParent     `json:"parent"`
	Properties notionProperties `json:"properties"`
	Children   []notionBlock    `json:"children,omitempty"`
}

// notionCreateResp doubles as the error envelope; Notion error bodies carry
// object "error" plus code/message.
type notionCreateResp struct {
	Object  string `json:"object"`
	ID      string `json:"id"`
	URL     string `json:"url"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NotionExporter creates one page per export in the configured database. The
// page lands with a Draft status select so it is easy to triage.
type NotionExporter struct {
	cfg     config.NotionConfig
	client  *http.Client
	verbose bool
	logger  *log.Logger
}

func NewNotionExporter(cfg config.NotionConfig, client *http.Client, verbose bool, logger *log.Logger) *NotionExporter {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &NotionExporter{
		cfg:     cfg,
		client:  client,
		verbose: verbose,
		logger:  logger,
	}
}

func (n *NotionExporter) infof(format string, args ...interface{}) {
	if !n.verbose {
		return
	}
	n.logger.Printf("[INFO] "+format, args...)
}

func (n *NotionExporter) Destination() Destination { return DestNotion }

// Configured reports whether the adapter has credentials to work with.
func (n *NotionExporter) Configured() bool { return n.cfg.Configured() }

// Export creates the page. Missing credentials fail immediately without any
// network traffic.
func (n *NotionExporter) Export(ctx context.Context, post Post) Result {
	if !n.cfg.Configured() {
		return failure(DestNotion, errors.New("notion credentials not configured; set NOTION_API_KEY and NOTION_DATABASE_ID"))
	}
	url, err := n.createPage(ctx, post)
	if err != nil {
		return failure(DestNotion, err)
	}
	n.infof("Notion page created: %s", url)
	return Result{Destination: DestNotion, OK: true, URL: url}
}

func (n *NotionExporter) createPage(ctx context.Context, post Post) (string, error) {
	payload := notionCreatePayload{
		Parent: notionParent{DatabaseID: n.cfg.DatabaseID},
		Properties: notionProperties{
			Title: notionTitleProp{
				Title: []notionText{newNotionText(post.Title)},
			},
			Status: &notionSelectProp{Select: notionSelect{Name: "Draft"}},
		},
		Children: paragraphBlocks(post.Content.Body),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := notionCreatePageURL
	if n.cfg.BaseURL != "" {
		endpoint = strings.TrimRight(n.cfg.BaseURL, "/") + "/v1/pages"
	}
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+n.cfg.APIKey)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var data notionCreateResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.ID == "" || data.Object == "error" {
		if data.Message != "" {
			return "", fmt.Errorf("failed to create notion page: %s", data.Message)
		}
		return "", fmt.Errorf("failed to create notion page: status %d", resp.StatusCode)
	}
	return data.URL, nil
}

func newNotionText(s string) notionText {
	return notionText{Type: "text", Text: notionTextBody{Content: s}}
}

// paragraphBlocks splits the body on blank lines and folds each chunk into a
// paragraph block, respecting the per-block text limit and the per-request
// block cap.
func paragraphBlocks(body string) []notionBlock {
	var blocks []notionBlock
	for _, para := range strings.Split(body, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		for _, chunk := range splitRunes(para, notionTextLimit) {
			blocks = append(blocks, notionBlock{
				Object:    "block",
				Type:      "paragraph",
				Paragraph: notionParagraph{RichText: []notionText{newNotionText(chunk)}},
			})
			if len(blocks) == notionBlockLimit {
				return blocks
			}
		}
	}
	return blocks
}

func splitRunes(s string, limit int) []string {
	runes := []rune(s)
	if len(runes) <= limit {
		return []string{s}
	}
	var parts []string
	for len(runes) > limit {
		parts = append(parts, string(runes[:limit]))
		runes = runes[limit:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
