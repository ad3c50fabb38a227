package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/EDWNKR/AI-BLOG-WRITER/apperr"
)

// OpenAIImageClient implements Client using the official openai-go SDK
// (images API). Base64 responses are preferred so no second fetch is needed;
// URL responses are downloaded as a fallback.
type OpenAIImageClient struct {
	opts    Options
	reqOpts []option.RequestOption
	httpc   *http.Client
	logger  *log.Logger
	verbose bool
}

// NewOpenAIImageClient builds the image client. httpc is used only for URL
// downloads and defaults to a 60s-timeout client.
func NewOpenAIImageClient(apiKey, baseURL string, opts Options, httpc *http.Client, verbose bool, logger *log.Logger) (*OpenAIImageClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing; provide OPENAI_API_KEY")
	}
	if opts.Model == "" {
		opts.Model = "dall-e-3"
	}
	if opts.Size == "" {
		opts.Size = "1024x1024"
	}
	if opts.Quality == "" {
		opts.Quality = "standard"
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &OpenAIImageClient{
		opts:    opts,
		reqOpts: reqOpts,
		httpc:   httpc,
		logger:  logger,
		verbose: verbose,
	}, nil
}

func (c *OpenAIImageClient) infof(format string, args ...interface{}) {
	if !c.verbose {
		return
	}
	c.logger.Printf("[INFO] "+format, args...)
}

// Generate requests one image for prompt and returns its bytes.
func (c *OpenAIImageClient) Generate(ctx context.Context, prompt string) (*Image, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, apperr.NewInput("image_prompt", "prompt is required")
	}

	client := openai.NewClient(c.reqOpts...)
	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(c.opts.Model),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize(c.opts.Size),
		Quality:        openai.ImageGenerateParamsQuality(c.opts.Quality),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return nil, apperr.Upstream("images", err)
	}
	if len(resp.Data) == 0 {
		return nil, apperr.UpstreamStatus("images", 0, "no image returned")
	}

	data := resp.Data[0]
	if data.B64JSON != "" {
		raw, err := base64.StdEncoding.DecodeString(data.B64JSON)
		if err != nil {
			return nil, apperr.Upstream("images", err)
		}
		c.infof("generated image: %d bytes", len(raw))
		return &Image{Data: raw, MIME: "image/png", Prompt: prompt}, nil
	}
	if data.URL != "" {
		return c.download(ctx, data.URL, prompt)
	}
	return nil, apperr.UpstreamStatus("images", 0, "response contained neither image data nor url")
}

func (c *OpenAIImageClient) download(ctx context.Context, url, prompt string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Upstream("images", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, apperr.Upstream("images", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.UpstreamStatus("images", resp.StatusCode,
			fmt.Sprintf("failed to download image: %d", resp.StatusCode))
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Upstream("images", err)
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" || strings.HasPrefix(mime, "application/octet-stream") {
		mime = "image/png"
	}
	c.infof("downloaded image %s: %d bytes", url, len(raw))
	return &Image{Data: raw, MIME: mime, Prompt: prompt}, nil
}
