package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/EDWNKR/AI-BLOG-WRITER/config"
	"github.com/EDWNKR/AI-BLOG-WRITER/export"
	"github.com/EDWNKR/AI-BLOG-WRITER/format"
	"github.com/EDWNKR/AI-BLOG-WRITER/generator"
	"github.com/EDWNKR/AI-BLOG-WRITER/imagegen"
	"github.com/EDWNKR/AI-BLOG-WRITER/server"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	envFile := flag.String("env", "", "path to .env file (default: .env in the working directory)")
	title := flag.String("title", "", "blog post title")
	keywords := flag.String("keywords", "", "comma-separated SEO keywords")
	tone := flag.String("tone", "", "writing tone (professional, casual, humorous, educational, conversational)")
	length := flag.String("length", "", "article length (short, medium, long)")
	words := flag.Int("words", 0, "explicit word target (overrides --length, clamped to the nearest bucket)")
	outFormat := flag.String("format", "markdown", "output format (markdown or html)")
	withImage := flag.Bool("image", false, "generate a featured image")
	imagePrompt := flag.String("image-prompt", "", "custom image prompt (derived from the title when empty)")
	outDir := flag.String("out", ".", "directory for the generated file")
	exports := flag.String("export", "", "comma-separated extra destinations (notion, wordpress)")
	mock := flag.Bool("mock", false, "use mock clients instead of real APIs")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides SERVER_ADDR)")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	llm, err := buildLLM(cfg, *mock)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	agent, err := generator.NewAgent(llm)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	images, err := buildImageClient(cfg, *mock)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Web server mode
	if *serve {
		srv, err := server.New(agent, images, buildExporters(cfg), verbose, log.Default())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		log.Printf("Starting web server on %s", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if *title == "" {
		fmt.Fprintln(os.Stderr, "--title is required")
		os.Exit(1)
	}

	req, err := buildRequest(*title, *keywords, *tone, *length, *words, *outFormat, *withImage, *imagePrompt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	sess := generator.NewSession(uuid.NewString(), req, agent)
	log.Printf("[cli] generating title=%q tone=%s length=%s format=%s", req.Title, req.Tone, req.LengthBucket(), req.Format)
	content, err := sess.Propose(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Printf("[cli] generated %d words", content.WordCount)

	if req.WithImage {
		fetchImage(ctx, images, sess, *outDir)
	}
	for _, msg := range sess.Warnings {
		fmt.Fprintln(os.Stderr, "warning: "+msg)
	}

	post := export.Post{Title: req.Title, Content: content, Image: sess.Image}
	fileResult := export.NewFileExporter(*outDir).Export(ctx, post)
	if !fileResult.OK {
		fmt.Fprintln(os.Stderr, fileResult.Message)
		os.Exit(1)
	}
	log.Printf("[cli] wrote %s", fileResult.Filename)

	runExports(ctx, cfg, post, *exports)

	fmt.Println(fileResult.Filename)
}

// fetchImage runs the optional image step; failures are warnings, never fatal.
func fetchImage(ctx context.Context, images imagegen.Client, sess *generator.Session, outDir string) {
	if images == nil {
		sess.Warn("image generation not configured")
		return
	}
	img, err := imagegen.Fetch(ctx, images, imagegen.ImageSpec{
		Enabled:      true,
		CustomPrompt: sess.Request.ImagePrompt,
		Title:        sess.Request.Title,
		Keywords:     sess.Request.Keywords,
	})
	if err != nil {
		sess.Warn("image generation failed: " + err.Error())
		return
	}
	sess.Image = img

	name := strings.ReplaceAll(strings.TrimSpace(sess.Request.Title), " ", "_") + "_featured_image.png"
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		sess.Warn("could not save image: " + err.Error())
		return
	}
	log.Printf("[cli] wrote %s", path)
}

// runExports sends the post to each requested destination. One failing
// destination never blocks another.
func runExports(ctx context.Context, cfg config.Config, post export.Post, list string) {
	if strings.TrimSpace(list) == "" {
		return
	}
	byDest := make(map[export.Destination]export.Exporter)
	for _, e := range buildExporters(cfg) {
		byDest[e.Destination()] = e
	}
	for _, name := range strings.Split(list, ",") {
		dest, err := export.ParseDestination(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if dest == export.DestFile {
			continue // always written above
		}
		result := byDest[dest].Export(ctx, post)
		if result.OK {
			fmt.Printf("exported to %s: %s\n", result.Destination, result.URL)
		} else {
			fmt.Fprintf(os.Stderr, "export to %s failed: %s\n", dest, result.Message)
		}
	}
}

func buildRequest(title, keywords, tone, length string, words int, outFormat string, withImage bool, imagePrompt string) (generator.BlogRequest, error) {
	parsedTone, err := generator.ParseTone(tone)
	if err != nil {
		return generator.BlogRequest{}, err
	}
	parsedLength, err := generator.ParseLength(length)
	if err != nil {
		return generator.BlogRequest{}, err
	}
	parsedFormat, err := format.ParseFormat(outFormat)
	if err != nil {
		return generator.BlogRequest{}, err
	}

	var kws []string
	for _, k := range strings.Split(keywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			kws = append(kws, k)
		}
	}

	return generator.BlogRequest{
		Title:       title,
		Keywords:    kws,
		Tone:        parsedTone,
		Length:      parsedLength,
		Words:       words,
		ImagePrompt: imagePrompt,
		WithImage:   withImage,
		Format:      parsedFormat,
	}.Normalize()
}

func buildLLM(cfg config.Config, mock bool) (generator.LLMClient, error) {
	if mock {
		return generator.MockLLM{}, nil
	}
	settings := &generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	}
	switch cfg.LLM.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible endpoint; the base URL is required.
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires OPENAI_BASE_URL (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}

// buildImageClient returns nil when image generation cannot run; the session
// records a warning instead of failing.
func buildImageClient(cfg config.Config, mock bool) (imagegen.Client, error) {
	if mock {
		return imagegen.MockClient{}, nil
	}
	if cfg.LLM.APIKey == "" {
		return nil, nil
	}
	baseURL := ""
	if cfg.LLM.Provider == "openai" {
		baseURL = cfg.LLM.BaseURL
	}
	return imagegen.NewOpenAIImageClient(cfg.LLM.APIKey, baseURL, imagegen.Options{
		Model:   cfg.Image.Model,
		Size:    cfg.Image.Size,
		Quality: cfg.Image.Quality,
	}, nil, verbose, log.Default())
}

func buildExporters(cfg config.Config) []export.Exporter {
	return []export.Exporter{
		export.NewNotionExporter(cfg.Notion, nil, verbose, log.Default()),
		export.NewWordPressExporter(cfg.WordPress, nil, verbose, log.Default()),
	}
}
