package imagegen

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type countingClient struct {
	calls  int
	prompt string
	err    error
}

func (c *countingClient) Generate(_ context.Context, prompt string) (*Image, error) {
	c.calls++
	c.prompt = prompt
	if c.err != nil {
		return nil, c.err
	}
	return &Image{Data: []byte{1}, MIME: "image/png", Prompt: prompt}, nil
}

func TestPromptForDerived(t *testing.T) {
	got := PromptFor("Local SEO Guide", []string{"local seo", "maps", "reviews", "extra"}, "")
	if !strings.Contains(got, "Local SEO Guide") {
		t.Fatalf("derived prompt missing title: %q", got)
	}
	if !strings.Contains(got, "local seo, maps, reviews") {
		t.Fatalf("derived prompt missing first three keywords: %q", got)
	}
	if strings.Contains(got, "extra") {
		t.Fatalf("derived prompt must cap keywords at three: %q", got)
	}
}

func TestPromptForNoKeywords(t *testing.T) {
	got := PromptFor("Standalone Title", nil, "")
	if strings.Contains(got, " about ") {
		t.Fatalf("keyword clause present without keywords: %q", got)
	}
	if !strings.Contains(got, "'Standalone Title'") {
		t.Fatalf("derived prompt missing title: %q", got)
	}
}

func TestPromptForCustomWinsVerbatim(t *testing.T) {
	custom := "a watercolor fox reading a newspaper"
	got := PromptFor("Ignored Title", []string{"ignored"}, custom)
	if got != custom {
		t.Fatalf("custom prompt not used verbatim: %q", got)
	}
}

func TestFetchDisabledSkipsClient(t *testing.T) {
	c := &countingClient{}
	img, err := Fetch(context.Background(), c, ImageSpec{Enabled: false, Title: "t"})
	if err != nil {
		t.Fatal(err)
	}
	if img != nil {
		t.Fatalf("expected explicit no-image result, got %+v", img)
	}
	if c.calls != 0 {
		t.Fatalf("client called %d times for a disabled image", c.calls)
	}
}

func TestFetchUsesDerivedPrompt(t *testing.T) {
	c := &countingClient{}
	img, err := Fetch(context.Background(), c, ImageSpec{
		Enabled:  true,
		Title:    "Local SEO Guide",
		Keywords: []string{"local seo"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if img == nil || len(img.Data) == 0 {
		t.Fatal("expected an image")
	}
	if c.calls != 1 {
		t.Fatalf("calls=%d", c.calls)
	}
	if !strings.Contains(c.prompt, "Local SEO Guide") {
		t.Fatalf("prompt=%q", c.prompt)
	}
}

func TestFetchSurfacesClientError(t *testing.T) {
	c := &countingClient{err: errors.New("content policy violation")}
	_, err := Fetch(context.Background(), c, ImageSpec{Enabled: true, Title: "t"})
	if err == nil || !strings.Contains(err.Error(), "content policy violation") {
		t.Fatalf("expected the client error verbatim, got %v", err)
	}
}

func TestFetchNilClient(t *testing.T) {
	if _, err := Fetch(context.Background(), nil, ImageSpec{Enabled: true, Title: "t"}); err == nil {
		t.Fatal("expected an error for a nil client")
	}
}

func TestMockClient(t *testing.T) {
	img, err := MockClient{}.Generate(context.Background(), "any prompt")
	if err != nil {
		t.Fatal(err)
	}
	if len(img.Data) == 0 || img.MIME != "image/png" || img.Prompt != "any prompt" {
		t.Fatalf("unexpected mock image: %+v", img)
	}
}
