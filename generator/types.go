package generator

import (
	"strings"
	"time"

	"github.com/EDWNKR/AI-BLOG-WRITER/apperr"
	"github.com/EDWNKR/AI-BLOG-WRITER/format"
)

// Tone is the writing voice requested for a post.
type Tone string

const (
	ToneProfessional   Tone = "professional"
	ToneCasual         Tone = "casual"
	ToneHumorous       Tone = "humorous"
	ToneEducational    Tone = "educational"
	ToneConversational Tone = "conversational"
)

// Tones lists the closed tone set in display order.
func Tones() []Tone {
	return []Tone{ToneProfessional, ToneCasual, ToneHumorous, ToneEducational, ToneConversational}
}

// ParseTone maps user input onto the closed tone set.
func ParseTone(s string) (Tone, error) {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return ToneProfessional, nil
	}
	for _, known := range Tones() {
		if t == known {
			return t, nil
		}
	}
	return ToneProfessional, apperr.NewInput("tone", "unknown tone "+string(t))
}

// Length is the requested article size, mapped to an approximate word target.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

var lengthWords = map[Length]int{
	LengthShort:  500,
	LengthMedium: 1000,
	LengthLong:   1500,
}

// Lengths lists the closed length set in ascending order.
func Lengths() []Length {
	return []Length{LengthShort, LengthMedium, LengthLong}
}

// TargetWords returns the approximate word count for the bucket.
func (l Length) TargetWords() int {
	if n, ok := lengthWords[l]; ok {
		return n
	}
	return lengthWords[LengthMedium]
}

// ParseLength maps user input onto the closed length set.
func ParseLength(s string) (Length, error) {
	l := Length(strings.ToLower(strings.TrimSpace(s)))
	if l == "" {
		return LengthMedium, nil
	}
	for _, known := range Lengths() {
		if l == known {
			return l, nil
		}
	}
	return LengthMedium, apperr.NewInput("length", "unknown length "+string(l))
}

// NearestLength clamps an arbitrary word target (including zero or negative
// input) to the nearest valid bucket.
func NearestLength(words int) Length {
	best := LengthShort
	bestDiff := -1
	for _, l := range Lengths() {
		d := l.TargetWords() - words
		if d < 0 {
			d = -d
		}
		if bestDiff == -1 || d < bestDiff {
			best, bestDiff = l, d
		}
	}
	return best
}

// BlogRequest is the full set of user-chosen settings for one generation
// attempt. Created fresh per submission and treated as immutable once handed
// to the prompt builder.
type BlogRequest struct {
	Title       string
	Keywords    []string // insertion order preserved
	Tone        Tone
	Length      Length
	Words       int // optional explicit target, clamped to the nearest bucket
	ImagePrompt string
	WithImage   bool
	Format      format.Format
}

// Normalize trims and deduplicates the request fields and applies enum
// defaults. A missing title is the only hard input error.
func (r BlogRequest) Normalize() (BlogRequest, error) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return r, apperr.NewInput("title", "title is required")
	}

	seen := make(map[string]struct{}, len(r.Keywords))
	keywords := make([]string, 0, len(r.Keywords))
	for _, k := range r.Keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		key := strings.ToLower(k)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keywords = append(keywords, k)
	}
	r.Keywords = keywords

	r.Tone, _ = ParseTone(string(r.Tone))
	r.Length, _ = ParseLength(string(r.Length))
	if r.Format != format.HTML {
		r.Format = format.Markdown
	}
	r.ImagePrompt = strings.TrimSpace(r.ImagePrompt)
	return r, nil
}

// LengthBucket resolves the effective bucket: an explicit word target wins
// and is clamped, otherwise the chosen Length applies.
func (r BlogRequest) LengthBucket() Length {
	if r.Words != 0 {
		return NearestLength(r.Words)
	}
	return r.Length
}

// TargetWords resolves the approximate word target for the request.
func (r BlogRequest) TargetWords() int {
	return r.LengthBucket().TargetWords()
}

// Turn records one generation or revision round.
type Turn struct {
	Comment   string         `json:"comment"`
	Summary   string         `json:"summary"`
	Content   format.Content `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
}
