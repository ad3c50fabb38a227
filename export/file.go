package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/EDWNKR/AI-BLOG-WRITER/apperr"
)

// File is a downloadable serialization of generated content.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// BuildFile serializes a post for download. The filename is the title with
// spaces replaced by underscores plus the format's extension.
func BuildFile(post Post) (File, error) {
	if strings.TrimSpace(post.Content.Body) == "" {
		return File{}, apperr.NewInput("content", "nothing to export")
	}
	name := strings.ReplaceAll(strings.TrimSpace(post.Title), " ", "_")
	if name == "" {
		name = "blog_post"
	}
	return File{
		Name:        name + post.Content.Format.Ext(),
		ContentType: post.Content.Format.ContentType(),
		Data:        []byte(post.Content.Body),
	}, nil
}

// FileExporter writes the download file into a local directory. It backs the
// command line flow; the HTTP server streams BuildFile output directly.
type FileExporter struct {
	Dir string
}

func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{Dir: dir}
}

func (e *FileExporter) Destination() Destination { return DestFile }

func (e *FileExporter) Export(_ context.Context, post Post) Result {
	f, err := BuildFile(post)
	if err != nil {
		return failure(DestFile, err)
	}
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, f.Name)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return failure(DestFile, err)
	}
	return Result{Destination: DestFile, OK: true, Filename: path}
}
