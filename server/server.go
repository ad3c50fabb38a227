package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/EDWNKR/AI-BLOG-WRITER/apperr"
	"github.com/EDWNKR/AI-BLOG-WRITER/export"
	"github.com/EDWNKR/AI-BLOG-WRITER/format"
	"github.com/EDWNKR/AI-BLOG-WRITER/generator"
	"github.com/EDWNKR/AI-BLOG-WRITER/imagegen"
)

//go:embed web
var embeddedStatic embed.FS

// requestTimeout bounds each upstream round trip (generation, image, export).
const requestTimeout = 60 * time.Second

type Server struct {
	agent     *generator.Agent
	images    imagegen.Client
	exporters map[export.Destination]export.Exporter
	store     *sessionStore
	staticFS  http.Handler
	logger    *log.Logger
	verbose   bool
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*generator.Session
}

func newStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*generator.Session)}
}

func (s *sessionStore) set(id string, sess *generator.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
}

func (s *sessionStore) get(id string) (*generator.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// New wires the HTTP layer. images may be nil when image generation is not
// configured; exporters may be empty, in which case only file export works.
func New(agent *generator.Agent, images imagegen.Client, exporters []export.Exporter, verbose bool, logger *log.Logger) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if logger == nil {
		logger = log.Default()
	}

	sub, err := fs.Sub(embeddedStatic, "web")
	if err != nil {
		return nil, err
	}

	byDest := make(map[export.Destination]export.Exporter, len(exporters))
	for _, e := range exporters {
		byDest[e.Destination()] = e
	}

	return &Server{
		agent:     agent,
		images:    images,
		exporters: byDest,
		store:     newStore(),
		staticFS:  http.FileServer(http.FS(sub)),
		logger:    logger,
		verbose:   verbose,
	}, nil
}

func (s *Server) infof(format string, args ...interface{}) {
	if !s.verbose {
		return
	}
	s.logger.Printf("[INFO] "+format, args...)
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/options", s.handleOptions)
	mux.HandleFunc("/api/blogs", s.handleBlogCreate)
	mux.HandleFunc("/api/blogs/", s.handleBlogByID)
	mux.Handle("/", s.staticHandler())
	return s.logMiddleware(mux)
}

func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// fall back to index.html for SPA-ish behavior
		upath := r.URL.Path
		if upath == "/" || !strings.HasPrefix(upath, "/api/") {
			p := upath
			if p == "/" {
				p = "/index.html"
			}
			r.URL.Path = p
			s.staticFS.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// --- Handlers ---

type blogCreateReq struct {
	Title       string   `json:"title"`
	Keywords    []string `json:"keywords"`
	Tone        string   `json:"tone"`
	Length      string   `json:"length"`
	Words       int      `json:"words"`
	Format      string   `json:"format"`
	WithImage   bool     `json:"with_image"`
	ImagePrompt string   `json:"image_prompt"`
}

type blogResp struct {
	SessionID string           `json:"session_id"`
	Title     string           `json:"title"`
	Content   format.Content   `json:"content"`
	HasImage  bool             `json:"has_image"`
	ImageURL  string           `json:"image_url,omitempty"`
	Warnings  []string         `json:"warnings,omitempty"`
	History   []generator.Turn `json:"history"`
}

type reviseReq struct {
	Comment string `json:"comment"`
}

type exportReq struct {
	Destination string `json:"destination"`
}

type lengthOption struct {
	Value generator.Length `json:"value"`
	Words int              `json:"words"`
}

type optionsResp struct {
	Tones        []generator.Tone     `json:"tones"`
	Lengths      []lengthOption       `json:"lengths"`
	Formats      []format.Format      `json:"formats"`
	Destinations []export.Destination `json:"destinations"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	lengths := make([]lengthOption, 0, 3)
	for _, l := range generator.Lengths() {
		lengths = append(lengths, lengthOption{Value: l, Words: l.TargetWords()})
	}
	writeJSON(w, optionsResp{
		Tones:        generator.Tones(),
		Lengths:      lengths,
		Formats:      []format.Format{format.Markdown, format.HTML},
		Destinations: s.availableDestinations(),
	})
}

// availableDestinations reports where content can actually go right now: the
// file download always works, the remote adapters only when registered and
// holding credentials.
func (s *Server) availableDestinations() []export.Destination {
	dests := []export.Destination{export.DestFile}
	for _, d := range export.Destinations() {
		if d == export.DestFile {
			continue
		}
		e, ok := s.exporters[d]
		if !ok {
			continue
		}
		if c, ok := e.(interface{ Configured() bool }); ok && !c.Configured() {
			continue
		}
		dests = append(dests, d)
	}
	return dests
}

func (s *Server) handleBlogCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req blogCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.NewInput("body", err.Error()))
		return
	}

	blogReq, warnings, err := s.buildRequest(req)
	if err != nil {
		writeError(w, err)
		return
	}

	id := uuid.NewString()
	sess := generator.NewSession(id, blogReq, s.agent)
	for _, msg := range warnings {
		sess.Warn(msg)
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if _, err := sess.Propose(ctx); err != nil {
		writeError(w, err)
		return
	}
	s.infof("generated draft for session %s (%d words)", id, sess.Content.WordCount)

	s.fetchImage(ctx, sess)
	s.store.set(id, sess)
	writeJSON(w, s.blogResponse(sess))
}

// fetchImage runs the optional image step. Failures become warnings on the
// session; the generated text is never discarded because of them.
func (s *Server) fetchImage(ctx context.Context, sess *generator.Session) {
	if !sess.Request.WithImage {
		return
	}
	if s.images == nil {
		sess.Warn("image generation not configured")
		return
	}
	img, err := imagegen.Fetch(ctx, s.images, imagegen.ImageSpec{
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
	s.infof("generated featured image for session %s (%d bytes)", sess.ID, len(img.Data))
}

func (s *Server) handleBlogByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/blogs/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}

	sess, ok := s.store.get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	switch action {
	case "":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, s.blogResponse(sess))
	case "revise":
		s.handleRevise(w, r, sess)
	case "export":
		s.handleExport(w, r, sess)
	case "download":
		s.handleDownload(w, r, sess)
	case "image":
		s.handleImage(w, r, sess)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleRevise(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req reviseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.NewInput("body", err.Error()))
		return
	}
	if strings.TrimSpace(req.Comment) == "" {
		writeError(w, apperr.NewInput("comment", "comment is required"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if _, err := sess.Revise(ctx, req.Comment); err != nil {
		writeError(w, err)
		return
	}
	s.infof("revised draft for session %s", sess.ID)
	writeJSON(w, s.blogResponse(sess))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req exportReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.NewInput("body", err.Error()))
		return
	}
	dest, err := export.ParseDestination(req.Destination)
	if err != nil {
		writeError(w, err)
		return
	}

	post := export.Post{Title: sess.Request.Title, Content: sess.Content, Image: sess.Image}

	// File export is served as a download rather than written server-side.
	if dest == export.DestFile {
		f, err := export.BuildFile(post)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, export.Result{
			Destination: export.DestFile,
			OK:          true,
			Filename:    f.Name,
			URL:         "/api/blogs/" + sess.ID + "/download",
		})
		return
	}

	exp, ok := s.exporters[dest]
	if !ok {
		writeJSON(w, export.Result{Destination: dest, Message: string(dest) + " export not configured"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	result := exp.Export(ctx, post)
	if result.OK {
		s.infof("exported session %s to %s", sess.ID, dest)
	} else {
		s.logger.Printf("[WARN] export to %s failed: %s", dest, result.Message)
	}
	writeJSON(w, result)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f, err := export.BuildFile(export.Post{Title: sess.Request.Title, Content: sess.Content})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Name+`"`)
	_, _ = w.Write(f.Data)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if sess.Image == nil || len(sess.Image.Data) == 0 {
		http.Error(w, "no image for this session", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", sess.Image.MIME)
	_, _ = w.Write(sess.Image.Data)
}

// buildRequest maps the wire request onto a normalized BlogRequest. Unknown
// enum values degrade to defaults with a warning instead of failing.
func (s *Server) buildRequest(req blogCreateReq) (generator.BlogRequest, []string, error) {
	var warnings []string

	tone, err := generator.ParseTone(req.Tone)
	if err != nil {
		warnings = append(warnings, err.Error()+", defaulted to "+string(tone))
	}
	length, err := generator.ParseLength(req.Length)
	if err != nil {
		warnings = append(warnings, err.Error()+", defaulted to "+string(length))
	}
	outFormat, err := format.ParseFormat(req.Format)
	if err != nil {
		outFormat = format.Markdown
		warnings = append(warnings, err.Error()+", defaulted to "+string(outFormat))
	}

	blogReq, err := generator.BlogRequest{
		Title:       req.Title,
		Keywords:    req.Keywords,
		Tone:        tone,
		Length:      length,
		Words:       req.Words,
		ImagePrompt: req.ImagePrompt,
		WithImage:   req.WithImage,
		Format:      outFormat,
	}.Normalize()
	if err != nil {
		return generator.BlogRequest{}, nil, err
	}
	return blogReq, warnings, nil
}

func (s *Server) blogResponse(sess *generator.Session) blogResp {
	resp := blogResp{
		SessionID: sess.ID,
		Title:     sess.Request.Title,
		Content:   sess.Content,
		Warnings:  sess.Warnings,
		History:   sess.History,
	}
	if sess.Image != nil {
		resp.HasImage = true
		resp.ImageURL = "/api/blogs/" + sess.ID + "/image"
	}
	return resp
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if _, ok := apperr.AsInput(err); ok {
		status = http.StatusBadRequest
	} else if _, ok := apperr.AsUpstream(err); ok {
		status = http.StatusBadGateway
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
