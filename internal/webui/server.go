// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package webui serves the passage fetcher page: a form posting
// passages and edition codes, rendered results with a red-letter
// toggle, and the analysis trace for debugging.
package webui

import (
	"bytes"
	"html/template"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/redletter/internal/passage"
	"github.com/pdiddy/redletter/pkg/types"
)

// Server handles the web UI routes.
type Server struct {
	Pipeline *passage.Pipeline
	Log      *zap.Logger

	tmpl *template.Template
}

// NewServer builds a Server. A nil logger is replaced with a no-op one.
func NewServer(p *passage.Pipeline, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Pipeline: p,
		Log:      log,
		tmpl:     template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Routes returns the UI's mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /{$}", s.withLogging(s.home))
	mux.HandleFunc("POST /{$}", s.withLogging(s.home))
	return mux
}

func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.Log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	}
}

// blockView is one edition's results for the template.
type blockView struct {
	Edition  string
	Passages []passageView
}

type passageView struct {
	Ref  string
	HTML template.HTML
}

type pageData struct {
	Passage      string
	Editions     string
	VerseNumbers bool
	RedLetter    bool
	Results      []blockView
	TraceLines   []string
}

// home renders the form and, on POST, runs the pipeline and renders
// results. Pipeline errors surface inline in the result boxes rather
// than as an error page, matching how partial batches behave.
func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	data := pageData{VerseNumbers: true, RedLetter: true}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		data.Passage = strings.TrimSpace(r.PostFormValue("passage"))
		data.Editions = strings.TrimSpace(r.PostFormValue("versions"))
		data.VerseNumbers = r.PostFormValue("include_verses") != ""
		data.RedLetter = r.PostFormValue("red_letter") != ""

		tr := passage.NewTrace(s.Log)
		blocks, err := s.Pipeline.FetchAll(r.Context(), passage.Request{
			Passages: SplitPassages(data.Passage),
			Editions: SplitEditions(data.Editions),
			Options: passage.Options{
				VerseNumbers: data.VerseNumbers,
				RedLetter:    data.RedLetter,
			},
		}, tr)
		if err != nil {
			s.Log.Warn("fetch completed with errors", zap.Error(err))
		}
		data.Results = toViews(blocks)
		data.TraceLines = tr.Lines()
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		s.Log.Error("rendering page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func toViews(blocks []types.EditionBlock) []blockView {
	views := make([]blockView, 0, len(blocks))
	for _, b := range blocks {
		view := blockView{Edition: b.Edition}
		for _, p := range b.Passages {
			view.Passages = append(view.Passages, passageView{
				Ref: p.Ref,
				// Passage markup is assembled from the source page's text
				// content plus our own wrappers; see render.Recolor.
				HTML: template.HTML(p.HTML),
			})
		}
		views = append(views, view)
	}
	return views
}

var editionSep = regexp.MustCompile(`[,\s]+`)

// SplitEditions splits an edition list on commas or whitespace and
// upper-cases the codes.
func SplitEditions(s string) []string {
	var out []string
	for _, e := range editionSep.Split(s, -1) {
		if e != "" {
			out = append(out, strings.ToUpper(e))
		}
	}
	return out
}

// SplitPassages splits a passage list on commas.
func SplitPassages(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
