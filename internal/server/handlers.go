package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aerolab/skewt/pkg/archive"
	"github.com/aerolab/skewt/pkg/errors"
	skewtio "github.com/aerolab/skewt/pkg/io"
	"github.com/aerolab/skewt/pkg/pipeline"
)

// maxBodySize caps uploaded sounding documents at 4 MiB.
const maxBodySize = 4 << 20

// renderRequest is the body of POST /v1/render. The document is the
// sounding JSON itself; the remaining fields override the configured
// chart defaults.
type renderRequest struct {
	Document  json.RawMessage `json:"document"`
	Width     float64         `json:"width,omitempty"`
	Height    float64         `json:"height,omitempty"`
	SkewAngle float64         `json:"skew_angle,omitempty"`
	TMin      float64         `json:"t_min,omitempty"`
	TMax      float64         `json:"t_max,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	BarbSize  float64         `json:"barb_size,omitempty"`
	Formats   []string        `json:"formats,omitempty"`
	Scale     float64         `json:"scale,omitempty"`
	Refresh   bool            `json:"refresh,omitempty"`
}

// renderResponse is returned when more than one format is requested.
// Artifact bytes are base64-encoded by the JSON marshaller.
type renderResponse struct {
	Artifacts map[string][]byte `json:"artifacts"`
	SceneHit  bool              `json:"scene_cache_hit"`
	RenderHit bool              `json:"render_cache_hit"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return
	}
	if len(req.Document) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "document is required"))
		return
	}

	opts := s.pipelineOptions(req)
	s.renderAndRespond(w, r, opts)
}

func (s *Server) handleCreateSounding(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "read body: %v", err))
		return
	}

	// Parse up front so the archive never stores an unrenderable document.
	p, err := skewtio.ReadJSON(bytes.NewReader(body))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidProfile, err, "parse sounding"))
		return
	}

	doc := archive.New(p.Site, p.Source, body, s.archiveTTL)
	if err := s.store.Put(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("archived sounding", "id", doc.ID, "site", doc.Site, "samples", len(p.Samples))
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetSounding(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleRenderSounding(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	req := renderRequest{Document: doc.Body}
	q := r.URL.Query()
	if v := q.Get("format"); v != "" {
		req.Formats = []string{v}
	}
	req.Width = queryFloat(q.Get("width"))
	req.Height = queryFloat(q.Get("height"))
	req.SkewAngle = queryFloat(q.Get("skew"))
	req.Scale = queryFloat(q.Get("scale"))
	req.Unit = q.Get("unit")
	req.Refresh = q.Get("refresh") == "true"

	s.renderAndRespond(w, r, s.pipelineOptions(req))
}

func (s *Server) handleDeleteSounding(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pipelineOptions merges the request with the configured chart defaults.
func (s *Server) pipelineOptions(req renderRequest) pipeline.Options {
	opts := pipeline.Options{
		Document:  req.Document,
		Width:     req.Width,
		Height:    req.Height,
		SkewAngle: req.SkewAngle,
		TMin:      req.TMin,
		TMax:      req.TMax,
		Unit:      req.Unit,
		BarbSize:  req.BarbSize,
		Formats:   req.Formats,
		Scale:     req.Scale,
		Refresh:   req.Refresh,
		Logger:    s.logger,
	}

	if opts.Width == 0 {
		opts.Width = s.chart.Width
	}
	if opts.Height == 0 {
		opts.Height = s.chart.Height
	}
	if opts.SkewAngle == 0 {
		opts.SkewAngle = s.chart.SkewAngle
	}
	if opts.TMin == 0 && opts.TMax == 0 {
		opts.TMin = s.chart.TMin
		opts.TMax = s.chart.TMax
	}
	if opts.Unit == "" {
		opts.Unit = s.chart.Unit
	}
	if opts.BarbSize == 0 {
		opts.BarbSize = s.chart.BarbSize
	}
	if opts.Scale == 0 {
		opts.Scale = s.chart.Scale
	}
	return opts
}

// renderAndRespond executes the pipeline and writes the artifact. A single
// requested format is returned raw with its content type; multiple formats
// are wrapped in a JSON envelope.
func (s *Server) renderAndRespond(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	if len(opts.Formats) == 1 {
		format := opts.Formats[0]
		w.Header().Set("Content-Type", contentType(format))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		Artifacts: result.Artifacts,
		SceneHit:  result.CacheInfo.SceneHit,
		RenderHit: result.CacheInfo.RenderHit,
	})
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatPNG:
		return "image/png"
	default:
		return "image/svg+xml"
	}
}

func queryFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)

	switch {
	case err == archive.ErrNotFound || err == archive.ErrExpired:
		status = http.StatusNotFound
	case code == errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case code == errors.ErrCodeInvalidInput,
		code == errors.ErrCodeInvalidProfile,
		code == errors.ErrCodeInvalidFormat,
		code == errors.ErrCodeInvalidUnit,
		code == errors.ErrCodeInvalidSkew,
		code == errors.ErrCodeInvalidDomain:
		status = http.StatusBadRequest
	}

	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(code)})
}
