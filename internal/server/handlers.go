package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/trophic/pkg/errors"
	graphio "github.com/matzehuels/trophic/pkg/io"
	"github.com/matzehuels/trophic/pkg/network"
	"github.com/matzehuels/trophic/pkg/pipeline"
)

// levelsResponse is the body of a successful POST /v1/levels.
type levelsResponse struct {
	RunID   string             `json:"run_id"`
	Nodes   []graphio.Node     `json:"nodes"`
	Heights map[string]float64 `json:"heights"`
	Cached  bool               `json:"cached"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	g, err := s.decodeGraph(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts, err := s.levelOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Level(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("X-Run-ID", res.RunID)
	writeJSON(w, http.StatusOK, levelsResponse{
		RunID:   res.RunID,
		Nodes:   graphio.ToDocument(res.Network).Nodes,
		Heights: res.Heights,
		Cached:  res.Cached,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	g, err := s.decodeGraph(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts, err := s.levelOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ropts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Level(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, hit, err := s.runner.Render(r.Context(), res.Network, ropts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[ropts.Format])
	w.Header().Set("X-Run-ID", res.RunID)
	w.Header().Set("X-Cache", cacheHeader(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// decodeGraph reads the request body as a JSON graph document, or YAML when
// the content type says so.
func (s *Server) decodeGraph(w http.ResponseWriter, r *http.Request) (*network.Network, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer body.Close()

	var (
		g   *network.Network
		err error
	)
	if isYAMLContent(r.Header.Get("Content-Type")) {
		g, err = graphio.ReadYAML(body)
	} else {
		g, err = graphio.ReadJSON(body)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid graph document")
	}
	return g, nil
}

func isYAMLContent(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return false
}

// levelOptions overlays query parameters on the server defaults.
func (s *Server) levelOptions(r *http.Request) (pipeline.Options, error) {
	opts := *s.cfg.Options
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))
	q := r.URL.Query()

	var err error
	if v := q.Get("precision"); v != "" {
		if opts.Precision, err = strconv.Atoi(v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "precision must be an integer: %q", v)
		}
	}
	if v := q.Get("rows"); v != "" {
		if opts.Rows, err = strconv.ParseBool(v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "rows must be a boolean: %q", v)
		}
	}
	if v := q.Get("row_step"); v != "" {
		if opts.RowStep, err = strconv.ParseFloat(v, 64); err != nil || opts.RowStep <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "row_step must be a positive number: %q", v)
		}
	}
	if v := q.Get("refresh"); v != "" {
		if opts.Refresh, err = strconv.ParseBool(v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "refresh must be a boolean: %q", v)
		}
	}
	return opts, nil
}

func renderOptions(r *http.Request) (pipeline.RenderOptions, error) {
	q := r.URL.Query()
	opts := pipeline.RenderOptions{Format: q.Get("format")}

	var err error
	if v := q.Get("detailed"); v != "" {
		if opts.Detailed, err = strconv.ParseBool(v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "detailed must be a boolean: %q", v)
		}
	}
	if v := q.Get("color_rows"); v != "" {
		if opts.ColorRows, err = strconv.ParseBool(v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "color_rows must be a boolean: %q", v)
		}
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil || opts.Scale <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number: %q", v)
		}
	}
	opts.SetDefaults()
	return opts, pipeline.ValidateFormat(opts.Format)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Error: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
