package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexiusacademia/gorcframe/internal/capacity"
	"github.com/alexiusacademia/gorcframe/internal/climate"
	"github.com/alexiusacademia/gorcframe/internal/grid"
	"github.com/alexiusacademia/gorcframe/internal/pipeline"
	"github.com/alexiusacademia/gorcframe/internal/project"
	"github.com/alexiusacademia/gorcframe/internal/report"
	"github.com/alexiusacademia/gorcframe/internal/version"
)

type errorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems,omitempty"`
}

// writeJSON sends v with status. The header is already out when encoding
// fails, so the error can only be logged.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("writing response", "status", status, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string, problems []string) {
	s.writeJSON(w, status, errorResponse{Error: msg, Problems: problems})
}

// writeBody sends an already rendered document.
func (s *Server) writeBody(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(body); err != nil {
		s.log.Error("writing response", "file", filename, "error", err)
	}
}

// decode reads a JSON body into v. Unknown fields are rejected.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request payload: %v", err), nil)
		return false
	}
	return true
}

// writeInvalid reports input validation failures as 422.
func (s *Server) writeInvalid(w http.ResponseWriter, err error) {
	var verr *project.ValidationError
	if errors.As(err, &verr) {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid project", verr.Problems)
		return
	}
	s.writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// PipelineResponse is the body returned by POST /api/pipeline.
type PipelineResponse struct {
	RunID   string           `json:"run_id"`
	Project string           `json:"project"`
	Result  *pipeline.Result `json:"result"`
}

// resolveProject decodes a project over the defaults, validates it and
// converts it into a pipeline input.
func (s *Server) resolveProject(w http.ResponseWriter, r *http.Request) (*project.Project, pipeline.Input, pipeline.Config, bool) {
	p := project.Default()
	if !s.decode(w, r, p) {
		return nil, pipeline.Input{}, pipeline.Config{}, false
	}
	in, cfg, err := p.Resolve()
	if err != nil {
		s.writeInvalid(w, err)
		return nil, pipeline.Input{}, pipeline.Config{}, false
	}
	return p, in, cfg, true
}

// handlePipeline runs every stage. A blocked column is a normal outcome
// and is reported with 200 and state "blocked".
func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	p, in, cfg, ok := s.resolveProject(w, r)
	if !ok {
		return
	}

	id := s.newRunID()
	res := pipeline.Run(in, cfg)
	s.log.Info("pipeline run",
		"run_id", id,
		"project", p.Name,
		"state", res.State.String(),
		"ratio", res.Capacity.Ratio,
	)
	if res.Err != nil && !res.Blocked() {
		s.log.Error("pipeline failed", "run_id", id, "error", res.Err)
		s.writeError(w, http.StatusInternalServerError, res.Err.Error(), nil)
		return
	}

	w.Header().Set("X-Run-ID", id)
	s.writeJSON(w, http.StatusOK, PipelineResponse{RunID: id, Project: p.Name, Result: res})
}

// GridRequest is the body of POST /api/grid.
type GridRequest struct {
	Site  grid.Site `json:"site"`
	SpanX float64   `json:"span_x"`
	SpanY float64   `json:"span_y"`
}

// GridResponse is the body returned by POST /api/grid.
type GridResponse struct {
	Grid      grid.Grid      `json:"grid"`
	SpanClass grid.SpanClass `json:"span_class"`
	Advice    string         `json:"advice"`
	Columns   []grid.Column  `json:"columns"`
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	req := GridRequest{Site: grid.Site{Width: 12, Depth: 20}, SpanX: 6, SpanY: 5}
	if !s.decode(w, r, &req) {
		return
	}

	p := project.Default()
	p.Site.Width, p.Site.Depth = req.Site.Width, req.Site.Depth
	p.Grid.SpanX, p.Grid.SpanY = req.SpanX, req.SpanY
	if err := p.Validate(); err != nil {
		s.writeInvalid(w, err)
		return
	}

	g := grid.Plan(req.Site, req.SpanX, req.SpanY)
	class := g.Classify()
	s.writeJSON(w, http.StatusOK, GridResponse{
		Grid:      g,
		SpanClass: class,
		Advice:    class.Advice(),
		Columns:   g.Columns(),
	})
}

// ClimateRequest is the body of POST /api/climate. A missing glazing or
// wall takes the zone default.
type ClimateRequest struct {
	Latitude float64         `json:"latitude"`
	Site     grid.Site       `json:"site"`
	Floors   int             `json:"floors"`
	Glazing  climate.Glazing `json:"glazing,omitempty"`
	Wall     climate.Wall    `json:"wall,omitempty"`
}

func (s *Server) handleClimate(w http.ResponseWriter, r *http.Request) {
	req := ClimateRequest{Latitude: 25.03, Site: grid.Site{Width: 12, Depth: 20}, Floors: 7}
	if !s.decode(w, r, &req) {
		return
	}

	p := project.Default()
	p.Site.Latitude = req.Latitude
	p.Site.Width, p.Site.Depth = req.Site.Width, req.Site.Depth
	p.Floors.Above = req.Floors
	if err := p.Validate(); err != nil {
		s.writeInvalid(w, err)
		return
	}

	if req.Glazing == 0 {
		req.Glazing = climate.DefaultGlazing(climate.Classify(req.Latitude))
	}
	if req.Wall == 0 {
		req.Wall = climate.DefaultWall
	}
	sel := climate.Advise(req.Latitude, req.Site.Perimeter(), req.Floors, req.Glazing, req.Wall)
	s.writeJSON(w, http.StatusOK, sel)
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	p, in, cfg, ok := s.resolveProject(w, r)
	if !ok {
		return
	}

	doc := report.Document{Project: p.Name, Date: time.Now(), Input: in, Result: pipeline.Run(in, cfg)}
	var buf bytes.Buffer
	if err := report.WritePDF(&buf, doc); err != nil {
		s.log.Error("report generation failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "report generation error", nil)
		return
	}

	s.writeBody(w, "application/pdf", "report.pdf", buf.Bytes())
}

// handleReportXLSX returns the bill of quantities. There is nothing to
// price for a blocked design, so that case is a 409.
func (s *Server) handleReportXLSX(w http.ResponseWriter, r *http.Request) {
	p, in, cfg, ok := s.resolveProject(w, r)
	if !ok {
		return
	}

	doc := report.Document{Project: p.Name, Date: time.Now(), Input: in, Result: pipeline.Run(in, cfg)}
	var buf bytes.Buffer
	if err := report.WriteBOQ(&buf, doc); err != nil {
		if errors.Is(err, capacity.ErrBlocked) {
			s.writeError(w, http.StatusConflict, err.Error(), doc.Result.Capacity.Suggestions())
			return
		}
		s.log.Error("workbook generation failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "workbook generation error", nil)
		return
	}

	s.writeBody(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "boq.xlsx", buf.Bytes())
}
