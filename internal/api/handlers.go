package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/roadmap/internal/breakeven"
	"github.com/rgehrsitz/roadmap/internal/calculation"
	"github.com/rgehrsitz/roadmap/internal/compare"
	"github.com/rgehrsitz/roadmap/internal/config"
	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/samber/lo"
)

// maxBodyBytes bounds request bodies; a roadmap document is a few kilobytes
const maxBodyBytes = 1 << 20

// Handler holds the dependencies of the HTTP handlers
type Handler struct {
	Engine  *calculation.Engine
	Compare *compare.CompareEngine
	Solver  *breakeven.Solver
	Parser  *config.InputParser
	Logger  calculation.Logger
	Version string
}

// NewHandler wires a handler around engine; a nil engine gets a cached default
func NewHandler(engine *calculation.Engine) *Handler {
	if engine == nil {
		engine = calculation.NewCachedEngine(calculation.DefaultCacheSize)
	}
	return &Handler{
		Engine:  engine,
		Compare: compare.NewCompareEngine(engine),
		Solver:  breakeven.NewDefaultSolver(engine),
		Parser:  config.NewInputParser(),
		Logger:  calculation.NopLogger{},
		Version: "dev",
	}
}

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: h.Version})
}

// ListCatalog returns the built-in benefit program catalog.
// GET /api/catalog
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Catalog())
}

// Evaluate computes the full report for a posted roadmap.
// POST /api/roadmap/evaluate
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req ConfigurationDTO
	if !decodeBody(w, r, &req) {
		return
	}

	cfg, err := req.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondWithReport(w, r, cfg)
}

// ReplaceIntervention swaps one intervention of the posted roadmap by id and
// returns the recomputed report.
// POST /api/roadmap/interventions/{id}
func (h *Handler) ReplaceIntervention(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "intervention id must be an integer")
		return
	}

	var req ReplaceInterventionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Intervention.ID == 0 {
		req.Intervention.ID = id
	}
	if req.Intervention.ID != id {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("body intervention id %d does not match path id %d", req.Intervention.ID, id))
		return
	}

	cfg, err := req.Configuration.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := req.Intervention.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !lenient(r) {
		if err := h.Parser.ValidateIntervention(&updated); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	replaced, err := cfg.Interventions.ReplaceByID(updated)
	if errors.Is(err, domain.ErrInterventionNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("intervention %d not found", id))
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg.Interventions = replaced
	h.Logger.Debugf("replaced intervention %d (%s)", id, updated.Name)

	h.respondWithReport(w, r, cfg)
}

// Years returns the three financial year windows of a roadmap start.
// POST /api/roadmap/years
func (h *Handler) Years(w http.ResponseWriter, r *http.Request) {
	var req YearsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	windows := calculation.RoadmapWindows(start)
	writeJSON(w, http.StatusOK, lo.Map(windows[:], func(win domain.YearWindow, _ int) WindowDTO {
		return toWindowDTO(win)
	}))
}

// Resolve maps a date to the financial year containing it.
// POST /api/roadmap/resolve
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, err := parseDate("roadmapStart", req.RoadmapStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	year := calculation.ResolveFinancialYear(date, start)
	resp := ResolveResponse{Date: formatDate(date), Index: int(year), Label: year.String()}
	if year.Valid() {
		win := toWindowDTO(calculation.RoadmapWindows(start)[year])
		resp.Window = &win
	}
	writeJSON(w, http.StatusOK, resp)
}

// CompareRoadmaps evaluates what-if variants of the posted roadmap.
// POST /api/roadmap/compare
func (h *Handler) CompareRoadmaps(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	cfg, err := req.Configuration.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !lenient(r) {
		if err := h.Parser.ValidateConfiguration(cfg); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	set, err := h.Compare.Compare(r.Context(), cfg, compare.CompareOptions{
		Templates:  req.Templates,
		Transforms: req.Transforms,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// Fit solves for the break-even value of one parameter of the posted roadmap.
// Target "all" returns every target for the intervention.
// POST /api/roadmap/fit
func (h *Handler) Fit(w http.ResponseWriter, r *http.Request) {
	var req FitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	cfg, err := req.Configuration.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !lenient(r) {
		if err := h.Parser.ValidateConfiguration(cfg); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	constraints := breakeven.DefaultConstraints(req.InterventionID)
	if req.MaxDelayMonths != nil {
		constraints.MaxDelayMonths = req.MaxDelayMonths
	}

	target := breakeven.OptimizationTarget(req.Target)
	if target == breakeven.OptimizeAll {
		md, err := h.Solver.OptimizeMultiDimensional(r.Context(), cfg, constraints)
		if err != nil {
			writeSolverError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, md)
		return
	}

	result, err := h.Solver.Optimize(r.Context(), breakeven.OptimizationRequest{
		Config:      cfg,
		Target:      target,
		Constraints: constraints,
	})
	if err != nil {
		writeSolverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeSolverError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInterventionNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func (h *Handler) respondWithReport(w http.ResponseWriter, r *http.Request, cfg *domain.Configuration) {
	if !lenient(r) {
		if err := h.Parser.ValidateConfiguration(cfg); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	report, err := h.Engine.Evaluate(cfg)
	if err != nil {
		h.Logger.Errorf("evaluate: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to evaluate roadmap")
		return
	}

	writeJSON(w, http.StatusOK, toReportDTO(cfg, report, calculation.RoadmapEndDate(cfg.Roadmap.StartDate)))
}

// lenient reports whether the caller asked to skip boundary validation
func lenient(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("lenient"))
	return v
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Status: status, Message: message})
}
