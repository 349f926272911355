package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/synaptica-ai/heartrisk/pkg/clinical"
	"github.com/synaptica-ai/heartrisk/pkg/common/logger"
	"github.com/synaptica-ai/heartrisk/pkg/common/models"
	"github.com/synaptica-ai/heartrisk/pkg/observability/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

type Assessor interface {
	Assess(ctx context.Context, obs clinical.Observation) (models.Assessment, error)
	Schema() models.SchemaInfo
}

type History interface {
	Recent(ctx context.Context, limit int) ([]models.AssessmentRecord, error)
}

type Handler struct {
	assessor Assessor
	history  History
	page     *template.Template
}

// NewHandler wires the form and API routes. history may be nil when
// persistence is disabled.
func NewHandler(assessor Assessor, history History) (*Handler, error) {
	page, err := template.New("index.html").
		Funcs(template.FuncMap{"selectOf": selectOf}).
		ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{assessor: assessor, history: history, page: page}, nil
}

// Register mounts the page, health, metrics and API routes. apiMiddleware
// wraps only the /api/v1 routes, so the form stays usable from a browser
// when the API requires bearer tokens.
func (h *Handler) Register(r *mux.Router, apiMiddleware ...mux.MiddlewareFunc) {
	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	r.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w)
	}).Methods(http.MethodGet)

	r.HandleFunc("/", h.handleForm).Methods(http.MethodGet)
	r.HandleFunc("/", h.handleSubmit).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apiMiddleware...)
	api.HandleFunc("/assessments", h.handleAssess).Methods(http.MethodPost)
	api.HandleFunc("/assessments", h.handleListAssessments).Methods(http.MethodGet)
	api.HandleFunc("/schema", h.handleSchema).Methods(http.MethodGet)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, pageData{Form: clinical.DefaultObservation()})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	obs, err := parseForm(r)
	if err != nil {
		metrics.ObserveRejected()
		h.render(w, http.StatusBadRequest, pageData{Form: obs, Error: err.Error()})
		return
	}

	result, err := h.assessor.Assess(r.Context(), obs)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if clinical.IsValidationError(err) {
			status = http.StatusBadRequest
		}
		h.render(w, status, pageData{Form: obs, Error: err.Error()})
		return
	}
	h.render(w, http.StatusOK, pageData{Form: result.Observation, Result: &result})
}

func (h *Handler) handleAssess(w http.ResponseWriter, r *http.Request) {
	var obs clinical.Observation
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&obs); err != nil {
		metrics.ObserveRejected()
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.assessor.Assess(r.Context(), obs)
	if err != nil {
		if clinical.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusUnprocessableEntity, "prediction failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"assessment": result})
}

func (h *Handler) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "assessment history is not enabled")
		return
	}
	records, err := h.history.Recent(r.Context(), parseLimit(r, 50))
	if err != nil {
		logger.Log.WithError(err).Error("failed to list assessments")
		writeError(w, http.StatusInternalServerError, "failed to list assessments")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": records})
}

func (h *Handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.assessor.Schema())
}

func (h *Handler) render(w http.ResponseWriter, status int, data pageData) {
	data.Domains = newDomainOptions()
	var buf strings.Builder
	if err := h.page.Execute(&buf, data); err != nil {
		logger.Log.WithError(err).Error("failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(buf.String()))
}

// parseForm reads the submitted fields. On error the returned observation
// holds whatever parsed, so the page can be re-rendered.
func parseForm(r *http.Request) (clinical.Observation, error) {
	obs := clinical.DefaultObservation()
	if err := r.ParseForm(); err != nil {
		return obs, err
	}

	ints := []struct {
		name  string
		field string
		dst   *int
	}{
		{"age", clinical.FieldAge, &obs.Age},
		{"resting_bp", clinical.FieldRestingBP, &obs.RestingBP},
		{"cholesterol", clinical.FieldCholesterol, &obs.Cholesterol},
		{"fasting_bs", clinical.FieldFastingBS, &obs.FastingBS},
		{"max_hr", clinical.FieldMaxHR, &obs.MaxHR},
	}
	var errs []error
	for _, f := range ints {
		raw := strings.TrimSpace(r.PostForm.Get(f.name))
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, clinical.NewValidationError(f.field, fmt.Errorf("%q is not a whole number", raw)))
			continue
		}
		*f.dst = v
	}

	raw := strings.TrimSpace(r.PostForm.Get("oldpeak"))
	if v, err := strconv.ParseFloat(raw, 64); err != nil {
		errs = append(errs, clinical.NewValidationError(clinical.FieldOldpeak, fmt.Errorf("%q is not a number", raw)))
	} else {
		obs.Oldpeak = v
	}

	obs.Sex = r.PostForm.Get("sex")
	obs.ChestPainType = r.PostForm.Get("chest_pain_type")
	obs.RestingECG = r.PostForm.Get("resting_ecg")
	obs.ExerciseAngina = r.PostForm.Get("exercise_angina")
	obs.STSlope = r.PostForm.Get("st_slope")

	return obs, errors.Join(errs...)
}

func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	if v, err := strconv.Atoi(raw); err == nil && v > 0 {
		return v
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
