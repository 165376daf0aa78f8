package app

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
	"github.com/greenside-club/scoring/internal/observability/attr"
)

const maxUploadBytes = 16 << 20

func (a *App) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(a.correlationMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))

	r.Route("/events/{eventID}", func(r chi.Router) {
		r.Post("/scorecard/preview", a.handlePreview)
		r.Post("/scorecard/commit", a.handleCommit)
		r.Get("/standings/matchplay", a.handleMatchPlay)
		r.Get("/standings/strokeplay", a.handleStrokePlay)
	})
	return r
}

// correlationMiddleware stamps each request with a correlation ID so every
// log line from one import session can be tied together.
func (a *App) correlationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Correlation-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Correlation-ID", id)
		next.ServeHTTP(w, r.WithContext(attr.WithCorrelationID(r.Context(), id)))
	})
}

func (a *App) handlePreview(w http.ResponseWriter, r *http.Request) {
	eventID, filename, data, mode, ok := a.readUpload(w, r)
	if !ok {
		return
	}

	result, err := a.ImportService.Preview(r.Context(), eventID, filename, data, mode)
	if err != nil {
		a.respondError(w, http.StatusUnprocessableEntity, err)
		return
	}
	a.respondJSON(w, http.StatusOK, result)
}

func (a *App) handleCommit(w http.ResponseWriter, r *http.Request) {
	eventID, filename, data, mode, ok := a.readUpload(w, r)
	if !ok {
		return
	}

	report, err := a.ImportService.Commit(r.Context(), eventID, filename, data, mode)
	if err != nil {
		a.respondError(w, http.StatusUnprocessableEntity, err)
		return
	}
	a.respondJSON(w, http.StatusOK, report)
}

func (a *App) handleMatchPlay(w http.ResponseWriter, r *http.Request) {
	eventID := sharedtypes.EventID(chi.URLParam(r, "eventID"))

	result, err := a.StandingsService.MatchPlayStandings(r.Context(), eventID)
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err)
		return
	}
	a.respondJSON(w, http.StatusOK, result)
}

func (a *App) handleStrokePlay(w http.ResponseWriter, r *http.Request) {
	eventID := sharedtypes.EventID(chi.URLParam(r, "eventID"))

	ranked, err := a.StandingsService.StrokePlayStandings(r.Context(), eventID)
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, err)
		return
	}
	a.respondJSON(w, http.StatusOK, ranked)
}

// readUpload pulls the scorecard file and token mode out of a multipart
// request.
func (a *App) readUpload(w http.ResponseWriter, r *http.Request) (sharedtypes.EventID, string, []byte, scorecardtypes.TokenMode, bool) {
	eventID := sharedtypes.EventID(chi.URLParam(r, "eventID"))

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.respondError(w, http.StatusBadRequest, err)
		return "", "", nil, "", false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.respondError(w, http.StatusBadRequest, err)
		return "", "", nil, "", false
	}
	defer file.Close()

	// Read one byte past the limit so an oversize file is rejected
	// instead of silently truncated.
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		a.respondError(w, http.StatusBadRequest, err)
		return "", "", nil, "", false
	}
	if len(data) > maxUploadBytes {
		a.respondError(w, http.StatusRequestEntityTooLarge,
			fmt.Errorf("uploaded file exceeds %d bytes", maxUploadBytes))
		return "", "", nil, "", false
	}

	mode := scorecardtypes.TokenMode(r.FormValue("mode"))
	if mode == "" {
		mode = scorecardtypes.TokenModeDiff
	}
	return eventID, header.Filename, data, mode, true
}

func (a *App) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.Logger.Error("Failed to encode response", attr.Error(err))
	}
}

func (a *App) respondError(w http.ResponseWriter, status int, err error) {
	a.respondJSON(w, status, map[string]string{"error": err.Error()})
}
