package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"heliowatch/internal/advisor"
	"heliowatch/internal/kpi"
	"heliowatch/internal/predict"
	"heliowatch/internal/session"
	"heliowatch/internal/telemetry"
	apictr "heliowatch/pkg/api"
)

// handleUpload ingests one CSV or spreadsheet file: validate before
// reading, parse, create a session, and answer with everything the
// dashboard renders immediately. Each upload is a fresh session; replacing
// a previous one is the client's concern (delete or let it expire).
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		uploadsParsedTotal.WithLabelValues("rejected").Inc()
		s.jsonError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	if err := telemetry.ValidateUpload(header.Filename, header.Size); err != nil {
		uploadsParsedTotal.WithLabelValues("rejected").Inc()
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	var samples []telemetry.Sample
	if strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		text := string(raw)
		if err := telemetry.ValidateHeader(text); err != nil {
			uploadsParsedTotal.WithLabelValues("rejected").Inc()
			s.jsonError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		samples = telemetry.Parse(text)
	} else {
		samples, err = telemetry.ParseWorkbook(bytes.NewReader(raw))
		if err != nil {
			uploadsParsedTotal.WithLabelValues("rejected").Inc()
			s.jsonError(w, http.StatusUnprocessableEntity, "unreadable workbook: "+err.Error())
			return
		}
	}

	if len(samples) == 0 {
		uploadsParsedTotal.WithLabelValues("empty").Inc()
		s.jsonError(w, http.StatusUnprocessableEntity, "no usable data rows found")
		return
	}

	sess := session.Session{
		ID:         uuid.NewString(),
		FileName:   header.Filename,
		Samples:    samples,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.sessions.Put(r.Context(), sess); err != nil {
		s.jsonError(w, http.StatusInternalServerError, "storing session: "+err.Error())
		return
	}
	uploadsParsedTotal.WithLabelValues("ok").Inc()

	summary := s.aggregator.Aggregate(samples)
	last := samples[len(samples)-1]
	badge := advisor.Classify(last.BatterySocPct, s.config.DefaultLanguage)

	s.jsonResponse(w, http.StatusCreated, apictr.UploadResponse{
		SessionID: sess.ID,
		FileName:  sess.FileName,
		Rows:      len(samples),
		Kpis:      apictr.NewKpiView(summary),
		Advisory:  &badge,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, apictr.SeriesResponse{
		SessionID: sess.ID,
		Samples:   sess.Samples,
	})
}

func (s *Server) handleSessionKpis(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	// Recomputed in full on every read; the summary is a pure function
	// of the stored series.
	summary := s.aggregator.Aggregate(sess.Samples)
	if summary == nil {
		s.jsonError(w, http.StatusUnprocessableEntity, "session has no usable data")
		return
	}
	s.jsonResponse(w, http.StatusOK, apictr.NewKpiView(summary))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.jsonError(w, http.StatusInternalServerError, "deleting session: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := mux.Vars(r)["id"]
	sess, err := s.sessions.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		s.jsonError(w, http.StatusNotFound, "unknown session "+id)
		return nil, false
	}
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, "loading session: "+err.Error())
		return nil, false
	}
	return sess, true
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var req apictr.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	state := advisor.State{
		SocPct:        req.SocPct,
		IrradianceWm2: req.IrradianceWm2,
		SolarPowerW:   req.SolarPowerW,
		LoadPowerW:    req.LoadPowerW,
		Trend:         advisor.Trend(req.Trend),
	}

	s.jsonResponse(w, http.StatusOK, apictr.RecommendResponse{
		Recommendations: advisor.Recommend(state, s.language(req.Language)),
		Metrics:         kpi.InstantMetrics(req.SocPct, req.SolarPowerW, req.LoadPowerW),
	})
}

func (s *Server) handleAdvisory(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("soc")
	soc, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, "query parameter soc must be a number")
		return
	}

	badge := advisor.Classify(soc, s.language(r.URL.Query().Get("lang")))
	s.jsonResponse(w, http.StatusOK, badge)
}

// handlePredict proxies a single-sample prediction. Upstream failure maps
// to 502 with the upstream error text, never to a defaulted SOC value.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if s.predictor == nil {
		s.jsonError(w, http.StatusServiceUnavailable, "no prediction endpoint configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var in predict.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	res, err := s.predictor.Predict(r.Context(), in)
	if err != nil {
		predictionFailuresTotal.Inc()
		s.jsonError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handlePredictCsv(w http.ResponseWriter, r *http.Request) {
	if s.predictor == nil {
		s.jsonError(w, http.StatusServiceUnavailable, "no prediction endpoint configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	if err := telemetry.ValidateUpload(header.Filename, header.Size); err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.predictor.PredictFile(r.Context(), header.Filename, file)
	if err != nil {
		predictionFailuresTotal.Inc()
		s.jsonError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}
