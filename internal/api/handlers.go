// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

// Package api exposes the recommendation services over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/pathforge/pathforge/internal/adaptive"
	"github.com/pathforge/pathforge/internal/curriculum"
	"github.com/pathforge/pathforge/internal/logging"
	"github.com/pathforge/pathforge/internal/mentor"
	"github.com/pathforge/pathforge/internal/recommend"
)

// Handlers bundles the service dependencies behind the HTTP endpoints.
type Handlers struct {
	engine    *recommend.Engine
	sequencer *curriculum.Sequencer
	selector  *adaptive.Selector
	matcher   *mentor.Matcher
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewHandlers wires the services into HTTP handlers.
func NewHandlers(engine *recommend.Engine, sequencer *curriculum.Sequencer, selector *adaptive.Selector, matcher *mentor.Matcher) *Handlers {
	return &Handlers{
		engine:    engine,
		sequencer: sequencer,
		selector:  selector,
		matcher:   matcher,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logging.Component("api"),
	}
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("encode response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// decode unmarshals and validates a request body.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return false
	}
	return true
}

// Recommend handles POST /api/v1/recommendations.
func (h *Handlers) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.engine.Recommend(r.Context(), &recommend.Request{
		Profile:  req.Profile,
		Catalog:  req.Catalog,
		Peers:    req.Peers,
		External: req.External,
		Limit:    req.Limit,
	})
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidLimit) || errors.Is(err, recommend.ErrNoProfile) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("recommendation failed")
		h.writeError(w, http.StatusInternalServerError, "recommendation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// recommendRequest is the recommendation endpoint payload.
type recommendRequest struct {
	Profile  recommend.LearnerProfile  `json:"profile" validate:"required"`
	Catalog  []recommend.CatalogItem   `json:"catalog" validate:"required,min=1"`
	Peers    []recommend.Peer          `json:"peers"`
	External []recommend.ExternalSignal `json:"external"`
	Limit    int                       `json:"limit"`
}

// sequenceRequest is the curriculum endpoint payload.
type sequenceRequest struct {
	Items []recommend.CatalogItem `json:"items" validate:"required,min=1"`
}

// sequenceResponse carries the ordered items.
type sequenceResponse struct {
	Items []recommend.CatalogItem `json:"items"`
}

// Sequence handles POST /api/v1/curriculum/sequence.
func (h *Handlers) Sequence(w http.ResponseWriter, r *http.Request) {
	var req sequenceRequest
	if !h.decode(w, r, &req) {
		return
	}
	ordered := h.sequencer.Sequence(r.Context(), req.Items)
	h.writeJSON(w, http.StatusOK, sequenceResponse{Items: ordered})
}

// adaptiveRequest is the adaptive endpoint payload.
type adaptiveRequest struct {
	LearnerID   string                  `json:"learner_id" validate:"required"`
	Performance adaptive.Performance    `json:"performance"`
	Completed   []recommend.CatalogItem `json:"completed"`
	Catalog     []recommend.CatalogItem `json:"catalog" validate:"required,min=1"`
}

// Adaptive handles POST /api/v1/recommendations/adaptive.
func (h *Handlers) Adaptive(w http.ResponseWriter, r *http.Request) {
	var req adaptiveRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.selector.Select(r.Context(), req.LearnerID, req.Performance, req.Completed, req.Catalog)
	if err != nil {
		h.logger.Error().Err(err).Msg("adaptive selection failed")
		h.writeError(w, http.StatusInternalServerError, "adaptive selection failed")
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// mentorRequest is the mentor suggestion payload.
type mentorRequest struct {
	Learners    []mentor.Learner `json:"learners" validate:"required,min=2"`
	Subjects    []string         `json:"subjects" validate:"required,min=1"`
	SeekerIndex int              `json:"seeker_index" validate:"gte=0"`
	Limit       int              `json:"limit"`
}

// mentorResponse carries ranked mentor suggestions.
type mentorResponse struct {
	Suggestions []mentor.Suggestion `json:"suggestions"`
}

// Mentors handles POST /api/v1/mentors.
func (h *Handlers) Mentors(w http.ResponseWriter, r *http.Request) {
	var req mentorRequest
	if !h.decode(w, r, &req) {
		return
	}
	suggestions, err := h.matcher.SuggestMentors(req.Learners, req.Subjects, req.SeekerIndex, req.Limit)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, mentorResponse{Suggestions: suggestions})
}

// studyGroupRequest is the study group payload.
type studyGroupRequest struct {
	Learners    []mentor.Learner `json:"learners" validate:"required,min=2"`
	Subjects    []string         `json:"subjects" validate:"required,min=1"`
	SeekerIndex int              `json:"seeker_index" validate:"gte=0"`
	GroupSize   int              `json:"group_size" validate:"gte=2"`
}

// studyGroupResponse carries the formed groups.
type studyGroupResponse struct {
	Groups []mentor.StudyGroup `json:"groups"`
}

// StudyGroups handles POST /api/v1/study-groups.
func (h *Handlers) StudyGroups(w http.ResponseWriter, r *http.Request) {
	var req studyGroupRequest
	if !h.decode(w, r, &req) {
		return
	}
	groups, err := h.matcher.FormStudyGroups(req.Learners, req.Subjects, req.SeekerIndex, req.GroupSize)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, studyGroupResponse{Groups: groups})
}

// networkRequest is the mentorship network payload.
type networkRequest struct {
	Learners []mentor.Learner `json:"learners" validate:"required,min=1"`
	Subjects []string         `json:"subjects" validate:"required,min=1"`
}

// Network handles POST /api/v1/mentors/network.
func (h *Handlers) Network(w http.ResponseWriter, r *http.Request) {
	var req networkRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.writeJSON(w, http.StatusOK, h.matcher.AnalyzeNetwork(req.Learners, req.Subjects))
}

// pathMentorsRequest is the learning path mentors payload.
type pathMentorsRequest struct {
	Learners     []mentor.Learner `json:"learners" validate:"required,min=2"`
	SeekerIndex  int              `json:"seeker_index" validate:"gte=0"`
	PathSubjects []string         `json:"path_subjects" validate:"required,min=1"`
}

// pathMentorsResponse carries per-step mentors.
type pathMentorsResponse struct {
	Mentors []mentor.PathMentor `json:"mentors"`
}

// PathMentors handles POST /api/v1/mentors/learning-path.
func (h *Handlers) PathMentors(w http.ResponseWriter, r *http.Request) {
	var req pathMentorsRequest
	if !h.decode(w, r, &req) {
		return
	}
	mentors, err := h.matcher.LearningPathMentors(req.Learners, req.SeekerIndex, req.PathSubjects)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, pathMentorsResponse{Mentors: mentors})
}

// Health handles GET /api/v1/health.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
