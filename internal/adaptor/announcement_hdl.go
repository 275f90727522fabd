package adaptor

import (
	"encoding/json"
	"net/http"

	"booking-service/internal/dto/request"
	"booking-service/internal/usecase"
	"booking-service/pkg/utils"

	"go.uber.org/zap"
)

type AnnouncementHandler struct {
	service usecase.AnnouncementService
	log     *zap.Logger
}

func NewAnnouncementHandler(service usecase.AnnouncementService, log *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		service: service,
		log:     log.With(zap.String("handler", "announcement")),
	}
}

// Create handles POST /announcement/{movie_id}
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	movieID, err := urlID(r, "movie_id")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	var req request.CreateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	announcement, err := h.service.Create(r.Context(), actor, movieID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create announcement")
		return
	}

	utils.ResponseCreated(w, "success", announcement)
}

// GetOne handles GET /announcement/{announce_id}
func (h *AnnouncementHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "announce_id")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	announcement, err := h.service.GetOne(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get announcement")
		return
	}

	utils.ResponseSuccess(w, "success", announcement)
}

// Update handles PUT /announcement/{announce_id}
func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, err := urlID(r, "announce_id")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	var req request.UpdateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	announcement, err := h.service.Update(r.Context(), actor, id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update announcement")
		return
	}

	utils.ResponseSuccess(w, "success", announcement)
}

// Delete handles DELETE /announcement/{announce_id}
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, err := urlID(r, "announce_id")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		writeServiceError(w, h.log, err, "delete announcement")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// List handles GET /announcements
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query, queryErrors := parseAnnouncementQuery(r.URL.Query())
	if queryErrors != nil {
		utils.ResponseBadRequest(w, "Invalid filter", queryErrors)
		return
	}

	announcements, err := h.service.List(r.Context(), actor, query)
	if err != nil {
		writeServiceError(w, h.log, err, "list announcements")
		return
	}

	utils.ResponseSuccess(w, "success", announcements)
}

// GetToReview handles GET /announcement/{announce_id}/review/{guest_id}
func (h *AnnouncementHandler) GetToReview(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "announce_id")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}
	guestID, err := urlID(r, "guest_id")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	review, err := h.service.GetToReview(r.Context(), id, guestID)
	if err != nil {
		writeServiceError(w, h.log, err, "get announcement to review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}
