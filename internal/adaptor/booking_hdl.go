package adaptor

import (
	"encoding/json"
	"net/http"

	"booking-service/internal/dto/request"
	"booking-service/internal/usecase"
	"booking-service/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Create handles POST /booking/{announcement_id}
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	announcementID, err := urlID(r, "announcement_id")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	booking, err := h.service.Create(r.Context(), actor, announcementID)
	if err != nil {
		writeServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetOne handles GET /booking/{booking_id}
func (h *BookingHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, err := urlID(r, "booking_id")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	booking, err := h.service.GetOne(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Update handles PUT /booking/{booking_id}
func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, err := urlID(r, "booking_id")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	var req request.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.Update(r.Context(), actor, id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Delete handles DELETE /booking/{booking_id}
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, err := urlID(r, "booking_id")
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		writeServiceError(w, h.log, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// List handles GET /bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query, queryErrors := parseBookingQuery(r.URL.Query())
	if queryErrors != nil {
		utils.ResponseBadRequest(w, "Invalid filter", queryErrors)
		return
	}

	bookings, err := h.service.List(r.Context(), actor, query)
	if err != nil {
		writeServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// SudoList handles GET /_bookings (privileged only)
func (h *BookingHandler) SudoList(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query, queryErrors := parseSudoBookingQuery(r.URL.Query())
	if queryErrors != nil {
		utils.ResponseBadRequest(w, "Invalid filter", queryErrors)
		return
	}

	bookings, err := h.service.SudoList(r.Context(), actor, query)
	if err != nil {
		writeServiceError(w, h.log, err, "list all bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
