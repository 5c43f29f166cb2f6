package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	deskbookingserrors "deskbooker/internal/deskbookings/errors"
	"deskbooker/internal/deskbookings/service"
	"deskbooker/internal/deskbookings/validator"
	apperrors "deskbooker/pkg/errors"
	httputil "deskbooker/pkg/http"
	"deskbooker/pkg/logger"
	"deskbooker/pkg/model"
	"deskbooker/pkg/sanitizer"

	"github.com/julienschmidt/httprouter"
)

const (
	DeskBookingsPath   = "/api/v1/desk-bookings"
	AvailableDesksPath = "/api/v1/desks/available"
)

type DeskBookingHandler struct {
	processor service.DeskBookingProcessor
	queries   service.DeskQueryService
	validator *validator.DeskBookingValidator
	log       *logger.Logger
}

func NewDeskBookingHandler(
	processor service.DeskBookingProcessor,
	queries service.DeskQueryService,
	bookingValidator *validator.DeskBookingValidator,
	log *logger.Logger,
) *DeskBookingHandler {
	return &DeskBookingHandler{
		processor: processor,
		queries:   queries,
		validator: bookingValidator,
		log:       log,
	}
}

// BookDesk answers 201 with the result when a desk was booked and 200 when none was free.
func (h *DeskBookingHandler) BookDesk(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.DeskBookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, "BookDesk", decodeError(err))
		return
	}

	input.FirstName = sanitizer.NormalizeName(input.FirstName)
	input.LastName = sanitizer.NormalizeName(input.LastName)
	input.Email = sanitizer.NormalizeEmail(input.Email)

	if err := h.validator.Validate(&input); err != nil {
		h.writeError(w, "BookDesk", validationError(err))
		return
	}

	request, err := input.ToRequest()
	if err != nil {
		h.writeError(w, "BookDesk", apperrors.InvalidInput("invalid date: "+input.Date))
		return
	}

	result, err := h.processor.BookDesk(r.Context(), request)
	if err != nil {
		h.writeError(w, "BookDesk", bookingError(err))
		return
	}

	if result.Code == model.Success {
		if err := httputil.WriteCreated(w, result); err != nil {
			h.log.Error("failed to write created response", "handler", "BookDesk", "operation", "WriteCreated", "error", err)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "BookDesk", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DeskBookingHandler) GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date, err := httputil.ExtractDate(r, "date")
	if err != nil {
		h.writeError(w, "GetBookings", err)
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetBookings", err)
		return
	}

	bookings, total, err := h.queries.GetBookingsByDate(r.Context(), date, limit, offset)
	if err != nil {
		h.writeError(w, "GetBookings", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetBookings", "operation", "WritePaginated", "error", err)
	}
}

func (h *DeskBookingHandler) GetAvailableDesks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date, err := httputil.ExtractDate(r, "date")
	if err != nil {
		h.writeError(w, "GetAvailableDesks", err)
		return
	}

	desks, err := h.queries.GetAvailableDesks(r.Context(), date)
	if err != nil {
		h.writeError(w, "GetAvailableDesks", err)
		return
	}

	if err := httputil.WriteSuccess(w, desks); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAvailableDesks", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DeskBookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(DeskBookingsPath, h.BookDesk)
	router.GET(DeskBookingsPath, h.GetBookings)
	router.GET(AvailableDesksPath, h.GetAvailableDesks)
}

func (h *DeskBookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func decodeError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return apperrors.New(apperrors.CodeBadRequest, "Request body too large", http.StatusRequestEntityTooLarge)
	}
	return apperrors.InvalidInput("Invalid request body")
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Invalid desk booking request", verrs.Details())
	}
	return apperrors.InvalidInput(err.Error())
}

// bookingError maps processor failures to HTTP errors. A lost race for the last desk
// surfaces as ErrDeskAlreadyBooked from the store.
func bookingError(err error) error {
	if errors.Is(err, deskbookingserrors.ErrDeskAlreadyBooked) {
		return apperrors.Conflict("Desk was booked by another request, please retry", err)
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal("Failed to book desk", err)
}
