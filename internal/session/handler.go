package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/billsplit/internal/split"
	mw "github.com/fkhayef/billsplit/pkg/middleware"
	"github.com/fkhayef/billsplit/pkg/response"
)

// Handler handles HTTP requests for split and session operations
type Handler struct {
	service *Service
}

// NewHandler creates a new session handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SplitRoutes returns the router for split computation endpoints
func (h *Handler) SplitRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Compute)

	return r
}

// Routes returns the router for session history endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Record)
	r.Get("/", h.List)

	return r
}

// Compute handles POST /splits
// @Summary      Compute a split
// @Description  Compute per-person amounts for a bill, evenly or from custom amounts. Nothing is persisted.
// @Tags         splits
// @Accept       json
// @Produce      json
// @Param        request body ComputeSplitRequest true "Split computation request"
// @Success      200 {object} response.APIResponse{data=SplitResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /splits [post]
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	var req ComputeSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	total, err := split.ParseAmount("total", req.Total)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_AMOUNT", err.Error())
		return
	}

	var amounts []float64
	if len(req.Amounts) > 0 {
		amounts = make([]float64, len(req.Amounts))
		for i, raw := range req.Amounts {
			amounts[i], err = split.ParseAmount(fmt.Sprintf("amount[%d]", i), raw)
			if err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_AMOUNT", err.Error())
				return
			}
		}
	}

	entries, err := h.service.Compute(req.SplitType, total, req.Participants, amounts)
	if err != nil {
		writeSplitError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, &SplitResponse{
		SplitType: req.SplitType,
		Total:     total,
		Entries:   entries,
	})
}

// Record handles POST /sessions
// @Summary      Record a session
// @Description  Persist finalized split entries as one session owned by the authenticated user
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body RecordSessionRequest true "Session recording request"
// @Success      201 {object} response.APIResponse{data=SessionResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Failure      503 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /sessions [post]
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	owner, ok := mw.GetUsername(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req RecordSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	entries := make([]split.Participant, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = split.Participant{Name: e.Name, Amount: e.Amount}
	}

	session, err := h.service.Record(r.Context(), owner, entries)
	if err != nil {
		if errors.Is(err, ErrPersistence) {
			response.Error(w, http.StatusServiceUnavailable, "PERSISTENCE_ERROR",
				"Split computed but not recorded: history store unreachable")
			return
		}
		writeSplitError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, session.ToResponse())
}

// List handles GET /sessions
// @Summary      List past sessions
// @Description  Get the authenticated user's recorded sessions, most recent first
// @Tags         sessions
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]SessionResponse}
// @Failure      401 {object} response.APIResponse
// @Failure      503 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /sessions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := mw.GetUsername(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	sessions, err := h.service.List(r.Context(), owner)
	if err != nil {
		if errors.Is(err, ErrPersistence) {
			response.Error(w, http.StatusServiceUnavailable, "PERSISTENCE_ERROR",
				"History store unreachable")
			return
		}
		response.InternalError(w, "Failed to list sessions")
		return
	}

	out := make([]*SessionResponse, len(sessions))
	for i := range sessions {
		out[i] = sessions[i].ToResponse()
	}

	response.JSON(w, http.StatusOK, out)
}

// writeSplitError maps the validation error taxonomy onto HTTP responses.
// Validation failures are user-facing and never fatal.
func writeSplitError(w http.ResponseWriter, err error) {
	var invalidErr *split.InvalidAmountError
	var sumErr *split.SumMismatchError

	switch {
	case errors.As(err, &sumErr):
		response.Error(w, http.StatusUnprocessableEntity, "SUM_MISMATCH", sumErr.Error())
	case errors.As(err, &invalidErr):
		response.Error(w, http.StatusBadRequest, "INVALID_AMOUNT", invalidErr.Error())
	case errors.Is(err, split.ErrNoParticipants), errors.Is(err, ErrNoEntries):
		response.Error(w, http.StatusBadRequest, "NO_PARTICIPANTS", err.Error())
	case errors.Is(err, split.ErrCountMismatch),
		errors.Is(err, split.ErrNegativeAmount),
		errors.Is(err, ErrEmptyName):
		response.Error(w, http.StatusBadRequest, "INVALID_AMOUNT", err.Error())
	default:
		response.BadRequest(w, err.Error())
	}
}
