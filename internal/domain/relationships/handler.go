package relationships

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/peopledir/peopledir-api/internal/domain/user"
	"github.com/peopledir/peopledir-api/internal/middleware"
	"github.com/peopledir/peopledir-api/internal/pkg/logger"
	"github.com/peopledir/peopledir-api/internal/pkg/response"
)

// Handler handles block relationship HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates relationships handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Block handles POST /users/block/{id}
func (h *Handler) Block(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	actorID := middleware.GetUserID(r.Context())

	target, err := h.service.Block(r.Context(), actorID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, ErrCannotBlockSelf):
			response.UnprocessableEntity(w, "Cannot block yourself")
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ErrAlreadyBlocked):
			response.Conflict(w, "User already blocked")
		default:
			logger.FromContext(r.Context()).Error().
				Err(err).
				Str("target_id", targetID.String()).
				Msg("failed to block user")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, user.NewUserResponse(target))
}

// Unblock handles POST /users/unblock/{id}
func (h *Handler) Unblock(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	actorID := middleware.GetUserID(r.Context())

	if err := h.service.Unblock(r.Context(), actorID, targetID); err != nil {
		logger.FromContext(r.Context()).Error().
			Err(err).
			Str("target_id", targetID.String()).
			Msg("failed to unblock user")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]bool{"success": true})
}
