package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/peopledir/peopledir-api/internal/middleware"
	"github.com/peopledir/peopledir-api/internal/pkg/logger"
	"github.com/peopledir/peopledir-api/internal/pkg/response"
	"github.com/peopledir/peopledir-api/internal/pkg/validator"
)

// Handler handles user HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SignUp handles POST /users
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			response.Conflict(w, "Username already taken")
		default:
			logger.FromContext(r.Context()).Error().
				Err(err).
				Str("username", req.Username).
				Msg("failed to sign up user")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, result)
}

// ListAll handles GET /users/all
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("failed to list users")
		response.InternalError(w)
		return
	}

	response.OK(w, NewUserResponseList(users))
}

// Me handles GET /users
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	u, err := h.service.Current(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			logger.FromContext(r.Context()).Error().Err(err).Msg("failed to fetch current user")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewUserResponse(u))
}

// UpdateMe handles PUT /users
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())

	u, err := h.service.Update(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ErrUsernameTaken):
			response.Conflict(w, "Username already taken")
		default:
			logger.FromContext(r.Context()).Error().Err(err).Msg("failed to update user")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewUserResponse(u))
}

// DeleteMe handles DELETE /users
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), userID); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("failed to delete user")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]bool{"success": true})
}

// Search handles GET /users/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	opts, err := parseSearchOptions(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	actorID := middleware.GetUserID(r.Context())

	users, err := h.service.Search(r.Context(), actorID, opts)
	if err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("failed to search users")
		response.InternalError(w)
		return
	}

	response.OK(w, NewUserResponseList(users))
}

func parseSearchOptions(r *http.Request) (*SearchOptions, error) {
	opts := &SearchOptions{}
	q := r.URL.Query()

	if username := q.Get("username"); username != "" {
		opts.Username = &username
	}
	if raw := q.Get("minAge"); raw != "" {
		minAge, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("minAge must be an integer")
		}
		opts.MinAge = &minAge
	}
	if raw := q.Get("maxAge"); raw != "" {
		maxAge, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("maxAge must be an integer")
		}
		opts.MaxAge = &maxAge
	}

	return opts, nil
}
