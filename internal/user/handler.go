package user

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coverbox/service/internal/response"
)

// Handler holds HTTP handlers for user-directory endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new user Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type userPayload struct {
	UserID       string  `json:"userid"`
	UserName     string  `json:"user_name"`
	Comment      *string `json:"comment"`
	Role         string  `json:"role"`
	ExtraMessage *string `json:"extra_message"`
}

// Create godoc
//
//	@Summary	Create a user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		userPayload	true	"user fields"
//	@Success	201		{object}	response.Envelope{data=User}
//	@Failure	400		{object}	response.Envelope
//	@Failure	403		{object}	response.Envelope
//	@Failure	409		{object}	response.Envelope
//	@Router		/api/users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p userPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	u, err := h.svc.Create(r.Context(), p.UserID, p.UserName, p.Comment, p.Role, p.ExtraMessage)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingField):
			response.BadRequest(w, "userid and user_name are required")
		case errors.Is(err, ErrInvalidRole):
			response.BadRequest(w, "role must be one of ADMIN, VIP, GUEST")
		case errors.Is(err, ErrAlreadyExists):
			response.Conflict(w, "user with this userid already exists")
		default:
			log.Printf("user create failed: %v", err)
			response.InternalError(w, "user create failed")
		}
		return
	}

	response.Created(w, u)
}

// List godoc
//
//	@Summary	List all users, newest first
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	response.Envelope{data=[]User}
//	@Failure	403	{object}	response.Envelope
//	@Router		/api/users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListAll(r.Context())
	if err != nil {
		log.Printf("user list failed: %v", err)
		users = []User{}
	}
	if users == nil {
		users = []User{}
	}
	response.OK(w, users)
}

// Get godoc
//
//	@Summary	Get a user by numeric id
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"user id"
//	@Success	200	{object}	response.Envelope{data=User}
//	@Failure	400	{object}	response.Envelope
//	@Failure	403	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/api/users/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	u, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "user not found")
			return
		}
		log.Printf("user get failed: %v", err)
		response.InternalError(w, "user get failed")
		return
	}

	response.OK(w, u)
}

// Update godoc
//
//	@Summary	Update a user's mutable fields
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int			true	"user id"
//	@Param		body	body		userPayload	true	"user fields"
//	@Success	200		{object}	response.Envelope{data=User}
//	@Failure	400		{object}	response.Envelope
//	@Failure	403		{object}	response.Envelope
//	@Failure	404		{object}	response.Envelope
//	@Router		/api/users/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var p userPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	u, err := h.svc.Update(r.Context(), id, p.UserName, p.Comment, p.Role, p.ExtraMessage)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingField):
			response.BadRequest(w, "user_name is required")
		case errors.Is(err, ErrInvalidRole):
			response.BadRequest(w, "role must be one of ADMIN, VIP, GUEST")
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "user not found")
		default:
			log.Printf("user update failed: %v", err)
			response.InternalError(w, "user update failed")
		}
		return
	}

	response.OK(w, u)
}

// Delete godoc
//
//	@Summary	Delete a user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"user id"
//	@Success	200	{object}	response.Envelope
//	@Failure	400	{object}	response.Envelope
//	@Failure	403	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/api/users/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "user not found")
			return
		}
		log.Printf("user delete failed: %v", err)
		response.InternalError(w, "user delete failed")
		return
	}

	response.OK(w, map[string]string{"message": "user deleted"})
}

// GetByUserID godoc
//
//	@Summary	Public lookup by external identifier
//	@Tags		users
//	@Produce	json
//	@Param		userid	path		string	true	"external user id"
//	@Success	200		{object}	response.Envelope{data=User}
//	@Failure	404		{object}	response.Envelope
//	@Router		/api/user/{userid} [get]
func (h *Handler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userid")

	u, err := h.svc.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "user not found")
			return
		}
		log.Printf("user lookup failed: %v", err)
		response.InternalError(w, "user lookup failed")
		return
	}

	response.OK(w, u)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid user id")
		return 0, false
	}
	return id, true
}
