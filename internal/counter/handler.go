package counter

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/coverbox/service/internal/response"
)

// The action validation messages are part of the wire contract consumed by
// the mini-program client and must stay byte-for-byte stable.
const (
	errMissingAction = "缺少action参数"
	errInvalidAction = "action参数错误"
)

// Handler holds HTTP handlers for the counter endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new counter Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Act godoc
//
//	@Summary		Increment or clear the counter
//	@Description	action "inc" increments and returns the new count; action "clear" removes the counter.
//	@Tags			counter
//	@Accept			json
//	@Produce		json
//	@Param			body	body		object	true	"{\"action\": \"inc\"|\"clear\"}"
//	@Success		200		{object}	response.Envelope
//	@Failure		400		{object}	response.Envelope
//	@Router			/api/count [post]
func (h *Handler) Act(w http.ResponseWriter, r *http.Request) {
	var params map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		response.BadRequest(w, errMissingAction)
		return
	}

	raw, ok := params["action"]
	if !ok {
		response.BadRequest(w, errMissingAction)
		return
	}

	switch raw {
	case "inc":
		count, err := h.svc.Increment(r.Context())
		if err != nil {
			log.Printf("counter increment failed: %v", err)
			response.InternalError(w, "counter increment failed")
			return
		}
		response.OK(w, count)
	case "clear":
		if err := h.svc.Clear(r.Context()); err != nil {
			log.Printf("counter clear failed: %v", err)
			response.InternalError(w, "counter clear failed")
			return
		}
		response.OKEmpty(w)
	default:
		response.BadRequest(w, errInvalidAction)
	}
}

// Get godoc
//
//	@Summary	Current counter value
//	@Tags		counter
//	@Produce	json
//	@Success	200	{object}	response.Envelope{data=int}
//	@Router		/api/count [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Get(r.Context())
	if err != nil {
		log.Printf("counter get failed: %v", err)
		response.InternalError(w, "counter get failed")
		return
	}
	response.OK(w, count)
}
