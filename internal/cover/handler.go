package cover

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coverbox/service/internal/response"
)

const maxUploadBytes = 32 << 20 // 32 MiB multipart memory cap

// Handler holds HTTP handlers for cover endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new cover Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Upload godoc
//
//	@Summary		Upload a cover image
//	@Description	Multipart upload. The image is resized to fit the configured maximum dimension and stored under covers/{picture_name}.
//	@Tags			covers
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file				formData	file	true	"image file"
//	@Param			primary_cover		formData	bool	false	"set as the primary cover"
//	@Param			override_filename	formData	bool	false	"replace the filename with a generated unique name"
//	@Success		200	{object}	response.Envelope{data=UploadResult}
//	@Failure		400	{object}	response.Envelope
//	@Failure		403	{object}	response.Envelope
//	@Failure		409	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/api/cover/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "read uploaded file failed")
		return
	}

	primary := formBool(r, "primary_cover")
	generateName := formBool(r, "override_filename")

	result, err := h.svc.Upload(r.Context(), data, header.Filename, primary, generateName)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedFormat):
			response.BadRequest(w, "unsupported image format")
		case errors.Is(err, ErrAlreadyExists):
			response.Conflict(w, "cover with this name already exists")
		default:
			log.Printf("cover upload failed: %v", err)
			response.InternalError(w, "cover upload failed")
		}
		return
	}

	response.OK(w, result)
}

// Delete godoc
//
//	@Summary	Delete a cover image
//	@Tags		covers
//	@Produce	json
//	@Param		name	path		string	true	"picture name"
//	@Success	200		{object}	response.Envelope
//	@Failure	403		{object}	response.Envelope
//	@Failure	404		{object}	response.Envelope
//	@Failure	500		{object}	response.Envelope
//	@Router		/api/cover/{name} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	if err := h.svc.Delete(r.Context(), name); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "cover not found")
			return
		}
		log.Printf("cover delete failed: %v", err)
		response.InternalError(w, "cover delete failed")
		return
	}

	response.OK(w, map[string]string{"message": "cover deleted"})
}

// List godoc
//
//	@Summary	List all covers, newest first
//	@Tags		covers
//	@Produce	json
//	@Success	200	{object}	response.Envelope
//	@Router		/api/cover/list [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	pictures, err := h.svc.List(r.Context())
	if err != nil {
		log.Printf("cover list failed: %v", err)
		pictures = []CoverPicture{}
	}
	if pictures == nil {
		pictures = []CoverPicture{}
	}

	response.OK(w, map[string]interface{}{
		"pictures": pictures,
		"total":    len(pictures),
	})
}

func formBool(r *http.Request, field string) bool {
	v, err := strconv.ParseBool(r.FormValue(field))
	return err == nil && v
}
