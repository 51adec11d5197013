package asset

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/imgbed/service/internal/response"
)

// DeleteResponse is returned for a completed (possibly degraded) deletion.
type DeleteResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	FileID     string `json:"fileId"`
	StorageKey string `json:"storageKey"`
	Backend    string `json:"backend"`

	R2Key string `json:"r2Key,omitempty"`

	TelegramDeleteAttempted *bool  `json:"telegramDeleteAttempted,omitempty"`
	TelegramDeleted         *bool  `json:"telegramDeleted,omitempty"`
	TelegramError           string `json:"telegramError,omitempty"`
	Warning                 string `json:"warning,omitempty"`
}

// NotFoundResponse is returned when no metadata record resolves.
type NotFoundResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	FileID     string `json:"fileId"`
	StorageKey string `json:"storageKey"`
}

// Handler holds HTTP handlers for file endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new file Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Delete godoc
//
//	@Summary		Delete a file
//	@Description	Deletes a file's payload from R2 or Telegram and removes its metadata record.
//	@Description	Telegram message deletion is best-effort; failures are reported in telegramError and warning.
//	@Tags			files
//	@Produce		json
//	@Param			id	path		string	true	"File id, optionally prefixed (img:, vid:, aud:, doc:, r2:)"
//	@Success		200	{object}	DeleteResponse
//	@Failure		400	{object}	response.Envelope
//	@Failure		404	{object}	NotFoundResponse
//	@Failure		500	{object}	response.Envelope
//	@Router			/files/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := fileID(r)

	out, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeError(w, id, err)
		return
	}
	response.JSON(w, http.StatusOK, composeResponse(out))
}

// fileID returns the wildcard path segment decoded exactly once. chi routes on
// r.URL.RawPath when it is set, so the segment is still escaped then; otherwise
// it comes from the already decoded r.URL.Path.
func fileID(r *http.Request) string {
	param := chi.URLParam(r, "*")
	if r.URL.RawPath == "" {
		return param
	}
	return decodeID(param)
}

// decodeID percent-decodes the path id, falling back to the raw value.
func decodeID(raw string) string {
	id, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return id
}

// composeResponse maps an outcome to the response body. Telegram fields are
// only present for Telegram deletions.
func composeResponse(out *Outcome) DeleteResponse {
	resp := DeleteResponse{
		Success:    true,
		Message:    out.Message,
		FileID:     out.ID,
		StorageKey: out.Key,
		Backend:    out.Backend.String(),
	}
	switch out.Backend {
	case BackendR2:
		resp.R2Key = out.ObjectKey
	case BackendTelegram:
		attempted, deleted := out.TelegramDeleteAttempted, out.TelegramDeleted
		resp.TelegramDeleteAttempted = &attempted
		resp.TelegramDeleted = &deleted
		resp.TelegramError = out.TelegramError
		resp.Warning = out.Warning
	}
	return resp
}

func writeError(w http.ResponseWriter, id string, err error) {
	var notFound *NotFoundError
	var objectErr *ObjectDeleteError
	switch {
	case errors.As(err, &notFound):
		response.JSON(w, http.StatusNotFound, NotFoundResponse{
			Success:    false,
			Error:      ErrNotFound.Error(),
			FileID:     id,
			StorageKey: notFound.LastKey,
		})
	case errors.Is(err, ErrInvalidID):
		response.BadRequest(w, err.Error())
	case isConfigError(err):
		response.InternalError(w, err.Error())
	case errors.As(err, &objectErr):
		response.InternalError(w, "failed to delete file from R2 storage")
	default:
		response.InternalError(w, "failed to delete file")
	}
}
