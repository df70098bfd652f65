package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GregMSThompson/chat-widget/internal/errs"
)

// maxBodyBytes bounds widget payloads. Uploads carry base64 images and get
// a limit derived from the image cap instead.
const maxBodyBytes = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.NewPayloadTooLargeError(limit)
		}
		return errs.NewValidationError("invalid JSON payload")
	}
	return nil
}
