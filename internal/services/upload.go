package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/errs"
	"github.com/GregMSThompson/chat-widget/pkg/logger"
)

const profileFolder = "widget_profiles"

// imageHost stores an object and returns the URL it is served from.
type imageHost interface {
	Put(ctx context.Context, object, contentType string, data []byte) (string, error)
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type uploadService struct {
	host     imageHost
	maxBytes int64
}

// NewUploadService accepts profile images up to maxBytes. host may be nil,
// in which case every upload fails.
func NewUploadService(host imageHost, maxBytes int64) *uploadService {
	return &uploadService{host: host, maxBytes: maxBytes}
}

// UploadProfileImage re-hosts a base64 data URL image and returns its URL.
func (s *uploadService) UploadProfileImage(ctx context.Context, req dto.UploadProfileRequest) (dto.UploadProfileResponse, error) {
	dataURL := req.DataURL
	if dataURL == "" {
		return dto.UploadProfileResponse{}, errs.NewValidationError("missing image data")
	}
	if !strings.HasPrefix(dataURL, "data:image/") || !strings.Contains(dataURL, ";base64,") {
		return dto.UploadProfileResponse{}, errs.NewValidationError("invalid image format")
	}

	header, payload, _ := strings.Cut(dataURL, ",")
	if approxDecodedSize(payload) > s.maxBytes {
		return dto.UploadProfileResponse{}, errs.NewPayloadTooLargeError(s.maxBytes)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return dto.UploadProfileResponse{}, errs.NewValidationError("invalid image encoding")
	}

	contentType, err := sniffImage(header, data)
	if err != nil {
		return dto.UploadProfileResponse{}, err
	}

	if s.host == nil {
		return dto.UploadProfileResponse{}, errs.NewStorageError("put", "image hosting not configured", nil)
	}

	object := profileFolder + "/" + uuid.NewString() + imageExtensions[contentType]
	url, err := s.host.Put(ctx, object, contentType, data)
	if err != nil {
		return dto.UploadProfileResponse{}, errs.NewStorageError("put", "upload failed", err)
	}

	logger.FromContext(ctx).Info("profile image uploaded", "object", object, "bytes", len(data))
	return dto.UploadProfileResponse{URL: url}, nil
}

// approxDecodedSize estimates the decoded size of a base64 body the same
// way the check is applied before decoding: ceil(len * 3 / 4).
func approxDecodedSize(b64 string) int64 {
	n := int64(len(b64))
	return (n*3 + 3) / 4
}

// sniffImage checks the bytes are a supported image whose type matches the
// one the data URL declares, and that the image header decodes.
func sniffImage(header string, data []byte) (string, error) {
	declared := strings.TrimPrefix(header, "data:")
	declared, _, _ = strings.Cut(declared, ";")
	declared = strings.ToLower(declared)
	if declared == "image/jpg" {
		declared = "image/jpeg"
	}

	detected := http.DetectContentType(data)
	if _, ok := imageExtensions[detected]; !ok {
		return "", errs.NewValidationError("unsupported image type")
	}
	if detected != declared {
		return "", errs.NewValidationError("image type does not match data")
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", errs.NewValidationError("image could not be decoded")
	}
	return detected, nil
}
