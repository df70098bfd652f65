package dto

type UploadProfileRequest struct {
	DataURL string `json:"dataUrl"`
}

type UploadProfileResponse struct {
	URL string `json:"url"`
}
