// internal/models/home.go
package models

// HomeProduct is the home feed's product shape. Older backend builds exposed
// the main image under "mainImage"; both spellings are accepted and
// normalized by the storefront store.
type HomeProduct struct {
	Product
	MainImage string `json:"mainImage,omitempty"`
}

// HomeData is the aggregated home feed payload.
type HomeData struct {
	Recommendations []HomeProduct `json:"recommendations"`
	Latest          []HomeProduct `json:"latest"`
	TotalCount      int64         `json:"totalCount"`
}

// UploadResult is the payload returned by POST /upload.
type UploadResult struct {
	URL string `json:"url"`
}
