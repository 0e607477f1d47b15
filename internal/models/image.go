package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/harrylevesque/gallery/internal/utils"
)

// ImageID is the service's identifier for an image. The API has been seen
// sending both JSON strings and numbers, so both decode to the same value.
type ImageID string

func (id *ImageID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ImageID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return utils.Invalid("id", "expected string or number, got "+string(data))
	}
	*id = ImageID(n.String())
	return nil
}

func (id ImageID) String() string { return string(id) }

// Image is one entry of GET /api/images.
type Image struct {
	ID   ImageID `json:"id"`
	Name string  `json:"name"`
	URL  string  `json:"url"`
}

// Validate rejects entries the gallery table cannot render or delete.
func (i Image) Validate() error {
	if strings.TrimSpace(string(i.ID)) == "" {
		return utils.Invalid("id", "missing image id")
	}
	if strings.TrimSpace(i.URL) == "" {
		return utils.Invalid("url", "missing url for image "+string(i.ID))
	}
	return nil
}

// UploadResponse is the success body of POST /upload.
type UploadResponse struct {
	URL string `json:"url"`
}

func (r UploadResponse) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return utils.Invalid("url", "upload response has no url")
	}
	return nil
}

// ErrorResponse is the optional failure body returned by the service.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
