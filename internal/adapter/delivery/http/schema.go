package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/vadimbarashkov/shortlink/internal/entity"
)

// urlRequest represents the structure for a request to shorten or modify a URL.
type urlRequest struct {
	URL string `json:"url" validate:"required,url,max=2048"`
}

// urlResponse represents a mapping together with its access count.
type urlResponse struct {
	ID          uuid.UUID `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"url"`
	AccessCount int64     `json:"access_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toURLResponse(url *entity.URL) urlResponse {
	return urlResponse{
		ID:          url.ID,
		ShortCode:   url.ShortCode,
		OriginalURL: url.OriginalURL,
		AccessCount: url.AccessCount,
		CreatedAt:   url.CreatedAt,
		UpdatedAt:   url.UpdatedAt,
	}
}

type healthResponse struct {
	Status string `json:"status"`
}
