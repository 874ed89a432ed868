package waitlist

import (
	"net/http"

	"github.com/go-chi/render"
)

type joinRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type requestDemoRequest struct {
	Email   string  `json:"email" validate:"required,email"`
	Name    string  `json:"name" validate:"required"`
	Company *string `json:"company"`
	Message *string `json:"message"`
}

type testEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type apiResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (a *apiResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	if a.StatusCode != 0 {
		render.Status(r, a.StatusCode)
	}
	return nil
}

func respondWith(success bool, message string, status int) *apiResponse {
	return &apiResponse{
		Success:    success,
		Message:    message,
		StatusCode: status,
	}
}
