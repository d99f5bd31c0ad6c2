// Package transport defines the JSON shapes exchanged with API consumers.
package transport

import (
	"github.com/rbe-platform/backend/domain"
)

// Envelope is the uniform response wrapper. Success carries data and
// optionally a message; failure carries error. Pagination is present only
// on paginated listings.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes a page of a larger listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes the page count from the total row count.
func NewPagination(page, limit int, total int64) *Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// Success wraps data in a successful envelope.
func Success(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// SuccessMessage wraps data plus a human-readable message.
func SuccessMessage(data interface{}, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

// SuccessPage wraps a listing with its pagination block.
func SuccessPage(data interface{}, pagination *Pagination) Envelope {
	return Envelope{Success: true, Data: data, Pagination: pagination}
}

// Failure wraps an error message in a failed envelope.
func Failure(message string) Envelope {
	return Envelope{Success: false, Error: message}
}

// AuthPayload is returned by register, login and refresh.
type AuthPayload struct {
	User  *domain.PublicUser `json:"user"`
	Token string             `json:"token"`
}

// DeletedPayload acknowledges a delete with the removed row's id.
type DeletedPayload struct {
	ID string `json:"id"`
}
