// Package pagination provides limit/offset pagination helpers for list
// endpoints.
package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds the limit/offset pair parsed from a request.
type Params struct {
	Limit  int
	Offset int
}

// FromContext extracts pagination parameters from the request query string.
// Out-of-range values are clamped, malformed values fall back to defaults.
func FromContext(c echo.Context) Params {
	p := Params{Limit: DefaultLimit, Offset: 0}

	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Limit = v
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if raw := c.QueryParam("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			p.Offset = v
		}
	}

	return p
}

// Response is the standard paginated list envelope.
type Response struct {
	Items  interface{} `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// NewResponse wraps items in a Response envelope.
func NewResponse(items interface{}, total, limit, offset int) Response {
	return Response{Items: items, Total: total, Limit: limit, Offset: offset}
}
