package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const problemTypeBase = "https://timevalue.fortuna.app/errors/"

// problemKind is one failure the middleware chain can answer with before a handler runs
type problemKind struct {
	slug   string
	title  string
	status int
}

var (
	kindUnauthorized = problemKind{"unauthorized", "Unauthorized", http.StatusUnauthorized}
	kindRateLimited  = problemKind{"rate-limit", "Rate Limit Exceeded", http.StatusTooManyRequests}
	kindLookupFailed = problemKind{"user-lookup", "User Lookup Unavailable", http.StatusServiceUnavailable}
)

func (k problemKind) typeURI() string {
	return problemTypeBase + k.slug
}

// problem is an RFC 7807 body, the same shape the handlers answer with
type problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func writeProblem(c echo.Context, kind problemKind, detail string) error {
	return c.JSON(kind.status, problem{
		Type:     kind.typeURI(),
		Title:    kind.title,
		Status:   kind.status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}
