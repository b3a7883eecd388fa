package webserver

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// WantsJSON reports whether the client prefers a JSON answer over HTML
func WantsJSON(c echo.Context) bool {
	req := c.Request()
	if strings.EqualFold(req.Header.Get(echo.HeaderXRequestedWith), "XMLHttpRequest") {
		return true
	}
	return acceptRank(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) >
		acceptRank(req.Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}

// IsJSONRequest the request body is JSON or the client asks for JSON back
func IsJSONRequest(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEApplicationJSON) || WantsJSON(c)
}

// acceptRank returns the q value given to mime, 0 when absent.
// Earlier entries win ties by a small positional bonus.
func acceptRank(accept, mime string) float64 {
	parts := strings.Split(accept, ",")
	for i, part := range parts {
		fields := strings.Split(part, ";")
		if !strings.EqualFold(strings.TrimSpace(fields[0]), mime) {
			continue
		}
		q := 1.0
		for _, f := range fields[1:] {
			f = strings.TrimSpace(f)
			if strings.HasPrefix(f, "q=") {
				if v, err := strconv.ParseFloat(f[2:], 64); err == nil {
					q = v
				}
			}
		}
		if q == 0 {
			return 0
		}
		return q + float64(len(parts)-i)*1e-6
	}
	return 0
}
