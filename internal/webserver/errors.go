package webserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MsgUnexpected generic message shown for server side failures
const MsgUnexpected = "An unexpected error occurred. Please try again later."

func (s *WebServer) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := MsgUnexpected
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code < http.StatusInternalServerError {
			msg = fmt.Sprint(he.Message)
		}
	}
	if code >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err))
	}

	var werr error
	switch {
	case c.Request().Method == http.MethodHead:
		werr = c.NoContent(code)
	case IsJSONRequest(c):
		werr = c.JSON(code, map[string]interface{}{"success": false, "message": msg})
	default:
		if r, ok := s.root.Renderer.(*Renderer); ok && r.Has("error") {
			werr = c.Render(code, "error", map[string]interface{}{
				"title":   fmt.Sprintf("%d %s", code, http.StatusText(code)),
				"code":    code,
				"message": msg,
			})
		} else {
			werr = c.String(code, msg)
		}
	}
	if werr != nil {
		zap.L().Warn("write error response", zap.Error(werr))
	}
}
