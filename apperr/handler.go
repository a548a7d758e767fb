package apperr

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

func status(k Kind) int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// wantsHTML reports whether the caller is a browser form post rather
// than an API client. Those get the legacy redirect behavior.
func wantsHTML(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMETextHTML)
}

// NewHTTPErrorHandler translates every error escaping a handler.
// API callers receive {"error": CODE, ...} with the taxonomy status;
// browser requests are redirected: unauthorized to the role's login
// route, anything else back to the referring page with ?error=message.
func NewHTTPErrorHandler(logger echo.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		body := map[string]any{"error": "INTERNAL"}

		if e, ok := As(err); ok {
			code = status(e.Kind)
			body = map[string]any{"error": e.Code}
			if e.Msg != "" {
				body["message"] = e.Msg
			}
			if e.Fields != nil {
				body["fields"] = e.Fields
			}
			if e.Kind == KindUpstream {
				logger.Error(err)
				body = map[string]any{"error": "INTERNAL"}
			}
			if wantsHTML(c) {
				redirectHTML(c, e)
				return
			}
		} else if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			body = map[string]any{"error": he.Message}
		} else {
			logger.Error(err)
		}

		if err := c.JSON(code, body); err != nil {
			logger.Error(err)
		}
	}
}

func redirectHTML(c echo.Context, e *Error) {
	if e.Kind == KindUnauthorized && e.LoginPath != "" {
		_ = c.Redirect(http.StatusSeeOther, e.LoginPath)
		return
	}
	if e.Kind == KindUpstream {
		_ = c.JSON(http.StatusInternalServerError, map[string]any{"error": "INTERNAL"})
		return
	}
	back := c.Request().Referer()
	if back == "" {
		back = "/"
	}
	msg := e.Msg
	if msg == "" {
		msg = e.Code
	}
	sep := "?"
	if strings.Contains(back, "?") {
		sep = "&"
	}
	_ = c.Redirect(http.StatusSeeOther, back+sep+"error="+url.QueryEscape(msg))
}
