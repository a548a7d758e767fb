package apperr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func serve(t *testing.T, err error, hdr http.Header) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(e.Logger)
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	e.HTTPErrorHandler(err, c)
	return rec
}

func TestTaxonomyStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "not found", err: NotFound("STUDENT_NOT_FOUND", "student not found"), wantCode: http.StatusNotFound, wantBody: "STUDENT_NOT_FOUND"},
		{name: "unauthorized", err: Unauthorized("/admin/login"), wantCode: http.StatusUnauthorized, wantBody: "UNAUTHORIZED"},
		{name: "forbidden", err: Forbidden(), wantCode: http.StatusForbidden, wantBody: "FORBIDDEN"},
		{name: "conflict", err: Conflict("DUPLICATE_SUBMISSION", "already submitted"), wantCode: http.StatusConflict, wantBody: "DUPLICATE_SUBMISSION"},
		{name: "validation", err: Validation(map[string]string{"phone": "required"}), wantCode: http.StatusBadRequest, wantBody: "phone"},
		{name: "upstream hides cause", err: Upstream(errors.New("pq: connection refused")), wantCode: http.StatusInternalServerError, wantBody: "INTERNAL"},
		{name: "unknown error", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantBody: "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.err, nil)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
			if tt.name == "upstream hides cause" && strings.Contains(rec.Body.String(), "connection refused") {
				t.Error("upstream cause leaked to the client")
			}
		})
	}
}

func TestBrowserRedirects(t *testing.T) {
	html := http.Header{}
	html.Set(echo.HeaderAccept, echo.MIMETextHTML)

	t.Run("unauthorized goes to the role login route", func(t *testing.T) {
		rec := serve(t, Unauthorized("/parent/login"), html)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want 303", rec.Code)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != "/parent/login" {
			t.Errorf("location = %q, want /parent/login", loc)
		}
	})

	t.Run("validation redirects back with message", func(t *testing.T) {
		hdr := http.Header{}
		hdr.Set(echo.HeaderAccept, echo.MIMETextHTML)
		hdr.Set("Referer", "/register")
		rec := serve(t, ValidationMsg("MISSING_FIELDS", "missing required fields"), hdr)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want 303", rec.Code)
		}
		loc := rec.Header().Get(echo.HeaderLocation)
		if !strings.HasPrefix(loc, "/register?error=") {
			t.Fatalf("location = %q, want /register?error=...", loc)
		}
		msg, _ := url.QueryUnescape(strings.TrimPrefix(loc, "/register?error="))
		if msg != "missing required fields" {
			t.Errorf("message = %q", msg)
		}
	})

	t.Run("api clients never get redirects", func(t *testing.T) {
		rec := serve(t, Unauthorized("/admin/login"), nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}
