package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

const testSecret = "test-secret"

type fakeStore struct {
	sessions map[string]*models.Session
	touched  map[string]time.Time
}

func newFakeStore(sessions ...*models.Session) *fakeStore {
	s := &fakeStore{sessions: map[string]*models.Session{}, touched: map[string]time.Time{}}
	for _, sess := range sessions {
		s.sessions[sess.ID] = sess
	}
	return s
}

func (s *fakeStore) Get(id string) (*models.Session, error) { return s.sessions[id], nil }

func (s *fakeStore) Touch(id string, exp time.Time) error {
	s.touched[id] = exp
	return nil
}

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := SignSessionToken(testSecret, "sid-123")
	if err != nil {
		t.Fatal(err)
	}
	sid, err := parseSessionToken(testSecret, tok)
	if err != nil {
		t.Fatal(err)
	}
	if sid != "sid-123" {
		t.Errorf("sid = %q, want sid-123", sid)
	}
}

func TestParseRejectsForgedToken(t *testing.T) {
	tok, _ := SignSessionToken("other-secret", "sid-123")
	if _, err := parseSessionToken(testSecret, tok); err == nil {
		t.Error("token signed with the wrong secret was accepted")
	}
	if _, err := parseSessionToken(testSecret, "not-a-token"); err == nil {
		t.Error("garbage token was accepted")
	}
}

func TestLoadSessionAttachesIdentity(t *testing.T) {
	sess := &models.Session{
		ID: "s1", Role: models.RoleTeacher, SubjectID: "T001", Name: "Alemu",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	store := newFakeStore(sess)
	tok, _ := SignSessionToken(testSecret, "s1")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tok})
	c := e.NewContext(req, httptest.NewRecorder())

	var got Identity
	h := LoadSession(testSecret, store)(func(c echo.Context) error {
		got, _ = CurrentIdentity(c)
		return nil
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if got.Role != models.RoleTeacher || got.SubjectID != "T001" {
		t.Errorf("identity = %+v", got)
	}
	// near-expiry session must have been renewed
	if _, ok := store.touched["s1"]; !ok {
		t.Error("sliding expiry was not touched")
	}
}

func TestLoadSessionIgnoresExpired(t *testing.T) {
	sess := &models.Session{
		ID: "s1", Role: models.RoleParent, SubjectID: "PAR001",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	store := newFakeStore(sess)
	tok, _ := SignSessionToken(testSecret, "s1")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tok})
	c := e.NewContext(req, httptest.NewRecorder())

	h := LoadSession(testSecret, store)(func(c echo.Context) error {
		if _, ok := CurrentIdentity(c); ok {
			t.Error("expired session produced an identity")
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}
}

func TestRequireRole(t *testing.T) {
	teacher := &models.Session{ID: "s1", Role: models.RoleTeacher, SubjectID: "T001", ExpiresAt: time.Now().Add(SessionTTL)}
	admin := &models.Session{ID: "s2", Role: models.RoleAdmin, SubjectID: "T000", ExpiresAt: time.Now().Add(SessionTTL)}
	store := newFakeStore(teacher, admin)

	tests := []struct {
		name     string
		session  string
		roles    []string
		wantKind apperr.Kind // 0 = allowed
	}{
		{name: "anonymous is unauthorized", session: "", roles: []string{"admin"}, wantKind: apperr.KindUnauthorized},
		{name: "wrong role is forbidden", session: "s1", roles: []string{"admin"}, wantKind: apperr.KindForbidden},
		{name: "matching role passes", session: "s1", roles: []string{"teacher", "admin"}, wantKind: 0},
		{name: "admin passes teacher routes", session: "s2", roles: []string{"teacher", "admin"}, wantKind: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.session != "" {
				tok, _ := SignSessionToken(testSecret, tt.session)
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tok})
			}
			c := e.NewContext(req, httptest.NewRecorder())

			ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
			h := LoadSession(testSecret, store)(RequireRole("/admin/login", tt.roles...)(ok))
			err := h(c)

			if tt.wantKind == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			ae, isApp := apperr.As(err)
			if !isApp || ae.Kind != tt.wantKind {
				t.Fatalf("error = %v, want kind %d", err, tt.wantKind)
			}
			if tt.wantKind == apperr.KindUnauthorized && ae.LoginPath != "/admin/login" {
				t.Errorf("login path = %q", ae.LoginPath)
			}
		})
	}
}
