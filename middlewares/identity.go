package middlewares

import "github.com/labstack/echo/v4"

const identityKey = "auth.identity"

// Identity is the authenticated principal attached to the request
// context by the session middleware. Exactly one role applies per
// session; an absent Identity means anonymous.
type Identity struct {
	Role      string // admin | teacher | parent
	SubjectID string // teacher_id or parent_id ("" for seeded admin edge cases)
	Name      string
	SessionID string
}

// CurrentIdentity returns the request's identity, if any.
func CurrentIdentity(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

func setIdentity(c echo.Context, id Identity) {
	c.Set(identityKey, id)
}
