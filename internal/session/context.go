package session

import (
	"github.com/gin-gonic/gin"

	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

const contextKey = "session"

// Attach stores s on the request. user_id is kept alongside for handlers that
// only need the account id.
func Attach(c *gin.Context, s Session) {
	c.Set(contextKey, s)
	c.Set("user_id", s.AccountID.String())
}

func FromContext(c *gin.Context) (Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}

// Require returns apperror.ErrUnauthorized when no session is
// attached.
func Require(c *gin.Context) (Session, error) {
	s, ok := FromContext(c)
	if !ok {
		return Session{}, apperror.ErrUnauthorized
	}
	return s, nil
}
