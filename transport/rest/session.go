package rest

import (
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/pkg"
)

const sessionCookie = "user_session"

// sessionID returns the browser's session id, issuing a new cookie when the
// request carries none.
func (that *Server) sessionID(writer http.ResponseWriter, req *http.Request) string {
	if cookie, err := req.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := pkg.GenerateNewSessionID()

	cookie := &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if that.sessionTTL > 0 {
		cookie.Expires = time.Now().Add(that.sessionTTL)
		cookie.MaxAge = int(that.sessionTTL.Seconds())
	}

	http.SetCookie(writer, cookie)

	that.logger.Debug("session cookie not found, new one created", "session", id)

	return id
}
