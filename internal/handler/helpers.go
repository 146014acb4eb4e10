package handler

import (
	"errors"
	"net/http"

	"printshop/internal/apperrors"
	"printshop/internal/logger"
	"printshop/internal/middleware"
	"printshop/internal/model"
	"printshop/internal/service"
	"printshop/internal/web"

	"github.com/gin-gonic/gin"
)

// page builds the template data every page shares
func page(c *gin.Context, flashes *web.FlashStore, title string, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Flashes"] = flashes.Pop(c.Writer, c.Request)
	if identity, ok := middleware.CurrentIdentity(c); ok {
		data["Identity"] = &identity
	}
	return data
}

func flashRedirect(c *gin.Context, flashes *web.FlashStore, kind, message, location string) {
	flashes.Add(c.Writer, c.Request, kind, message)
	c.Redirect(http.StatusSeeOther, location)
}

// fail turns expected errors into a flash and a redirect to location.
// Anything else is logged and rendered as a generic error page.
func fail(c *gin.Context, flashes *web.FlashStore, err error, location string) {
	if apperrors.Category(err) != nil {
		flashRedirect(c, flashes, "error", apperrors.Message(err), location)
		return
	}
	_ = c.Error(err)
	log := logger.With("path", c.Request.URL.Path)
	if identity, ok := middleware.CurrentIdentity(c); ok {
		log = log.With().Int("user_id", identity.UserID).Logger()
	}
	log.Error().Err(err).Msg("Unexpected error handling request")
	c.HTML(http.StatusInternalServerError, "error.html", page(c, flashes, "Something went wrong", gin.H{
		"Message": "An unexpected error occurred. Please try again later.",
	}))
}

// currentUser resolves the session into a live account, clearing stale sessions
func currentUser(c *gin.Context, auth service.AuthService, flashes *web.FlashStore, cookieSecure bool) (*model.User, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return nil, false
	}
	user, err := auth.Identity(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, service.ErrSessionInvalid) {
			middleware.ClearSessionCookie(c, cookieSecure)
		}
		fail(c, flashes, err, "/login")
		return nil, false
	}
	return user, true
}
