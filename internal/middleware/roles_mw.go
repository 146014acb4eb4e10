package middleware

import (
	"net/http"

	"printshop/internal/model"

	"github.com/gin-gonic/gin"
)

// RequireLogin sends anonymous callers to the login page
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireCapability sends callers whose role lacks cap back to their own dashboard.
// It must run after RequireLogin.
func RequireCapability(capability model.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		if !identity.Role.Can(capability) {
			c.Redirect(http.StatusSeeOther, identity.Role.Dashboard())
			c.Abort()
			return
		}
		c.Next()
	}
}

// StudentOnly gates the job submission pages
func StudentOnly() gin.HandlerFunc {
	return RequireCapability(model.CapSubmitJobs)
}

// StaffOnly gates the queue management pages
func StaffOnly() gin.HandlerFunc {
	return RequireCapability(model.CapManageQueue)
}
