// Package router builds the gin engine with its public and authenticated route groups.
package router

import (
	"github.com/gin-gonic/gin"

	"bookmark_backend/internal/api"
	"bookmark_backend/internal/app/di"
	"bookmark_backend/internal/platform/logging"
)

// NewRouter mounts every endpoint. Routes under the authenticated group never
// run unless c.Guard accepted the bearer token.
func NewRouter(c *di.Container) *gin.Engine {
	api.RegisterJSONFieldNames()

	r := gin.New()
	r.Use(logging.RequestIDMiddleware(), logging.AccessLogMiddleware(), gin.Recovery())

	// Public
	r.GET("/healthz", c.Health.Health)
	r.HEAD("/healthz", c.Health.Health)
	public := r.Group("/auth")
	{
		public.POST("/signup", c.Auth.Signup)
		public.POST("/signin", c.Auth.Login)
	}

	// Authenticated
	authed := r.Group("/")
	authed.Use(c.Guard)
	{
		authed.GET("/users/me", c.User.Me)
		authed.PATCH("/users", c.User.Edit)

		authed.GET("/bookmarks", c.Bookmark.List)
		authed.POST("/bookmarks", c.Bookmark.Create)
		authed.GET("/bookmarks/:id", c.Bookmark.Get)
		authed.PATCH("/bookmarks/:id", c.Bookmark.Update)
		authed.DELETE("/bookmarks/:id", c.Bookmark.Delete)
	}

	return r
}
