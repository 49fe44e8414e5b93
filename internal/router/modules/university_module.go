package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RangiraDave/Test-copilot/internal/container"
	handlers "github.com/RangiraDave/Test-copilot/internal/interface/http"
	"github.com/RangiraDave/Test-copilot/internal/interface/middleware"
	"github.com/RangiraDave/Test-copilot/pkg/helpers"
)

// UniversityModule wires browsing, administrative CRUD and the
// like/dislike preference endpoints.
type UniversityModule struct {
	Handler *handlers.UniversityHandler
	JWT     *helpers.JWTManager
}

func NewUniversityModule(h *handlers.UniversityHandler, jwt *helpers.JWTManager) *UniversityModule {
	return &UniversityModule{Handler: h, JWT: jwt}
}

func (m *UniversityModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	browseLimiter := middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/universities", browseLimiter, m.Handler.List)
	rg.GET("/universities/search", browseLimiter, m.Handler.Search)
	rg.GET("/universities/:id", browseLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetSessions(), m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/universities", m.Handler.Create)
		auth.PUT("/universities/:id", m.Handler.Update)
		auth.DELETE("/universities/:id", m.Handler.Delete)

		auth.POST("/universities/:id/like", m.Handler.Like)
		auth.POST("/universities/:id/dislike", m.Handler.Dislike)
		auth.GET("/preferences", m.Handler.Preferences)
	}
}
