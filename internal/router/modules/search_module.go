package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RangiraDave/Test-copilot/internal/container"
	handlers "github.com/RangiraDave/Test-copilot/internal/interface/http"
	"github.com/RangiraDave/Test-copilot/internal/interface/middleware"
	"github.com/RangiraDave/Test-copilot/pkg/helpers"
)

// SearchModule wires the model-backed advisory search endpoint. The upstream
// completion API meters us per minute, so the per-user limit here is tight.
type SearchModule struct {
	Handler *handlers.SearchHandler
	JWT     *helpers.JWTManager
}

func NewSearchModule(h *handlers.SearchHandler, jwt *helpers.JWTManager) *SearchModule {
	return &SearchModule{Handler: h, JWT: jwt}
}

func (m *SearchModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetSessions(), m.JWT))
	auth.Use(middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/search", m.Handler.Ask)
	}
}
