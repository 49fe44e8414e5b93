package router

import (
	"github.com/gin-gonic/gin"

	"github.com/RangiraDave/Test-copilot/internal/application"
	"github.com/RangiraDave/Test-copilot/internal/container"
	"github.com/RangiraDave/Test-copilot/internal/infrastructure/postgres"
	handlers "github.com/RangiraDave/Test-copilot/internal/interface/http"
	"github.com/RangiraDave/Test-copilot/internal/router/modules"
)

// Init builds the dependency graph (repositories, services, handlers) from
// the container singletons and registers every feature module on /api.
func Init(engine *gin.Engine) *Registry {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwtMgr := container.GetJWT()

	userRepo := postgres.NewUserRepository(pool)
	universityRepo := postgres.NewUniversityRepository(pool)
	prefRepo := postgres.NewPreferenceRepository(pool)

	var mail application.EmailPublisher
	if pub := container.GetMailPub(); pub != nil {
		mail = pub
	}

	authSvc := &application.AuthService{
		Users:    userRepo,
		Sessions: container.GetSessions(),
		JWT:      jwtMgr,
		Tokens:   container.GetTokenIssuer(),
		Mail:     mail,
		Logger:   logger,
		ResetURL: cfg.ResetPasswordURL,
		AppName:  cfg.AppName,
		MailOn:   cfg.MailSendEnabled,
	}
	universitySvc := &application.UniversityService{
		Repo:    universityRepo,
		Logger:  logger,
		ES:      container.GetES(),
		ESIndex: cfg.ESUniversityIndex,
	}
	prefSvc := &application.PreferenceService{
		Prefs:        prefRepo,
		Universities: universityRepo,
		Logger:       logger,
	}
	advisorSvc := &application.AdvisorService{
		LLM:    container.GetLLM(),
		Logger: logger,
	}

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	universityHandler := handlers.NewUniversityHandler(universitySvc, prefSvc, logger)
	searchHandler := handlers.NewSearchHandler(advisorSvc, logger)

	reg := NewRegistry(engine)
	reg.Add(modules.NewAuthModule(authHandler, jwtMgr))
	reg.Add(modules.NewUniversityModule(universityHandler, jwtMgr))
	reg.Add(modules.NewSearchModule(searchHandler, jwtMgr))
	reg.RegisterAll()
	return reg
}
