package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/voluntree/backend/config"
	"github.com/voluntree/backend/internal/handler"
	"github.com/voluntree/backend/internal/middleware"
	"github.com/voluntree/backend/internal/service"
	"github.com/voluntree/backend/pkg/validation"
)

// Router wires handlers, middleware and routes into a gin engine.
type Router struct {
	cfg    *config.Config
	tokens *service.TokenService
	users  service.UserStore

	auth    *handler.AuthHandler
	user    *handler.UserHandler
	follow  *handler.FollowHandler
	profile *handler.ProfileHandler
	health  *handler.HealthHandler
}

func New(
	cfg *config.Config,
	tokens *service.TokenService,
	users service.UserStore,
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	follow *handler.FollowHandler,
	profile *handler.ProfileHandler,
	health *handler.HealthHandler,
) *Router {
	return &Router{
		cfg:     cfg,
		tokens:  tokens,
		users:   users,
		auth:    auth,
		user:    user,
		follow:  follow,
		profile: profile,
		health:  health,
	}
}

// Setup builds the engine with global middleware and all routes.
func (r *Router) Setup() *gin.Engine {
	if r.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	registerCustomValidators()

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.RequestContext(),
		middleware.Logging(),
		middleware.CORS(r.cfg.App.CORSOrigin),
	)

	engine.GET("/health", r.health.Health)

	api := engine.Group("/api/v1")
	r.registerUserRoutes(api)

	return engine
}

// registerCustomValidators adds platform-specific binding tags.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", validation.UsernameValidator)
	}
}
