package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/studynotes-backend/internal/http/handlers"
	httpMW "github.com/yungbote/studynotes-backend/internal/http/middleware"
	"github.com/yungbote/studynotes-backend/internal/observability"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
	"github.com/yungbote/studynotes-backend/internal/platform/ratelimit"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string

	// Nil limiters disable that scope.
	APILimiter  *ratelimit.Limiter
	AuthLimiter *ratelimit.Limiter
	AILimiter   *ratelimit.Limiter

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	NoteHandler    *httpH.NoteHandler
	QuizHandler    *httpH.QuizHandler
	ChatHandler    *httpH.ChatHandler
	StudyHandler   *httpH.StudyHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "studynotes-api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.RequestContext())
	r.Use(httpMW.RequestLogger(log.With("Middleware", "RequestLogger")))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	api.Use(httpMW.RateLimit(log, cfg.APILimiter, cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		api.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	authed := func(c *gin.Context) { c.Next() }
	if cfg.AuthMiddleware != nil {
		authed = cfg.AuthMiddleware.RequireAuth()
	}
	authLimit := httpMW.RateLimit(log, cfg.AuthLimiter, cfg.Metrics)
	aiLimit := httpMW.RateLimit(log, cfg.AILimiter, cfg.Metrics)

	// Auth
	if h := cfg.AuthHandler; h != nil {
		g := api.Group("/auth")
		g.POST("/register", authLimit, h.Register)
		g.POST("/login", authLimit, h.Login)
		g.GET("/profile", authed, h.Profile)
		g.PUT("/profile", authed, h.UpdateProfile)
	}

	// Notes
	if h := cfg.NoteHandler; h != nil {
		g := api.Group("/notes")
		g.GET("/public", h.ListPublic)
		g.POST("", authed, h.Create)
		g.GET("", authed, h.List)
		g.GET("/:id", authed, h.Get)
		g.PUT("/:id", authed, h.Update)
		g.DELETE("/:id", authed, h.Delete)
		g.POST("/:id/summarize", authed, aiLimit, h.Summarize)
		g.POST("/:id/generate-questions", authed, aiLimit, h.GenerateQuestions)
		g.POST("/:id/explain-concept", authed, aiLimit, h.ExplainConcept)
		g.POST("/:id/share", authed, h.Share)
		g.POST("/:id/rate", authed, h.Rate)
	}

	// Quizzes
	if h := cfg.QuizHandler; h != nil {
		g := api.Group("/quizzes")
		g.GET("/public", h.ListPublic)
		g.POST("", authed, h.Create)
		g.POST("/generate", authed, aiLimit, h.Generate)
		g.GET("", authed, h.List)
		g.GET("/attempts/history", authed, h.Attempts)
		g.GET("/:id", authed, h.Get)
		g.POST("/:id/attempt", authed, h.SubmitAttempt)
		g.POST("/:id/share", authed, h.Share)
	}

	// Chat
	if h := cfg.ChatHandler; h != nil {
		g := api.Group("/chat", authed)
		g.GET("/history", h.History)
		g.POST("/session", h.CreateSession)
		g.GET("/session/:id", h.GetSession)
		g.DELETE("/session/:id", h.DeleteSession)
		g.POST("/message", aiLimit, h.SendMessage)
	}

	// Study
	if h := cfg.StudyHandler; h != nil {
		g := api.Group("/study", authed)
		g.POST("/session", h.StartSession)
		g.PUT("/session/:id/end", h.EndSession)
		g.GET("/sessions", h.ListSessions)
		g.GET("/recommendations", aiLimit, h.Recommendations)
		g.GET("/analytics", h.Analytics)
	}

	return r
}
