package app

import (
	"github.com/yungbote/studynotes-backend/internal/ai"
	"github.com/yungbote/studynotes-backend/internal/auth"
	"github.com/yungbote/studynotes-backend/internal/data/repos"
	apphttp "github.com/yungbote/studynotes-backend/internal/http"
	httpH "github.com/yungbote/studynotes-backend/internal/http/handlers"
	httpMW "github.com/yungbote/studynotes-backend/internal/http/middleware"
	"github.com/yungbote/studynotes-backend/internal/observability"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
	"github.com/yungbote/studynotes-backend/internal/services"
)

type Services struct {
	Auth  services.AuthService
	Notes services.NoteService
	Quiz  services.QuizService
	Chat  services.ChatService
	Study services.StudyService
}

func wireServices(log *logger.Logger, store repos.Store, tokens *auth.TokenIssuer, gw *ai.Gateway) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:  services.NewAuthService(log, store.Users(), tokens),
		Notes: services.NewNoteService(log, store.Notes(), gw),
		Quiz:  services.NewQuizService(log, store.Notes(), store.Quizzes(), store.QuizAttempts(), gw),
		Chat:  services.NewChatService(log, store.Chats(), gw),
		Study: services.NewStudyService(log, store.Users(), store.Notes(), store.StudySessions(), gw, nil),
	}
}

type Handlers struct {
	Health *httpH.HealthHandler
	Auth   *httpH.AuthHandler
	Notes  *httpH.NoteHandler
	Quiz   *httpH.QuizHandler
	Chat   *httpH.ChatHandler
	Study  *httpH.StudyHandler
}

func wireHandlers(log *logger.Logger, svc Services, store repos.Store, gw *ai.Gateway) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(store, gw),
		Auth:   httpH.NewAuthHandler(svc.Auth),
		Notes:  httpH.NewNoteHandler(svc.Notes),
		Quiz:   httpH.NewQuizHandler(svc.Quiz),
		Chat:   httpH.NewChatHandler(svc.Chat),
		Study:  httpH.NewStudyHandler(svc.Study),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, limiters Limiters, svc Services, h Handlers) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    cfg.OtelServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
		APILimiter:     limiters.API,
		AuthLimiter:    limiters.Auth,
		AILimiter:      limiters.AI,
		HealthHandler:  h.Health,
		AuthHandler:    h.Auth,
		AuthMiddleware: httpMW.NewAuthMiddleware(log, svc.Auth),
		NoteHandler:    h.Notes,
		QuizHandler:    h.Quiz,
		ChatHandler:    h.Chat,
		StudyHandler:   h.Study,
	})
}
