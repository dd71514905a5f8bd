package routes

import (
	"net/http"

	_ "github.com/Dosada05/participants-admin/docs" // регистрирует swagger-спеку
	"github.com/Dosada05/participants-admin/handlers"
	"github.com/Dosada05/participants-admin/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	participantHandler *handlers.ParticipantHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	authenticate := middleware.Authenticate(opts.JWTSecret)

	router.Route("/participants", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/", participantHandler.Table)
		r.Post("/", participantHandler.Add)
		r.Get("/roles", participantHandler.Roles)
		r.Post("/export", participantHandler.Export)
		r.Get("/{participantID}", participantHandler.Get)
		r.Put("/{participantID}", participantHandler.Edit)
		r.Delete("/{participantID}", participantHandler.Delete)
	})

	router.With(middleware.TokenFromQuery, authenticate).Get("/ws/notifications", webSocketHandler.ServeWs)
}
