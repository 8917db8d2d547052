package router

import (
	"net/http"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/andrewpaige1/preptrack/chat"
	"github.com/andrewpaige1/preptrack/config"
	"github.com/andrewpaige1/preptrack/handlers"
	"github.com/andrewpaige1/preptrack/middleware"
)

// New wires every route behind token validation, request logging and CORS.
func New(db *gorm.DB, jwtValidator *validator.Validator, cfg config.Config) http.Handler {
	DBHandler := handlers.NewDBHandler(db, chat.Placeholder{})
	syncUser := middleware.SyncUserMiddleware(db)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/users/me", syncUser(DBHandler.GetMe))

	// Exams
	mux.HandleFunc("GET /api/exams", syncUser(DBHandler.GetExams))
	mux.HandleFunc("POST /api/exams", syncUser(DBHandler.CreateExam))
	mux.HandleFunc("PUT /api/exams/{examID}", syncUser(DBHandler.UpdateExam))
	mux.HandleFunc("DELETE /api/exams/{examID}", syncUser(DBHandler.DeleteExam))

	// Topics and progress
	mux.HandleFunc("POST /api/topics", syncUser(DBHandler.CreateTopic))
	mux.HandleFunc("PUT /api/progress", syncUser(DBHandler.UpsertProgress))
	mux.HandleFunc("GET /api/progress", syncUser(DBHandler.GetProgress))

	// Groups
	mux.HandleFunc("GET /api/groups", syncUser(DBHandler.GetGroups))
	mux.HandleFunc("POST /api/groups", syncUser(DBHandler.CreateGroup))
	mux.HandleFunc("POST /api/groups/join", syncUser(DBHandler.JoinGroup))
	mux.HandleFunc("GET /api/groups/{groupID}", syncUser(DBHandler.GetGroup))
	mux.HandleFunc("GET /api/groups/{groupID}/members", syncUser(DBHandler.GetGroupMembers))
	mux.HandleFunc("GET /api/groups/{groupID}/messages", syncUser(DBHandler.GetGroupMessages))
	mux.HandleFunc("POST /api/groups/{groupID}/messages", syncUser(DBHandler.PostGroupMessage))

	authMiddleware := middleware.EnsureValidToken(jwtValidator)

	// Health checks skip token validation entirely.
	root := http.NewServeMux()
	root.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	root.Handle("/", authMiddleware(mux))

	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(middleware.WithLogging(root))
}
