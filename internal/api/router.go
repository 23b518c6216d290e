package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"blog_nest/internal/api/handler"
	"blog_nest/internal/api/middleware"
	"blog_nest/internal/app/service"
	"blog_nest/internal/common/security"
	"blog_nest/internal/platform/config"
)

func NewRouter(
	logger *zap.Logger,
	cfg *config.Config,
	tokens *security.TokenManager,
	cookies *security.RefreshCookie,
	authService *service.AuthService,
	blogService *service.BlogService,
	commentService *service.CommentService,
	userService *service.UserService,
	loginLimiter *middleware.LoginLimiter,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // the refresh cookie is cross-site
		MaxAge:           300,
	}))

	authenticated := []func(http.Handler) http.Handler{
		middleware.Verifier(tokens),
		middleware.Authenticator,
	}

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(authService, cookies)
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/sign_up", authHandler.SignUp)
		ar.With(loginLimiter.Handler).Post("/login", authHandler.Login)
		ar.Get("/refresh", authHandler.Refresh)
		ar.Post("/logout", authHandler.Logout)
	})

	blogHandler := handler.NewBlogHandler(blogService)
	r.Route("/blog", func(br chi.Router) {
		br.Get("/blogs_all", blogHandler.ListPublished)
		br.Get("/{blogID}", blogHandler.Get)

		br.Group(func(admin chi.Router) {
			admin.Use(authenticated...)
			admin.Use(middleware.AdminOnly)
			admin.Get("/blogs", blogHandler.ListAll)
			admin.Post("/create_blog", blogHandler.Create)
			admin.Patch("/update/{blogID}", blogHandler.Update)
			admin.Patch("/publish/{blogID}", blogHandler.TogglePublish)
		})
	})

	commentHandler := handler.NewCommentHandler(commentService)
	r.Route("/comment", func(cr chi.Router) {
		cr.Group(func(auth chi.Router) {
			auth.Use(authenticated...)
			auth.Post("/create/{blogID}", commentHandler.Create)
		})
		cr.Group(func(admin chi.Router) {
			admin.Use(authenticated...)
			admin.Use(middleware.AdminOnly)
			admin.Delete("/delete/{commentID}", commentHandler.Delete)
		})
	})

	userHandler := handler.NewUserHandler(userService)
	r.Route("/user", func(ur chi.Router) {
		ur.Use(authenticated...)
		ur.Use(middleware.AdminOnly)
		ur.Get("/users", userHandler.List)
		ur.Patch("/active/{userID}", userHandler.ToggleActive)
		ur.Patch("/roles/{userID}", userHandler.SetRoles)
	})

	return r
}
