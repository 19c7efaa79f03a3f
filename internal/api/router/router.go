package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/Akhil-Baki/ai-study-pilot/config"
	"github.com/Akhil-Baki/ai-study-pilot/internal/api/handler"
	"github.com/Akhil-Baki/ai-study-pilot/internal/api/middleware"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/jwt"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/redis"
)

// jsonBodyLimit request body cap for non-upload routes
const jsonBodyLimit = 2 << 20

// Setup builds the Gin engine. rdb may be nil; blacklist and rate limiting are then disabled.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	var (
		blacklist middleware.TokenBlacklist
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	// ── global middleware ──
	r.Use(gin.Recovery())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	aiLimit := middleware.RateLimit(limiter, cfg.RateLimit.AIRequests, cfg.RateLimit.Window)
	jsonLimit := middleware.BodyLimit(jsonBodyLimit)
	// multipart overhead on top of the file itself
	uploadLimit := middleware.BodyLimit(cfg.Server.MaxUploadBytes() + 1<<20)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// public auth routes
		auth := v1.Group("/auth", jsonLimit)
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			authorized.POST("/auth/logout", jsonLimit, h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// syllabi
			syllabi := authorized.Group("/syllabi")
			{
				syllabi.POST("/upload", uploadLimit, aiLimit, h.Syllabus.UploadSyllabus)
				syllabi.POST("", jsonLimit, aiLimit, h.Syllabus.CreateSyllabus)
				syllabi.GET("", h.Syllabus.ListSyllabi)
				syllabi.GET("/:id", h.Syllabus.GetSyllabus)
				syllabi.PUT("/:id", jsonLimit, h.Syllabus.UpdateSyllabus)
				syllabi.DELETE("/:id", h.Syllabus.DeleteSyllabus)
			}

			// study plans
			plans := authorized.Group("/study-plans")
			{
				plans.POST("", jsonLimit, aiLimit, h.StudyPlan.CreateStudyPlan)
				plans.GET("", h.StudyPlan.ListStudyPlans)
				plans.GET("/:id", h.StudyPlan.GetStudyPlan)
				plans.DELETE("/:id", h.StudyPlan.DeleteStudyPlan)
				plans.GET("/:id/export.xlsx", h.Export.ExportStudyPlanXLSX)
				plans.GET("/:id/export.ics", h.Export.ExportStudyPlanICS)
			}
			authorized.PUT("/study-sessions/:id", jsonLimit, h.StudyPlan.UpdateStudySession)

			// summaries
			authorized.POST("/summarize", uploadLimit, aiLimit, h.Summary.Summarize)
			summaries := authorized.Group("/summaries")
			{
				summaries.GET("", h.Summary.ListSummaries)
				summaries.DELETE("/:id", h.Summary.DeleteSummary)
			}

			// tasks
			tasks := authorized.Group("/tasks")
			{
				tasks.POST("", jsonLimit, h.Task.CreateTask)
				tasks.GET("", h.Task.ListTasks)
				tasks.GET("/export", h.Export.ExportTasks)
				tasks.GET("/:id", h.Task.GetTask)
				tasks.PUT("/:id", jsonLimit, h.Task.UpdateTask)
				tasks.DELETE("/:id", h.Task.DeleteTask)
			}

			// focus sessions
			focus := authorized.Group("/focus-sessions")
			{
				focus.POST("", jsonLimit, h.FocusSession.StartFocusSession)
				focus.GET("", h.FocusSession.ListFocusSessions)
				focus.PUT("/:id/end", h.FocusSession.EndFocusSession)
			}

			// tutor chat
			chat := authorized.Group("/chat")
			{
				chat.GET("", h.Chat.GetHistory)
				chat.POST("", jsonLimit, aiLimit, h.Chat.SendMessage)
			}
		}
	}

	return r
}
