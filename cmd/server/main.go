package main

import (
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/config"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/database"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/handlers"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/logging"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/middleware"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/services"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/ws"

	_ "github.com/Rutujpatil0403/InterviewX-sub000/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           InterviewX API
// @version         1.0
// @description     Interview scheduling and session tracking with optional AI-led sessions
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	log, err := logging.Init()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	db := database.Connect(cfg, log)
	database.AutoMigrate(db, log)

	hub := ws.NewHub(log)

	authService := services.NewAuthService(db, cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHrs)
	interviewService := services.NewInterviewService(db, authService, cfg)
	answerService := services.NewAnswerService(db)
	sessionService := services.NewAISessionService(db)
	completionService := services.NewCompletionService(db)
	templateService := services.NewTemplateService(db)

	authHandler := handlers.NewAuthHandler(authService)
	interviewHandler := handlers.NewInterviewHandler(interviewService, completionService, hub)
	answerHandler := handlers.NewAnswerHandler(answerService, hub)
	sessionHandler := handlers.NewAISessionHandler(sessionService, hub)
	templateHandler := handlers.NewTemplateHandler(templateService)
	wsHandler := handlers.NewWSHandler(hub, authService, interviewService, log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/interviews/:id", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		templates := api.Group("/templates")
		templates.Use(middleware.JWTAuth(authService))
		{
			templates.GET("", templateHandler.ListTemplates)
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("/:id", templateHandler.GetTemplate)
		}

		interviews := api.Group("/interviews")
		interviews.Use(middleware.JWTAuth(authService))
		{
			interviews.GET("", interviewHandler.ListInterviews)
			interviews.POST("", interviewHandler.CreateInterview)
			interviews.GET("/:id", interviewHandler.GetInterview)
			interviews.DELETE("/:id", interviewHandler.DeleteInterview)
			interviews.POST("/:id/start", interviewHandler.StartInterview)
			interviews.POST("/:id/pause", interviewHandler.PauseInterview)
			interviews.POST("/:id/resume", interviewHandler.ResumeInterview)
			interviews.POST("/:id/end", interviewHandler.EndInterview)
			interviews.POST("/:id/cancel", interviewHandler.CancelInterview)
			interviews.GET("/:id/stats", interviewHandler.GetCompletionStats)

			interviews.GET("/:id/answers", answerHandler.GetAnswers)
			interviews.POST("/:id/answers", answerHandler.SubmitAnswer)
			interviews.PUT("/:id/answers/:questionId", answerHandler.UpdateAnswer)
			interviews.POST("/:id/answers/:questionId/score", answerHandler.ScoreAnswer)

			interviews.GET("/:id/session", sessionHandler.GetSession)
			interviews.POST("/:id/session/transcript", sessionHandler.AppendTranscript)
			interviews.PUT("/:id/session/insights", sessionHandler.UpdateInsights)
			interviews.POST("/:id/session/finalize", sessionHandler.FinalizeAnalysis)
		}
	}

	log.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
