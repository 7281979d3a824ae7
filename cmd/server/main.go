package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campuskit/school-admin-api/api/swagger"
	"github.com/campuskit/school-admin-api/internal/handler"
	"github.com/campuskit/school-admin-api/internal/middleware"
	"github.com/campuskit/school-admin-api/internal/repository"
	"github.com/campuskit/school-admin-api/internal/service"
	"github.com/campuskit/school-admin-api/pkg/config"
	"github.com/campuskit/school-admin-api/pkg/database"
	"github.com/campuskit/school-admin-api/pkg/logger"
	corsmiddleware "github.com/campuskit/school-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campuskit/school-admin-api/pkg/middleware/requestid"
)

// @title School Admin API
// @version 1.0.0
// @description Administration backend for students, staff, classrooms, library and exams
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	schemaCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(schemaCtx, db); err != nil {
		logr.Sugar().Fatalw("failed to ensure schema", "error", err)
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	bookRepo := repository.NewBookRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	resultRepo := repository.NewResultRepository(db)
	feeRepo := repository.NewFeeRepository(db)

	studentSvc := service.NewStudentService(studentRepo, classroomRepo, issueRepo, resultRepo, feeRepo, validate, logr)
	staffSvc := service.NewStaffService(staffRepo, validate, logr)
	classroomSvc := service.NewClassroomService(classroomRepo, studentRepo, validate, logr)
	librarySvc := service.NewLibraryService(bookRepo, issueRepo, studentRepo, validate, logr)
	resultSvc := service.NewResultService(resultRepo, studentRepo, validate, logr)
	feeSvc := service.NewFeeService(feeRepo, studentRepo, validate, logr)
	reportSvc := service.NewReportService(studentRepo, resultRepo, nil, nil, logr)
	importSvc := service.NewImportService(studentRepo, logr)
	metricsSvc := service.NewMetricsService()

	studentHandler := handler.NewStudentHandler(studentSvc)
	staffHandler := handler.NewStaffHandler(staffSvc)
	classroomHandler := handler.NewClassroomHandler(classroomSvc)
	libraryHandler := handler.NewLibraryHandler(librarySvc)
	resultHandler := handler.NewResultHandler(resultSvc)
	feeHandler := handler.NewFeeHandler(feeSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	importHandler := handler.NewImportHandler(importSvc, cfg.Imports.MaxFileSizeBytes)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	students := r.Group("/students")
	{
		students.GET("", studentHandler.List)
		students.POST("", studentHandler.Create)
		students.GET("/:id", studentHandler.Get)
		students.PUT("/:id", studentHandler.Update)
		students.DELETE("/:id", studentHandler.Delete)
		students.GET("/:id/issues", libraryHandler.StudentIssues)
		students.GET("/:id/results", resultHandler.ByStudent)
		students.GET("/:id/fees", feeHandler.ByStudent)
	}

	staff := r.Group("/staff")
	{
		staff.GET("", staffHandler.List)
		staff.POST("", staffHandler.Create)
		staff.GET("/:id", staffHandler.Get)
		staff.PUT("/:id", staffHandler.Update)
		staff.DELETE("/:id", staffHandler.Delete)
	}

	classrooms := r.Group("/classrooms")
	{
		classrooms.GET("", classroomHandler.List)
		classrooms.POST("", classroomHandler.Create)
		classrooms.GET("/:id", classroomHandler.Get)
		classrooms.PUT("/:id", classroomHandler.Update)
		classrooms.DELETE("/:id", classroomHandler.Delete)
		classrooms.GET("/:id/students", classroomHandler.Students)
		classrooms.POST("/:id/add_student/:studentId", classroomHandler.AddStudent)
		classrooms.POST("/:id/remove_student/:studentId", classroomHandler.RemoveStudent)
	}

	books := r.Group("/books")
	{
		books.GET("", libraryHandler.ListBooks)
		books.POST("", libraryHandler.AddBook)
		books.GET("/:id", libraryHandler.GetBook)
	}

	r.POST("/issues", libraryHandler.IssueBook)
	r.POST("/returns/:issueId", libraryHandler.ReturnBook)

	results := r.Group("/results")
	{
		results.GET("", resultHandler.List)
		results.POST("", resultHandler.Create)
		results.GET("/:id", resultHandler.Get)
		results.DELETE("/:id", resultHandler.Delete)
	}

	fees := r.Group("/fees")
	{
		fees.GET("", feeHandler.List)
		fees.POST("", feeHandler.Create)
		fees.GET("/:id", feeHandler.Get)
		fees.PUT("/:id", feeHandler.Update)
		fees.DELETE("/:id", feeHandler.Delete)
	}

	if cfg.Imports.Enabled {
		r.POST("/import/students", importHandler.Students)
	}

	if cfg.Reports.Enabled {
		reports := r.Group("/reports")
		{
			reports.GET("/students.csv", reportHandler.StudentRosterCSV)
			reports.GET("/students/:id/report-card", reportHandler.ReportCardPDF)
		}
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
