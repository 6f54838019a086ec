package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/genomexlab/genome-x/internal/analysis"
	"github.com/genomexlab/genome-x/internal/database"
	"github.com/genomexlab/genome-x/internal/errors"
	"github.com/genomexlab/genome-x/internal/monitoring"
	"github.com/genomexlab/genome-x/internal/ratelimit"
	"github.com/genomexlab/genome-x/internal/report"
	"github.com/genomexlab/genome-x/internal/security"
	"github.com/genomexlab/genome-x/internal/store"
)

const exportFilename = "genome_x_report.csv"

// Config collects everything the pipeline and server need. Built once in
// main from the environment and passed down; no module-level state.
type Config struct {
	ModelPath string
	UploadDir string
	DataDir   string
	Port      string
	ResultTTL time.Duration
}

// ConfigFromEnv builds a Config from environment variables with defaults.
func ConfigFromEnv() Config {
	return Config{
		ModelPath: getEnvOrDefault("MODEL_PATH", "./genome_x_model.json"),
		UploadDir: getEnvOrDefault("UPLOAD_DIR", "./media"),
		DataDir:   getEnvOrDefault("DATA_DIR", "./data"),
		Port:      getEnvOrDefault("PORT", "8080"),
		ResultTTL: 30 * time.Minute,
	}
}

// Server bundles the handler dependencies.
type Server struct {
	config   Config
	analyzer *analysis.Analyzer
	results  *store.Store
	runs     *database.Repository
	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
}

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := ConfigFromEnv()

	// Ensure the upload directory exists before the first request
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		slog.Error("Failed to create upload directory", "error", err)
		os.Exit(1)
	}

	// Initialize run database
	db, err := database.NewDB(cfg.DataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := &Server{
		config:   cfg,
		analyzer: analysis.NewAnalyzer(cfg.ModelPath),
		results:  store.New(cfg.ResultTTL),
		runs:     database.NewRepository(db),
		metrics:  monitoring.NewMetrics(),
		logger:   monitoring.NewLogger(),
	}

	r := srv.setupRouter()

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// setupRouter wires middleware and routes.
func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()

	r.Use(monitoring.MonitoringMiddleware(s.metrics, s.logger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())
	r.Use(security.SecurityHeadersMiddleware())
	r.Use(security.UploadSizeLimitMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	limiter := ratelimit.NewLimiter(ratelimit.DefaultConfig(), s.metrics)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.metrics.GetStats())
	})

	r.GET("/store/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.results.Stats())
	})

	r.POST("/analyze", limiter.Middleware(), s.handleAnalyze)
	r.GET("/results/:id/export", s.handleExport)
	r.GET("/runs/recent", s.handleRecentRuns)

	return r
}

// handleAnalyze accepts a multipart FASTA upload, runs the pipeline, and
// responds with the shaped report plus a ticket for the CSV export.
func (s *Server) handleAnalyze(c *gin.Context) {
	fileHeader, err := c.FormFile("fasta_file")
	if err != nil {
		appErr := errors.NewValidationError("missing fasta_file upload", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.ErrBuilder.Msg, "category": appErr.Category})
		return
	}

	// Keep a copy of the upload on disk, as the dashboard always has
	savedPath := filepath.Join(s.config.UploadDir, fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(fileHeader.Filename)))
	if err := c.SaveUploadedFile(fileHeader, savedPath); err != nil {
		appErr := errors.NewInternalError("failed to save upload", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.ErrBuilder.Msg, "category": appErr.Category})
		return
	}

	f, err := os.Open(savedPath)
	if err != nil {
		appErr := errors.NewInternalError("failed to reopen upload", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.ErrBuilder.Msg, "category": appErr.Category})
		return
	}
	defer errors.SafeClose(f, "upload file")

	start := time.Now()
	rep, stats, err := s.analyzer.Analyze(f)
	duration := time.Since(start)

	s.metrics.RecordAnalysis(stats.Sequences, stats.Candidates)

	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.ErrBuilder.Msg, "category": appErr.Category})
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, rep.Ranked); err != nil {
		appErr := errors.NewInternalError("failed to build export", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.ErrBuilder.Msg, "category": appErr.Category})
		return
	}
	ticket := s.results.Put(buf.Bytes(), exportFilename)

	topEfficiency := 0.0
	if len(rep.Ranked) > 0 {
		topEfficiency = rep.Ranked[0].Efficiency
	}

	run := database.Run{
		ID:                  uuid.NewString(),
		Filename:            filepath.Base(fileHeader.Filename),
		Sequences:           stats.Sequences,
		TotalCandidates:     rep.Total,
		QualifiedCandidates: rep.QualifiedCount,
		TopEfficiency:       topEfficiency,
		DurationMS:          duration.Milliseconds(),
		CreatedAt:           time.Now(),
	}
	if err := s.runs.InsertRun(run); err != nil {
		// Persistence is best-effort; the report is already complete
		slog.Warn("Failed to persist run summary", "error", err)
	}

	s.logger.AnalysisLogger(run.Filename, stats.Sequences, rep.Total, rep.QualifiedCount, topEfficiency, duration)

	c.JSON(http.StatusOK, gin.H{
		"candidates": rep.TopCandidates,
		"total":      rep.Total,
		"qualified":  rep.QualifiedCount,
		"charts":     rep.Charts,
		"result_id":  ticket,
		"export_url": fmt.Sprintf("/results/%s/export", ticket),
	})
}

// handleExport serves a stored CSV export as a download.
func (s *Server) handleExport(c *gin.Context) {
	id := c.Param("id")

	result, found := s.results.Get(id)
	s.logger.StoreLogger("get", id, found, s.results.Size())
	if !found {
		s.metrics.IncrementStoreMiss()
		appErr := errors.NewNotFoundError("No data available for this result")
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.ErrBuilder.Msg, "category": appErr.Category})
		return
	}
	s.metrics.IncrementStoreHit()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "text/csv", result.CSV)
}

// handleRecentRuns lists the most recently persisted run summaries.
func (s *Server) handleRecentRuns(c *gin.Context) {
	runs, err := s.runs.RecentRuns(20)
	if err != nil {
		appErr := errors.NewInternalError("failed to load recent runs", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.ErrBuilder.Msg, "category": appErr.Category})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":      runs,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
