package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/docsight/backend/internal/api"
	"github.com/docsight/backend/internal/config"
	"github.com/docsight/backend/internal/docstore"
	"github.com/docsight/backend/internal/document"
	"github.com/docsight/backend/internal/history"
	"github.com/docsight/backend/internal/inference"
	"github.com/docsight/backend/internal/ocr"
	"github.com/docsight/backend/internal/pipeline"
	"github.com/docsight/backend/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	configPath := os.Getenv("DOCSIGHT_CONFIG")
	if configPath == "" {
		configPath = "docsight.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Error("failed to load configuration", "path", configPath, "error", err)
		os.Exit(1)
	}

	// A missing bucket blocks analysis but not startup: the UI still
	// renders and surfaces the configuration error.
	configErr := cfg.Validate()
	if configErr != nil {
		log.Error("configuration incomplete", "error", configErr)
	}

	hist, err := history.NewStore(cfg.History.Path, cfg.History.MaxSize)
	if err != nil {
		log.Error("failed to open history store", "path", cfg.History.Path, "error", err)
		os.Exit(1)
	}

	var processor *pipeline.Processor
	if configErr == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
		cancel()
		if err != nil {
			configErr = fmt.Errorf("failed to load AWS configuration: %w", err)
			log.Error("configuration incomplete", "error", configErr)
		} else {
			uploader := docstore.NewS3Uploader(s3.NewFromConfig(awsCfg), cfg.AWS.Bucket)
			extractor := ocr.NewTextractExtractor(textract.NewFromConfig(awsCfg))
			analyzer := inference.NewBedrockAnalyzer(bedrockruntime.NewFromConfig(awsCfg), cfg.Analysis.ModelID)
			processor = pipeline.NewProcessor(uploader, extractor, analyzer, log)
		}
	}

	handlers := api.NewHandlers(&api.Dependencies{
		Config:      cfg,
		Processor:   processor,
		Inspector:   document.NewInspector(),
		History:     hist,
		Log:         log,
		Version:     Version,
		ConfigError: configErr,
	})

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, handlers)

	if err := web.RegisterStaticRoutes(e); err != nil {
		log.Warn("failed to register static routes", "error", err)
	}

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	log.Info("starting server",
		"version", Version,
		"build_time", BuildTime,
		"addr", cfg.GetServerAddr(),
		"bucket", cfg.AWS.Bucket,
		"region", cfg.AWS.Region,
		"model", cfg.Analysis.ModelID,
	)

	e.Logger.Fatal(e.StartServer(s))
}
