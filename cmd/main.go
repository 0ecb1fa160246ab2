package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"stockmap/internal/analytics"
	"stockmap/internal/caching"
	"stockmap/internal/editor"
	"stockmap/internal/handlers"
	"stockmap/internal/jobs/background"
	"stockmap/internal/models"
	"stockmap/internal/repositories"
	"stockmap/internal/services"
	"stockmap/pkg/database"
)

func main() {
	// Load .env when present; real deployments set env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	snapshotBucket := os.Getenv("SNAPSHOT_BUCKET")
	if snapshotBucket == "" {
		snapshotBucket = "layout-snapshots"
	}

	minioStore, err := services.NewMinioStore(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO store: %v", err)
	}

	// Canvas configuration
	editorCfg := editor.DefaultConfig()
	if w := os.Getenv("CANVAS_WIDTH"); w != "" {
		if v, err := strconv.ParseFloat(w, 64); err == nil && v > 0 {
			editorCfg.CanvasWidth = v
		}
	}
	if h := os.Getenv("CANVAS_HEIGHT"); h != "" {
		if v, err := strconv.ParseFloat(h, 64); err == nil && v > 0 {
			editorCfg.CanvasHeight = v
		}
	}

	// Create repositories
	zoneRepo := repositories.NewZoneRepository(pool)
	aisleRepo := repositories.NewAisleRepository(pool)
	shelfRepo := repositories.NewShelfRepository(pool)
	binRepo := repositories.NewBinRepository(pool)
	geomRepo := repositories.NewGeometryRepository(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	analyticsSvc := analytics.NewAnalyticsService(zoneRepo, cacheSvc)
	layoutSvc := services.NewLayoutService(pool, zoneRepo, aisleRepo, shelfRepo, binRepo, geomRepo, cacheSvc, editorCfg)
	geometrySvc := services.NewGeometryService(zoneRepo, geomRepo, cacheSvc, editorCfg)
	putAwaySvc := services.NewPutAwayService(zoneRepo)
	snapshotSvc := services.NewSnapshotService(zoneRepo, geomRepo, minioStore, snapshotBucket)

	// Geometry commits flow through a single ordered committer so batches
	// land in the store in the order the drags ended.
	committer := editor.NewCommitter(
		func(ctx context.Context, records []editor.CommitRecord) error {
			geoms := make([]*models.ZoneGeometry, len(records))
			for i, rec := range records {
				geoms[i] = &models.ZoneGeometry{
					ZoneID: rec.ZoneID,
					X:      rec.Rect.X,
					Y:      rec.Rect.Y,
					Width:  rec.Rect.Width,
					Height: rec.Rect.Height,
				}
			}
			return geometrySvc.Commit(ctx, geoms)
		},
		func(err error, records []editor.CommitRecord) {
			log.Printf("geometry persistence failed, local state retained: %v", err)
		},
	)
	defer committer.Close()

	// Background jobs
	scheduler, err := background.NewJobScheduler(analyticsSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create handlers
	layoutHandlers := handlers.NewLayoutHandlers(layoutSvc)
	geometryHandlers := handlers.NewGeometryHandlers(geometrySvc, committer)
	putAwayHandlers := handlers.NewPutAwayHandlers(putAwaySvc)
	statsHandlers := handlers.NewStatsHandlers(analyticsSvc)
	snapshotHandlers := handlers.NewSnapshotHandlers(snapshotSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Create Echo instance
	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")

	// Hierarchy routes
	v1.GET("/layout", layoutHandlers.GetLayout)
	v1.GET("/zones/:id", layoutHandlers.GetZone)
	v1.POST("/zones", layoutHandlers.CreateZone)
	v1.PUT("/zones/:id", layoutHandlers.UpdateZone)
	v1.DELETE("/zones/:id", layoutHandlers.DeleteZone)
	v1.POST("/zones/:zoneId/aisles", layoutHandlers.CreateAisle)
	v1.PUT("/zones/:zoneId/aisles/:id", layoutHandlers.UpdateAisle)
	v1.DELETE("/aisles/:id", layoutHandlers.DeleteAisle)
	v1.POST("/aisles/:aisleId/shelves", layoutHandlers.CreateShelf)
	v1.PUT("/aisles/:aisleId/shelves/:id", layoutHandlers.UpdateShelf)
	v1.DELETE("/shelves/:id", layoutHandlers.DeleteShelf)
	v1.POST("/shelves/:shelfId/bins", layoutHandlers.CreateBin)
	v1.PUT("/shelves/:shelfId/bins/:id", layoutHandlers.UpdateBin)
	v1.DELETE("/bins/:id", layoutHandlers.DeleteBin)

	// Canvas geometry routes
	v1.GET("/layout/geometry", geometryHandlers.GetGeometry)
	v1.PUT("/layout/geometry", geometryHandlers.CommitGeometry)
	v1.POST("/layout/geometry/reset", geometryHandlers.ResetLayout)

	// Stats and put-away
	v1.GET("/layout/stats", statsHandlers.GetLayoutStats)
	v1.POST("/putaway/suggest", putAwayHandlers.Suggest)

	// Snapshots
	v1.POST("/layout/snapshots", snapshotHandlers.ExportSnapshot)
	v1.GET("/layout/snapshots", snapshotHandlers.ListSnapshots)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(e.Start(":" + port))
}
