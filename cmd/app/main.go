package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"relay/cmd"
	httpadapter "relay/internal/adapters/in/http"
	"relay/internal/adapters/out/media"
	"relay/internal/adapters/out/postgres/accountrepo"
	"relay/internal/adapters/out/postgres/activityrepo"
	"relay/internal/adapters/out/postgres/packrepo"
	"relay/internal/adapters/out/postgres/topicrepo"
	"relay/internal/adapters/out/postgres/transitrepo"
	"relay/internal/adapters/out/rediscache"
	"relay/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)

	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	packageCache := rediscache.NewPackageCache(redisClient, 0)

	mediaStore, err := media.NewLocalStore(configs.MediaDir, configs.MediaBaseURL)
	if err != nil {
		log.Fatalf("Failed to create media store: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, packageCache, mediaStore)

	jobManager := jobs.NewJobManager(app.CreateCleanupMediaCommandHandler(), logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort, requestTimeout(configs))
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:     goDotEnvVariable("HTTP_PORT"),
		DBHost:       goDotEnvVariable("DB_HOST"),
		DBPort:       goDotEnvVariable("DB_PORT"),
		DBUser:       goDotEnvVariable("DB_USER"),
		DBPassword:   goDotEnvVariable("DB_PASSWORD"),
		DBName:       goDotEnvVariable("DB_NAME"),
		DBSslMode:    goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:    goDotEnvVariable("REDIS_ADDR"),
		MediaDir:     goDotEnvVariable("MEDIA_DIR"),
		MediaBaseURL: goDotEnvVariable("MEDIA_BASE_URL"),

		RequestTimeoutSeconds: goDotEnvVariable("REQUEST_TIMEOUT_SECONDS"),
	}
	return config
}

func requestTimeout(configs cmd.Config) time.Duration {
	seconds, err := strconv.Atoi(configs.RequestTimeoutSeconds)
	if err != nil || seconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(seconds) * time.Second
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&packrepo.PackageDTO{},
		&accountrepo.AccountDTO{},
		&transitrepo.RecordDTO{},
		&topicrepo.TopicDTO{},
		&topicrepo.TemplateDTO{},
		&activityrepo.ActivityDTO{},
		&activityrepo.FeedEventDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string, timeout time.Duration) {
	e := echo.New()

	// Every handler runs under a deadline so a hung datastore call fails
	// the request instead of holding the connection open.
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateCreatePackageCommandHandler(),
		app.CreatePickupPackageCommandHandler(),
		app.CreateDropoffPackageCommandHandler(),
		app.CreateFollowPackageCommandHandler(),
		app.CreateUnfollowPackageCommandHandler(),
		app.CreateTrackMovementCommandHandler(),
		app.CreateGetPackageQueryHandler(),
		app.CreateGetAccountActivitiesQueryHandler(),
		app.CreateGetPublicFeedQueryHandler(),
		app.PackageCache(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
