// Package bootstrap builds the storage backends and domain services from
// configuration. It is shared by the API server and the seed tool.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"neighborhub/internal/config"
	"neighborhub/internal/handlers"
	"neighborhub/internal/models"
	"neighborhub/internal/repositories/interfaces"
	"neighborhub/internal/repositories/memory"
	"neighborhub/internal/repositories/mongodb"
	"neighborhub/internal/services"
	"neighborhub/pkg/cache"
	"neighborhub/pkg/database"
	"neighborhub/pkg/events"
	"neighborhub/pkg/logger"
	"neighborhub/pkg/websocket"
)

const cacheKeyPrefix = "neighborhub:"

type Repositories struct {
	Users      interfaces.UserRepository
	Requests   interfaces.RequestRepository
	Ratings    interfaces.RatingRepository
	Activities interfaces.ActivityRepository
}

// App holds every long-lived component. Close releases the connections it
// opened.
type App struct {
	Config       *config.Config
	Logger       *logger.Logger
	Repositories Repositories
	Tx           services.TxRunner
	Hub          *websocket.Hub
	Relay        *services.EventRelay

	Activity services.ActivityService
	Requests services.RequestService
	Ratings  services.RatingService

	// HealthChecks lists the external dependencies to ping.
	HealthChecks map[string]handlers.Pinger

	mongo *database.MongoDB
	redis *cache.RedisCache
}

func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	policy, err := services.ParseCompletionPolicy(cfg.Lifecycle.CompletionPolicy)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:       cfg,
		Logger:       log,
		HealthChecks: make(map[string]handlers.Pinger),
	}

	if cfg.Redis.Enabled {
		app.redis, err = cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.HealthChecks["redis"] = app.redis
		log.WithField("host", cfg.Redis.Host).Info("Connected to redis")
	}

	var statsCache services.CacheService
	var locker services.UserLocker = services.NewLocalLocker()
	if app.redis != nil {
		statsCache = services.NewCacheService(app.redis, log, cacheKeyPrefix, cfg.Lifecycle.StatsCacheTTL)
		locker = services.NewRedisLocker(app.redis, cfg.Lifecycle.LockTTL, cfg.Lifecycle.LockWait, log)
	}

	if err := app.openStore(ctx, statsCache); err != nil {
		app.Close()
		return nil, err
	}

	sink, err := app.notificationSink(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	repos := app.Repositories
	notifications := services.NewNotificationService(sink, log)
	aggregator := services.NewRatingAggregator(repos.Ratings, repos.Users, statsCache, locker, cfg.Lifecycle.StatsCacheTTL, log)

	app.Activity = services.NewActivityService(repos.Activities, log)
	app.Requests = services.NewRequestService(repos.Requests, repos.Ratings, repos.Users, aggregator, app.Tx, notifications, app.Activity, policy, log)
	app.Ratings = services.NewRatingService(repos.Ratings, repos.Requests, repos.Users, aggregator, app.Tx, notifications, app.Activity, cfg.Lifecycle.RecentRatingsLimit, log)

	log.WithFields(map[string]interface{}{
		"driver":            cfg.Database.Driver,
		"completion_policy": string(policy),
		"redis":             app.redis != nil,
	}).Info("Services initialised")

	return app, nil
}

func (a *App) openStore(ctx context.Context, statsCache services.CacheService) error {
	cfg := a.Config.Database

	if cfg.Driver == config.DriverMemory {
		a.Repositories = Repositories{
			Users:      memory.NewUserRepository(),
			Requests:   memory.NewRequestRepository(),
			Ratings:    memory.NewRatingRepository(),
			Activities: memory.NewActivityRepository(),
		}
		a.Tx = services.NewPassthroughTxRunner()
		a.Logger.Warn("Using the in-memory store; data is lost on restart")
		return nil
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.URI,
		Database:       cfg.Database,
		MaxPoolSize:    cfg.MaxPoolSize,
		MinPoolSize:    cfg.MinPoolSize,
		ConnectTimeout: cfg.ConnectTimeout,
		SocketTimeout:  cfg.SocketTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	a.mongo = db
	a.HealthChecks["mongodb"] = db

	if cfg.Migrate {
		if err := database.NewMigrator(db.Database, a.Logger, SchemaEnums()).Up(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	var userCache mongodb.CacheService
	if statsCache != nil {
		userCache = statsCache
	}

	a.Repositories = Repositories{
		Users:      mongodb.NewUserRepository(db.Database, userCache),
		Requests:   mongodb.NewRequestRepository(db.Database),
		Ratings:    mongodb.NewRatingRepository(db.Database),
		Activities: mongodb.NewActivityRepository(db.Database),
	}

	if cfg.Transactions {
		a.Tx = services.NewMongoTxRunner(db)
	} else {
		a.Tx = services.NewPassthroughTxRunner()
		a.Logger.Warn("MongoDB transactions disabled; rating writes rely on per-user locks only")
	}

	a.Logger.WithField("database", cfg.Database).Info("Connected to mongodb")
	return nil
}

// notificationSink delivers to local websocket clients directly, or through
// the redis channel when several instances share one event stream.
func (a *App) notificationSink(ctx context.Context) (services.NotificationSink, error) {
	cfg := a.Config.Events

	a.Hub = websocket.NewHub(a.Logger)
	local := services.NewWebsocketSink(a.Hub)

	var sinks services.MultiSink
	if cfg.RedisEnabled && a.redis != nil {
		sinks = append(sinks, services.NewRedisSink(a.redis, cfg.RedisChannel))
		a.Relay = services.NewEventRelay(a.redis, cfg.RedisChannel, local, a.Logger)
	} else {
		sinks = append(sinks, local)
	}

	if cfg.SNSEnabled {
		publisher, err := events.NewSNSPublisher(ctx, cfg.SNSRegion, cfg.SNSTopicArn)
		if err != nil {
			return nil, fmt.Errorf("failed to create sns publisher: %w", err)
		}
		sinks = append(sinks, services.NewSNSSink(publisher))
	}

	return sinks, nil
}

// Run starts the websocket hub and the redis relay. Both stop with ctx.
func (a *App) Run(ctx context.Context) {
	go a.Hub.Run(ctx)
	if a.Relay != nil {
		go a.Relay.Run(ctx)
	}
}

func (a *App) Close() {
	if a.mongo != nil {
		if err := a.mongo.Close(); err != nil {
			a.Logger.WithError(err).Warn("Failed to close mongodb connection")
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.WithError(err).Warn("Failed to close redis connection")
		}
	}
}

func SchemaEnums() database.SchemaEnums {
	return database.SchemaEnums{
		Categories: models.CategoryValues(),
		Urgencies:  models.UrgencyValues(),
		Statuses:   models.StatusValues(),
		MinStars:   models.MinStars,
		MaxStars:   models.MaxStars,
	}
}

// NewLogger maps the log section of the configuration onto the logger.
func NewLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.Log.Level),
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: time.RFC3339,
		Colors:     cfg.Log.Colors,
		AppName:    cfg.App.Name,
		Version:    cfg.App.Version,
	})
}
