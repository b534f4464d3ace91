package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eddornelas03-glitch/encontrocerto/internal/config"
	genaiinfra "github.com/eddornelas03-glitch/encontrocerto/internal/infra/genai"
	"github.com/eddornelas03-glitch/encontrocerto/internal/infra/httpclient"
	s3infra "github.com/eddornelas03-glitch/encontrocerto/internal/infra/s3"
	"github.com/eddornelas03-glitch/encontrocerto/internal/jobs/cleanup"
	pgrepo "github.com/eddornelas03-glitch/encontrocerto/internal/repo/postgres"
	redrepo "github.com/eddornelas03-glitch/encontrocerto/internal/repo/redis"
	authsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/auth"
	chatsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/chat"
	discoverysvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/discovery"
	matchessvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/matches"
	mediasvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/media"
	modsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/moderation"
	profilesvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/profiles"
	swipesvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/swipes"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
	cleanup    *cleanup.Job
	jobsStop   context.CancelFunc
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	// A nil *pgxpool.Pool must stay a nil interface for the tx helper.
	var db pgrepo.TxBeginner
	if pool != nil {
		db = pool
	}

	var redisClient *goredis.Client
	if c, err := redrepo.NewClient(ctx, redrepo.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		log.Warn("redis init failed, continuing in degraded mode", zap.Error(err))
	} else {
		redisClient = c
	}

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	var generator *genaiinfra.Client
	if g, err := genaiinfra.NewClient(ctx, genaiinfra.Config{
		APIKey:     cfg.GenAI.APIKey,
		Model:      cfg.GenAI.Model,
		HTTPClient: httpclient.New(cfg.GenAI.RequestTimeout),
	}); err != nil {
		log.Warn("genai init failed, continuing in degraded mode", zap.Error(err))
	} else {
		generator = g
	}

	profileRepo := pgrepo.NewProfileRepo(pool)
	preferenceRepo := pgrepo.NewPreferenceRepo(pool)
	swipeRepo := pgrepo.NewSwipeRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	messageRepo := pgrepo.NewMessageRepo(pool)
	photoRepo := pgrepo.NewPhotoRepo(pool)
	blockRepo := pgrepo.NewBlockRepo(pool)
	sessionRepo := redrepo.NewSessionRepo(redisClient)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)

	var moderationGenerator modsvc.Generator
	if generator != nil {
		moderationGenerator = generator
	}
	moderationService := modsvc.NewService(moderationGenerator, modsvc.Config{
		FailOpen: cfg.Moderation.FailOpen,
	})

	profileService := profilesvc.NewService(profilesvc.Dependencies{
		Store:     profileRepo,
		Likes:     swipeRepo,
		Moderator: moderationService,
	})

	discoveryService := discoverysvc.NewService(discoverysvc.Dependencies{
		Profiles:    profileRepo,
		Preferences: preferenceRepo,
		Sessions:    sessionRepo,
	}, discoverysvc.Config{
		AgeMin:        cfg.Discovery.AgeMin,
		AgeMax:        cfg.Discovery.AgeMax,
		HeightMinCM:   cfg.Discovery.HeightMinCM,
		HeightMaxCM:   cfg.Discovery.HeightMaxCM,
		MaxDistanceKM: cfg.Discovery.MaxDistanceKM,
		BatchSize:     cfg.Discovery.SessionBatchSize,
		SessionTTL:    cfg.Discovery.SessionTTL,
	})

	swipeService := swipesvc.NewService(swipesvc.Dependencies{
		Pool:       db,
		SwipeStore: swipeRepo,
		MatchStore: matchRepo,
		BlockStore: blockRepo,
		Profiles:   profileRepo,
		Sessions:   discoveryService,
	})

	matchesService := matchessvc.NewService(matchessvc.Dependencies{
		Pool:       db,
		MatchStore: matchRepo,
		Messages:   messageRepo,
		Swipes:     swipeRepo,
		Blocks:     blockRepo,
		Profiles:   profileRepo,
	})

	var chatGenerator chatsvc.Generator
	if generator != nil {
		chatGenerator = generator
	}
	chatService := chatsvc.NewService(chatsvc.Dependencies{
		Pool:        db,
		Matches:     matchesService,
		Messages:    messageRepo,
		Profiles:    profileRepo,
		Moderator:   moderationService,
		Generator:   chatGenerator,
		Preferences: discoveryService,
	})

	mediaService := mediasvc.NewService(mediasvc.Dependencies{
		Store:     photoRepo,
		Storage:   mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket),
		Moderator: moderationService,
	}, mediasvc.Config{
		MaxPhotos:      cfg.Media.MaxPhotos,
		MaxUploadBytes: cfg.Media.MaxUploadBytes,
		PresignTTL:     cfg.Media.PresignTTL,
	})

	RegisterRoutes(r, Dependencies{
		JWTManager:       jwtManager,
		ProfileService:   profileService,
		DiscoveryService: discoveryService,
		SwipeService:     swipeService,
		MatchService:     matchesService,
		ChatService:      chatService,
		MediaService:     mediaService,
		Logger:           log,
		Config:           cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	var cleanupJob *cleanup.Job
	if pool != nil {
		cleanupJob = cleanup.New(profileRepo, 30*24*time.Hour, log)
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
		cleanup:    cleanupJob,
	}, nil
}

func (a *App) Run() error {
	if a.cleanup != nil {
		jobsCtx, stop := context.WithCancel(context.Background())
		a.jobsStop = stop
		go a.cleanup.RunPeriodically(jobsCtx, time.Hour)
	}

	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if a.jobsStop != nil {
		a.jobsStop()
	}
	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
