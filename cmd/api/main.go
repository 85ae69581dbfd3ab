package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "toiletmap-api/docs"
	"toiletmap-api/internal/config"
	"toiletmap-api/internal/handler"
	"toiletmap-api/internal/identity"
	"toiletmap-api/internal/logging"
	"toiletmap-api/internal/metrics"
	"toiletmap-api/internal/middleware"
	"toiletmap-api/internal/placesearch"
	"toiletmap-api/internal/repository"
	"toiletmap-api/internal/service"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"google.golang.org/api/option"
)

// store is everything the services read from and write to. Both backends
// implement it.
type store interface {
	service.ToiletStore
	service.ArchiveStore
	service.ReviewStore
	service.HomeStore
	service.MapStore
	service.DiaryRemote
	service.IndexSearcher
	NewID() string
}

func newFirebaseApp(ctx context.Context, cfg config.Config) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsPath))
	}
	return firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
}

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app *firebase.App
	if cfg.StoreBackend == config.BackendFirestore || cfg.AuthEnabled {
		app, err = newFirebaseApp(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot initialize firebase")
		}
	}

	// Storage backend
	var st store
	switch cfg.StoreBackend {
	case config.BackendFirestore:
		client, err := app.Firestore(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to firestore")
		}
		defer client.Close()
		st = repository.NewFirestoreRepository(client, cfg.AmbientLimit)
	default:
		conn, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()
		st = repository.NewRepository(conn)
	}
	log.Info().Str("backend", cfg.StoreBackend).Msg("store ready")

	// Place search and its cache
	var places service.PlaceSearcher
	if cfg.AmapKey != "" {
		places = placesearch.NewClient(cfg.AmapBaseURL, cfg.AmapKey, nil)
	} else {
		log.Info().Msg("place search disabled")
	}

	var cache service.SearchCache
	if rc := repository.OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rc != nil {
		defer rc.Close()
		if err := rc.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed")
		}
		cache = repository.NewSearchCache(rc, cfg.SearchCacheTTL)
	} else {
		log.Info().Msg("search cache disabled")
	}

	// Offline diary store
	var local service.DiaryLocal
	if cfg.DiaryDBPath != "" {
		ds, err := repository.OpenDiaryStore(cfg.DiaryDBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot open local diary store")
		}
		defer ds.Close()
		if err := ds.InitSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("cannot initialize local diary store")
		}
		local = ds
	}

	// Initialize layers
	resolver := identity.NewResolver(st)

	toiletService := service.NewToiletService(st, st, resolver, cfg.AmbientLimit)
	reviewService := service.NewReviewService(st, toiletService)
	homeService := service.NewHomeService(st)
	searchService := service.NewSearchService(st, places, cache, cfg.PlaceSearchRadius, cfg.IndexSearchLimit)
	mapService := service.NewMapService(st, searchService, cfg.AmbientLimit, cfg.StreamPollInterval)
	diaryService := service.NewDiaryService(st, local, st, cfg.AmbientLimit)

	annotationHandler := handler.NewAnnotationHandler(mapService)
	searchHandler := handler.NewSearchHandler(searchService)
	toiletHandler := handler.NewToiletHandler(toiletService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	homeHandler := handler.NewHomeHandler(homeService)
	diaryHandler := handler.NewDiaryHandler(diaryService)

	// Authentication
	required, optional := middleware.DevUser(), middleware.DevUser()
	if cfg.AuthEnabled {
		authClient, err := app.Auth(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot initialize firebase auth")
		}
		required = middleware.Authenticate(authClient)
		optional = middleware.OptionalAuthenticate(authClient)
	} else {
		log.Warn().Msg("authentication disabled, trusting " + middleware.DevUserHeader)
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.AccessLog(log.Logger), metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := r.Group("/v1", optional)
	public.GET("/annotations", annotationHandler.List)
	public.GET("/annotations/stream", annotationHandler.Stream)
	public.GET("/search", searchHandler.Search)
	public.POST("/toilets/resolve", toiletHandler.Resolve)
	public.GET("/toilets/:id", toiletHandler.Get)
	public.GET("/reviews/list", reviewHandler.List)

	v1 := r.Group("/v1", required)
	v1.POST("/toilets", toiletHandler.Create)
	v1.PATCH("/toilets/:id", toiletHandler.Update)
	v1.DELETE("/toilets/:id", toiletHandler.Delete)
	v1.POST("/archives", toiletHandler.Archive)
	v1.DELETE("/archives/:id", toiletHandler.Unarchive)
	v1.GET("/reviews", reviewHandler.Score)
	v1.POST("/reviews", reviewHandler.Create)
	v1.PATCH("/reviews/:id", reviewHandler.Update)
	v1.GET("/me/home", homeHandler.Get)
	v1.GET("/me/toilets", toiletHandler.ListCreated)
	v1.GET("/me/reviews", reviewHandler.ListMine)
	v1.PUT("/me/home", homeHandler.Put)
	v1.GET("/diaries", diaryHandler.List)
	v1.POST("/diaries", diaryHandler.Record)
	v1.POST("/diaries/sync", diaryHandler.Sync)
	v1.GET("/diaries/day", diaryHandler.Day)
	v1.PATCH("/diaries/:id", diaryHandler.Edit)
	v1.DELETE("/diaries/:id", diaryHandler.Delete)

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: r}
	go func() {
		log.Info().Str("addr", cfg.ServerAddress).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	log.Info().Msg("http server stopped")
}
