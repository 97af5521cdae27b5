package cmd

import (
	"context"
	"net/http"

	"membership-system/config"
	"membership-system/handlers"
	"membership-system/models"
	"membership-system/monitoring"
	"membership-system/repository"
	"membership-system/security"
	"membership-system/services"
	"membership-system/utils"

	_ "membership-system/migrations"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Redis backs the view cache and the login throttle. Both degrade to
	// direct reads / fail-open when the cache is disabled.
	var redisClient *redis.Client
	var viewCache *utils.ViewCache
	var throttle *security.LoginThrottle
	if cfg.CacheEnabled {
		redisClient = utils.NewRedisClient(cfg.RedisURL)
		defer redisClient.Close()

		viewCache = utils.NewViewCache(redisClient, cfg.ViewCacheTTL, app.Logger())
		throttle = security.NewLoginThrottle(redisClient, cfg.LoginMaxAttempts, cfg.LoginWindow, app.Logger())
	}

	// Initialize repositories
	events := repository.NewCollection(app, "events", "dataInizio", models.EventFromRecord, viewCache)
	audioGuides := repository.NewCollection(app, "audioGuides", "ordinamento", models.AudioGuideFromRecord, viewCache)
	directory := repository.NewCollection(app, "directory", "", models.DirectoryMemberFromRecord, viewCache)
	infoBoxes := repository.NewCollection(app, "infoBoxes", "ordinamento", models.InfoBoxFromRecord, viewCache)
	bookings := repository.NewBookings(app)
	portalStore := repository.NewPortalStore(events, bookings)

	// Initialize services
	calendarService := services.NewCalendarService(cfg.CalendarProductID, cfg.CalendarDomain)
	bookingService := services.NewBookingService(portalStore, calendarService, app.Logger())
	uploadService := services.NewUploadService(cfg.MaxImageUploadSize)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(app, throttle, app.Logger())
	eventHandler := handlers.NewEventHandler(events, bookingService, calendarService)
	catalogHandler := handlers.NewCatalogHandler(audioGuides, directory, infoBoxes)
	adminEventHandler := handlers.NewAdminEventHandler(events, uploadService, app.Logger())
	adminCatalogHandler := handlers.NewAdminCatalogHandler(audioGuides, directory, infoBoxes, uploadService, app.Logger())
	adminUserHandler := handlers.NewAdminUserHandler(app, app.Logger())

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: cfg.Environment == "development",
	})

	registerGuards(app)
	if viewCache != nil {
		registerCacheInvalidation(app, viewCache, events.CacheKey(), "events")
		registerCacheInvalidation(app, viewCache, audioGuides.CacheKey(), "audioGuides")
		registerCacheInvalidation(app, viewCache, directory.CacheKey(), "directory")
		registerCacheInvalidation(app, viewCache, infoBoxes.CacheKey(), "infoBoxes")
	}

	// Record counts are sampled in the background while the server runs.
	if cfg.EnableMetrics {
		ctx, cancel := context.WithCancel(context.Background())
		monitor := monitoring.NewMonitor(app, cfg.MetricsInterval)
		app.OnServe().BindFunc(func(se *core.ServeEvent) error {
			go monitor.Run(ctx)
			return se.Next()
		})
		app.OnTerminate().BindFunc(func(te *core.TerminateEvent) error {
			cancel()
			return te.Next()
		})
	}

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Session endpoints
		se.Router.POST("/api/session", sessionHandler.Login)
		se.Router.GET("/api/session", sessionHandler.Me).Bind(apis.RequireAuth())

		// Member portal endpoints
		portal := se.Router.Group("/api/portal")
		portal.Bind(apis.RequireAuth())
		portal.GET("/events", eventHandler.List)
		portal.POST("/events/{id}/book", eventHandler.Book)
		portal.GET("/events/{id}/calendar", eventHandler.Calendar)
		portal.GET("/audio-guides", catalogHandler.AudioGuides)
		portal.GET("/directory", catalogHandler.Directory)
		portal.GET("/info", catalogHandler.InfoBoxes)

		// Admin endpoints
		admin := se.Router.Group("/api/admin")
		admin.Bind(apis.RequireAuth(), handlers.RequireAdmin())
		admin.GET("/events", adminEventHandler.List)
		admin.POST("/events", adminEventHandler.Create)
		admin.PATCH("/events/{id}", adminEventHandler.Update)
		admin.DELETE("/events/{id}", adminEventHandler.Delete)
		admin.GET("/audio-guides", adminCatalogHandler.ListAudioGuides)
		admin.POST("/audio-guides", adminCatalogHandler.CreateAudioGuide)
		admin.PATCH("/audio-guides/{id}", adminCatalogHandler.UpdateAudioGuide)
		admin.DELETE("/audio-guides/{id}", adminCatalogHandler.DeleteAudioGuide)
		admin.GET("/directory", adminCatalogHandler.ListDirectory)
		admin.POST("/directory", adminCatalogHandler.CreateDirectoryMember)
		admin.PATCH("/directory/{id}", adminCatalogHandler.UpdateDirectoryMember)
		admin.DELETE("/directory/{id}", adminCatalogHandler.DeleteDirectoryMember)
		admin.GET("/info", adminCatalogHandler.ListInfoBoxes)
		admin.PATCH("/info/{id}", adminCatalogHandler.UpdateInfoBox)
		admin.GET("/users", adminUserHandler.List)
		admin.PATCH("/users/{id}/role", adminUserHandler.UpdateRole)

		// Operational endpoints
		se.Router.GET("/health", func(e *core.RequestEvent) error {
			if redisClient != nil {
				if err := utils.RedisHealthCheck(redisClient); err != nil {
					return e.JSON(http.StatusServiceUnavailable, map[string]string{
						"status": "degraded",
						"redis":  err.Error(),
					})
				}
			}
			return e.JSON(http.StatusOK, map[string]string{"status": "ok"})
		})
		if cfg.EnableMetrics {
			se.Router.GET("/metrics", func(e *core.RequestEvent) error {
				promhttp.Handler().ServeHTTP(e.Response, e.Request)
				return nil
			})
		}

		return se.Next()
	})

	return app.Start()
}

// registerGuards enforces record-level invariants on every write path,
// including the backend console, not just the portal routes.
func registerGuards(app *pocketbase.PocketBase) {
	checkEventDates := func(e *core.RecordRequestEvent) error {
		inizio := e.Record.GetDateTime("dataInizio").Time()
		fine := e.Record.GetDateTime("dataFine").Time()
		if !inizio.IsZero() && !fine.IsZero() && fine.Before(inizio) {
			return apis.NewBadRequestError("La data di fine non può precedere la data di inizio.", nil)
		}
		return e.Next()
	}
	app.OnRecordCreateRequest("events").BindFunc(checkEventDates)
	app.OnRecordUpdateRequest("events").BindFunc(checkEventDates)

	// An admin cannot demote themself, whichever surface the update
	// comes from.
	app.OnRecordUpdateRequest("users").BindFunc(func(e *core.RecordRequestEvent) error {
		if e.Auth != nil && e.Auth.Id == e.Record.Id &&
			e.Record.Original().GetString("role") == string(models.RoleAdmin) &&
			e.Record.GetString("role") != string(models.RoleAdmin) {
			return apis.NewForbiddenError("Non puoi rimuovere il ruolo di amministratore a te stesso.", nil)
		}
		return e.Next()
	})
}

// registerCacheInvalidation drops a collection's cached view after any
// successful write, including writes made through the backend console.
func registerCacheInvalidation(app *pocketbase.PocketBase, cache *utils.ViewCache, key, collection string) {
	invalidate := func(e *core.RecordEvent) error {
		cache.Invalidate(context.Background(), key)
		return e.Next()
	}
	app.OnRecordAfterCreateSuccess(collection).BindFunc(invalidate)
	app.OnRecordAfterUpdateSuccess(collection).BindFunc(invalidate)
	app.OnRecordAfterDeleteSuccess(collection).BindFunc(invalidate)
}
