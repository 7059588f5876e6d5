package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matchday/socialgraph/internal/api/handlers"
	"github.com/matchday/socialgraph/internal/cache"
	"github.com/matchday/socialgraph/internal/db"
	"github.com/matchday/socialgraph/internal/social"
	"github.com/matchday/socialgraph/pkg/logging"
)

// Router sets up API routes
type Router struct {
	handler *JSONRPCHandler
	db      *db.DB
	cache   *cache.Cache
	logger  *zap.Logger
}

// NewRouter creates a new API router. It builds the repository layer, the
// engine services on top of it, subscribes the event handlers, and registers
// every JSON-RPC method.
func NewRouter(database *db.DB, redisCache *cache.Cache) *Router {
	handler := NewJSONRPCHandler()
	router := &Router{
		handler: handler,
		db:      database,
		cache:   redisCache,
		logger:  logging.GetLogger().With(zap.String("component", "api-router")),
	}

	router.registerMethods()

	return router
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// JSON-RPC endpoint
	engine.POST("/", r.handler.Handle)
}

// registerMethods wires the service graph and registers all API methods
func (r *Router) registerMethods() {
	logger := logging.GetLogger()

	repo := db.NewRepository(r.db.DB)
	profiles := db.NewProfileRepository(repo)
	contents := db.NewContentRepository(repo)
	follows := db.NewFollowRepository(repo)
	facts := db.NewFactRepository(repo)
	tags := db.NewTagRepository(repo)
	notifs := db.NewNotificationRepository(repo)
	prefRepo := db.NewPreferenceRepository(repo)

	prefs := social.NewPreferenceService(profiles, prefRepo, logger)
	dispatcher := social.NewDispatcher(notifs, prefs, r.cache, logger)
	counters := social.NewCounterMaintainer(contents, facts, logger)

	// Fact mutations fan out through the bus: counters first so reads after
	// the call see the delta, then notifications.
	bus := social.NewBus(logger)
	bus.Subscribe(counters)
	bus.Subscribe(social.NewNotifyFanout(dispatcher))

	followSvc := social.NewFollowService(profiles, follows, dispatcher, logger)
	engagement := social.NewEngagementService(profiles, contents, facts, bus, logger)
	tagSvc := social.NewTagService(profiles, contents, tags, dispatcher, logger)
	resolver := social.NewResolver(contents, follows, tags)

	// Follow API
	followAPI := handlers.NewFollowAPI(followSvc)
	r.handler.RegisterMethod("social.request_follow", followAPI.RequestFollow)
	r.handler.RegisterMethod("social.respond_follow", followAPI.RespondFollow)
	r.handler.RegisterMethod("social.remove_follow", followAPI.RemoveFollow)
	r.handler.RegisterMethod("social.pending_follow_requests", followAPI.PendingFollowRequests)

	// Engagement API
	engagementAPI := handlers.NewEngagementAPI(engagement, counters, r.cache)
	r.handler.RegisterMethod("social.record_like", engagementAPI.RecordLike)
	r.handler.RegisterMethod("social.remove_like", engagementAPI.RemoveLike)
	r.handler.RegisterMethod("social.record_save", engagementAPI.RecordSave)
	r.handler.RegisterMethod("social.remove_save", engagementAPI.RemoveSave)
	r.handler.RegisterMethod("social.record_comment", engagementAPI.RecordComment)
	r.handler.RegisterMethod("social.remove_comment", engagementAPI.RemoveComment)
	r.handler.RegisterMethod("social.counters", engagementAPI.Counters)

	// Tag API
	tagAPI := handlers.NewTagAPI(tagSvc)
	r.handler.RegisterMethod("social.tag_profile", tagAPI.TagProfile)
	r.handler.RegisterMethod("social.untag_profile", tagAPI.UntagProfile)
	r.handler.RegisterMethod("social.tagged_content", tagAPI.TaggedContent)

	// Notification API
	notifyAPI := handlers.NewNotifyAPI(dispatcher, r.cache)
	r.handler.RegisterMethod("social.unread_notifications", notifyAPI.UnreadNotifications)
	r.handler.RegisterMethod("social.list_notifications", notifyAPI.ListNotifications)
	r.handler.RegisterMethod("social.mark_notification_read", notifyAPI.MarkNotificationRead)

	// Preference API
	prefsAPI := handlers.NewPrefsAPI(prefs)
	r.handler.RegisterMethod("social.get_preferences", prefsAPI.GetPreferences)
	r.handler.RegisterMethod("social.set_preference", prefsAPI.SetPreference)

	// Visibility API
	visibilityAPI := handlers.NewVisibilityAPI(resolver)
	r.handler.RegisterMethod("social.can_view", visibilityAPI.CanView)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"service": "socialgraph-api",
	})
}
