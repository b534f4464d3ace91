package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/eddornelas03-glitch/encontrocerto/internal/config"
	authsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/auth"
	chatsvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/chat"
	discoverysvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/discovery"
	matchessvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/matches"
	mediasvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/media"
	profilesvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/profiles"
	swipesvc "github.com/eddornelas03-glitch/encontrocerto/internal/services/swipes"
	"github.com/eddornelas03-glitch/encontrocerto/internal/transport/http/handlers"
)

type Dependencies struct {
	JWTManager       *authsvc.JWTManager
	ProfileService   *profilesvc.Service
	DiscoveryService *discoverysvc.Service
	SwipeService     *swipesvc.Service
	MatchService     *matchessvc.Service
	ChatService      *chatsvc.Service
	MediaService     *mediasvc.Service
	Logger           *zap.Logger
	Config           config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	profileHandler := handlers.NewProfileHandler(deps.ProfileService)
	preferencesHandler := handlers.NewPreferencesHandler(deps.DiscoveryService)
	discoveryHandler := handlers.NewDiscoveryHandler(deps.DiscoveryService)
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService)
	chatHandler := handlers.NewChatHandler(deps.ChatService)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService)
	authMW := AuthMiddleware(deps.JWTManager, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/v1", func(r chi.Router) {
		r.Use(authMW)

		r.Get("/profile", profileHandler.Get)
		r.Put("/profile", profileHandler.Update)

		r.Get("/preferences", preferencesHandler.Get)
		r.Put("/preferences", preferencesHandler.Update)

		r.Get("/discovery", discoveryHandler.Next)
		r.Post("/discovery/reset", discoveryHandler.Reset)

		r.Post("/swipes", swipeHandler.Handle)

		r.Get("/matches", matchesHandler.List)
		r.Post("/unmatch", matchesHandler.Unmatch)
		r.Post("/block", matchesHandler.Block)

		r.Route("/matches/{matchID}", func(r chi.Router) {
			r.Get("/messages", chatHandler.Messages)
			r.Post("/messages", chatHandler.Send)
			r.Post("/analysis", chatHandler.Analysis)
			r.Get("/suggestions", chatHandler.Suggestions)
		})

		r.Post("/media/photo", mediaHandler.PhotoUpload)
		r.Get("/media/photos", mediaHandler.PhotosList)
		r.Delete("/media/photos/{photoID}", mediaHandler.PhotoDelete)
	})
}
