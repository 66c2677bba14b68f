package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/buddyai-core/server/internal/chat"
	"github.com/buddyai-core/server/internal/core"
	"github.com/buddyai-core/server/internal/store"
	logx "github.com/buddyai-core/server/pkg/logger"
)

// Config defines the HTTP server settings, sourced from env.
type Config struct {
	Port           int      `envconfig:"SERVER_PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	DefaultUserID  int      `envconfig:"DEFAULT_USER_ID" default:"7413"`
}

// Server owns the gin router and the handlers' dependencies.
type Server struct {
	cfg      Config
	chat     *chat.Service
	products *store.ProductStore
	orders   *store.OrderStore
	feedback *store.FeedbackStore
	tickets  *store.TicketStore
	users    *store.UserStore
	http     *http.Server
}

func New(cfg Config, env core.Environment, chatSvc *chat.Service, products *store.ProductStore, orders *store.OrderStore, feedback *store.FeedbackStore, tickets *store.TicketStore, users *store.UserStore) *Server {
	if env == core.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:      cfg,
		chat:     chatSvc,
		products: products,
		orders:   orders,
		feedback: feedback,
		tickets:  tickets,
		users:    users,
	}
	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.router(),
	}
	return s
}

func (s *Server) router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	origins := []string{"http://localhost:3000"}
	origins = append(origins, s.cfg.AllowedOrigins...)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/chat", s.handleChat)
		api.POST("/quick-reply", s.handleQuickReply)
		api.GET("/conversation/:id", s.handleGetConversation)
		api.DELETE("/conversation/:id", s.handleDeleteConversation)

		api.GET("/products", s.handleListProducts)
		api.GET("/products/search", s.handleSearchProducts)
		api.GET("/products/recommendations", s.handleRecommendations)
		api.GET("/products/:id", s.handleGetProduct)
		api.POST("/products/update-images", s.handleUpdateProductImages)

		api.POST("/orders", s.handlePlaceOrder)
		api.GET("/orders", s.handleListOrders)
		api.GET("/orders/:orderId", s.handleGetOrder)
		api.GET("/orders/:orderId/items", s.handleGetOrderItems)

		api.POST("/feedback", s.handleSubmitFeedback)
		api.GET("/feedback/user/:userId", s.handleFeedbackByUser)
		api.GET("/feedback/order/:orderId", s.handleFeedbackByOrder)

		api.POST("/support-tickets", s.handleCreateTicket)
		api.GET("/support-tickets/order/:orderId", s.handleTicketsByOrder)
		api.GET("/support-tickets/order/:orderId/count", s.handleTicketCountByOrder)
		api.GET("/support-tickets/user/:userId", s.handleTicketsByUser)

		api.GET("/profile", s.handleGetProfile)
	}

	return router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logx.Info().Str("addr", s.http.Addr).Msg("http server listening")
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logx.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
