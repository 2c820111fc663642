package gateway

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/example/goldshop/pkg/config"
	"github.com/example/goldshop/pkg/models"
	"github.com/example/goldshop/pkg/repository"
	"github.com/example/goldshop/pkg/validation"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DocumentStore persists and lists records by collection name.
type DocumentStore interface {
	CreateDocument(ctx context.Context, collection string, record interface{}) (string, error)
	GetDocuments(ctx context.Context, collection string) ([]bson.M, error)
}

// DatabaseInspector exposes connectivity details for GET /test.
type DatabaseInspector interface {
	DatabaseName() string
	ListCollectionNames(ctx context.Context) ([]string, error)
}

// Store is the persistence handle used by the gateway. *repository.MongoRepository
// satisfies it.
type Store interface {
	DocumentStore
	DatabaseInspector
}

type Gateway struct {
	config    *config.Config
	store     Store
	logger    *zap.Logger
	router    *gin.Engine
	server    *http.Server
	validate  *validatorv10.Validate
	lookupEnv func(string) (string, bool)
}

// NewGateway builds the HTTP surface. store may be nil when no database is
// configured; writes then fail with repository.ErrNotConnected.
func NewGateway(cfg *config.Config, logger *zap.Logger, store Store) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware(logger))
	router.Use(corsMiddleware(cfg.API))

	return &Gateway{
		config:   cfg,
		store:    store,
		logger:   logger,
		router:   router,
		validate: validation.New(),
		server: &http.Server{
			Addr:    cfg.Server.Addr(),
			Handler: router,
		},
		lookupEnv: os.LookupEnv,
	}
}

func (g *Gateway) SetupRoutes() {
	g.router.GET("/", g.root)
	g.router.GET("/test", g.diagnostics)

	api := g.router.Group("/api")
	{
		api.GET("/gold", g.listGoldItems)
		api.POST("/gold", g.createGoldItem)
		api.POST("/orders", g.createOrder)
	}
}

// Handler exposes the router, mainly for tests.
func (g *Gateway) Handler() http.Handler {
	return g.router
}

func (g *Gateway) Start() error {
	g.logger.Info("Gateway starting", zap.String("address", g.server.Addr))
	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}

func (g *Gateway) createDocument(ctx context.Context, record models.Collection) (string, error) {
	if g.store == nil {
		return "", repository.ErrNotConnected
	}
	return g.store.CreateDocument(ctx, record.CollectionName(), record)
}

func (g *Gateway) getDocuments(ctx context.Context, collection string) ([]bson.M, error) {
	if g.store == nil {
		return nil, repository.ErrNotConnected
	}
	return g.store.GetDocuments(ctx, collection)
}
