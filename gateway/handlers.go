package gateway

import (
	"net/http"

	"github.com/example/goldshop/pkg/models"
	"github.com/example/goldshop/pkg/repository"
	"github.com/example/goldshop/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (g *Gateway) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Gold Shop backend is running"})
}

func (g *Gateway) listGoldItems(c *gin.Context) {
	collection := models.GoldItem{}.CollectionName()

	items, err := g.getDocuments(c.Request.Context(), collection)
	if err != nil {
		if g.config.API.MaskReadErrors {
			g.logger.Warn("Listing gold items failed, returning empty list", zap.Error(err))
			c.JSON(http.StatusOK, []bson.M{})
			return
		}
		g.logger.Error("Failed to list gold items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if items == nil {
		items = []bson.M{}
	}
	for _, it := range items {
		if id, ok := it["_id"]; ok {
			it["id"] = repository.IDString(id)
			delete(it, "_id")
		}
	}

	c.JSON(http.StatusOK, items)
}

func (g *Gateway) createGoldItem(c *gin.Context) {
	var req validation.GoldItemRequest
	if err := validation.BindAndValidate(c, &req, g.validate); err != nil {
		return
	}

	item := req.ToModel()
	id, err := g.createDocument(c.Request.Context(), item)
	if err != nil {
		g.logger.Error("Failed to create gold item", zap.String("name", item.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	g.logger.Info("Gold item created", zap.String("id", id), zap.String("name", item.Name))
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (g *Gateway) createOrder(c *gin.Context) {
	var req validation.OrderRequest
	if err := validation.BindAndValidate(c, &req, g.validate); err != nil {
		return
	}

	order := req.ToModel()
	id, err := g.createDocument(c.Request.Context(), order)
	if err != nil {
		g.logger.Error("Failed to create order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	g.logger.Info("Order created",
		zap.String("id", id),
		zap.Int("item_count", len(order.Items)))
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
