package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/buhba/boba-diary-engine/internal/core/domain"
	"github.com/buhba/boba-diary-engine/internal/core/services"
)

type EntryHandler struct {
	svc *services.EntryService
}

func NewEntryHandler(svc *services.EntryService) *EntryHandler {
	return &EntryHandler{
		svc: svc,
	}
}

type createEntryRequest struct {
	Flavor   string          `json:"flavor" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	ShopName string          `json:"shop_name" binding:"required"`
	Location string          `json:"location"`
	ImageURI string          `json:"image_uri"`
	Date     time.Time       `json:"date"`
	Occasion string          `json:"occasion"`
	Rating   *int            `json:"rating"`
	Notes    string          `json:"notes"`
}

type updateEntryRequest struct {
	Flavor   *string          `json:"flavor"`
	Price    *decimal.Decimal `json:"price"`
	ShopName *string          `json:"shop_name"`
	Location *string          `json:"location"`
	ImageURI *string          `json:"image_uri"`
	Date     *time.Time       `json:"date"`
	Occasion *string          `json:"occasion"`
	Rating   *int             `json:"rating"`
	Notes    *string          `json:"notes"`
	Version  int              `json:"version" binding:"required"`
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	{
		entries.POST("", h.Create)
		entries.GET("", h.List)
		entries.GET("/:id", h.GetByID)
		entries.PUT("/:id", h.Update)
		entries.DELETE("/:id", h.Delete)
	}
}

func (h *EntryHandler) Create(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.CreateEntryInput{
		Flavor:   req.Flavor,
		Price:    req.Price,
		ShopName: req.ShopName,
		Location: req.Location,
		ImageURI: req.ImageURI,
		Date:     req.Date,
		Occasion: req.Occasion,
		Rating:   req.Rating,
		Notes:    req.Notes,
	}

	entry, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *EntryHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.UpdateEntryInput{
		ID: id,
		Patch: domain.EntryPatch{
			Flavor:   req.Flavor,
			Price:    req.Price,
			ShopName: req.ShopName,
			Location: req.Location,
			ImageURI: req.ImageURI,
			Date:     req.Date,
			Occasion: req.Occasion,
			Rating:   req.Rating,
			Notes:    req.Notes,
		},
		Version: req.Version,
	}

	entry, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *EntryHandler) GetByID(c *gin.Context) {
	entry, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// List returns the full diary newest first. ?limit=N trims to the N most
// recent purchases, which is what the home screen asks for.
func (h *EntryHandler) List(c *gin.Context) {
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}

		list, err := h.svc.Recent(c.Request.Context(), limit)
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, list)
		return
	}

	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})

	case errors.Is(err, domain.ErrEntryConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "version conflict",
			"message": "entry has been modified elsewhere, please refresh",
		})

	case errors.Is(err, domain.ErrFlavorEmpty),
		errors.Is(err, domain.ErrShopNameEmpty),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
