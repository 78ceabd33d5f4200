package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marlondridley/FarME/internal/domain"
	"github.com/marlondridley/FarME/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	explore     *usecase.ExploreService
	farms       *usecase.FarmService
	orders      *usecase.OrderService
	suggestions *usecase.SuggestionService
	users       domain.UserRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(
	explore *usecase.ExploreService,
	farms *usecase.FarmService,
	orders *usecase.OrderService,
	suggestions *usecase.SuggestionService,
	users domain.UserRepository,
) *Handler {
	return &Handler{
		explore:     explore,
		farms:       farms,
		orders:      orders,
		suggestions: suggestions,
		users:       users,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "farme-backend",
		"version": "1.0.0",
	})
}

// Explore serves the aggregated marketplace view. The caller passes either
// lat+lng or a zip code; anonymous callers get the truncated teaser view.
func (h *Handler) Explore(c *gin.Context) {
	authenticated := currentUser(c) != nil
	radius, _ := strconv.ParseFloat(c.Query("radius"), 64)

	if zip := strings.TrimSpace(c.Query("zip")); zip != "" {
		c.JSON(http.StatusOK, h.explore.ExploreZip(c.Request.Context(), zip, radius, authenticated))
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide either lat and lng or a zip parameter"})
		return
	}

	center := domain.GeoPoint{Latitude: lat, Longitude: lng}
	c.JSON(http.StatusOK, h.explore.Explore(c.Request.Context(), center, radius, authenticated))
}

// ListFarms returns every farm profile, seeded when the store is empty.
func (h *Handler) ListFarms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"farms": h.farms.ListFarms(c.Request.Context())})
}

// GetFarm returns one farm profile with its detail product list.
func (h *Handler) GetFarm(c *gin.Context) {
	farm, err := h.farms.GetFarm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, farm)
}

// SaveProfile persists the caller's farm profile edits. The farm document is
// keyed by the farmer's own account id.
func (h *Handler) SaveProfile(c *gin.Context) {
	var update domain.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, bio and address are required"})
		return
	}

	user := currentUser(c)
	if err := h.farms.SaveProfile(c.Request.Context(), user.ID, update); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// ListProducts returns the product catalog.
func (h *Handler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.farms.Products()})
}

// PlaceOrder creates an order for the authenticated caller.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req usecase.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "farmId and products are required"})
		return
	}

	user := currentUser(c)
	order, err := h.orders.PlaceOrder(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrder returns one order, visible to its purchaser or the farm's owner.
func (h *Handler) GetOrder(c *gin.Context) {
	user := currentUser(c)
	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// FarmOrders lists the orders placed against the caller's farm.
func (h *Handler) FarmOrders(c *gin.Context) {
	user := currentUser(c)
	orders, err := h.orders.FarmOrders(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// SuggestCrops recommends crops for the authenticated farmer.
func (h *Handler) SuggestCrops(c *gin.Context) {
	var req domain.CropSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weatherPatterns, trendingPreferences and geographicArea are required"})
		return
	}

	suggestions, err := h.suggestions.SuggestCrops(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// DiscoverProduce suggests seasonal produce for a consumer.
func (h *Handler) DiscoverProduce(c *gin.Context) {
	var req domain.ProduceDiscoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "geographicArea and tastePreferences are required"})
		return
	}

	discovery, err := h.suggestions.DiscoverProduce(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, discovery)
}

// SuggestRecipes produces recipe ideas for a list of produce.
func (h *Handler) SuggestRecipes(c *gin.Context) {
	var req struct {
		Produce string `json:"produce" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "produce is required"})
		return
	}

	recipes, err := h.suggestions.SuggestRecipes(c.Request.Context(), req.Produce)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Signup registers an account and issues its bearer token.
func (h *Handler) Signup(c *gin.Context) {
	var req struct {
		Email string      `json:"email" binding:"required,email"`
		Role  domain.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email and role are required"})
		return
	}
	if !domain.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be consumer or farmer"})
		return
	}

	user := &domain.User{
		ID:    uuid.NewString(),
		Email: req.Email,
		Role:  req.Role,
	}
	token := uuid.NewString()
	if err := h.users.Create(c.Request.Context(), user, token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// Me returns the account behind the caller's bearer token.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// respondError maps domain sentinel errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrFarmNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUserExists):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrAdvisorUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
