package handler

import (
	"strings"

	"chainflow-engine/internal/core/server"
	"chainflow-engine/internal/features/network/domain"

	"github.com/gofiber/fiber/v2"
)

// NetworkHandler serves read-only views of the synthetic network.
type NetworkHandler struct {
	network *domain.Network
}

// NewNetworkHandler creates a new NetworkHandler.
func NewNetworkHandler(network *domain.Network) *NetworkHandler {
	return &NetworkHandler{network: network}
}

// Register mounts the network routes on r.
func (h *NetworkHandler) Register(r fiber.Router) {
	r.Get("/network", h.GetNetwork)
	r.Get("/locations", h.ListLocations)
	r.Get("/categories", h.ListCategories)
	r.Get("/suppliers", h.ListSuppliers)
	r.Get("/suppliers/:id", h.GetSupplier)
	r.Get("/products", h.ListProducts)
	r.Get("/products/:id", h.GetProduct)
	r.Get("/search", h.Search)
}

// NetworkResponse is the graph view of the network.
type NetworkResponse struct {
	Locations []domain.Location `json:"locations"`
	Routes    []domain.Edge     `json:"routes"`
	Metadata  domain.Summary    `json:"metadata"`
}

// GetNetwork godoc
// @Summary Get the logistics graph
// @Description Returns every location and directed transport edge of the synthetic network
// @Tags network
// @Produce json
// @Success 200 {object} NetworkResponse
// @Router /api/network [get]
func (h *NetworkHandler) GetNetwork(c *fiber.Ctx) error {
	return c.JSON(NetworkResponse{
		Locations: h.network.Locations,
		Routes:    h.network.Edges,
		Metadata:  h.network.Summary,
	})
}

// ListLocations godoc
// @Summary List locations
// @Tags network
// @Produce json
// @Success 200 {array} domain.Location
// @Router /api/locations [get]
func (h *NetworkHandler) ListLocations(c *fiber.Ctx) error {
	return c.JSON(h.network.Locations)
}

// ListCategories godoc
// @Summary List product categories
// @Tags network
// @Produce json
// @Success 200 {array} domain.Category
// @Router /api/categories [get]
func (h *NetworkHandler) ListCategories(c *fiber.Ctx) error {
	return c.JSON(h.network.Categories)
}

// ListSuppliers godoc
// @Summary List suppliers
// @Description Lists suppliers, optionally filtered by country, tier or verification
// @Tags network
// @Produce json
// @Param country query string false "Country"
// @Param tier query int false "Tier (1-3)"
// @Param verified query bool false "Only verified suppliers"
// @Success 200 {array} domain.Supplier
// @Router /api/suppliers [get]
func (h *NetworkHandler) ListSuppliers(c *fiber.Ctx) error {
	country := c.Query("country")
	tier := c.QueryInt("tier", 0)
	onlyVerified := c.QueryBool("verified", false)

	out := make([]domain.Supplier, 0, len(h.network.Suppliers))
	for _, s := range h.network.Suppliers {
		if country != "" && !strings.EqualFold(s.Country, country) {
			continue
		}
		if tier != 0 && s.Tier != tier {
			continue
		}
		if onlyVerified && !s.Verified {
			continue
		}
		out = append(out, s)
	}
	return c.JSON(out)
}

// GetSupplier godoc
// @Summary Get a supplier
// @Tags network
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} domain.Supplier
// @Failure 404 {object} server.ErrorResponse
// @Router /api/suppliers/{id} [get]
func (h *NetworkHandler) GetSupplier(c *fiber.Ctx) error {
	s, ok := h.network.Supplier(c.Params("id"))
	if !ok {
		return server.Fail(c, fiber.StatusNotFound, "supplier not found")
	}
	return c.JSON(s)
}

// ListProducts godoc
// @Summary List products
// @Description Lists products, optionally filtered by category or supplier
// @Tags network
// @Produce json
// @Param category query string false "Category name"
// @Param supplier_id query string false "Supplier ID"
// @Param limit query int false "Maximum number of products"
// @Success 200 {array} domain.Product
// @Router /api/products [get]
func (h *NetworkHandler) ListProducts(c *fiber.Ctx) error {
	category := c.Query("category")
	supplierID := c.Query("supplier_id")
	limit := c.QueryInt("limit", 0)

	out := make([]domain.Product, 0)
	for _, p := range h.network.Products {
		if category != "" && p.Category != category {
			continue
		}
		if supplierID != "" && p.SupplierID != supplierID {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return c.JSON(out)
}

// GetProduct godoc
// @Summary Get a product
// @Tags network
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} server.ErrorResponse
// @Router /api/products/{id} [get]
func (h *NetworkHandler) GetProduct(c *fiber.Ctx) error {
	p, ok := h.network.Product(c.Params("id"))
	if !ok {
		return server.Fail(c, fiber.StatusNotFound, "product not found")
	}
	return c.JSON(p)
}

const unknownName = "Unknown"

// SearchHit is a product annotated with its supplier and category names.
type SearchHit struct {
	domain.Product
	SupplierName string `json:"supplier_name"`
	CategoryName string `json:"category_name"`
}

// SearchResponse lists the matching products.
type SearchResponse struct {
	Success bool        `json:"success"`
	Data    []SearchHit `json:"data"`
	Count   int         `json:"count"`
}

// Search godoc
// @Summary Search products
// @Description Case-insensitive substring match on product name, batch number or id, optionally narrowed by category and supplier
// @Tags network
// @Produce json
// @Param query query string false "Text to match"
// @Param category query string false "Category name"
// @Param supplier query string false "Supplier ID"
// @Success 200 {object} SearchResponse
// @Router /api/search [get]
func (h *NetworkHandler) Search(c *fiber.Ctx) error {
	query := strings.ToLower(c.Query("query"))
	category := c.Query("category")
	supplierID := c.Query("supplier")

	hits := make([]SearchHit, 0)
	for _, p := range h.network.Products {
		if query != "" && !matches(p, query) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if supplierID != "" && p.SupplierID != supplierID {
			continue
		}
		hit := SearchHit{Product: p, SupplierName: unknownName, CategoryName: unknownName}
		if s, ok := h.network.Supplier(p.SupplierID); ok {
			hit.SupplierName = s.Name
		}
		if cat, ok := h.network.Category(p.Category); ok {
			hit.CategoryName = cat.Name
		}
		hits = append(hits, hit)
	}
	return c.JSON(SearchResponse{Success: true, Data: hits, Count: len(hits)})
}

// matches reports whether lowered query occurs in the product's name, batch or id.
func matches(p domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.BatchNumber), query) ||
		strings.Contains(strings.ToLower(p.ID), query)
}
