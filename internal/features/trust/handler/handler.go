package handler

import (
	"chainflow-engine/internal/core/server"
	netdomain "chainflow-engine/internal/features/network/domain"
	"chainflow-engine/internal/features/trust/ports"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TrustHandler handles HTTP requests for trust assessments.
type TrustHandler struct {
	service  ports.TrustService
	catalog  ports.Catalog
	validate *validator.Validate
}

// NewTrustHandler creates a new TrustHandler.
func NewTrustHandler(service ports.TrustService, catalog ports.Catalog) *TrustHandler {
	return &TrustHandler{
		service:  service,
		catalog:  catalog,
		validate: validator.New(),
	}
}

// Register mounts the trust routes on r.
func (h *TrustHandler) Register(r fiber.Router) {
	r.Post("/trust/assess", h.Assess)
	r.Get("/trust/history", h.History)
	r.Get("/products/:id/verify", h.VerifyProduct)
}

// AssessRequest is the body of POST /api/trust/assess.
// Product and supplier may be empty objects; missing fields are normalized.
type AssessRequest struct {
	Product     *netdomain.Product     `json:"product" validate:"required"`
	Supplier    *netdomain.Supplier    `json:"supplier" validate:"required"`
	Category    *netdomain.Category    `json:"category"`
	SupplyChain *netdomain.SupplyChain `json:"supply_chain"`
}

// Assess godoc
// @Summary Assess product trust
// @Description Scores a product and supplier pair and reports fraud flags
// @Tags trust
// @Accept json
// @Produce json
// @Param request body AssessRequest true "Product and supplier"
// @Success 200 {object} domain.Assessment
// @Failure 400 {object} server.ErrorResponse
// @Router /api/trust/assess [post]
func (h *TrustHandler) Assess(c *fiber.Ctx) error {
	var req AssessRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "product and supplier are required")
	}

	category := req.Category
	if category == nil && req.Product.Category != "" {
		if cat, ok := h.catalog.Category(req.Product.Category); ok {
			category = &cat
		}
	}
	return c.JSON(h.service.Assess(req.Product, req.Supplier, category, req.SupplyChain))
}

// History godoc
// @Summary Assessment history statistics
// @Tags trust
// @Produce json
// @Success 200 {object} domain.HistoryStats
// @Router /api/trust/history [get]
func (h *TrustHandler) History(c *fiber.Ctx) error {
	return c.JSON(h.service.HistoryStats())
}

// VerifyProduct godoc
// @Summary Anti-counterfeit report
// @Description Builds an authenticity report for a generated product
// @Tags trust
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Report
// @Failure 404 {object} server.ErrorResponse
// @Router /api/products/{id}/verify [get]
func (h *TrustHandler) VerifyProduct(c *fiber.Ctx) error {
	product, ok := h.catalog.Product(c.Params("id"))
	if !ok {
		return server.Fail(c, fiber.StatusNotFound, "product not found")
	}

	var supplier *netdomain.Supplier
	if s, ok := h.catalog.Supplier(product.SupplierID); ok {
		supplier = &s
	}
	var category *netdomain.Category
	if cat, ok := h.catalog.Category(product.Category); ok {
		category = &cat
	}
	return c.JSON(h.service.Report(&product, supplier, category))
}
