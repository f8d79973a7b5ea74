package handler

import (
	"errors"

	"chainflow-engine/internal/core/server"
	netdomain "chainflow-engine/internal/features/network/domain"
	"chainflow-engine/internal/features/verification/domain"
	"chainflow-engine/internal/features/verification/ports"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// VerificationHandler handles HTTP requests for integrated product verification.
type VerificationHandler struct {
	verifier ports.Verifier
	validate *validator.Validate
}

// NewVerificationHandler creates a new VerificationHandler.
func NewVerificationHandler(verifier ports.Verifier) *VerificationHandler {
	return &VerificationHandler{
		verifier: verifier,
		validate: validator.New(),
	}
}

// Register mounts the verification routes on r.
func (h *VerificationHandler) Register(r fiber.Router) {
	r.Post("/products/verify", h.Verify)
	r.Get("/verification/stats", h.Stats)
}

// VerifyRequest is the body of POST /api/products/verify.
type VerifyRequest struct {
	ProductData  *netdomain.Product   `json:"productData" validate:"required"`
	SupplierData *netdomain.Supplier  `json:"supplierData" validate:"required"`
	Category     *netdomain.Category  `json:"category,omitempty"`
	RouteData    *domain.RouteRequest `json:"routeData" validate:"required"`
}

// VerifyResponse wraps a verification result.
type VerifyResponse struct {
	Success bool `json:"success"`
	domain.Result
}

// Verify godoc
// @Summary Verify a product
// @Description Optimizes the route, scores trust and combines both into one verdict. Results are cached per product for 24 hours.
// @Tags verification
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Product, supplier and route"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /api/products/verify [post]
func (h *VerificationHandler) Verify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "Missing required fields: productData, supplierData, routeData")
	}

	result, err := h.verifier.Verify(c.UserContext(), domain.Request{
		Product:  *req.ProductData,
		Supplier: *req.SupplierData,
		Category: req.Category,
		Route:    *req.RouteData,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingProductID) {
			return server.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		return server.Fail(c, fiber.StatusInternalServerError, "Verification failed: "+err.Error())
	}
	return c.JSON(VerifyResponse{Success: true, Result: result})
}

// StatsResponse wraps the verification statistics.
type StatsResponse struct {
	Success bool         `json:"success"`
	Data    domain.Stats `json:"data"`
}

// Stats godoc
// @Summary Verification statistics
// @Description Request counts, cache hit rate and mean computation time since startup
// @Tags verification
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /api/verification/stats [get]
func (h *VerificationHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(StatsResponse{Success: true, Data: h.verifier.Stats()})
}
