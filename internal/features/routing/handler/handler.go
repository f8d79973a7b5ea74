package handler

import (
	"chainflow-engine/internal/core/server"
	"chainflow-engine/internal/features/routing/domain"
	"chainflow-engine/internal/features/routing/ports"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RoutingHandler handles HTTP requests for route optimization.
type RoutingHandler struct {
	optimizer ports.RouteOptimizer
	validate  *validator.Validate
}

// NewRoutingHandler creates a new RoutingHandler.
func NewRoutingHandler(optimizer ports.RouteOptimizer) *RoutingHandler {
	return &RoutingHandler{
		optimizer: optimizer,
		validate:  validator.New(),
	}
}

// Register mounts the routing routes on r.
func (h *RoutingHandler) Register(r fiber.Router) {
	r.Post("/optimize-route", h.OptimizeRoute)
	r.Get("/routes/stats", h.Stats)
}

// OptimizeRequest is the body of POST /api/optimize-route.
type OptimizeRequest struct {
	Origin      string             `json:"origin" validate:"required"`
	Destination string             `json:"destination" validate:"required"`
	Cargo       *domain.Cargo      `json:"cargo" validate:"required"`
	Preferences domain.Preferences `json:"preferences"`
}

// OptimizeRoute godoc
// @Summary Optimize a route
// @Description Finds the best route between two locations. Failures carry a fallback route.
// @Tags routing
// @Accept json
// @Produce json
// @Param request body OptimizeRequest true "Origin, destination and cargo"
// @Success 200 {object} domain.Result
// @Failure 400 {object} server.ErrorResponse
// @Failure 500 {object} domain.Result
// @Router /api/optimize-route [post]
func (h *RoutingHandler) OptimizeRoute(c *fiber.Ctx) error {
	var req OptimizeRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "Missing required fields: origin, destination, cargo")
	}

	res := h.optimizer.OptimizeRoute(c.UserContext(), req.Origin, req.Destination, req.Cargo, req.Preferences)
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(res)
	}
	return c.JSON(res)
}

// Stats godoc
// @Summary Optimizer statistics
// @Tags routing
// @Produce json
// @Success 200 {object} domain.Stats
// @Router /api/routes/stats [get]
func (h *RoutingHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.optimizer.Stats())
}
