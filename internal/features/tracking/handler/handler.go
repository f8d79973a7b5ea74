package handler

import (
	"errors"

	"chainflow-engine/internal/core/server"
	routingdomain "chainflow-engine/internal/features/routing/domain"
	"chainflow-engine/internal/features/tracking/domain"
	"chainflow-engine/internal/features/tracking/ports"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TrackingHandler handles HTTP requests for shipment tracking.
type TrackingHandler struct {
	service  ports.TrackingService
	validate *validator.Validate
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(service ports.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		service:  service,
		validate: validator.New(),
	}
}

// Register mounts the tracking routes on r.
func (h *TrackingHandler) Register(r fiber.Router) {
	r.Post("/start-tracking", h.StartTracking)
	r.Get("/tracking/:id", h.GetShipment)
	r.Get("/tracking/:id/map", h.GetRouteView)
	r.Get("/active-shipments", h.ActiveShipments)
}

// StartTrackingRequest is the body of POST /api/start-tracking.
type StartTrackingRequest struct {
	ShipmentID string               `json:"shipmentId"`
	Route      *routingdomain.Route `json:"route" validate:"required"`
	Cargo      routingdomain.Cargo  `json:"cargo"`
}

// StartTracking godoc
// @Summary Start tracking a shipment
// @Description Registers a shipment along a route and begins simulated progress
// @Tags tracking
// @Accept json
// @Produce json
// @Param request body StartTrackingRequest true "Shipment id, route and cargo"
// @Success 201 {object} domain.Shipment
// @Failure 400 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /api/start-tracking [post]
func (h *TrackingHandler) StartTracking(c *fiber.Ctx) error {
	var req StartTrackingRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "Missing required fields: route")
	}

	shipment, err := h.service.StartTracking(c.UserContext(), req.ShipmentID, *req.Route, req.Cargo)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRoute) {
			return server.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		return server.Fail(c, fiber.StatusInternalServerError, "Failed to start tracking")
	}
	return c.Status(fiber.StatusCreated).JSON(shipment)
}

// GetShipment godoc
// @Summary Get shipment status
// @Tags tracking
// @Produce json
// @Param id path string true "Shipment ID"
// @Success 200 {object} domain.Shipment
// @Failure 404 {object} server.ErrorResponse
// @Router /api/tracking/{id} [get]
func (h *TrackingHandler) GetShipment(c *fiber.Ctx) error {
	shipment, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.lookupError(c, err)
	}
	return c.JSON(shipment)
}

// GetRouteView godoc
// @Summary Get shipment map view
// @Description Route waypoints with coordinates and estimated arrivals
// @Tags tracking
// @Produce json
// @Param id path string true "Shipment ID"
// @Success 200 {object} domain.RouteView
// @Failure 404 {object} server.ErrorResponse
// @Router /api/tracking/{id}/map [get]
func (h *TrackingHandler) GetRouteView(c *fiber.Ctx) error {
	view, err := h.service.RouteView(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.lookupError(c, err)
	}
	return c.JSON(view)
}

// ActiveShipments godoc
// @Summary List tracked shipments
// @Tags tracking
// @Produce json
// @Success 200 {array} domain.Shipment
// @Router /api/active-shipments [get]
func (h *TrackingHandler) ActiveShipments(c *fiber.Ctx) error {
	shipments, err := h.service.Active(c.UserContext())
	if err != nil {
		return server.Fail(c, fiber.StatusInternalServerError, "Failed to list shipments")
	}
	if shipments == nil {
		shipments = []domain.Shipment{}
	}
	return c.JSON(shipments)
}

func (h *TrackingHandler) lookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrShipmentNotFound) {
		return server.Fail(c, fiber.StatusNotFound, "Shipment not found")
	}
	return server.Fail(c, fiber.StatusInternalServerError, "Failed to load shipment")
}
