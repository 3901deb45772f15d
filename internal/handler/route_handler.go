package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mannar-express/service-seats/internal/domain/route"
	"github.com/mannar-express/service-seats/internal/response"
)

// RouteInfo describes one configured route and its stops in travel order.
type RouteInfo struct {
	Route          string   `json:"route"`
	BoardingPoints []string `json:"boardingPoints"`
}

// RouteHandler serves the route catalog the operator UI builds its forms from.
type RouteHandler struct{}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler() *RouteHandler {
	return &RouteHandler{}
}

// RegisterRoutes registers the route catalog endpoint.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/api/routes", h.ListRoutes)
}

// ListRoutes handles GET /api/routes.
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	routes := make([]RouteInfo, 0, len(route.All()))
	for _, rt := range route.All() {
		routes = append(routes, RouteInfo{
			Route:          rt.String(),
			BoardingPoints: rt.BoardingPoints(),
		})
	}
	response.List(c, routes)
}
