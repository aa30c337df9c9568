package handlers

import (
	"net/http"

	"referralnet/internal/common"
	"referralnet/internal/services"

	"github.com/labstack/echo/v4"
)

// MatchHandlers exposes the contractor matcher.
type MatchHandlers struct {
	geoService services.GeospatialService
}

func NewMatchHandlers(geoService services.GeospatialService) *MatchHandlers {
	return &MatchHandlers{geoService: geoService}
}

// FindContractors handles POST /matches
func (h *MatchHandlers) FindContractors(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ZipCode     string   `json:"zip_code"`
		ServiceType *string  `json:"service_type"`
		MaxDistance *float64 `json:"max_distance"`
		MaxResults  *int     `json:"max_results"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	zip, err := common.ValidateZipFormat(req.ZipCode)
	if err != nil {
		return common.SendValidationError(c, "zip_code", err.Error())
	}

	maxDistance := services.DefaultMaxDistanceMiles
	if req.MaxDistance != nil {
		if err := common.ValidatePositiveFloat(*req.MaxDistance, "max_distance", 500); err != nil {
			return common.SendValidationError(c, "max_distance", err.Error())
		}
		maxDistance = *req.MaxDistance
	}

	maxResults := services.DefaultMaxResults
	if req.MaxResults != nil {
		if err := common.ValidatePositiveInteger(*req.MaxResults, "max_results", 50); err != nil {
			return common.SendValidationError(c, "max_results", err.Error())
		}
		maxResults = *req.MaxResults
	}

	matches, err := h.geoService.FindContractors(ctx, zip, common.SafeString(req.ServiceType), maxDistance, maxResults)
	if err != nil {
		return common.SendServerError(c, "Failed to find contractors")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"contractors": matches,
		"count":       len(matches),
	})
}
