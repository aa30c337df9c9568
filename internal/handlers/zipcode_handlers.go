package handlers

import (
	"net/http"

	"referralnet/internal/common"
	"referralnet/internal/models"
	"referralnet/internal/services"

	"github.com/labstack/echo/v4"
)

// ZipCodeHandlers handles HTTP requests for the coordinate table.
type ZipCodeHandlers struct {
	zipService services.ZipCodeService
	geoService services.GeospatialService
}

func NewZipCodeHandlers(zipService services.ZipCodeService, geoService services.GeospatialService) *ZipCodeHandlers {
	return &ZipCodeHandlers{zipService: zipService, geoService: geoService}
}

// ValidateZip handles GET /zipcodes/:code/validate
func (h *ZipCodeHandlers) ValidateZip(c echo.Context) error {
	ctx := c.Request().Context()
	code := c.Param("code")

	valid, err := h.geoService.ValidateZip(ctx, code)
	if err != nil {
		return common.SendServerError(c, "Failed to validate zip code")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"zip_code": code,
		"valid":    valid,
	})
}

// GetZipCode handles GET /zipcodes/:code
func (h *ZipCodeHandlers) GetZipCode(c echo.Context) error {
	ctx := c.Request().Context()

	zip, err := h.zipService.GetByCode(ctx, c.Param("code"))
	if err != nil {
		return common.SendDomainError(c, err, "Zip code")
	}

	return c.JSON(http.StatusOK, zip)
}

// LoadZipCode handles POST /zipcodes (data-load path)
func (h *ZipCodeHandlers) LoadZipCode(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Code      string  `json:"code"`
		City      string  `json:"city"`
		County    *string `json:"county"`
		State     string  `json:"state"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	zip := &models.ZipCode{
		Code:      req.Code,
		City:      req.City,
		County:    req.County,
		State:     req.State,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := h.zipService.Load(ctx, zip); err != nil {
		return common.SendDomainError(c, err, "Zip code")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Zip code loaded",
		"zip_code": zip,
	})
}

// ListZipCodes handles GET /zipcodes
func (h *ZipCodeHandlers) ListZipCodes(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset := parsePagination(c, 100)
	zips, err := h.zipService.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to retrieve zip codes")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"zip_codes": zips,
		"limit":     limit,
		"offset":    offset,
	})
}

// DeactivateZipCode handles POST /zipcodes/:code/deactivate. There is
// no DELETE route: retired ZIPs are only ever deactivated.
func (h *ZipCodeHandlers) DeactivateZipCode(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.zipService.Deactivate(ctx, c.Param("code")); err != nil {
		return common.SendDomainError(c, err, "Zip code")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Zip code deactivated",
	})
}
