package handlers

import (
	"encoding/json"
	"net/http"

	"referralnet/internal/common"
	"referralnet/internal/models"
	"referralnet/internal/services"

	"github.com/labstack/echo/v4"
)

// ContractorHandlers handles HTTP requests for the contractor catalog.
type ContractorHandlers struct {
	contractorService services.ContractorService
}

func NewContractorHandlers(contractorService services.ContractorService) *ContractorHandlers {
	return &ContractorHandlers{contractorService: contractorService}
}

// contractorRequest is shared by register and update. ServiceTypes is
// raw JSON so legacy clients can still send a delimited string or a
// JSON-array-in-a-string; the compatibility parser normalizes it.
type contractorRequest struct {
	CompanyName        string          `json:"company_name"`
	ContactName        *string         `json:"contact_name"`
	Phone              string          `json:"phone"`
	Email              *string         `json:"email"`
	Address            *string         `json:"address"`
	ZipCode            string          `json:"zip_code"`
	ServiceRadiusMiles int             `json:"service_radius_miles"`
	ServiceTypes       json.RawMessage `json:"service_types"`
	Rating             float64         `json:"rating"`
}

func parseServiceTypesField(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err == nil {
		return tags
	}
	return models.ParseServiceTypes(string(raw))
}

// RegisterContractor handles POST /contractors
func (h *ContractorHandlers) RegisterContractor(c echo.Context) error {
	ctx := c.Request().Context()

	var req contractorRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	contractor := &models.Contractor{
		CompanyName:        req.CompanyName,
		ContactName:        req.ContactName,
		Phone:              req.Phone,
		Email:              req.Email,
		Address:            req.Address,
		ZipCode:            req.ZipCode,
		ServiceRadiusMiles: req.ServiceRadiusMiles,
		ServiceTypes:       parseServiceTypesField(req.ServiceTypes),
		Rating:             req.Rating,
	}
	if err := h.contractorService.Register(ctx, contractor); err != nil {
		return common.SendDomainError(c, err, "Contractor")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "Contractor registered and pending approval",
		"contractor": contractor,
	})
}

// ListContractors handles GET /contractors
func (h *ContractorHandlers) ListContractors(c echo.Context) error {
	ctx := c.Request().Context()

	activeOnly := c.QueryParam("active") == "true"
	limit, offset := parsePagination(c, 50)

	contractors, err := h.contractorService.List(ctx, activeOnly, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to retrieve contractors")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"contractors": contractors,
		"limit":       limit,
		"offset":      offset,
	})
}

// GetContractor handles GET /contractors/:id
func (h *ContractorHandlers) GetContractor(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "contractor_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	contractor, err := h.contractorService.GetByID(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err, "Contractor")
	}

	return c.JSON(http.StatusOK, contractor)
}

// UpdateContractor handles PUT /contractors/:id
func (h *ContractorHandlers) UpdateContractor(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "contractor_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req contractorRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	existing, err := h.contractorService.GetByID(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err, "Contractor")
	}

	existing.CompanyName = req.CompanyName
	existing.ContactName = req.ContactName
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Address = req.Address
	existing.ZipCode = req.ZipCode
	existing.ServiceRadiusMiles = req.ServiceRadiusMiles
	existing.ServiceTypes = parseServiceTypesField(req.ServiceTypes)
	existing.Rating = req.Rating

	if err := h.contractorService.Update(ctx, existing); err != nil {
		return common.SendDomainError(c, err, "Contractor")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "Contractor updated successfully",
		"contractor": existing,
	})
}

// ApproveContractor handles POST /contractors/:id/approve
func (h *ContractorHandlers) ApproveContractor(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "contractor_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.contractorService.Approve(ctx, id); err != nil {
		return common.SendDomainError(c, err, "Contractor")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Contractor approved",
	})
}

// SetContractorActive handles POST /contractors/:id/active
func (h *ContractorHandlers) SetContractorActive(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "contractor_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.contractorService.SetActive(ctx, id, req.Active); err != nil {
		return common.SendDomainError(c, err, "Contractor")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Contractor status updated",
	})
}

// DeleteContractor handles DELETE /contractors/:id
func (h *ContractorHandlers) DeleteContractor(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "contractor_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.contractorService.Delete(ctx, id); err != nil {
		return common.SendDomainError(c, err, "Contractor")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Contractor deleted",
	})
}
