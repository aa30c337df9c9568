package handlers

import (
	"net/http"
	"time"

	"referralnet/internal/common"
	"referralnet/internal/models"
	"referralnet/internal/services"

	"github.com/labstack/echo/v4"
)

// ReferralHandlers handles HTTP requests for the referral ledger.
type ReferralHandlers struct {
	referralService services.ReferralService
}

func NewReferralHandlers(referralService services.ReferralService) *ReferralHandlers {
	return &ReferralHandlers{referralService: referralService}
}

// CreateReferral handles POST /referrals
func (h *ReferralHandlers) CreateReferral(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		CustomerName    *string    `json:"customer_name"`
		CustomerPhone   *string    `json:"customer_phone"`
		CustomerZip     string     `json:"customer_zip"`
		ServiceType     *string    `json:"service_type"`
		ContractorIDs   []string   `json:"contractor_ids"`
		CreatedBy       *string    `json:"created_by"`
		Notes           *string    `json:"notes"`
		InitialStatus   *string    `json:"initial_status"`
		ContactedDate   *time.Time `json:"contacted_date"`
		AppointmentDate *time.Time `json:"appointment_date"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if len(req.ContractorIDs) == 0 {
		return common.SendValidationError(c, "contractor_ids", "at least one contractor is required")
	}

	input := &models.CreateReferralInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerZip:     req.CustomerZip,
		ServiceType:     req.ServiceType,
		CreatedBy:       req.CreatedBy,
		Notes:           req.Notes,
		ContactedDate:   req.ContactedDate,
		AppointmentDate: req.AppointmentDate,
	}
	for _, idStr := range req.ContractorIDs {
		id, err := common.ValidateUUID(idStr, "contractor_ids")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		input.ContractorIDs = append(input.ContractorIDs, id)
	}
	if req.InitialStatus != nil {
		status := models.ReferralStatus(*req.InitialStatus)
		input.InitialStatus = &status
	}

	referralID, err := h.referralService.CreateReferral(ctx, input)
	if err != nil {
		return common.SendDomainError(c, err, "Contractor")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "Referral created successfully",
		"referral_id": referralID,
	})
}

// GetReferrals handles GET /referrals
func (h *ReferralHandlers) GetReferrals(c echo.Context) error {
	ctx := c.Request().Context()

	filter := &models.ReferralSearchFilter{Limit: 50}
	if statusParam := c.QueryParam("status"); statusParam != "" {
		status := models.ReferralStatus(statusParam)
		filter.Status = &status
	}
	if fromParam := c.QueryParam("from"); fromParam != "" {
		if err := common.ValidateDateFormat(fromParam, "from"); err != nil {
			return common.SendValidationError(c, "from", err.Error())
		}
		from, _ := time.Parse("2006-01-02", fromParam)
		filter.From = &from
	}
	if toParam := c.QueryParam("to"); toParam != "" {
		if err := common.ValidateDateFormat(toParam, "to"); err != nil {
			return common.SendValidationError(c, "to", err.Error())
		}
		to, _ := time.Parse("2006-01-02", toParam)
		// Date-only window upper bounds are inclusive of the whole day.
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &to
	}
	filter.Limit, filter.Offset = parsePagination(c, 50)

	referrals, err := h.referralService.ListReferrals(ctx, filter)
	if err != nil {
		return common.SendDomainError(c, err, "Referral")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"referrals": referrals,
		"limit":     filter.Limit,
		"offset":    filter.Offset,
	})
}

// GetReferral handles GET /referrals/:id
func (h *ReferralHandlers) GetReferral(c echo.Context) error {
	ctx := c.Request().Context()

	referralID, err := common.ValidateUUID(c.Param("id"), "referral_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	snapshot, err := h.referralService.GetReferralStatus(ctx, referralID)
	if err != nil {
		return common.SendDomainError(c, err, "Referral")
	}

	return c.JSON(http.StatusOK, snapshot)
}

// GetReferralStatus handles GET /referrals/:id/status
func (h *ReferralHandlers) GetReferralStatus(c echo.Context) error {
	return h.GetReferral(c)
}

// UpdateReferral handles PUT /referrals/:id
func (h *ReferralHandlers) UpdateReferral(c echo.Context) error {
	ctx := c.Request().Context()

	referralID, err := common.ValidateUUID(c.Param("id"), "referral_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		CustomerName  *string `json:"customer_name"`
		CustomerPhone *string `json:"customer_phone"`
		ServiceType   *string `json:"service_type"`
		Status        string  `json:"status"`
		Notes         *string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	referral := &models.Referral{
		ID:            referralID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		ServiceType:   req.ServiceType,
		Status:        models.ReferralStatus(req.Status),
		Notes:         req.Notes,
	}
	if err := h.referralService.UpdateReferral(ctx, referral); err != nil {
		return common.SendDomainError(c, err, "Referral")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Referral updated successfully",
	})
}

// DeleteReferral handles DELETE /referrals/:id
func (h *ReferralHandlers) DeleteReferral(c echo.Context) error {
	ctx := c.Request().Context()

	referralID, err := common.ValidateUUID(c.Param("id"), "referral_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.referralService.DeleteReferral(ctx, referralID); err != nil {
		return common.SendDomainError(c, err, "Referral")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Referral deleted successfully",
	})
}

// SelectContractor handles POST /referrals/:id/select
func (h *ReferralHandlers) SelectContractor(c echo.Context) error {
	ctx := c.Request().Context()

	referralID, err := common.ValidateUUID(c.Param("id"), "referral_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		ContractorID  string     `json:"contractor_id"`
		WorkStartDate *time.Time `json:"work_start_date"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	contractorID, err := common.ValidateUUID(req.ContractorID, "contractor_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.referralService.SelectContractor(ctx, referralID, contractorID, req.WorkStartDate); err != nil {
		return common.SendDomainError(c, err, "Referral")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Contractor selected",
	})
}

// UpdateDetailStatus handles POST /referral-details/:id/status
func (h *ReferralHandlers) UpdateDetailStatus(c echo.Context) error {
	ctx := c.Request().Context()

	detailID, err := common.ValidateUUID(c.Param("id"), "referral_detail_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Status          string     `json:"status"`
		ContactedDate   *time.Time `json:"contacted_date"`
		AppointmentDate *time.Time `json:"appointment_date"`
		EstimateAmount  *float64   `json:"estimate_amount"`
		EstimateNotes   *string    `json:"estimate_notes"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Status == "" {
		return common.SendValidationError(c, "status", "status is required")
	}

	upd := &models.DetailStatusUpdate{
		Status:          models.DetailStatus(req.Status),
		ContactedDate:   req.ContactedDate,
		AppointmentDate: req.AppointmentDate,
		EstimateAmount:  req.EstimateAmount,
		EstimateNotes:   req.EstimateNotes,
	}
	if err := h.referralService.UpdateDetailStatus(ctx, detailID, upd); err != nil {
		return common.SendDomainError(c, err, "Referral detail")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Referral detail updated",
	})
}

// CompleteWork handles POST /referral-details/:id/complete
func (h *ReferralHandlers) CompleteWork(c echo.Context) error {
	ctx := c.Request().Context()

	detailID, err := common.ValidateUUID(c.Param("id"), "referral_detail_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		WorkCompletedDate *time.Time `json:"work_completed_date"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.referralService.CompleteWork(ctx, detailID, req.WorkCompletedDate); err != nil {
		return common.SendDomainError(c, err, "Referral detail")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Work completed",
	})
}
