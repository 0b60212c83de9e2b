package handlers

import (
	"net/http"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// settingsHandler handles per-hotel role limits and the tax schedule.
type settingsHandler struct {
	roleLimitService portssvc.RoleLimitSvcFacade
	taxService       portssvc.TaxSvcFacade
}

func registerSettingsRoutes(rg *gin.RouterGroup, roleLimitService portssvc.RoleLimitSvcFacade, taxService portssvc.TaxSvcFacade) {
	h := &settingsHandler{roleLimitService: roleLimitService, taxService: taxService}

	rg.GET("/role-limits", h.listRoleLimits)
	rg.PUT("/role-limits/:role", h.upsertRoleLimit)
	rg.GET("/tax-settings", h.listTaxSettings)
	rg.PUT("/tax-settings/:tax_type", h.upsertTaxSetting)
}

// listRoleLimits godoc
// @Summary List role limits
// @Tags settings
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Success 200 {array} dto.RoleLimitResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/role-limits [get]
func (h *settingsHandler) listRoleLimits(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	limits, err := h.roleLimitService.ListRoleLimits(c.Request.Context(), actor, hotelID)
	if err != nil {
		respondWithError(c, err, "Failed to list role limits")
		return
	}
	c.JSON(http.StatusOK, dto.ToRoleLimitResponses(limits))
}

// upsertRoleLimit godoc
// @Summary Set a role's limits
// @Description Omitted ceilings mean unlimited. Owner only.
// @Tags settings
// @Accept json
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param role path string true "Role"
// @Param limits body dto.UpsertRoleLimitRequest true "Limits"
// @Success 200 {object} dto.RoleLimitResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/role-limits/{role} [put]
func (h *settingsHandler) upsertRoleLimit(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.UpsertRoleLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	limit, err := h.roleLimitService.UpsertRoleLimit(c.Request.Context(), actor, hotelID, domain.Role(c.Param("role")), req)
	if err != nil {
		respondWithError(c, err, "Failed to save role limit")
		return
	}
	c.JSON(http.StatusOK, dto.ToRoleLimitResponse(limit))
}

// listTaxSettings godoc
// @Summary List tax settings
// @Tags settings
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Success 200 {array} dto.TaxSettingResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/tax-settings [get]
func (h *settingsHandler) listTaxSettings(c *gin.Context) {
	_, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	settings, err := h.taxService.ListTaxSettings(c.Request.Context(), hotelID)
	if err != nil {
		respondWithError(c, err, "Failed to list tax settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaxSettingResponses(settings))
}

// upsertTaxSetting godoc
// @Summary Set a tax rate
// @Description Owner only. Percent must be between 0 and 100.
// @Tags settings
// @Accept json
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param tax_type path string true "Tax type, e.g. service_charge or vat"
// @Param setting body dto.UpsertTaxSettingRequest true "Tax setting"
// @Success 200 {object} dto.TaxSettingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/tax-settings/{tax_type} [put]
func (h *settingsHandler) upsertTaxSetting(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.UpsertTaxSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	setting, err := h.taxService.UpsertTaxSetting(c.Request.Context(), actor, hotelID, domain.TaxType(c.Param("tax_type")), req)
	if err != nil {
		respondWithError(c, err, "Failed to save tax setting")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaxSettingResponse(setting))
}
