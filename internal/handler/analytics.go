package handler

import (
	"net/http"

	"github.com/amirclear/shelf-inventory/internal/apierror"
	"github.com/amirclear/shelf-inventory/internal/middleware"
	"github.com/amirclear/shelf-inventory/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct{ svc service.AnalyticsService }

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) InvestmentScores(c *gin.Context) {
	resp, err := h.svc.InvestmentScores(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to compute investment scores"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}
	resp, err := h.svc.Dashboard(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load dashboard"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
