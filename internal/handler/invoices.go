package handler

import (
	"errors"
	"net/http"

	"github.com/amirclear/shelf-inventory/internal/apierror"
	"github.com/amirclear/shelf-inventory/internal/dto"
	"github.com/amirclear/shelf-inventory/internal/middleware"
	"github.com/amirclear/shelf-inventory/internal/repository"
	"github.com/amirclear/shelf-inventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvoicesHandler struct{ svc service.InvoiceService }

func NewInvoicesHandler(svc service.InvoiceService) *InvoicesHandler {
	return &InvoicesHandler{svc: svc}
}

// Generate runs the invoice-generation workflow for a detection run.
// A rejection comes back as 422 with the full reason list — clients must
// check that list, not just the status code, before reporting failure detail.
func (h *InvoicesHandler) Generate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}
	detectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}

	var req dto.GenerateInvoiceRequest
	// Body is optional — an empty request generates without emailing.
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if !bindAndValidate(c, &req) {
			return
		}
	}

	resp, err := h.svc.GenerateFromDetection(c.Request.Context(), userID, detectionID, req)
	if err != nil {
		var rejected *service.RejectedError
		switch {
		case errors.As(err, &rejected):
			c.JSON(http.StatusUnprocessableEntity, apierror.NewRejection(rejected.Reasons))
		case errors.Is(err, service.ErrDetectionNotFound):
			c.JSON(http.StatusNotFound, apierror.New("detection not found"))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("invoice generation failed"))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InvoicesHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list invoices"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("invoice not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadPDF streams the rendered invoice PDF once the async worker has
// produced it; 409 while rendering is still pending.
func (h *InvoicesHandler) DownloadPDF(repo repository.InvoiceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
			return
		}
		inv, err := repo.FindByIDForUser(c.Request.Context(), id, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, apierror.New("invoice not found"))
			return
		}
		if inv.PDFPath == nil || *inv.PDFPath == "" {
			c.JSON(http.StatusConflict, apierror.New("PDF not generated yet"))
			return
		}
		c.FileAttachment(*inv.PDFPath, inv.InvoiceNo+".pdf")
	}
}
