package handler

import (
	"net/http"
	"path/filepath"

	"github.com/amirclear/shelf-inventory/internal/apierror"
	"github.com/amirclear/shelf-inventory/internal/middleware"
	"github.com/amirclear/shelf-inventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DetectionsHandler struct{ svc service.DetectionService }

func NewDetectionsHandler(svc service.DetectionService) *DetectionsHandler {
	return &DetectionsHandler{svc: svc}
}

// Upload accepts a multipart form with an "image" file, runs the detection
// stub on its filename, and returns the stored run.
func (h *DetectionsHandler) Upload(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("image file required"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cannot read uploaded file"))
		return
	}
	defer src.Close()

	resp, err := h.svc.Upload(c.Request.Context(), userID, filepath.Base(fileHeader.Filename), src)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DetectionsHandler) Get(c *gin.Context) {
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
	resp, err := h.svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("detection not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DetectionsHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list detections"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
