package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/devoys/menu-service/pkg/logger"
	"github.com/devoys/menu-service/pkg/storage"
	"github.com/devoys/menu-service/prometheus"
)

// UploadImage accepts a product image, stores it under a generated name and
// returns the public URL. Oversized files are rejected before anything is
// written; a store failure aborts with no partial object, so the enclosing
// product save never references a half-uploaded image.
func (h *Handler) UploadImage(c echo.Context) error {
	log := logger.FromEcho(c)

	restaurant, errResp := h.resolveRestaurant(c)
	if restaurant == nil {
		return errResp
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("Missing file in upload request", zap.Error(err))
		prometheus.RecordUpload("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}

	if fileHeader.Size > h.cfg.Storage.MaxUploadBytes {
		log.Warn("Upload rejected, file too large",
			zap.Int64("size", fileHeader.Size),
			zap.Int64("max", h.cfg.Storage.MaxUploadBytes))
		prometheus.RecordUpload("rejected_size")
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file exceeds the upload size limit"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		prometheus.RecordUpload("error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store image"})
	}
	defer src.Close()

	name := storage.GenerateName(fileHeader.Filename)
	url, err := h.store.Save(name, src)
	if err != nil {
		log.Error("Failed to store image", zap.String("name", name), zap.Error(err))
		prometheus.RecordUpload("error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store image"})
	}

	prometheus.RecordUpload("ok")
	log.Info("Image uploaded",
		zap.String("name", name),
		zap.Int64("size", fileHeader.Size),
		zap.Uint("restaurant_id", restaurant.ID))
	return c.JSON(http.StatusCreated, echo.Map{
		"name": name,
		"url":  url,
	})
}
