package handlers

import (
	"net/http"

	"propertymanager/internal/common"
	"propertymanager/internal/services"

	"github.com/labstack/echo/v4"
)

const maxImageSize = 10 << 20

// PropertyHandlers handles property HTTP requests
type PropertyHandlers struct {
	properties services.PropertyService
}

func NewPropertyHandlers(properties services.PropertyService) *PropertyHandlers {
	return &PropertyHandlers{properties: properties}
}

// ListProperties returns every property, newest first
func (h *PropertyHandlers) ListProperties(c echo.Context) error {
	properties, err := h.properties.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, properties)
}

// GetProperty returns one property with its contracts and maintenance requests
func (h *PropertyHandlers) GetProperty(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	property, err := h.properties.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, property)
}

func (h *PropertyHandlers) CreateProperty(c echo.Context) error {
	var req services.CreatePropertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	property, err := h.properties.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, property)
}

func (h *PropertyHandlers) UpdateProperty(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req services.UpdatePropertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	property, err := h.properties.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, property)
}

func (h *PropertyHandlers) DeleteProperty(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.properties.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return noContent(c)
}

// UploadImage stores the multipart "image" field as the property's image
func (h *PropertyHandlers) UploadImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.ValidationFailure("Image file is required", err)
	}
	if file.Size > maxImageSize {
		return common.ValidationFailure("Image must be 10MB or smaller", nil)
	}

	src, err := file.Open()
	if err != nil {
		return common.Unexpected("read uploaded image", err)
	}
	defer src.Close()

	property, err := h.properties.UploadImage(c.Request().Context(), id, &services.ImageUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Reader:      src,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, property)
}

// GetImage redirects to a short-lived URL for the property's image
func (h *PropertyHandlers) GetImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	url, err := h.properties.ImageURL(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, url)
}
