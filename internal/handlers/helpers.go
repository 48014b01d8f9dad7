package handlers

import (
	"net/http"

	"propertymanager/internal/common"

	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the JSON body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return common.ValidationFailure("Invalid request body", err)
	}
	return c.Validate(req)
}

func pathID(c echo.Context) (int64, error) {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return 0, common.ValidationFailure("Invalid id", err)
	}
	return id, nil
}

func noContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
