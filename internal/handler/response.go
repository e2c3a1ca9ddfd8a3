package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Response is the envelope every API endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Total   *int   `json:"total,omitempty"`
}

// OK responds 200 with data
func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// OKList responds 200 with data and a total for listings
func OKList(c echo.Context, data any, total int) error {
	return c.JSON(http.StatusOK, Response{Success: true, Data: data, Total: &total})
}

// OKMessage responds 200 with a message only
func OKMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

// Created responds 201 with data and a message
func Created(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusCreated, Response{Success: true, Data: data, Message: message})
}

// BadRequest responds 400; used for validation errors and conflicts
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Response{Success: false, Error: message})
}

// NotFound responds 404
func NotFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, Response{Success: false, Error: message})
}

// InternalError responds 500 with the store failure surfaced
func InternalError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, Response{Success: false, Error: message})
}

// pathID parses the numeric :id path parameter
func pathID(c echo.Context) (int32, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

// queryInt parses an optional integer query parameter, returning
// whether it was present
func queryInt(c echo.Context, name string) (int, bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}
