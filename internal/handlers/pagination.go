package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// parsePagination reads limit/offset query params, falling back to the
// given default limit.
func parsePagination(c echo.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}
