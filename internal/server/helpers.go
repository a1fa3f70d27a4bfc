package server

import "github.com/gofiber/fiber/v2"

const maxPaginationLimit = 100

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

// parsePagination reads limit and offset from the query string, falling back
// to defaultLimit and clamping the limit to maxPaginationLimit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	switch {
	case limit <= 0:
		limit = defaultLimit
	case limit > maxPaginationLimit:
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{Limit: limit, Offset: offset}
}
