// Package pagination parses page/size query parameters.
package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Defaults and bounds
const (
	DefaultSize = 10
	MaxSize     = 100
)

// Pagination is a 0-based page request.
type Pagination struct {
	Page int
	Size int
}

// ParseFromRequest reads page and size from the query string. Pages are
// 0-based; out-of-range values fall back to defaults.
func ParseFromRequest(c *fiber.Ctx) Pagination {
	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.Query("size", strconv.Itoa(DefaultSize)))
	if err != nil || size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Pagination{Page: page, Size: size}
}
