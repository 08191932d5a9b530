package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, target string) Pagination {
	t.Helper()
	app := fiber.New()
	var got Pagination
	app.Get("/history", func(c *fiber.Ctx) error {
		got = ParseFromRequest(c)
		return c.SendStatus(fiber.StatusOK)
	})
	_, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	return got
}

func TestParseFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   Pagination
	}{
		{"defaults", "/history", Pagination{Page: 0, Size: 10}},
		{"explicit", "/history?page=2&size=25", Pagination{Page: 2, Size: 25}},
		{"negative page falls back", "/history?page=-1", Pagination{Page: 0, Size: 10}},
		{"zero size falls back", "/history?size=0", Pagination{Page: 0, Size: 10}},
		{"size capped", "/history?size=5000", Pagination{Page: 0, Size: MaxSize}},
		{"garbage falls back", "/history?page=abc&size=xyz", Pagination{Page: 0, Size: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(t, tt.target))
		})
	}
}
