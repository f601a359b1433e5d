// Package pagination parses the ?page and ?limit query parameters shared by
// every listing endpoint. Limits are clamped so a single request cannot pull
// a whole ledger table.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a validated page window. Offset is precomputed for the
// repositories' Offset/Limit queries.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse never fails: anything non-numeric or out of range falls back to the
// defaults, matching how the listing screens call these endpoints.
func Parse(c *gin.Context) Params {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", DefaultLimit)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
