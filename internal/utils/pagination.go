package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseSkipLimit reads the skip/limit query parameters, falling back to the
// given defaults on absent or unparsable values.
func ParseSkipLimit(c *gin.Context, defaultLimit int) (int, int) {
	skip := parseIntDefault(c.Query("skip"), 0)
	limit := parseIntDefault(c.Query("limit"), defaultLimit)

	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return skip, limit
}

func parseIntDefault(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
