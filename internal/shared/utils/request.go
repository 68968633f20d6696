package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/shared/response"
)

// ParseUUIDParam reads a UUID path param, writes 400 and returns false when invalid
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return uuid.Nil, false
	}
	return id, true
}

// QueryInt falls back to def when the param is missing or not a number
func QueryInt(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
