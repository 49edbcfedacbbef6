package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PaginationParams struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

// GetPaginationParams reads page and limit from the query string. Values
// outside page >= 1 and 1 <= limit <= MaxPageSize are rejected.
func GetPaginationParams(c *gin.Context) (*PaginationParams, error) {
	page, err := queryInt(c, "page", DefaultPage)
	if err != nil {
		return nil, err
	}
	limit, err := queryInt(c, "limit", DefaultPageSize)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		return nil, fmt.Errorf("page must be >= 1")
	}
	if limit < MinPageSize || limit > MaxPageSize {
		return nil, fmt.Errorf("limit must be between %d and %d", MinPageSize, MaxPageSize)
	}

	return &PaginationParams{Page: page, Limit: limit}, nil
}

func (p *PaginationParams) GetSkip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

func (p *PaginationParams) GetLimit() int64 {
	return int64(p.Limit)
}

// TotalPages returns ceil(total/limit); zero items still count as zero pages.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func queryInt(c *gin.Context, key string, defaultValue int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return value, nil
}
