package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// PageSizeOptions are the per-page choices offered by list pages.
var PageSizeOptions = []int{5, 10, 20, 50, 100}

// Pagination holds pagination parameters.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// Meta describes the page returned to the client.
type Meta struct {
	CurrentPage  int   `json:"current_page"`
	ItemsPerPage int   `json:"items_per_page"`
	TotalItems   int   `json:"total_items"`
	TotalPages   int   `json:"total_pages"`
	HasPrev      bool  `json:"has_prev"`
	HasNext      bool  `json:"has_next"`
	SizeOptions  []int `json:"page_size_options"`
}

// ParsePagination reads page and limit query params with sane defaults.
func ParsePagination(c *fiber.Ctx, defaultLimit, maxLimit int) Pagination {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}

	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page <= 0 {
		page = 1
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Paginate slices rows to the requested page. A page past the end is
// clamped to the last page; an empty list has a single empty page.
func Paginate[T any](rows []T, pg Pagination) ([]T, Meta) {
	limit := pg.Limit
	if limit <= 0 {
		limit = 10
	}
	total := len(rows)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	page := pg.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}
	out := []T{}
	if start < total {
		out = rows[start:end]
	}

	return out, Meta{
		CurrentPage:  page,
		ItemsPerPage: limit,
		TotalItems:   total,
		TotalPages:   totalPages,
		HasPrev:      page > 1,
		HasNext:      page < totalPages,
		SizeOptions:  PageSizeOptions,
	}
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
