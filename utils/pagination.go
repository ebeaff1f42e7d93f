package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// Pagination represents pagination parameters
type Pagination struct {
	Page    int
	PerPage int
	Offset  int
}

// NewPagination reads page and per_page from the query string. per_page
// defaults to 15 and is clamped to [1,100].
func NewPagination(c *gin.Context) *Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if err != nil {
		perPage = defaultPerPage
	}
	perPage = ClampPerPage(perPage)

	return &Pagination{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
	}
}

// ClampPerPage bounds a per_page value to [1,100]
func ClampPerPage(perPage int) int {
	if perPage < 1 {
		return 1
	}
	if perPage > maxPerPage {
		return maxPerPage
	}
	return perPage
}
