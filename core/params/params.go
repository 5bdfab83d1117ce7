package params

import (
	"net/url"
	"strconv"
	"strings"

	"roundtable-api/core/constants"

	"github.com/labstack/echo/v4"
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

func NewQueryParams(c echo.Context) *QueryParams {
	return FromValues(c.QueryParams())
}

func FromValues(values url.Values) *QueryParams {
	p := &QueryParams{
		PageNumber: atoiDefault(values.Get("page"), constants.DefaultPageNumber),
		PageSize:   atoiDefault(values.Get("page_size"), constants.DefaultPageSize),
		Search:     strings.TrimSpace(values.Get("search")),
	}
	if p.PageNumber < 1 {
		p.PageNumber = constants.DefaultPageNumber
	}
	if p.PageNumber > constants.MaxPageNumber {
		p.PageNumber = constants.MaxPageNumber
	}
	if p.PageSize < 1 {
		p.PageSize = constants.DefaultPageSize
	}
	if p.PageSize > constants.MaxPageSize {
		p.PageSize = constants.MaxPageSize
	}
	return p
}

func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
