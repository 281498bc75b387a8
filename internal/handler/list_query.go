package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// ListParams are the admin dashboard listing query parameters, shared by the
// users and materials endpoints: ?name_contains=&_sort=&_direction=&_start=&_limit=
type ListParams struct {
	Contains string
	SortBy   string
	SortDesc bool
	Start    int
	Limit    int
}

const defaultListLimit = 25

func parseListParams(c echo.Context, defaultSort string) ListParams {
	p := ListParams{
		Contains: c.QueryParam("name_contains"),
		SortBy:   c.QueryParam("_sort"),
		Start:    0,
		Limit:    defaultListLimit,
	}
	if p.SortBy == "" {
		p.SortBy = defaultSort
	}
	p.SortDesc = strings.EqualFold(c.QueryParam("_direction"), "DESC")
	if v, err := strconv.Atoi(c.QueryParam("_start")); err == nil && v >= 0 {
		p.Start = v
	}
	if v, err := strconv.Atoi(c.QueryParam("_limit")); err == nil && v > 0 {
		p.Limit = v
	}
	return p
}
