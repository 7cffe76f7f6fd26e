package middleware

import (
	"fmt"
	"net/http"

	"snpit/contexts"

	"github.com/labstack/echo"
)

/*
Echo middleware to ensure the `name` path parameter refers to a cataloged lineage
*/
func MandateKnownLineage(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.SnpitContext)

		name := c.Param("name")
		if _, ok := gc.Catalog.Get(name); !ok {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Unknown lineage %s", name))
		}

		return next(gc)
	}
}
