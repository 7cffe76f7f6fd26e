package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"snpit/contexts"

	"github.com/labstack/echo"
)

/*
Echo middleware to prepare the context for the optional `threshold`,
`ignoreFilter` and `rankings` HTTP query parameters, falling back to the
configured defaults
*/
func CalibrateClassificationOptions(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.SnpitContext)

		gc.Threshold = gc.Config.Classification.Threshold
		gc.IgnoreFilter = gc.Config.Classification.IgnoreFilter

		// check for a 'threshold' query parameter
		thresholdQP := c.QueryParam("threshold")
		if len(thresholdQP) > 0 {
			threshold, conversionErr := strconv.ParseFloat(thresholdQP, 64)
			if conversionErr != nil || threshold < 0 || threshold > 100 {
				return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid threshold %s ; must be a percentage between 0 and 100", thresholdQP))
			}
			gc.Threshold = threshold
		}

		ignoreFilterQP := c.QueryParam("ignoreFilter")
		if len(ignoreFilterQP) > 0 {
			ignoreFilter, conversionErr := strconv.ParseBool(ignoreFilterQP)
			if conversionErr != nil {
				return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid ignoreFilter %s", ignoreFilterQP))
			}
			gc.IgnoreFilter = ignoreFilter
		}

		rankingsQP := c.QueryParam("rankings")
		if len(rankingsQP) > 0 {
			includeRankings, conversionErr := strconv.ParseBool(rankingsQP)
			if conversionErr != nil {
				return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid rankings %s", rankingsQP))
			}
			gc.IncludeRankings = includeRankings
		}

		return next(gc)
	}
}
