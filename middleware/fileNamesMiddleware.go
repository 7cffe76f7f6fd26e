package middleware

import (
	"fmt"
	"net/http"
	"path/filepath"

	"snpit/contexts"
	inf "snpit/models/constants/input-format"
	"snpit/utils"

	"github.com/labstack/echo"
)

/*
Echo middleware to ensure a valid comma separated `fileNames` HTTP query
parameter was provided; names must be plain file names of a known sample
format
*/
func MandateFileNamesAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.SnpitContext)

		fileNames := utils.SplitCommaSeparated(c.QueryParam("fileNames"))
		if len(fileNames) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing fileNames!")
		}

		for _, fileName := range fileNames {
			if filepath.Base(fileName) != fileName || fileName == ".." {
				return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid file name %s", fileName))
			}
			if format, _ := inf.DetectFromFilename(fileName); format == inf.Unknown {
				return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Unsupported file %s ; only VCF and FASTA files are allowed", fileName))
			}
		}

		gc.FileNames = fileNames
		return next(gc)
	}
}
