package lineages

import (
	"fmt"
	"net/http"
	"time"

	"snpit/contexts"
	"snpit/models"
	"snpit/models/dtos"
	"snpit/services/catalog"

	"github.com/labstack/echo"
)

func GetLineages(c echo.Context) error {
	fmt.Printf("[%s] - GetLineages hit!\n", time.Now())
	cat := c.(*contexts.SnpitContext).Catalog

	results := make([]dtos.LineageDto, 0, len(cat.Lineages))
	for _, lineage := range cat.Lineages {
		results = append(results, toDto(cat, lineage))
	}

	return c.JSON(http.StatusOK, dtos.LineagesResponseDTO{
		Status:  http.StatusOK,
		Message: "Success",
		Count:   len(results),
		Results: results,
	})
}

// GetLineage expects MandateKnownLineage to have vetted the name.
func GetLineage(c echo.Context) error {
	fmt.Printf("[%s] - GetLineage hit!\n", time.Now())
	cat := c.(*contexts.SnpitContext).Catalog

	lineage, _ := cat.Get(c.Param("name"))
	return c.JSON(http.StatusOK, toDto(cat, lineage))
}

func toDto(cat *catalog.Catalog, lineage *models.Lineage) dtos.LineageDto {
	return dtos.LineageDto{
		Name:         lineage.Name,
		Species:      lineage.Species,
		Lineage:      lineage.Lineage,
		Sublineage:   lineage.Sublineage,
		PanelSize:    len(lineage.Snps),
		Classifiable: cat.IsClassifiable(lineage.Name),
		MissingPanel: cat.IsMissingPanel(lineage.Name),
	}
}
