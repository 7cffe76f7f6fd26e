package contexts

import (
	"snpit/models"
	"snpit/services"
	"snpit/services/catalog"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/labstack/echo"
)

type (
	// "Helper" Context to pass into routes that need
	//  the lineage catalog and other variables
	SnpitContext struct {
		echo.Context
		Es7Client             *es7.Client
		Config                *models.Config
		Catalog               *catalog.Catalog
		ClassificationService *services.ClassificationService

		Threshold       float64
		IgnoreFilter    bool
		IncludeRankings bool
		FileNames       []string
	}
)
