package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"snpit/contexts"
	gam "snpit/middleware"
	"snpit/models"
	serviceInfo "snpit/models/constants/service-info"
	classificationsMvc "snpit/mvc/classifications"
	lineagesMvc "snpit/mvc/lineages"
	serviceInfoMvc "snpit/mvc/service-info"
	"snpit/services"
	"snpit/services/catalog"
	"snpit/services/sanitation"
	"snpit/utils"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	fmt.Printf("Using : \n"+

		"\tDebug : %t \n"+
		"\tSemantic Version : %s \n\n"+

		"\tSample Directory Path : %s \n"+
		"\tClassification Concurrency Level : %d\n"+
		"\tRequest Retention (hours) : %d\n\n"+

		"\tLibrary Directory : %s \n"+
		"\tCatalog File : %s \n"+
		"\tReference File : %s \n\n"+

		"\tDefault Threshold : %.2f \n"+
		"\tIgnore Filter : %t \n\n"+

		"\tElasticsearch Url : %s \n"+
		"\tElasticsearch Username : %s\n\n"+

		"Running on Port : %s\n",

		cfg.Debug, cfg.SemVer,
		cfg.Api.SamplePath,
		cfg.Api.ClassificationConcurrencyLevel,
		cfg.Api.RequestRetentionHours,
		cfg.Library.Directory, cfg.Library.CatalogFile, cfg.Library.ReferenceFile,
		cfg.Classification.Threshold, cfg.Classification.IgnoreFilter,
		cfg.Elasticsearch.Url, cfg.Elasticsearch.Username,
		cfg.Api.Port)
	// --

	if cfg.Debug {
		log.SetLevel(log.DEBUG)
	} else {
		log.SetLevel(log.INFO)
	}

	// Load the lineage library
	cat, err := catalog.Load(&cfg)
	if err != nil {
		log.Fatalf("Loading lineage library from %s: %v", cfg.Library.Directory, err)
	}

	// Instantiate Server
	e := echo.New()

	// Service Connections:
	// -- Elasticsearch (optional archive of finished classifications)
	es, err := utils.CreateEsConnection(&cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Service Singletons
	cz := services.NewClassificationService(cat, es, &cfg)
	ss := sanitation.NewSanitationService(cz, &cfg)
	defer ss.Stop()

	// Configure Server
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
	}))

	// -- Override handlers with "custom Snpit" context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.SnpitContext{
				Context:               c,
				Es7Client:             es,
				Config:                &cfg,
				Catalog:               cat,
				ClassificationService: cz,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root
	e.GET("/", func(c echo.Context) error {
		fmt.Printf("[%s] - Root hit!\n", time.Now())
		return c.JSON(http.StatusOK, serviceInfo.SERVICE_WELCOME)
	})

	// -- Service Info
	e.GET("/service-info", serviceInfoMvc.GetServiceInfo)

	// -- Lineages
	e.GET("/lineages", lineagesMvc.GetLineages)
	e.GET("/lineages/:name", lineagesMvc.GetLineage,
		// middleware
		gam.MandateKnownLineage)

	// -- Classifications
	e.POST("/classify", classificationsMvc.ClassifyUpload,
		// middleware
		gam.CalibrateClassificationOptions)
	e.GET("/classifications/run", classificationsMvc.ClassificationsRun,
		// middleware
		gam.CalibrateClassificationOptions,
		gam.MandateFileNamesAttribute)
	e.GET("/classifications/requests", classificationsMvc.GetAllClassificationRequests)
	e.GET("/classifications/requests/:id", classificationsMvc.GetClassificationRequest)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Api.Port))
}
