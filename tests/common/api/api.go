package api

import (
	"io"
	"net/http/httptest"
	"testing"

	"snpit/contexts"
	"snpit/models"
	"snpit/services"
	"snpit/services/catalog"
	"snpit/tests/common"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/require"
)

// Server bundles the singletons main wires into every request context.
type Server struct {
	Echo                  *echo.Echo
	Config                *models.Config
	Catalog               *catalog.Catalog
	ClassificationService *services.ClassificationService
}

// NewScenarioServer loads the two-lineage scenario library; lin3 is
// cataloged without a panel.
func NewScenarioServer(t *testing.T) *Server {
	t.Helper()

	lineages := append(common.ScenarioLineages(),
		common.LibraryLineage{Name: "lin3", Species: common.ScenarioSpecies, Lineage: "Lineage 3"})
	cfg := common.WriteLibrary(t, lineages, common.ScenarioReference())
	cfg.Classification.Threshold = 80

	c, err := catalog.Load(cfg)
	require.NoError(t, err)

	return &Server{
		Echo:                  echo.New(),
		Config:                cfg,
		Catalog:               c,
		ClassificationService: services.NewClassificationService(c, nil, cfg),
	}
}

// NewContext wraps a request the way main's context override does.
func (s *Server) NewContext(method, target string, body io.Reader) (*contexts.SnpitContext, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()

	return &contexts.SnpitContext{
		Context:               s.Echo.NewContext(req, rec),
		Config:                s.Config,
		Catalog:               s.Catalog,
		ClassificationService: s.ClassificationService,
	}, rec
}
