package sanitation

import (
	"time"

	"snpit/models"
	"snpit/services"

	"github.com/go-co-op/gocron"
	"github.com/labstack/gommon/log"
)

type (
	SanitationService struct {
		Initialized           bool
		ClassificationService *services.ClassificationService
		Config                *models.Config

		scheduler *gocron.Scheduler
	}
)

func NewSanitationService(cz *services.ClassificationService, cfg *models.Config) *SanitationService {
	ss := &SanitationService{
		Initialized:           false,
		ClassificationService: cz,
		Config:                cfg,
	}

	ss.Init()

	return ss
}

func (ss *SanitationService) Init() {
	// initialization if necessary
	if !ss.Initialized {
		// - periodically forget finished classification
		//   requests so the in-memory request map stays bounded
		//   (finished requests remain in elasticsearch when configured)
		ss.scheduler = gocron.NewScheduler(time.UTC)

		if _, err := ss.scheduler.Every(1).Hour().Do(func() { ss.Run(time.Now()) }); err != nil {
			log.Errorf("Scheduling classification request cleanup: %v", err)
			return
		}
		ss.scheduler.StartAsync()

		ss.Initialized = true
		log.Info("Sanitation Service Initialized ..")
	}
}

// Run purges finished requests older than the retention period and
// returns how many were removed.
func (ss *SanitationService) Run(now time.Time) int {
	retention := time.Duration(ss.Config.Api.RequestRetentionHours) * time.Hour
	purged := ss.ClassificationService.PurgeFinishedRequests(now.Add(-retention))

	log.Infof("[%s] - Classification request cleanup removed %d request(s)", now.Format(time.RFC3339), purged)
	return purged
}

func (ss *SanitationService) Stop() {
	if ss.scheduler != nil {
		ss.scheduler.Stop()
	}
	ss.Initialized = false
}
