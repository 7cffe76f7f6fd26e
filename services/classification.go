package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"snpit/models"
	"snpit/models/classify"
	esRepo "snpit/repositories/elasticsearch"
	"snpit/services/catalog"
	"snpit/services/classification"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type (
	ClassificationService struct {
		Initialized                   bool
		Catalog                       *catalog.Catalog
		Config                        *models.Config
		RequestChan                   chan *classify.ClassificationRequest
		RequestMap                    map[string]*classify.ClassificationRequest
		RequestMapMux                 sync.RWMutex
		ConcurrentClassificationQueue chan bool
		ElasticsearchClient           *es7.Client
	}
)

func NewClassificationService(c *catalog.Catalog, es *es7.Client, cfg *models.Config) *ClassificationService {
	concurrency := cfg.Api.ClassificationConcurrencyLevel
	if concurrency < 1 {
		concurrency = 1
	}

	cz := &ClassificationService{
		Initialized:                   false,
		Catalog:                       c,
		Config:                        cfg,
		RequestChan:                   make(chan *classify.ClassificationRequest),
		RequestMap:                    map[string]*classify.ClassificationRequest{},
		RequestMapMux:                 sync.RWMutex{},
		ConcurrentClassificationQueue: make(chan bool, concurrency),
		ElasticsearchClient:           es,
	}

	cz.Init()

	return cz
}

func (s *ClassificationService) Init() {
	// safeguard to prevent multiple initilizations
	if !s.Initialized {
		// spin up a go routine acting as a listener for
		// classification request updates
		go func() {
			for request := range s.RequestChan {
				if request.State == classify.Queued {
					log.Infof("Queueing a new classification request for %s", request.Filename)
				}

				request.UpdatedAt = time.Now().Format(time.RFC3339Nano)
				s.RequestMapMux.Lock()
				s.RequestMap[request.Id.String()] = request
				s.RequestMapMux.Unlock()

				if request.IsFinished() && s.ElasticsearchClient != nil {
					go s.archive(request)
				}
			}
		}()

		s.Initialized = true
	}
}

func (s *ClassificationService) DefaultOptions() classification.Options {
	return classification.Options{
		Threshold:    s.Config.Classification.Threshold,
		IgnoreFilter: s.Config.Classification.IgnoreFilter,
	}
}

// Classify runs a synchronous classification of an uploaded sample,
// sharing the concurrency budget with queued requests.
func (s *ClassificationService) Classify(r io.Reader, filename string, opts classification.Options) (*models.Result, error) {
	s.ConcurrentClassificationQueue <- true
	defer func() { <-s.ConcurrentClassificationQueue }()

	return classification.ClassifyReader(s.Catalog, r, filename, opts)
}

// QueueFile registers a classification of a file under the sample path
// and runs it in the background. The returned request is a snapshot.
func (s *ClassificationService) QueueFile(filename string, opts classification.Options) classify.ClassificationRequest {
	now := time.Now().Format(time.RFC3339Nano)
	request := classify.ClassificationRequest{
		Id:        uuid.New(),
		Filename:  filename,
		State:     classify.Queued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.publish(request)

	go func(request classify.ClassificationRequest) {
		// take a spot in the queue
		s.ConcurrentClassificationQueue <- true
		defer func() { <-s.ConcurrentClassificationQueue }()

		request.State = classify.Running
		s.publish(request)

		path := filepath.Join(s.Config.Api.SamplePath, request.Filename)
		result, err := classification.ClassifyFile(s.Catalog, path, opts)
		if err != nil {
			log.Errorf("Classification of %s failed: %v", request.Filename, err)
			request.State = classify.Error
			request.Message = err.Error()
		} else {
			request.State = classify.Done
			request.Message = "Success"
			request.Result = result
		}
		s.publish(request)
	}(request)

	return request
}

// publish hands a copy of the request to the listener.
func (s *ClassificationService) publish(request classify.ClassificationRequest) {
	s.RequestChan <- &request
}

func (s *ClassificationService) GetRequest(id string) (classify.ClassificationRequest, bool) {
	s.RequestMapMux.RLock()
	defer s.RequestMapMux.RUnlock()

	request, ok := s.RequestMap[id]
	if !ok {
		return classify.ClassificationRequest{}, false
	}
	return *request, true
}

// GetAllRequests lists every tracked request, oldest first.
func (s *ClassificationService) GetAllRequests() []classify.ClassificationRequest {
	s.RequestMapMux.RLock()
	requests := make([]classify.ClassificationRequest, 0, len(s.RequestMap))
	for _, request := range s.RequestMap {
		requests = append(requests, *request)
	}
	s.RequestMapMux.RUnlock()

	sort.SliceStable(requests, func(i, j int) bool {
		ti, _ := time.Parse(time.RFC3339Nano, requests[i].CreatedAt)
		tj, _ := time.Parse(time.RFC3339Nano, requests[j].CreatedAt)
		return ti.Before(tj)
	})
	return requests
}

func (s *ClassificationService) FilenameAlreadyRunning(filename string) bool {
	s.RequestMapMux.RLock()
	defer s.RequestMapMux.RUnlock()

	for _, v := range s.RequestMap {
		if v.Filename == filename && !v.IsFinished() {
			return true
		}
	}
	return false
}

// PurgeFinishedRequests forgets finished requests last updated before
// the cutoff and returns how many were removed.
func (s *ClassificationService) PurgeFinishedRequests(cutoff time.Time) int {
	s.RequestMapMux.Lock()
	defer s.RequestMapMux.Unlock()

	purged := 0
	for id, request := range s.RequestMap {
		if !request.IsFinished() {
			continue
		}
		updatedAt, err := time.Parse(time.RFC3339Nano, request.UpdatedAt)
		if err != nil || updatedAt.Before(cutoff) {
			delete(s.RequestMap, id)
			purged++
		}
	}
	return purged
}

func (s *ClassificationService) archive(request *classify.ClassificationRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	doc := esRepo.ClassificationDocumentFromRequest(request)
	if err := esRepo.IndexClassification(ctx, s.ElasticsearchClient, doc); err != nil {
		log.Errorf("Archiving classification %s: %v", request.Id, err)
	}
}

// LookupArchived falls back to Elasticsearch for requests no longer held
// in memory.
func (s *ClassificationService) LookupArchived(ctx context.Context, id string) (*classify.ClassificationRequest, error) {
	if s.ElasticsearchClient == nil {
		return nil, nil
	}

	doc, err := esRepo.GetClassificationById(ctx, s.ElasticsearchClient, id)
	if err != nil || doc == nil {
		return nil, err
	}

	parsedId, err := uuid.Parse(doc.Id)
	if err != nil {
		return nil, fmt.Errorf("archived classification has an invalid id %q: %w", doc.Id, err)
	}

	request := &classify.ClassificationRequest{
		Id:        parsedId,
		Filename:  doc.Filename,
		State:     classify.State(doc.State),
		Message:   doc.Message,
		CreatedAt: doc.CreatedTime.Format(time.RFC3339Nano),
		UpdatedAt: doc.CreatedTime.Format(time.RFC3339Nano),
	}
	if doc.State == string(classify.Done) {
		request.Result = &models.Result{
			Known:      doc.Known,
			Name:       doc.Name,
			Species:    doc.Species,
			Lineage:    doc.Lineage,
			Sublineage: doc.Sublineage,
			Percentage: doc.Percentage,
		}
	}
	return request, nil
}
