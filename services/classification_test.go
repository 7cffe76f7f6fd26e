package services_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"snpit/models"
	"snpit/models/classify"
	"snpit/services"
	"snpit/services/catalog"
	"snpit/tests/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*services.ClassificationService, *models.Config) {
	t.Helper()
	cfg := common.WriteLibrary(t, common.ScenarioLineages(), common.ScenarioReference())
	cfg.Classification.Threshold = 80

	c, err := catalog.Load(cfg)
	require.NoError(t, err)

	common.WriteFile(t, filepath.Join(cfg.Api.SamplePath, "lin2.vcf"), common.ScenarioVcf())
	common.WriteFile(t, filepath.Join(cfg.Api.SamplePath, "bad.vcf"), common.Vcf("s", [5]string{"100", "A", "G", "PASS", "A/G"}))

	return services.NewClassificationService(c, nil, cfg), cfg
}

func waitFinished(t *testing.T, cz *services.ClassificationService, id string) classify.ClassificationRequest {
	t.Helper()
	var request classify.ClassificationRequest
	assert.Eventually(t, func() bool {
		var ok bool
		request, ok = cz.GetRequest(id)
		return ok && request.IsFinished()
	}, 5*time.Second, 10*time.Millisecond)
	return request
}

func TestClassificationServiceClassify(t *testing.T) {
	cz, _ := newService(t)

	result, err := cz.Classify(strings.NewReader(common.ScenarioVcf()), "upload.vcf", cz.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "lin2", result.Name)
	assert.Equal(t, 100.0, result.Percentage)
}

func TestClassificationServiceQueueFile(t *testing.T) {
	cz, _ := newService(t)

	t.Run("should run a queued classification to completion", func(t *testing.T) {
		queued := cz.QueueFile("lin2.vcf", cz.DefaultOptions())
		assert.Equal(t, classify.Queued, queued.State)

		request := waitFinished(t, cz, queued.Id.String())
		assert.Equal(t, classify.Done, request.State)
		require.NotNil(t, request.Result)
		assert.Equal(t, "lin2", request.Result.Name)
		assert.Equal(t, queued.CreatedAt, request.CreatedAt)
	})

	t.Run("should record failures on the request", func(t *testing.T) {
		queued := cz.QueueFile("bad.vcf", cz.DefaultOptions())

		request := waitFinished(t, cz, queued.Id.String())
		assert.Equal(t, classify.Error, request.State)
		assert.Contains(t, request.Message, models.ErrMalformedGenotype.Error())
		assert.Nil(t, request.Result)
	})

	t.Run("should record missing files on the request", func(t *testing.T) {
		queued := cz.QueueFile("missing.vcf", cz.DefaultOptions())

		request := waitFinished(t, cz, queued.Id.String())
		assert.Equal(t, classify.Error, request.State)
	})

	t.Run("should list every request oldest first", func(t *testing.T) {
		requests := cz.GetAllRequests()
		require.Len(t, requests, 3)
		assert.Equal(t, "lin2.vcf", requests[0].Filename)
		assert.False(t, cz.FilenameAlreadyRunning("lin2.vcf"))
	})
}

func TestPurgeFinishedRequests(t *testing.T) {
	cz, _ := newService(t)

	queued := cz.QueueFile("lin2.vcf", cz.DefaultOptions())
	waitFinished(t, cz, queued.Id.String())

	assert.Equal(t, 0, cz.PurgeFinishedRequests(time.Now().Add(-time.Hour)))
	_, ok := cz.GetRequest(queued.Id.String())
	assert.True(t, ok)

	assert.Equal(t, 1, cz.PurgeFinishedRequests(time.Now().Add(time.Second)))
	_, ok = cz.GetRequest(queued.Id.String())
	assert.False(t, ok)
}

func TestLookupArchivedWithoutElasticsearch(t *testing.T) {
	cz, _ := newService(t)

	request, err := cz.LookupArchived(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Nil(t, request)
}

func TestArchivedRequests(t *testing.T) {
	fake := common.NewFakeElasticsearch(t)

	cfg := common.WriteLibrary(t, common.ScenarioLineages(), common.ScenarioReference())
	cfg.Classification.Threshold = 80
	c, err := catalog.Load(cfg)
	require.NoError(t, err)
	common.WriteFile(t, filepath.Join(cfg.Api.SamplePath, "lin2.vcf"), common.ScenarioVcf())

	cz := services.NewClassificationService(c, fake.Client, cfg)

	queued := cz.QueueFile("lin2.vcf", cz.DefaultOptions())
	waitFinished(t, cz, queued.Id.String())
	assert.Eventually(t, func() bool {
		_, ok := fake.Document("classifications", queued.Id.String())
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	require.Equal(t, 1, cz.PurgeFinishedRequests(time.Now().Add(time.Second)))

	archived, err := cz.LookupArchived(context.Background(), queued.Id.String())
	require.NoError(t, err)
	require.NotNil(t, archived)
	assert.Equal(t, queued.Id, archived.Id)
	assert.Equal(t, classify.Done, archived.State)
	require.NotNil(t, archived.Result)
	assert.Equal(t, "lin2", archived.Result.Name)
}
