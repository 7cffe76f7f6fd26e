package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"snpit/models/classify"
	"snpit/models/indexes"

	"github.com/Jeffail/gabs"
	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
)

const classificationsIndex = "classifications"

func ClassificationDocumentFromRequest(r *classify.ClassificationRequest) indexes.Classification {
	doc := indexes.Classification{
		Id:          r.Id.String(),
		Filename:    r.Filename,
		State:       string(r.State),
		Message:     r.Message,
		Rankings:    []indexes.Ranking{},
		CreatedTime: time.Now(),
	}
	if r.Result != nil {
		doc.Known = r.Result.Known
		doc.Name = r.Result.Name
		doc.Species = r.Result.Species
		doc.Lineage = r.Result.Lineage
		doc.Sublineage = r.Result.Sublineage
		doc.Percentage = r.Result.Percentage
		for _, ranking := range r.Result.Rankings {
			doc.Rankings = append(doc.Rankings, indexes.Ranking{
				Name:       ranking.Name,
				Percentage: ranking.Percentage,
			})
		}
	}
	return doc
}

func IndexClassification(ctx context.Context, es *es7.Client, doc indexes.Classification) error {
	// Marshal the struct to JSON and check for errors
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	// Instantiate a request object
	req := esapi.IndexRequest{
		Index:      classificationsIndex,
		DocumentID: doc.Id,
		Body:       bytes.NewReader(b),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, es)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("indexing classification %s: %s", doc.Id, res.Status())
	}
	return nil
}

// GetClassificationById returns nil without error when no document
// exists with that id.
func GetClassificationById(ctx context.Context, es *es7.Client, id string) (*indexes.Classification, error) {
	res, err := es.Get(classificationsIndex, id, es.Get.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("getting classification %s: %s", id, res.Status())
	}

	return decodeClassificationHit(res.Body)
}

func decodeClassificationHit(body io.Reader) (*indexes.Classification, error) {
	jsonParsed, err := gabs.ParseJSONBuffer(body)
	if err != nil {
		return nil, err
	}

	if found, ok := jsonParsed.Path("found").Data().(bool); ok && !found {
		return nil, nil
	}
	if !jsonParsed.Exists("_source") {
		return nil, fmt.Errorf("classification document has no _source")
	}

	var doc indexes.Classification
	if err := json.Unmarshal(jsonParsed.Path("_source").Bytes(), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
