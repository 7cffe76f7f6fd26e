package common

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/stretchr/testify/require"
)

// FakeElasticsearch serves document index and get calls from memory.
type FakeElasticsearch struct {
	Server *httptest.Server
	Client *es7.Client

	mux       sync.Mutex
	documents map[string]string
}

func NewFakeElasticsearch(t *testing.T) *FakeElasticsearch {
	t.Helper()

	fake := &FakeElasticsearch{documents: map[string]string{}}
	fake.Server = httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.Server.Close)

	client, err := es7.NewClient(es7.Config{Addresses: []string{fake.Server.URL}})
	require.NoError(t, err)
	fake.Client = client
	return fake
}

// Document returns the raw source stored under index/id.
func (f *FakeElasticsearch) Document(index, id string) (string, bool) {
	f.mux.Lock()
	defer f.mux.Unlock()
	doc, ok := f.documents[index+"/"+id]
	return doc, ok
}

func (f *FakeElasticsearch) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path == "/" {
		io.WriteString(w, `{"version":{"number":"7.17.7","build_flavor":"default"},"tagline":"You Know, for Search"}`)
		return
	}

	// /<index>/_doc/<id>
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[1] != "_doc" {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"unsupported"}`)
		return
	}
	index, id := parts[0], parts[2]

	f.mux.Lock()
	defer f.mux.Unlock()

	switch r.Method {
	case http.MethodPut, http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		f.documents[index+"/"+id] = string(body)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"_index":"`+index+`","_id":"`+id+`","result":"created"}`)
	case http.MethodGet:
		doc, ok := f.documents[index+"/"+id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"_index":"`+index+`","_id":"`+id+`","found":false}`)
			return
		}
		io.WriteString(w, `{"_index":"`+index+`","_id":"`+id+`","found":true,"_source":`+doc+`}`)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
