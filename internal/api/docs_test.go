package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asclub/club-api/docs"
)

var routeParam = regexp.MustCompile(`:(\w+)`)

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	ts := newTestServer(t)

	var doc struct {
		BasePath    string                                `json:"basePath"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))
	assert.Equal(t, basePath, doc.BasePath)

	for _, route := range ts.server.Router.Routes() {
		path, ok := strings.CutPrefix(route.Path, basePath)
		if !ok || strings.HasPrefix(path, "/uploads/") {
			continue
		}
		path = routeParam.ReplaceAllString(path, "{$1}")

		ops, ok := doc.Paths[path]
		if !assert.True(t, ok, "undocumented path %s", path) {
			continue
		}
		_, ok = ops[strings.ToLower(route.Method)]
		assert.True(t, ok, "undocumented operation %s %s", route.Method, path)
	}

	assert.Contains(t, doc.Definitions["domain.Match"].Properties, "competition_id")
	assert.Contains(t, doc.Definitions["domain.Match"].Properties, "notes")
	assert.Contains(t, doc.Definitions["response.ReactionsResponse"].Properties, "my_reaction")

	w := httptest.NewRecorder()
	ts.server.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/admin/compositions/{id}/positions/{playerID}"`)
}
