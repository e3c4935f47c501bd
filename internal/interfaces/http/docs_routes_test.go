package http_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shreyas100100/Expense-Tracker/docs"
)

var (
	routerAnnotation = regexp.MustCompile(`//\s+@Router\s+(\S+)\s+\[(\w+)\]`)
	pathParam        = regexp.MustCompile(`:(\w+)`)
)

// annotatedRoutes lee las anotaciones @Router de los handlers del paquete.
func annotatedRoutes(t *testing.T) []string {
	t.Helper()
	files, err := filepath.Glob("*_handler.go")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	var out []string
	for _, f := range files {
		src, err := os.ReadFile(f)
		require.NoError(t, err)
		for _, m := range routerAnnotation.FindAllStringSubmatch(string(src), -1) {
			out = append(out, strings.ToUpper(m[2])+" "+m[1])
		}
	}
	sort.Strings(out)
	return out
}

// registeredRoutes rutas /api del router con la notación {param} de OpenAPI.
func registeredRoutes(t *testing.T) []string {
	t.Helper()
	app := buildTestApp(t)
	seen := map[string]bool{}
	for _, r := range app.GetRoutes(true) {
		switch r.Method {
		case "GET", "POST", "PUT", "DELETE":
		default:
			continue
		}
		if !strings.HasPrefix(r.Path, "/api/") {
			continue
		}
		path := strings.TrimRight(r.Path, "/")
		path = pathParam.ReplaceAllString(path, "{$1}")
		seen[r.Method+" "+path] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// documentedRoutes rutas publicadas en /docs.
func documentedRoutes(t *testing.T) []string {
	t.Helper()
	var parsed struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &parsed))

	var out []string
	for path, ops := range parsed.Paths {
		for method := range ops {
			out = append(out, strings.ToUpper(method)+" "+path)
		}
	}
	sort.Strings(out)
	return out
}

func TestDocs_CubrenTodasLasRutas(t *testing.T) {
	registered := registeredRoutes(t)
	require.NotEmpty(t, registered)

	assert.Equal(t, registered, annotatedRoutes(t), "cada ruta del router necesita su anotación @Router")
	assert.Equal(t, registered, documentedRoutes(t), "docs/ desactualizado: ejecutar go generate ./cmd/api")
}
