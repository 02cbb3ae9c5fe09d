package docs

import (
	"encoding/json"
	"os"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var routerAnnotation = regexp.MustCompile(`(?m)^// @Router (\S+) \[(\w+)\]$`)

func annotatedOperations(t *testing.T) []string {
	t.Helper()
	src, err := os.ReadFile("../internal/http/handler/handlers.go")
	require.NoError(t, err)

	var ops []string
	for _, m := range routerAnnotation.FindAllStringSubmatch(string(src), -1) {
		ops = append(ops, strings.ToLower(m[2])+" "+m[1])
	}
	sort.Strings(ops)
	return ops
}

func documentedOperations(t *testing.T) []string {
	t.Helper()
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	var ops []string
	for path, methods := range doc.Paths {
		for method := range methods {
			ops = append(ops, method+" "+path)
		}
	}
	sort.Strings(ops)
	return ops
}

func TestSwaggerDocMatchesRouterAnnotations(t *testing.T) {
	annotated := annotatedOperations(t)
	require.NotEmpty(t, annotated)
	assert.Equal(t, annotated, documentedOperations(t))
}

func TestSwaggerDocListsLifecycleOperations(t *testing.T) {
	assert.Equal(t, []string{
		"delete /api/registro/photos/{photoId}",
		"delete /requests/documents/{documentId}",
		"get /api/registro/cat_docs/{catId}",
		"get /api/registro/photos/{photoId}",
		"get /requests/documents",
		"post /requests/documents",
	}, documentedOperations(t))
}
