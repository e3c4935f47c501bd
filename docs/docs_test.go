package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerInfo_GeneraJSONValido(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, "2.0", parsed["swagger"])

	paths, ok := parsed["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/bills")
	assert.Contains(t, paths, "/api/customers/{id}/statement.pdf")
	assert.Contains(t, paths, "/api/me")

	defs, ok := parsed["definitions"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, defs, "dto.DashboardSummaryDTO")
}
