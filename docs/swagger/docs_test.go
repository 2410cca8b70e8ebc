package swagger_test

import (
	"encoding/json"
	"testing"

	"card-ledger/docs/swagger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocIsRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(swagger.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths               map[string]json.RawMessage `json:"paths"`
		SecurityDefinitions map[string]json.RawMessage `json:"securityDefinitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "Card Ledger API", parsed.Info.Title)
	for _, p := range []string{"/health", "/api/cards/{expansion}", "/api/prices/{expansion}", "/api/portfolio", "/api/runs/{expansion}"} {
		assert.Contains(t, parsed.Paths, p)
	}
	assert.Contains(t, parsed.SecurityDefinitions, "ApiKeyAuth")
}
