package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Die Swagger-Middleware macht beim Setup os.Stat auf die Spezifikation und
// panict, wenn sie fehlt. Die Datei muss eingecheckt und gültiges JSON sein.
func TestSwaggerSpezifikationVorhanden(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "docs", "swagger.json"))
	require.NoError(t, err, "docs/swagger.json muss im Repository liegen")

	var spec struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &spec), "Spezifikation muss gültiges JSON sein")

	assert.Equal(t, "2.0", spec.Swagger)
	assert.Contains(t, spec.Paths, "/api/invoices/generate-formats")
	assert.Contains(t, spec.Paths, "/api/auth/login")
}
