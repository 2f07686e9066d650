package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	env := setupTestRouter(t, false)

	w := doRequest(t, env.router, http.MethodPost, "/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response := decodeObject(t, w)
	assert.Equal(t, float64(5), response["created"])
	assert.Equal(t, float64(0), response["skipped"])
	assert.NotEmpty(t, response["message"])

	w = doRequest(t, env.router, http.MethodPost, "/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response = decodeObject(t, w)
	assert.Equal(t, float64(0), response["created"])
	assert.Equal(t, float64(5), response["skipped"])

	products, err := env.repo.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 5)
}
