package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedWeek creates the fixture used by the report tests: Ana buys 2 Nutella on
// Jan 1 and 3 Tradicional on Jan 7; one more order falls on Jan 8.
func seedWeek(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()

	ana, err := env.repo.CreateCustomer(ctx, "Ana", "", "")
	require.NoError(t, err)
	nutella, err := env.repo.CreateProduct(ctx, "Nutella", decimal.RequireFromString("4.0"), decimal.RequireFromString("1.7"))
	require.NoError(t, err)
	tradicional, err := env.repo.CreateProduct(ctx, "Tradicional", decimal.RequireFromString("3.5"), decimal.RequireFromString("1.0"))
	require.NoError(t, err)

	placements := []struct {
		product uint
		qty     int
		at      time.Time
	}{
		{nutella, 2, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{tradicional, 3, time.Date(2024, 1, 7, 23, 59, 59, 0, time.UTC)},
		{nutella, 10, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)},
	}
	for _, p := range placements {
		at := p.at
		_, err := env.repo.CreateOrder(ctx, ana, p.product, p.qty, &at)
		require.NoError(t, err)
	}
}

func TestWeeklyReport(t *testing.T) {
	env := setupTestRouter(t, false)
	seedWeek(t, env)

	w := doRequest(t, env.router, http.MethodGet, "/report/weekly?start=2024-01-01&end=2024-01-07", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := w.Body.String()
	assert.Contains(t, body, `"totalRevenue":18.50`)
	assert.Contains(t, body, `"totalCost":6.40`)
	assert.Contains(t, body, `"totalProfit":12.10`)

	var response WeeklyReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "2024-01-01", response.Start)
	assert.Equal(t, "2024-01-07", response.End)
	assert.Equal(t, 5, response.TotalQuantity)
	assert.Equal(t, 1, response.DistinctCustomers)
	assert.Equal(t, map[string]int{"Nutella": 2, "Tradicional": 3}, response.QuantityByFlavor)
	require.Len(t, response.Orders, 2)
	assert.Equal(t, "Nutella", response.Orders[0].Flavor)
	assert.Equal(t, "8.00", response.Orders[0].LineRevenue.String())
	assert.Equal(t, "4.60", response.Orders[0].LineProfit.String())
	assert.Equal(t, "2024-01-07T23:59:59Z", response.Orders[1].PlacedAt)
}

func TestWeeklyReportEmptyRange(t *testing.T) {
	env := setupTestRouter(t, false)
	seedWeek(t, env)

	tests := []struct {
		name  string
		query string
	}{
		{"no orders in range", "start=2023-06-01&end=2023-06-07"},
		{"end before start", "start=2024-01-07&end=2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, env.router, http.MethodGet, "/report/weekly?"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var response WeeklyReportResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, 0, response.TotalQuantity)
			assert.Equal(t, 0, response.DistinctCustomers)
			assert.Empty(t, response.QuantityByFlavor)
			assert.Empty(t, response.Orders)
			assert.Contains(t, w.Body.String(), `"totalRevenue":0.00`)
			assert.Contains(t, w.Body.String(), `"quantityByFlavor":{}`)
		})
	}
}

func TestWeeklyReportValidation(t *testing.T) {
	env := setupTestRouter(t, false)

	for _, query := range []string{
		"",
		"start=2024-01-01",
		"end=2024-01-07",
		"start=01/01/2024&end=2024-01-07",
		"start=2024-01-01&end=2024-13-40",
	} {
		t.Run(query, func(t *testing.T) {
			w := doRequest(t, env.router, http.MethodGet, "/report/weekly?"+query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, CodeValidation, errorCode(t, w))
		})
	}
}

func TestWeeklyReportPDF(t *testing.T) {
	env := setupTestRouter(t, false)
	seedWeek(t, env)

	w := doRequest(t, env.router, http.MethodGet, "/report/weekly/pdf?start=2024-01-01&end=2024-01-07", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "weekly-report_2024-01-01_2024-01-07.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = doRequest(t, env.router, http.MethodGet, "/report/weekly/pdf?start=bad&end=2024-01-07", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArchiveWeeklyReport(t *testing.T) {
	env := setupTestRouter(t, true)
	seedWeek(t, env)

	w := doRequest(t, env.router, http.MethodPost, "/report/weekly/archive?start=2024-01-01&end=2024-01-07", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	response := decodeObject(t, w)
	key := response["key"].(string)
	assert.True(t, strings.HasPrefix(key, "reports/weekly/2024-01-01_2024-01-07_"), key)
	assert.Contains(t, response["url"], key)

	stored := env.storage.Objects()[key]
	assert.True(t, bytes.HasPrefix(stored, []byte("%PDF")))
	assert.Equal(t, "application/pdf", env.storage.ContentType(key))
}

func TestArchiveWeeklyReportDisabled(t *testing.T) {
	env := setupTestRouter(t, false)

	w := doRequest(t, env.router, http.MethodPost, "/report/weekly/archive?start=2024-01-01&end=2024-01-07", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, CodeArchiveDisabled, errorCode(t, w))
}
