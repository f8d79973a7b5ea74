package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chainflow-engine/internal/core/server"
	"chainflow-engine/internal/features/network/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNetwork() *domain.Network {
	return domain.NewNetwork(
		[]domain.Location{{ID: "NYC"}, {ID: "SHG"}},
		[]domain.Supplier{
			{ID: "SUP_000", Country: "USA", Tier: 1, Verified: true},
			{ID: "SUP_001", Country: "China", Tier: 3},
		},
		[]domain.Product{
			{ID: "PROD_0000", Category: "food", SupplierID: "SUP_000"},
			{ID: "PROD_0001", Category: "luxury", SupplierID: "SUP_001"},
			{ID: "PROD_0002", Category: "food", SupplierID: "SUP_001"},
		},
		[]domain.Category{{Name: "food"}, {Name: "luxury"}},
		[]domain.Edge{{ID: "NYC_SHG_AIR", OriginID: "NYC", DestinationID: "SHG"}},
	)
}

func setupApp() *fiber.App {
	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Header: "X-Ray-ID"}))
	NewNetworkHandler(testNetwork()).Register(app.Group("/api"))
	return app
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestNetworkHandler_GetNetwork(t *testing.T) {
	resp, err := setupApp().Test(httptest.NewRequest("GET", "/api/network", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body NetworkResponse
	decode(t, resp, &body)
	assert.Len(t, body.Locations, 2)
	assert.Len(t, body.Routes, 1)
	assert.Equal(t, 3, body.Metadata.TotalProducts)
}

func TestNetworkHandler_ListSuppliers_Filters(t *testing.T) {
	app := setupApp()

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"?country=usa", 1},
		{"?tier=3", 1},
		{"?verified=true", 1},
		{"?country=Germany", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/api/suppliers"+tt.query, nil))
			require.NoError(t, err)

			var body []domain.Supplier
			decode(t, resp, &body)
			assert.Len(t, body, tt.want)
		})
	}
}

func TestNetworkHandler_GetSupplier(t *testing.T) {
	app := setupApp()

	t.Run("Found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/suppliers/SUP_001", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("NotFound", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/suppliers/SUP_999", nil)
		req.Header.Set("X-Ray-ID", "ray-123")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body server.ErrorResponse
		decode(t, resp, &body)
		assert.Equal(t, "supplier not found", body.Message)
		assert.Equal(t, "ray-123", body.RayID)
	})
}

func TestNetworkHandler_ListProducts(t *testing.T) {
	app := setupApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/products?category=food", nil))
	require.NoError(t, err)
	var body []domain.Product
	decode(t, resp, &body)
	assert.Len(t, body, 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/products?limit=1", nil))
	require.NoError(t, err)
	decode(t, resp, &body)
	assert.Len(t, body, 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/products/PROD_0002", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/products/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNetworkHandler_Search(t *testing.T) {
	n := domain.NewNetwork(
		nil,
		[]domain.Supplier{{ID: "SUP_000", Name: "Global Manufacturing Corp"}},
		[]domain.Product{
			{ID: "PROD_0000", Name: "Laptop Pro 3", BatchNumber: "BATCH-A1", Category: "electronics", SupplierID: "SUP_000"},
			{ID: "PROD_0001", Name: "Organic Coffee", BatchNumber: "BATCH-B2", Category: "food", SupplierID: "SUP_404"},
			{ID: "PROD_0002", Name: "Espresso Beans", BatchNumber: "LAPTOP-X", Category: "food", SupplierID: "SUP_000"},
		},
		[]domain.Category{{Name: "electronics"}},
		nil,
	)
	app := fiber.New()
	NewNetworkHandler(n).Register(app.Group("/api"))

	search := func(t *testing.T, target string) SearchResponse {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body SearchResponse
		decode(t, resp, &body)
		return body
	}

	t.Run("MatchesNameAndBatchCaseInsensitive", func(t *testing.T) {
		body := search(t, "/api/search?query=LAPTOP")
		assert.True(t, body.Success)
		require.Equal(t, 2, body.Count)
		assert.Equal(t, "PROD_0000", body.Data[0].ID)
		assert.Equal(t, "Global Manufacturing Corp", body.Data[0].SupplierName)
		assert.Equal(t, "electronics", body.Data[0].CategoryName)
		assert.Equal(t, "PROD_0002", body.Data[1].ID)
	})

	t.Run("MatchesID", func(t *testing.T) {
		body := search(t, "/api/search?query=prod_0001")
		require.Equal(t, 1, body.Count)
		assert.Equal(t, "Unknown", body.Data[0].SupplierName)
		assert.Equal(t, "Unknown", body.Data[0].CategoryName)
	})

	t.Run("Filters", func(t *testing.T) {
		body := search(t, "/api/search?category=food&supplier=SUP_000")
		require.Equal(t, 1, body.Count)
		assert.Equal(t, "PROD_0002", body.Data[0].ID)
	})

	t.Run("NoMatch", func(t *testing.T) {
		body := search(t, "/api/search?query=tractor")
		assert.Equal(t, 0, body.Count)
		assert.NotNil(t, body.Data)
	})
}
