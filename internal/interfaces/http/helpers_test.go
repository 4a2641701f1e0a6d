package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/product-service/internal/application/usecase"
	"github.com/jhoicas/product-service/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/product-service/internal/interfaces/http"
	"github.com/jhoicas/product-service/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newTestApp arma la aplicación completa sobre el store en memoria.
// jwtSecret vacío = escrituras sin autenticación.
func newTestApp(t *testing.T, jwtSecret string) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	return apphttp.NewApp("product-service-test", apphttp.RouterDeps{
		CategoryUC: usecase.NewCategoryUseCase(store.Categories(), tx),
		ProductUC:  usecase.NewProductUseCase(store.Products(), tx),
		TagUC:      usecase.NewTagUseCase(store.Tags(), tx),
		JWTSecret:  jwtSecret,
		Log:        logger.Nop(),
	})
}

type result struct {
	Status int
	Body   []byte
}

// decode interpreta el cuerpo como JSON en out.
func (r result) decode(t *testing.T, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, out), "cuerpo: %s", r.Body)
}

func (r result) object(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	r.decode(t, &m)
	return m
}

func (r result) list(t *testing.T) []map[string]any {
	t.Helper()
	var l []map[string]any
	r.decode(t, &l)
	return l
}

// do lanza la petición; body se serializa a JSON si no es nil.
func do(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) result {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return result{Status: resp.StatusCode, Body: raw}
}

func createCategory(t *testing.T, app *fiber.App, name string) map[string]any {
	t.Helper()
	res := do(t, app, http.MethodPost, "/categories", map[string]any{"name": name})
	require.Equal(t, http.StatusOK, res.Status, "crear categoría: %s", res.Body)
	return res.object(t)
}

func createProduct(t *testing.T, app *fiber.App, name, category string, tags ...string) map[string]any {
	t.Helper()
	body := map[string]any{"productName": name, "categoryName": category, "price": 10.5, "stockQuantity": 1}
	if len(tags) > 0 {
		body["tagNames"] = tags
	}
	res := do(t, app, http.MethodPost, "/products", body)
	require.Equal(t, http.StatusCreated, res.Status, "crear producto: %s", res.Body)
	return res.object(t)
}

func productNames(l []map[string]any) []string {
	out := make([]string, 0, len(l))
	for _, p := range l {
		out = append(out, p["productName"].(string))
	}
	return out
}
