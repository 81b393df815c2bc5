package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/auth"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/stock-api/internal/interfaces/http"
	"github.com/jhoicas/stock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func buildAPI(stockRepo repository.StockItemRepository, adminRepo repository.AdminRepository) *fiber.App {
	log := logger.Nop()
	app := apphttp.NewApp(apphttp.AppConfig{Name: "stock-api-test", AllowOrigins: "*"}, log)
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:   "stock-api-test",
		StockUC:   usecase.NewStockUseCase(stockRepo),
		AuthUC:    auth.NewAuthUseCase(adminRepo, auth.JWTConfig{Secret: testJWTSecret, Issuer: testIssuer}),
		JWTSecret: testJWTSecret,
		Logger:    log,
	})
	return app
}

func newMemoryAPI() *fiber.App {
	return buildAPI(memory.NewStockItemRepository(), memory.NewAdminRepository())
}

type apiResponse struct {
	Status int
	Body   map[string]interface{}
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) apiResponse {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := apiResponse{Status: resp.StatusCode}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out.Body))
	return out
}

func loginToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	creds := map[string]string{"username": "admin", "password": "pw1"}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/admin/create", "", creds).Status)
	res := call(t, app, http.MethodPost, "/api/admin/login", "", creds)
	require.Equal(t, http.StatusOK, res.Status)
	tok, _ := res.Body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func itemsOf(t *testing.T, res apiResponse) []map[string]interface{} {
	t.Helper()
	raw, ok := res.Body["items"].([]interface{})
	require.True(t, ok, "items debe ser un arreglo JSON")
	out := make([]map[string]interface{}, 0, len(raw))
	for _, it := range raw {
		out = append(out, it.(map[string]interface{}))
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenarioCompleto(t *testing.T) {
	app := newMemoryAPI()
	creds := map[string]string{"username": "admin", "password": "pw1"}

	res := call(t, app, http.MethodPost, "/api/admin/create", "", creds)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, true, res.Body["success"])
	assert.Equal(t, "Admin created successfully", res.Body["message"])

	res = call(t, app, http.MethodPost, "/api/admin/create", "", creds)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, false, res.Body["success"])
	assert.Equal(t, "Admin already exists", res.Body["message"])

	res = call(t, app, http.MethodPost, "/api/admin/login", "", creds)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Login successful", res.Body["message"])
	token := res.Body["token"].(string)

	res = call(t, app, http.MethodPost, "/api/stock", token, map[string]interface{}{"name": "Widget", "quantity": 5})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Item added successfully", res.Body["message"])
	item := res.Body["item"].(map[string]interface{})
	id := item["id"].(string)
	createdUpdatedAt := item["updatedAt"].(string)

	res = call(t, app, http.MethodGet, "/api/stock", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	items := itemsOf(t, res)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0]["name"])
	assert.EqualValues(t, 5, items[0]["quantity"])

	time.Sleep(5 * time.Millisecond)
	res = call(t, app, http.MethodPut, "/api/stock/"+id, token, map[string]interface{}{"quantity": 10})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Item updated successfully", res.Body["message"])
	updated := res.Body["item"].(map[string]interface{})
	assert.EqualValues(t, 10, updated["quantity"])
	assert.Equal(t, "Widget", updated["name"])
	assert.NotEqual(t, createdUpdatedAt, updated["updatedAt"])
	assert.Equal(t, item["createdAt"], updated["createdAt"])

	res = call(t, app, http.MethodDelete, "/api/stock/"+id, token, nil)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Item deleted successfully", res.Body["message"])

	res = call(t, app, http.MethodGet, "/api/stock", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Empty(t, itemsOf(t, res))
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

func TestList_OrdenAlfabeticoTrasCrear(t *testing.T) {
	app := newMemoryAPI()
	token := loginToken(t, app)

	for _, n := range []string{"Tornillo", "Arandela", "Martillo"} {
		res := call(t, app, http.MethodPost, "/api/stock", token, map[string]interface{}{"name": n, "quantity": 1})
		require.Equal(t, http.StatusOK, res.Status)
	}
	items := itemsOf(t, call(t, app, http.MethodGet, "/api/stock", "", nil))
	require.Len(t, items, 3)
	assert.Equal(t, "Arandela", items[0]["name"])
	assert.Equal(t, "Martillo", items[1]["name"])
	assert.Equal(t, "Tornillo", items[2]["name"])
}

func TestCreate_DuplicadoSoloCambiaMayusculas(t *testing.T) {
	app := newMemoryAPI()
	token := loginToken(t, app)

	res := call(t, app, http.MethodPost, "/api/stock", token, map[string]interface{}{"name": "Widget", "quantity": 5})
	require.Equal(t, http.StatusOK, res.Status)

	res = call(t, app, http.MethodPost, "/api/stock", token, map[string]interface{}{"name": " WIDGET ", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Item already exists", res.Body["message"])
}

func TestCreate_NombreVacio_Retorna400(t *testing.T) {
	app := newMemoryAPI()
	token := loginToken(t, app)

	res := call(t, app, http.MethodPost, "/api/stock", token, map[string]interface{}{"name": "  ", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Name is required", res.Body["message"])
}

func TestCreate_CantidadNegativa_ErrorDelAlmacen(t *testing.T) {
	app := newMemoryAPI()
	token := loginToken(t, app)

	res := call(t, app, http.MethodPost, "/api/stock", token, map[string]interface{}{"name": "Widget", "quantity": -1})
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, "Error adding item", res.Body["message"])
	assert.Contains(t, res.Body["error"], "quantity")
}

func TestCreate_CuerpoInvalido_Retorna400(t *testing.T) {
	app := newMemoryAPI()
	token := loginToken(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/stock", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeEnvelope(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid request body", body["message"])
}

func TestUpdate_IDInexistente_Retorna404YNoCambiaNada(t *testing.T) {
	app := newMemoryAPI()
	token := loginToken(t, app)
	res := call(t, app, http.MethodPost, "/api/stock", token, map[string]interface{}{"name": "Widget", "quantity": 5})
	require.Equal(t, http.StatusOK, res.Status)
	before := itemsOf(t, call(t, app, http.MethodGet, "/api/stock", "", nil))

	res = call(t, app, http.MethodPut, "/api/stock/00000000-0000-0000-0000-00000000dead", token, map[string]interface{}{"quantity": 99})
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "Item not found", res.Body["message"])

	res = call(t, app, http.MethodPut, "/api/stock/no-es-un-id", token, map[string]interface{}{"quantity": 99})
	assert.Equal(t, http.StatusNotFound, res.Status)

	after := itemsOf(t, call(t, app, http.MethodGet, "/api/stock", "", nil))
	assert.Equal(t, before, after)
}

func TestDelete_DosVeces(t *testing.T) {
	app := newMemoryAPI()
	token := loginToken(t, app)
	res := call(t, app, http.MethodPost, "/api/stock", token, map[string]interface{}{"name": "Widget", "quantity": 5})
	require.Equal(t, http.StatusOK, res.Status)
	id := res.Body["item"].(map[string]interface{})["id"].(string)

	assert.Equal(t, http.StatusOK, call(t, app, http.MethodDelete, "/api/stock/"+id, token, nil).Status)
	res = call(t, app, http.MethodDelete, "/api/stock/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "Item not found", res.Body["message"])
}

// spyStockRepo registra si alguna operación llegó al almacén.
type spyStockRepo struct {
	repository.StockItemRepository
	touched bool
}

func (s *spyStockRepo) ListOrderedByName(ctx context.Context) ([]*entity.StockItem, error) {
	s.touched = true
	return s.StockItemRepository.ListOrderedByName(ctx)
}
func (s *spyStockRepo) FindByNameFold(ctx context.Context, name string) (*entity.StockItem, error) {
	s.touched = true
	return s.StockItemRepository.FindByNameFold(ctx, name)
}
func (s *spyStockRepo) Create(ctx context.Context, it *entity.StockItem) error {
	s.touched = true
	return s.StockItemRepository.Create(ctx, it)
}
func (s *spyStockRepo) UpdateQuantity(ctx context.Context, id string, q *int, at time.Time) (*entity.StockItem, error) {
	s.touched = true
	return s.StockItemRepository.UpdateQuantity(ctx, id, q, at)
}
func (s *spyStockRepo) Delete(ctx context.Context, id string) error {
	s.touched = true
	return s.StockItemRepository.Delete(ctx, id)
}

func TestRutasProtegidas_SinToken_NoLleganAlAlmacen(t *testing.T) {
	cases := []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodPost, "/api/stock", map[string]interface{}{"name": "Widget", "quantity": 1}},
		{http.MethodPut, "/api/stock/00000000-0000-0000-0000-000000000001", map[string]interface{}{"quantity": 1}},
		{http.MethodDelete, "/api/stock/00000000-0000-0000-0000-000000000001", nil},
	}
	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			spy := &spyStockRepo{StockItemRepository: memory.NewStockItemRepository()}
			app := buildAPI(spy, memory.NewAdminRepository())

			res := call(t, app, tc.method, tc.path, "", tc.body)
			assert.Equal(t, http.StatusForbidden, res.Status)
			assert.Equal(t, "No token provided", res.Body["message"])
			assert.False(t, spy.touched, "el almacén no debe tocarse sin token")
		})
	}
}

func TestLogin_PasswordIncorrectoYUsuarioInexistenteIdenticos(t *testing.T) {
	app := newMemoryAPI()
	loginToken(t, app)

	wrongPw := call(t, app, http.MethodPost, "/api/admin/login", "", map[string]string{"username": "admin", "password": "nope"})
	noUser := call(t, app, http.MethodPost, "/api/admin/login", "", map[string]string{"username": "ghost", "password": "pw1"})

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Status)
	assert.Equal(t, wrongPw.Status, noUser.Status)
	assert.Equal(t, wrongPw.Body, noUser.Body)
	assert.Equal(t, map[string]interface{}{"success": false, "message": "Invalid credentials"}, noUser.Body)
}

func TestCreateAdmin_SinCampos_Retorna400(t *testing.T) {
	app := newMemoryAPI()
	res := call(t, app, http.MethodPost, "/api/admin/create", "", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Username and password are required", res.Body["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores del almacén
// ──────────────────────────────────────────────────────────────────────────────

type brokenStockRepo struct{ err error }

func (b brokenStockRepo) ListOrderedByName(context.Context) ([]*entity.StockItem, error) {
	return nil, b.err
}
func (b brokenStockRepo) FindByNameFold(context.Context, string) (*entity.StockItem, error) {
	return nil, b.err
}
func (b brokenStockRepo) Create(context.Context, *entity.StockItem) error { return b.err }
func (b brokenStockRepo) UpdateQuantity(context.Context, string, *int, time.Time) (*entity.StockItem, error) {
	return nil, b.err
}
func (b brokenStockRepo) Delete(context.Context, string) error { return b.err }

func TestErrorDelAlmacen_SeDevuelveTalCual(t *testing.T) {
	storeErr := errors.New("list stock items: connection refused")
	app := buildAPI(brokenStockRepo{err: storeErr}, memory.NewAdminRepository())

	res := call(t, app, http.MethodGet, "/api/stock", "", nil)
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, false, res.Body["success"])
	assert.Equal(t, "Error fetching stock", res.Body["message"])
	assert.Equal(t, storeErr.Error(), res.Body["error"])

	token := loginToken(t, app)
	id := "00000000-0000-0000-0000-000000000001"
	assert.Equal(t, "Error adding item",
		call(t, app, http.MethodPost, "/api/stock", token, map[string]interface{}{"name": "W", "quantity": 1}).Body["message"])
	assert.Equal(t, "Error updating item",
		call(t, app, http.MethodPut, "/api/stock/"+id, token, map[string]interface{}{"quantity": 1}).Body["message"])
	assert.Equal(t, "Error deleting item",
		call(t, app, http.MethodDelete, "/api/stock/"+id, token, nil).Body["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas auxiliares
// ──────────────────────────────────────────────────────────────────────────────

func TestHealthYRutaDesconocida(t *testing.T) {
	app := newMemoryAPI()

	res := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "ok", res.Body["status"])

	res = call(t, app, http.MethodGet, "/api/nada", "", nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, false, res.Body["success"])
}

func TestMetricsYOpenAPI(t *testing.T) {
	app := newMemoryAPI()
	call(t, app, http.MethodGet, "/api/stock", "", nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "stock_api_http_requests_total")

	res := call(t, app, http.MethodGet, "/openapi.json", "", nil)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "2.0", res.Body["swagger"])
}
