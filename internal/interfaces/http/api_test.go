package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/analytics"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/auth"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/billing"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/catalog"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/dto"
	"github.com/Shreyas100100/Expense-Tracker/internal/infrastructure/memory"
	"github.com/Shreyas100100/Expense-Tracker/internal/infrastructure/pdf"
	apphttp "github.com/Shreyas100100/Expense-Tracker/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	loc := time.UTC

	customers, items, bills, payments := store.Customers(), store.Items(), store.Bills(), store.Payments()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	}).WithBcryptCost(bcrypt.MinCost)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      catalog.NewItemUseCase(items),
		CustomerUC:  billing.NewCustomerUseCase(customers, bills, payments, store, nil),
		BillUC:      billing.NewBillUseCase(store, customers, items, bills, nil, loc),
		PaymentUC:   billing.NewPaymentUseCase(store, customers, bills, payments, nil, loc),
		StatementUC: billing.NewStatementUseCase(customers, bills, payments, pdf.NewMarotoStatementGenerator("Tienda de prueba"), loc),
		HistoryUC:   analytics.NewHistoryUseCase(customers, bills, payments, loc),
		DashboardUC: analytics.NewDashboardUseCase(customers, bills, payments, loc),
		JWTSecret:   testJWTSecret,
	})
	return app
}

// doRequest envía la petición con body JSON opcional y token opcional.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decodeBody[dto.ErrorResponse](t, resp).Code
}

// loginToken registra un usuario y devuelve su token.
func loginToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	creds := fiber.Map{"email": "Owner@Shop.test", "password": "secreto1"}
	resp := doRequest(t, app, http.MethodPost, "/api/auth/signup", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decodeBody[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)
	return login.Token
}

func createItem(t *testing.T, app *fiber.App, token, name, price string) dto.ItemResponse {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/items", token, fiber.Map{"name": name, "price": price})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[dto.ItemResponse](t, resp)
}

func createCustomer(t *testing.T, app *fiber.App, token, name string) dto.CustomerResponse {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/customers", token, fiber.Map{
		"name": name, "shop_no": "12", "phone_number": "9876543210",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[dto.CustomerResponse](t, resp)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_SignupYLogin(t *testing.T) {
	app := buildTestApp(t)
	token := loginToken(t, app)
	assert.NotEmpty(t, token)

	// Duplicado sin distinguir mayúsculas
	resp := doRequest(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{"email": "owner@shop.test", "password": "otraclave"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, resp))

	resp = doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "owner@shop.test", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "nadie@shop.test", "password": "secreto1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody[dto.UserResponse](t, resp)
	assert.Equal(t, "owner@shop.test", me.Email)
}

func TestAPI_SignupPasswordCorta_Retorna400(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{"email": "a@b.co", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestAPI_RutaProtegidaSinToken_Retorna401(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/api/items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Validaciones(t *testing.T) {
	app := buildTestApp(t)
	token := loginToken(t, app)

	resp := doRequest(t, app, http.MethodPost, "/api/items", token, fiber.Map{"name": "Té", "price": "1.234"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "precio con tres decimales")
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/customers", token, fiber.Map{"name": "Ravi", "phone_number": "12345"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "teléfono de 5 dígitos")
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/bills?month=13", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "mes fuera de rango")
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/bills", token, fiber.Map{"customer_id": "x", "lines": []any{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "factura sin líneas")
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/customers/no-existe", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestAPI_IDsMalFormadosEImportesGrandes(t *testing.T) {
	app := buildTestApp(t)
	token := loginToken(t, app)
	customer := createCustomer(t, app, token, "Ravi")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"cliente con id no UUID", http.MethodGet, "/api/customers/abc", nil, http.StatusNotFound},
		{"saldo de cliente con id no UUID", http.MethodGet, "/api/customers/abc/due", nil, http.StatusNotFound},
		{"factura con id no UUID", http.MethodGet, "/api/bills/abc", nil, http.StatusNotFound},
		{"ítem con id no UUID", http.MethodGet, "/api/items/abc", nil, http.StatusNotFound},
		{"línea con ítem no UUID", http.MethodPost, "/api/bills", fiber.Map{
			"customer_id": customer.ID,
			"lines":       []fiber.Map{{"item_id": "x", "quantity": "1"}},
		}, http.StatusNotFound},
		{"filtro de facturas no UUID", http.MethodGet, "/api/bills?customer_id=abc", nil, http.StatusBadRequest},
		{"filtro de pagos no UUID", http.MethodGet, "/api/payments?customer_id=abc", nil, http.StatusBadRequest},
		{"precio de 1e13", http.MethodPost, "/api/items", fiber.Map{"name": "Oro", "price": "10000000000000"}, http.StatusBadRequest},
		{"pago de 1e12", http.MethodPost, "/api/payments", fiber.Map{
			"customer_id": customer.ID, "amount_received": "1000000000000",
		}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, tc.method, tc.path, token, tc.body)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: ítem → cliente → factura → pago → saldo
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoFacturaPagoSaldo(t *testing.T) {
	app := buildTestApp(t)
	token := loginToken(t, app)

	tea := createItem(t, app, token, "Tea", "12.50")
	customer := createCustomer(t, app, token, "Ravi Stores")
	assert.True(t, customer.Balance.IsZero())

	// Factura: 2 x 12.50 = 25
	resp := doRequest(t, app, http.MethodPost, "/api/bills", token, fiber.Map{
		"customer_id": customer.ID,
		"lines":       []fiber.Map{{"item_id": tea.ID, "quantity": "2"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[dto.CreateBillResponse](t, resp)
	assert.True(t, dec("25").Equal(created.Bill.Total))
	assert.True(t, dec("25").Equal(created.CustomerBalance))
	require.Len(t, created.Bill.Lines, 1)
	assert.Equal(t, "Tea", created.Bill.Lines[0].ItemName)

	// Ítem inexistente → 404 y el saldo no cambia
	resp = doRequest(t, app, http.MethodPost, "/api/bills", token, fiber.Map{
		"customer_id": customer.ID,
		"lines":       []fiber.Map{{"item_id": "no-existe", "quantity": "1"}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Pago de 10 → saldo 15
	resp = doRequest(t, app, http.MethodPost, "/api/payments", token, fiber.Map{
		"customer_id": customer.ID, "amount_received": "10",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	paid := decodeBody[dto.AcceptPaymentResponse](t, resp)
	assert.True(t, dec("15").Equal(paid.CustomerBalance))

	// Monto cero → 400
	resp = doRequest(t, app, http.MethodPost, "/api/payments", token, fiber.Map{
		"customer_id": customer.ID, "amount_received": "0",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/customers/"+customer.ID+"/due", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	due := decodeBody[dto.BillDueResponse](t, resp)
	assert.True(t, dec("15").Equal(due.BillDue))

	resp = doRequest(t, app, http.MethodGet, "/api/customers/"+customer.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[dto.CustomerResponse](t, resp)
	assert.True(t, dec("25").Equal(got.TotalBilled))
	assert.True(t, dec("10").Equal(got.TotalPaid))
	assert.True(t, dec("15").Equal(got.Balance))
	assert.True(t, got.Drift.IsZero())

	resp = doRequest(t, app, http.MethodGet, "/api/bills/today", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	today := decodeBody[dto.BillListResponse](t, resp)
	assert.Equal(t, 1, today.Count)

	resp = doRequest(t, app, http.MethodGet, "/api/bills/"+created.Bill.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/payments?customer_id="+customer.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plist := decodeBody[dto.PaymentListResponse](t, resp)
	assert.Equal(t, 1, plist.Count)
	assert.True(t, dec("10").Equal(plist.Total))

	// Historial del cliente: una línea y un pago (negativo)
	resp = doRequest(t, app, http.MethodGet, "/api/customers/"+customer.ID+"/history", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hist := decodeBody[dto.CustomerHistoryResponse](t, resp)
	require.Len(t, hist.Entries, 2)
	assert.True(t, dec("15").Equal(hist.Net))

	resp = doRequest(t, app, http.MethodGet, "/api/customers/"+customer.ID+"/bill-lines", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lines := decodeBody[[]dto.HistoryEntryDTO](t, resp)
	require.Len(t, lines, 1)
	assert.True(t, dec("25").Equal(lines[0].Total))

	resp = doRequest(t, app, http.MethodGet, "/api/history/monthly", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	monthly := decodeBody[dto.MonthlyHistoryResponse](t, resp)
	require.Len(t, monthly.Rows, 1)
	assert.Equal(t, "Ravi Stores", monthly.Rows[0].CustomerName)
	assert.True(t, dec("15").Equal(monthly.Rows[0].Net))

	resp = doRequest(t, app, http.MethodPost, "/api/customers/"+customer.ID+"/reconcile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec := decodeBody[dto.ReconcileResponse](t, resp)
	assert.False(t, rec.Corrected)
	assert.True(t, dec("15").Equal(rec.Balance))

	resp = doRequest(t, app, http.MethodPost, "/api/customers/reconcile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	all := decodeBody[dto.ReconcileAllResponse](t, resp)
	assert.Equal(t, 1, all.Checked)
	assert.Equal(t, 0, all.Corrected)

	resp = doRequest(t, app, http.MethodGet, "/api/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decodeBody[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, 1, summary.TotalCustomers)
	assert.True(t, dec("15").Equal(summary.Outstanding))
	assert.Len(t, summary.TodaysPurchases, 1)

	// Cliente con movimientos no se puede borrar
	resp = doRequest(t, app, http.MethodDelete, "/api/customers/"+customer.ID, token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Borrar el ítem no altera la factura
	resp = doRequest(t, app, http.MethodDelete, "/api/items/"+tea.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
	resp = doRequest(t, app, http.MethodGet, "/api/bills/"+created.Bill.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bill := decodeBody[dto.BillResponse](t, resp)
	assert.Equal(t, "Tea", bill.Lines[0].ItemName)
}

func TestAPI_SobrepagoDejaSaldoNegativo(t *testing.T) {
	app := buildTestApp(t)
	token := loginToken(t, app)
	customer := createCustomer(t, app, token, "Asha")

	resp := doRequest(t, app, http.MethodPost, "/api/payments", token, fiber.Map{
		"customer_id": customer.ID, "amount_received": "40.25",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	paid := decodeBody[dto.AcceptPaymentResponse](t, resp)
	assert.True(t, dec("-40.25").Equal(paid.CustomerBalance))
}

func TestAPI_EstadoDeCuentaPDF(t *testing.T) {
	app := buildTestApp(t)
	token := loginToken(t, app)
	customer := createCustomer(t, app, token, "Ravi Stores")

	resp := doRequest(t, app, http.MethodGet, "/api/customers/"+customer.ID+"/statement.pdf", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "estado-ravi-stores")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAPI_ListaClientesPaginada(t *testing.T) {
	app := buildTestApp(t)
	token := loginToken(t, app)
	createCustomer(t, app, token, "Bala")
	createCustomer(t, app, token, "Asha")
	createCustomer(t, app, token, "Chitra")

	resp := doRequest(t, app, http.MethodGet, "/api/customers?limit=2&offset=0", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[dto.CustomerListResponse](t, resp)
	assert.Len(t, list.Customers, 2)
	assert.Equal(t, 3, list.Page.Total)
}
