package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/resource"
	"github.com/jhoicas/Negocio-api/internal/application/workspace"
	"github.com/jhoicas/Negocio-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Negocio-api/internal/interfaces/http"
	"github.com/jhoicas/Negocio-api/pkg/logger"
)

type apiFixture struct {
	app     *fiber.App
	manager *workspace.Manager
	remote  *memory.Store
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	remote := memory.New(resource.Tables())
	manager := workspace.NewManager(remote, workspace.Config{Logger: logger.Nop()}, 0)
	t.Cleanup(manager.Close)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Workspaces: manager, JWTSecret: testJWTSecret})
	return &apiFixture{app: app, manager: manager, remote: remote}
}

// ready crea el espacio de trabajo del usuario y espera su carga inicial.
func (f *apiFixture) ready(userID string) {
	f.manager.Acquire(userID).Wait()
}

func (f *apiFixture) do(t *testing.T, method, path, userID string, body any) *http.Response {
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
	req.Header.Set("Authorization", bearer(t, userID))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createCustomer(t *testing.T, f *apiFixture, userID, name string) dto.CustomerResponse {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/customers", userID, dto.CreateCustomerRequest{Name: name, Email: "contacto@example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.CustomerResponse](t, resp)
}

func TestCustomers_CrearYListar(t *testing.T) {
	f := newAPI(t)
	f.ready(testUserID)

	created := createCustomer(t, f, testUserID, "José Pérez")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "prospecto", created.Status)

	resp := f.do(t, http.MethodGet, "/api/customers?q=jose", testUserID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.CollectionResponse[dto.CustomerResponse]](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.ID, list.Items[0].ID)
	assert.False(t, list.Loading)
}

func TestCustomers_NombreVacio_Retorna400(t *testing.T) {
	f := newAPI(t)
	f.ready(testUserID)

	resp := f.do(t, http.MethodPost, "/api/customers", testUserID, dto.CreateCustomerRequest{Email: "x@example.com"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCustomers_OtroUsuario_NoVeNiModifica(t *testing.T) {
	f := newAPI(t)
	f.ready(testUserID)
	f.ready(otherUserID)
	created := createCustomer(t, f, testUserID, "Ana")

	resp := f.do(t, http.MethodGet, "/api/customers", otherUserID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.CollectionResponse[dto.CustomerResponse]](t, resp).Items)

	resp = f.do(t, http.MethodGet, "/api/customers/"+created.ID+"/notes", otherUserID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/api/customers/"+created.ID, otherUserID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Len(t, f.remote.Rows(resource.TableCustomers), 1)
}

func TestCustomers_EliminarBorraNotas(t *testing.T) {
	f := newAPI(t)
	f.ready(testUserID)
	created := createCustomer(t, f, testUserID, "Ana")

	resp := f.do(t, http.MethodPost, "/api/customers/"+created.ID+"/notes", testUserID, dto.CreateNoteRequest{Title: "Primera llamada", Type: "llamada"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/api/customers/"+created.ID, testUserID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, f.remote.Rows(resource.TableNotes))
	assert.Empty(t, f.remote.Rows(resource.TableCustomers))
}

func TestCustomers_IdEnMayusculasONoUUID(t *testing.T) {
	f := newAPI(t)
	f.ready(testUserID)
	created := createCustomer(t, f, testUserID, "Ana")
	upper := strings.ToUpper(created.ID)

	resp := f.do(t, http.MethodPost, "/api/customers/"+upper+"/notes", testUserID, dto.CreateNoteRequest{Title: "Visita", Type: "reunion"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/customers/"+upper+"/notes", testUserID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.NoteResponse](t, resp), 1)

	resp = f.do(t, http.MethodDelete, "/api/customers/abc", testUserID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/api/customers/"+upper, testUserID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, f.remote.Rows(resource.TableCustomers))
	assert.Empty(t, f.remote.Rows(resource.TableNotes))
}

func TestTasks_CrearCompletarYFiltrar(t *testing.T) {
	f := newAPI(t)
	f.ready(testUserID)

	resp := f.do(t, http.MethodPost, "/api/tasks", testUserID, dto.CreateTaskRequest{Title: "Enviar cotización"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	task := decode[dto.TaskResponse](t, resp)

	resp = f.do(t, http.MethodPost, "/api/tasks/"+task.ID+"/complete", testUserID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.TaskResponse](t, resp).Completed)

	resp = f.do(t, http.MethodGet, "/api/tasks?status=pending", testUserID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.CollectionResponse[dto.TaskResponse]](t, resp).Items)
}

func TestTasks_ClienteDesconocido_Retorna404(t *testing.T) {
	f := newAPI(t)
	f.ready(testUserID)

	resp := f.do(t, http.MethodPost, "/api/tasks", testUserID, dto.CreateTaskRequest{
		Title: "Visita", CustomerID: "00000000-0000-0000-0000-0000000000ff",
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboard_Resumen(t *testing.T) {
	f := newAPI(t)
	f.ready(testUserID)
	createCustomer(t, f, testUserID, "Ana")
	resp := f.do(t, http.MethodPost, "/api/sales", testUserID, map[string]any{"product": "Consultoría", "amount": "150000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/dashboard/summary", testUserID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, resp)

	assert.Equal(t, 1, summary.TotalCustomers)
	assert.Equal(t, "150000", summary.CurrentMonthSales.String())
	assert.NotEmpty(t, summary.DateLabel)
}

func TestDashboard_ReporteSinRenderer_Retorna500(t *testing.T) {
	f := newAPI(t)
	f.ready(testUserID)

	resp := f.do(t, http.MethodGet, "/api/dashboard/report.pdf", testUserID, nil)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestSession_CerrarDescartaEspacio(t *testing.T) {
	f := newAPI(t)
	f.ready(testUserID)
	require.Equal(t, 1, f.manager.Len())

	resp := f.do(t, http.MethodDelete, "/api/session", testUserID, nil)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, f.manager.Len())
}
