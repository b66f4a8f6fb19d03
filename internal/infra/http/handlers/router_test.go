package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/machinecare-leads/internal/infra/database"
	"github.com/xavierca1/machinecare-leads/internal/infra/http/handlers"
	"github.com/xavierca1/machinecare-leads/internal/infra/integration/upiqr"
	"github.com/xavierca1/machinecare-leads/internal/usecase"
)

type apiResult struct {
	Success bool                 `json:"success"`
	Data    json.RawMessage      `json:"data"`
	Error   string               `json:"error"`
	Code    string               `json:"code"`
	Fields  []usecase.FieldError `json:"fields"`
}

type apiLead struct {
	ID            string   `json:"id"`
	Status        string   `json:"status"`
	Pincode       int      `json:"pincode"`
	Amount        *float64 `json:"amount"`
	PaymentStatus string   `json:"payment_status"`
	PaymentMethod string   `json:"payment_method"`
	PaymentAmount *float64 `json:"payment_amount"`
	UPIID         *string  `json:"upi_id"`
}

func newTestServer(t *testing.T, contactLimit int) http.Handler {
	t.Helper()

	repo := database.NewMemoryLeadRepository()
	qr := upiqr.NewGenerator("")
	record := usecase.NewRecordPaymentUseCase(repo, nil)

	contact := handlers.NewContactHandler(usecase.NewSubmitContactFormUseCase(repo, nil), contactLimit)
	t.Cleanup(contact.Close)

	return handlers.Router{
		Contact: contact,
		Leads: &handlers.LeadHandler{
			ListUseCase:           usecase.NewListLeadsUseCase(repo),
			GetUseCase:            usecase.NewGetLeadUseCase(repo),
			StatsUseCase:          usecase.NewGetLeadStatsUseCase(repo),
			UpdateStatusUseCase:   usecase.NewUpdateLeadStatusUseCase(repo, nil),
			UpdateAmountUseCase:   usecase.NewUpdateLeadAmountUseCase(repo),
			UpdatePriorityUseCase: usecase.NewUpdateLeadPriorityUseCase(repo),
			DeleteUseCase:         usecase.NewDeleteLeadUseCase(repo, nil),
		},
		Payments: &handlers.PaymentHandler{
			CaptureUseCase: usecase.NewCapturePaymentUseCase(repo, record, qr),
			QRUseCase:      usecase.NewGenerateQRUseCase(repo, qr),
		},
		Health: handlers.NewHealthHandler(nil, nil),
	}.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, apiResult) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	var res apiResult
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	}
	return rec, res
}

const validContact = `{
	"name": "Ravi Kumar",
	"phone": "+91 98765 43210",
	"email": "ravi@example.com",
	"service": "AC Service",
	"message": "AC not cooling since yesterday",
	"pincode": "273001",
	"address": "12 Civil Lines, Gorakhpur"
}`

func createLead(t *testing.T, h http.Handler) apiLead {
	t.Helper()

	rec, res := do(t, h, http.MethodPost, "/api/contact", validContact)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.True(t, res.Success)

	var lead apiLead
	require.NoError(t, json.Unmarshal(res.Data, &lead))
	return lead
}

// TestContactSubmit - formulário válido cria lead pendente
func TestContactSubmit(t *testing.T) {
	h := newTestServer(t, 10)

	lead := createLead(t, h)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "pending", lead.Status)
	assert.Equal(t, 273001, lead.Pincode)
	assert.Equal(t, "pending", lead.PaymentStatus)
}

// TestContactSubmitValidation - erros por campo voltam com 400
func TestContactSubmitValidation(t *testing.T) {
	h := newTestServer(t, 10)

	rec, res := do(t, h, http.MethodPost, "/api/contact", `{"name":"R","phone":"123","pincode":"27300"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, res.Success)
	assert.Equal(t, usecase.CodeValidation, res.Code)

	fields := map[string]bool{}
	for _, f := range res.Fields {
		fields[f.Field] = true
	}
	for _, name := range []string{"name", "phone", "service", "message", "pincode", "address"} {
		assert.True(t, fields[name], "campo %s deveria falhar", name)
	}
}

// TestContactSubmitBadJSON - corpo inválido é 400
func TestContactSubmitBadJSON(t *testing.T) {
	h := newTestServer(t, 10)

	rec, res := do(t, h, http.MethodPost, "/api/contact", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, usecase.CodeValidation, res.Code)
}

// TestContactSubmitRateLimited - segundo envio do mesmo IP na janela é 429
func TestContactSubmitRateLimited(t *testing.T) {
	h := newTestServer(t, 1)

	createLead(t, h)
	rec, res := do(t, h, http.MethodPost, "/api/contact", validContact)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, handlers.CodeRateLimited, res.Code)
}

// TestLeadLifecycle - do formulário ao pagamento online pelo painel
func TestLeadLifecycle(t *testing.T) {
	h := newTestServer(t, 10)
	lead := createLead(t, h)
	base := "/admin/leads/" + lead.ID

	rec, res := do(t, h, http.MethodPatch, base+"/status", `{"status":"contacted"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, res = do(t, h, http.MethodPatch, base+"/status", `{"status":"done","amount":"1500"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Lead           apiLead `json:"lead"`
		AmountRequired bool    `json:"amount_required"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &out))
	assert.Equal(t, "done", out.Lead.Status)
	require.NotNil(t, out.Lead.Amount)
	assert.Equal(t, 1500.0, *out.Lead.Amount)
	assert.False(t, out.AmountRequired)

	rec, res = do(t, h, http.MethodPatch, base+"/status", `{"status":"contacted"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, usecase.CodeInvalidTransition, res.Code)

	rec, res = do(t, h, http.MethodPost, base+"/payment/qr", `{"upi_id":"shop@ybl"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var qr struct {
		QR   upiqr.QRCode       `json:"qr"`
		Apps []upiqr.PaymentApp `json:"apps"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &qr))
	assert.Equal(t, 1500.0, qr.QR.Amount)
	assert.Contains(t, qr.QR.DeepLink, "pa=shop%40ybl")
	assert.Len(t, qr.Apps, len(upiqr.PaymentApps))

	rec, res = do(t, h, http.MethodPost, base+"/payment", `{"payment_method":"online","upi_id":"shop@ybl"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var paid apiLead
	require.NoError(t, json.Unmarshal(res.Data, &paid))
	assert.Equal(t, "done", paid.Status)
	assert.Equal(t, "completed", paid.PaymentStatus)
	assert.Equal(t, "online", paid.PaymentMethod)
	require.NotNil(t, paid.PaymentAmount)
	assert.Equal(t, 1500.0, *paid.PaymentAmount)
	require.NotNil(t, paid.UPIID)
	assert.Equal(t, "shop@ybl", *paid.UPIID)

	rec, res = do(t, h, http.MethodPost, base+"/payment", `{"payment_method":"cash"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, usecase.CodeInvalidPayment, res.Code)

	rec, res = do(t, h, http.MethodGet, "/admin/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats usecase.StatsOutput
	require.NoError(t, json.Unmarshal(res.Data, &stats))
	assert.Equal(t, 1, stats.Stats.TotalLeads)
	assert.Equal(t, 1, stats.Stats.PaidLeads)
	assert.Equal(t, 1500.0, stats.Stats.TotalRevenue)
	assert.Equal(t, "₹1,500", stats.Display.TotalRevenue)
}

// TestUpdateAmountInput - valor como texto ou número, texto malformado é 400
func TestUpdateAmountInput(t *testing.T) {
	h := newTestServer(t, 10)
	lead := createLead(t, h)
	path := "/admin/leads/" + lead.ID + "/amount"

	rec, _ := do(t, h, http.MethodPatch, path, `{"amount":"2500"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = do(t, h, http.MethodPatch, path, `{"amount":99.5}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	bodies := []string{
		`{"amount":"12.34.56"}`, `{"amount":"-5"}`, `{"amount":0}`, `{}`,
		`{"amount":"0.001"}`, `{"amount":99999999999999999999}`,
	}
	for _, body := range bodies {
		rec, res := do(t, h, http.MethodPatch, path, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, usecase.CodeInvalidAmount, res.Code, body)
	}

	rec, _ = do(t, h, http.MethodPatch, path, `{"amount":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	pay := "/admin/leads/" + lead.ID + "/payment"
	rec, res := do(t, h, http.MethodPost, pay, `{"payment_method":"cash","payment_amount":"0.001"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, usecase.CodeInvalidAmount, res.Code)
}

// TestUpdatePriority - prioridade desconhecida é 400
func TestUpdatePriority(t *testing.T) {
	h := newTestServer(t, 10)
	lead := createLead(t, h)
	path := "/admin/leads/" + lead.ID + "/priority"

	rec, res := do(t, h, http.MethodPatch, path, `{"priority":"high"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, res.Success)

	rec, res = do(t, h, http.MethodPatch, path, `{"priority":"critical"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, usecase.CodeInvalidPriority, res.Code)
}

// TestUnknownLead - id inexistente ou malformado é 404
func TestUnknownLead(t *testing.T) {
	h := newTestServer(t, 10)

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		rec, res := do(t, h, http.MethodGet, "/admin/leads/"+id, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
		assert.Equal(t, usecase.CodeNotFound, res.Code, id)

		rec, _ = do(t, h, http.MethodPatch, "/admin/leads/"+id+"/status", `{"status":"contacted"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
	}
}

// TestListAndDelete - listagem filtra e o lead some depois do delete
func TestListAndDelete(t *testing.T) {
	h := newTestServer(t, 10)
	lead := createLead(t, h)

	rec, res := do(t, h, http.MethodGet, "/admin/leads?view=today&q=ravi", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var leads []apiLead
	require.NoError(t, json.Unmarshal(res.Data, &leads))
	require.Len(t, leads, 1)
	assert.Equal(t, lead.ID, leads[0].ID)

	rec, res = do(t, h, http.MethodGet, "/admin/leads?view=previous", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(res.Data, &leads))
	assert.Empty(t, leads)

	rec, res = do(t, h, http.MethodGet, "/admin/leads?status=archived", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, usecase.CodeInvalidStatus, res.Code)

	rec, _ = do(t, h, http.MethodDelete, "/admin/leads/"+lead.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/admin/leads/"+lead.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodDelete, "/admin/leads/"+lead.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestHealth - sem Postgres e sem RabbitMQ o serviço segue saudável
func TestHealth(t *testing.T) {
	h := newTestServer(t, 10)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handlers.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "in-memory", body.Dependencies["database"])
	assert.Equal(t, "not configured", body.Dependencies["rabbitmq"])
}
