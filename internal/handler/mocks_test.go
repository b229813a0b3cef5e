package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"prodexa/internal/auth"
	"prodexa/internal/billing"
	"prodexa/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context) (*model.ProductList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductList), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, name string) (*model.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, p model.Product) (*model.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, name string, p model.Product) (*model.Product, error) {
	args := m.Called(ctx, name, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockProductService) Refresh(ctx context.Context) (*model.ProductList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductList), args.Error(1)
}

// MockBillingService is a mock implementation of BillingService.
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) view(args mock.Arguments) (*billing.View, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.View), args.Error(1)
}

func (m *MockBillingService) Open(ctx context.Context, req model.OpenBillRequest) (*billing.View, error) {
	return m.view(m.Called(ctx, req))
}

func (m *MockBillingService) Get(ctx context.Context, id uuid.UUID) (*billing.View, error) {
	return m.view(m.Called(ctx, id))
}

func (m *MockBillingService) AddItem(ctx context.Context, id uuid.UUID, req model.AddItemRequest) (*billing.View, error) {
	return m.view(m.Called(ctx, id, req))
}

func (m *MockBillingService) SetRates(ctx context.Context, id uuid.UUID, req model.RatesRequest) (*billing.View, error) {
	return m.view(m.Called(ctx, id, req))
}

func (m *MockBillingService) Totals(ctx context.Context, id uuid.UUID) (*model.Totals, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Totals), args.Error(1)
}

func (m *MockBillingService) Clear(ctx context.Context, id uuid.UUID) (*billing.View, error) {
	return m.view(m.Called(ctx, id))
}

func (m *MockBillingService) Finalize(ctx context.Context, id uuid.UUID) (*model.InvoiceResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceResult), args.Error(1)
}

func (m *MockBillingService) Share(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockBillingService) Discard(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReportService is a mock implementation of ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Summary(ctx context.Context) (*model.ProductList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductList), args.Error(1)
}

func (m *MockReportService) WriteExcel(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockReportService) WriteCSV(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockReportService) WriteChart(ctx context.Context, w io.Writer, kind string) error {
	args := m.Called(ctx, w, kind)
	return args.Error(0)
}

// MockAuthenticator is a mock implementation of auth.Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, username, password string) (auth.Token, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(auth.Token), args.Error(1)
}

func (m *MockAuthenticator) ParseToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

// serve routes a single request through a chi router so URL parameters resolve.
func serve(t *testing.T, method, pattern, target string, body interface{}, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}
