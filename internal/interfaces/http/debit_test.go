package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"contas/internal/domain/catalog"
	"contas/internal/domain/debit"
	"contas/internal/domain/supplier"
)

// MockDebitRepo implements debit.Repository for testing
type MockDebitRepo struct {
	CreateLaunchFunc      func(ctx context.Context, params debit.CreateParams, plan []debit.InstallmentPlan) (*debit.Launch, error)
	ListLaunchesFunc      func(ctx context.Context, userID int64, supplierID *int64) ([]*debit.LaunchView, error)
	ListInstallmentsFunc  func(ctx context.Context, userID int64, filter debit.Filter) ([]*debit.InstallmentView, error)
	GetInstallmentFunc    func(ctx context.Context, id, userID int64) (*debit.InstallmentView, error)
	SweepOverdueFunc      func(ctx context.Context, today time.Time) (int64, error)
	SettleFunc            func(ctx context.Context, id int64, paidDate time.Time, paidAmount decimal.Decimal, notes *string) error
	UpdateInstallmentFunc func(ctx context.Context, id int64, params debit.UpdateParams) error
}

func (m *MockDebitRepo) CreateLaunch(ctx context.Context, params debit.CreateParams, plan []debit.InstallmentPlan) (*debit.Launch, error) {
	if m.CreateLaunchFunc != nil {
		return m.CreateLaunchFunc(ctx, params, plan)
	}
	return &debit.Launch{ID: 1, UserID: params.UserID, TotalAmount: params.TotalAmount}, nil
}
func (m *MockDebitRepo) ListLaunches(ctx context.Context, userID int64, supplierID *int64) ([]*debit.LaunchView, error) {
	if m.ListLaunchesFunc != nil {
		return m.ListLaunchesFunc(ctx, userID, supplierID)
	}
	return nil, nil
}
func (m *MockDebitRepo) ListInstallments(ctx context.Context, userID int64, filter debit.Filter) ([]*debit.InstallmentView, error) {
	if m.ListInstallmentsFunc != nil {
		return m.ListInstallmentsFunc(ctx, userID, filter)
	}
	return nil, nil
}
func (m *MockDebitRepo) GetInstallment(ctx context.Context, id, userID int64) (*debit.InstallmentView, error) {
	if m.GetInstallmentFunc != nil {
		return m.GetInstallmentFunc(ctx, id, userID)
	}
	return nil, nil
}
func (m *MockDebitRepo) SweepOverdue(ctx context.Context, today time.Time) (int64, error) {
	if m.SweepOverdueFunc != nil {
		return m.SweepOverdueFunc(ctx, today)
	}
	return 0, nil
}
func (m *MockDebitRepo) OverdueCountsByUser(ctx context.Context) ([]debit.OverdueCount, error) {
	return nil, nil
}
func (m *MockDebitRepo) Settle(ctx context.Context, id int64, paidDate time.Time, paidAmount decimal.Decimal, notes *string) error {
	if m.SettleFunc != nil {
		return m.SettleFunc(ctx, id, paidDate, paidAmount, notes)
	}
	return nil
}
func (m *MockDebitRepo) UpdateInstallment(ctx context.Context, id int64, params debit.UpdateParams) error {
	if m.UpdateInstallmentFunc != nil {
		return m.UpdateInstallmentFunc(ctx, id, params)
	}
	return nil
}

// MockCatalogRepo implements catalog.Repository for testing
type MockCatalogRepo struct {
	GetDocumentTypeFunc func(ctx context.Context, id int64) (*catalog.DocumentType, error)
}

func (m *MockCatalogRepo) ListPaymentForms(ctx context.Context) ([]*catalog.PaymentForm, error) {
	return nil, nil
}
func (m *MockCatalogRepo) ListDocumentTypes(ctx context.Context) ([]*catalog.DocumentType, error) {
	return nil, nil
}
func (m *MockCatalogRepo) GetDocumentType(ctx context.Context, id int64) (*catalog.DocumentType, error) {
	if m.GetDocumentTypeFunc != nil {
		return m.GetDocumentTypeFunc(ctx, id)
	}
	return &catalog.DocumentType{ID: id, Description: "Bank Slip", AllowsInstallments: true, Active: true}, nil
}
func (m *MockCatalogRepo) ListCardBrands(ctx context.Context) ([]*catalog.CardBrand, error) {
	return nil, nil
}
func (m *MockCatalogRepo) ListStatuses(ctx context.Context) ([]*catalog.Status, error) {
	return nil, nil
}
func (m *MockCatalogRepo) ListCreditTypes(ctx context.Context) ([]*catalog.CreditType, error) {
	return nil, nil
}

func ownedSupplierRepo() *MockSupplierRepo {
	return &MockSupplierRepo{
		GetByIDFunc: func(ctx context.Context, id, userID int64) (*supplier.Supplier, error) {
			return &supplier.Supplier{ID: id, UserID: userID, Name: "Acme", Active: true}, nil
		},
	}
}

func newDebitHandler(repo *MockDebitRepo) *DebitHandler {
	return NewDebitHandler(debit.NewService(repo, ownedSupplierRepo(), &MockCatalogRepo{}))
}

func TestHandleLaunches_Create(t *testing.T) {
	var gotPlan []debit.InstallmentPlan
	repo := &MockDebitRepo{
		CreateLaunchFunc: func(ctx context.Context, params debit.CreateParams, plan []debit.InstallmentPlan) (*debit.Launch, error) {
			gotPlan = plan
			return &debit.Launch{ID: 7, UserID: params.UserID, TotalAmount: params.TotalAmount, InstallmentCount: params.InstallmentCount}, nil
		},
	}
	handler := newDebitHandler(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"supplierId":       10,
		"paymentFormId":    2,
		"documentTypeId":   3,
		"totalAmount":      "300.00",
		"description":      "Furniture",
		"installmentCount": 3,
		"firstDueDate":     "2025-07-01",
	})
	req := authenticatedRequest(http.MethodPost, "/api/debits/launches", body)
	rr := httptest.NewRecorder()
	handler.HandleLaunches(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body: %s)", rr.Code, http.StatusCreated, rr.Body.String())
	}
	if len(gotPlan) != 3 {
		t.Errorf("len(plan) = %d, want 3", len(gotPlan))
	}
}

func TestHandleLaunches_CreateDefaultsCountToOne(t *testing.T) {
	var gotCount int
	repo := &MockDebitRepo{
		CreateLaunchFunc: func(ctx context.Context, params debit.CreateParams, plan []debit.InstallmentPlan) (*debit.Launch, error) {
			gotCount = params.InstallmentCount
			return &debit.Launch{ID: 1}, nil
		},
	}
	handler := newDebitHandler(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"supplierId":     10,
		"paymentFormId":  2,
		"documentTypeId": 3,
		"totalAmount":    "100.00",
		"description":    "Groceries",
	})
	req := authenticatedRequest(http.MethodPost, "/api/debits/launches", body)
	rr := httptest.NewRecorder()
	handler.HandleLaunches(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	if gotCount != 1 {
		t.Errorf("InstallmentCount = %d, want 1", gotCount)
	}
}

func TestHandleLaunches_CreateSupplierNotFound(t *testing.T) {
	suppliers := &MockSupplierRepo{
		GetByIDFunc: func(ctx context.Context, id, userID int64) (*supplier.Supplier, error) {
			return nil, nil
		},
	}
	handler := NewDebitHandler(debit.NewService(&MockDebitRepo{}, suppliers, &MockCatalogRepo{}))

	body, _ := json.Marshal(map[string]interface{}{
		"supplierId":     99,
		"paymentFormId":  2,
		"documentTypeId": 3,
		"totalAmount":    "100.00",
	})
	req := authenticatedRequest(http.MethodPost, "/api/debits/launches", body)
	rr := httptest.NewRecorder()
	handler.HandleLaunches(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestHandleLaunches_CreateInvalidAmount(t *testing.T) {
	handler := newDebitHandler(&MockDebitRepo{})

	body, _ := json.Marshal(map[string]interface{}{
		"supplierId":     10,
		"paymentFormId":  2,
		"documentTypeId": 3,
		"totalAmount":    "0",
	})
	req := authenticatedRequest(http.MethodPost, "/api/debits/launches", body)
	rr := httptest.NewRecorder()
	handler.HandleLaunches(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestHandleLaunches_CreateInvalidDate(t *testing.T) {
	handler := newDebitHandler(&MockDebitRepo{})

	body, _ := json.Marshal(map[string]interface{}{
		"supplierId":     10,
		"paymentFormId":  2,
		"documentTypeId": 3,
		"totalAmount":    "100.00",
		"launchDate":     "15/06/2025",
	})
	req := authenticatedRequest(http.MethodPost, "/api/debits/launches", body)
	rr := httptest.NewRecorder()
	handler.HandleLaunches(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestHandleInstallments_SweepsBeforeListing(t *testing.T) {
	sweepCalled := false
	repo := &MockDebitRepo{
		SweepOverdueFunc: func(ctx context.Context, today time.Time) (int64, error) {
			sweepCalled = true
			return 2, nil
		},
		ListInstallmentsFunc: func(ctx context.Context, userID int64, filter debit.Filter) ([]*debit.InstallmentView, error) {
			if !sweepCalled {
				t.Error("expected sweep to run before the listing query")
			}
			return []*debit.InstallmentView{}, nil
		},
	}
	handler := newDebitHandler(repo)

	req := authenticatedRequest(http.MethodGet, "/api/debits/installments", nil)
	rr := httptest.NewRecorder()
	handler.HandleInstallments(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !sweepCalled {
		t.Error("expected SweepOverdue to be called")
	}
}

func TestHandleInstallments_Filters(t *testing.T) {
	var gotFilter debit.Filter
	repo := &MockDebitRepo{
		ListInstallmentsFunc: func(ctx context.Context, userID int64, filter debit.Filter) ([]*debit.InstallmentView, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	handler := newDebitHandler(repo)

	req := authenticatedRequest(http.MethodGet, "/api/debits/installments?supplierId=10&statusId=3&from=2025-06-01&to=2025-06-30", nil)
	rr := httptest.NewRecorder()
	handler.HandleInstallments(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if gotFilter.SupplierID == nil || *gotFilter.SupplierID != 10 {
		t.Errorf("SupplierID = %v, want 10", gotFilter.SupplierID)
	}
	if gotFilter.StatusID == nil || *gotFilter.StatusID != 3 {
		t.Errorf("StatusID = %v, want 3", gotFilter.StatusID)
	}
	if gotFilter.From == nil || gotFilter.From.Format("2006-01-02") != "2025-06-01" {
		t.Errorf("From = %v, want 2025-06-01", gotFilter.From)
	}
	if gotFilter.To == nil || gotFilter.To.Format("2006-01-02") != "2025-06-30" {
		t.Errorf("To = %v, want 2025-06-30", gotFilter.To)
	}
}

func TestHandleInstallments_BadFilter(t *testing.T) {
	handler := newDebitHandler(&MockDebitRepo{})

	req := authenticatedRequest(http.MethodGet, "/api/debits/installments?statusId=overdue", nil)
	rr := httptest.NewRecorder()
	handler.HandleInstallments(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestHandleSettle_Defaults(t *testing.T) {
	var gotAmount decimal.Decimal
	repo := &MockDebitRepo{
		GetInstallmentFunc: func(ctx context.Context, id, userID int64) (*debit.InstallmentView, error) {
			return &debit.InstallmentView{
				Installment: debit.Installment{ID: id, Amount: decimal.NewFromFloat(33.33), StatusID: debit.StatusOpen},
			}, nil
		},
		SettleFunc: func(ctx context.Context, id int64, paidDate time.Time, paidAmount decimal.Decimal, notes *string) error {
			gotAmount = paidAmount
			return nil
		},
	}
	handler := newDebitHandler(repo)

	req := authenticatedRequest(http.MethodPost, "/api/debits/installments/5/settle", []byte(`{}`))
	req.SetPathValue("id", "5")
	rr := httptest.NewRecorder()
	handler.HandleSettle(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d (body: %s)", rr.Code, http.StatusNoContent, rr.Body.String())
	}
	if !gotAmount.Equal(decimal.NewFromFloat(33.33)) {
		t.Errorf("paidAmount = %s, want 33.33", gotAmount)
	}
}

func TestHandleSettle_NotFound(t *testing.T) {
	handler := newDebitHandler(&MockDebitRepo{})

	req := authenticatedRequest(http.MethodPost, "/api/debits/installments/99/settle", []byte(`{}`))
	req.SetPathValue("id", "99")
	rr := httptest.NewRecorder()
	handler.HandleSettle(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestHandleSweep(t *testing.T) {
	repo := &MockDebitRepo{
		SweepOverdueFunc: func(ctx context.Context, today time.Time) (int64, error) {
			return 4, nil
		},
	}
	handler := newDebitHandler(repo)

	req := authenticatedRequest(http.MethodPost, "/api/debits/sweep", nil)
	rr := httptest.NewRecorder()
	handler.HandleSweep(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp map[string]int64
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp["swept"] != 4 {
		t.Errorf("swept = %d, want 4", resp["swept"])
	}
}

func TestHandleInstallmentByID_Update(t *testing.T) {
	var gotParams debit.UpdateParams
	repo := &MockDebitRepo{
		GetInstallmentFunc: func(ctx context.Context, id, userID int64) (*debit.InstallmentView, error) {
			return &debit.InstallmentView{Installment: debit.Installment{ID: id}}, nil
		},
		UpdateInstallmentFunc: func(ctx context.Context, id int64, params debit.UpdateParams) error {
			gotParams = params
			return nil
		},
	}
	handler := newDebitHandler(repo)

	req := authenticatedRequest(http.MethodPut, "/api/debits/installments/5", []byte(`{"statusId":4,"notes":"cancelled by agreement"}`))
	req.SetPathValue("id", "5")
	rr := httptest.NewRecorder()
	handler.HandleInstallmentByID(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d (body: %s)", rr.Code, http.StatusNoContent, rr.Body.String())
	}
	if gotParams.StatusID == nil || *gotParams.StatusID != debit.StatusCancelled {
		t.Errorf("StatusID = %v, want %d", gotParams.StatusID, debit.StatusCancelled)
	}
}

func TestHandleInstallmentByID_UpdateNothing(t *testing.T) {
	handler := newDebitHandler(&MockDebitRepo{})

	req := authenticatedRequest(http.MethodPut, "/api/debits/installments/5", []byte(`{}`))
	req.SetPathValue("id", "5")
	rr := httptest.NewRecorder()
	handler.HandleInstallmentByID(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
