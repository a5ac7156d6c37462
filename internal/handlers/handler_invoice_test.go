package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/simple_invoice_app/internal/apperrors"
	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	"github.com/SscSPs/simple_invoice_app/internal/dto"
	"github.com/SscSPs/simple_invoice_app/internal/handlers"
	"github.com/SscSPs/simple_invoice_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// generateTestToken creates a signed JWT for userID.
func generateTestToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    "simple-invoice-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func sampleInvoice(id, userID string) *domain.Invoice {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Invoice{
		InvoiceID:     id,
		InvoiceNumber: "INV-001",
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		ClientName:    "Acme",
		ClientEmail:   "billing@acme.test",
		Description:   "Consulting",
		Amount:        decimal.RequireFromString("100.50"),
		Currency:      domain.EUR,
		PaymentTerms:  domain.Net30,
		Status:        domain.StatusPending,
		UserID:        userID,
		AuditFields:   domain.AuditFields{CreatedAt: created, UpdatedAt: created},
	}
}

// --- Test Suite ---
type InvoiceHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockInvoiceService  *MockInvoiceService
	mockDocumentService *MockDocumentService
	userID              string
	token               string
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.userID = "user-1"
	suite.token = generateTestToken(suite.T(), suite.userID)

	suite.mockInvoiceService = new(MockInvoiceService)
	suite.mockDocumentService = new(MockDocumentService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterInvoiceRoutes(v1, suite.mockInvoiceService, suite.mockDocumentService)
}

func (suite *InvoiceHandlerTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *InvoiceHandlerTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

// --- Test Cases ---

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_Success() {
	body := `{"invoiceNumber":"INV-001","date":"2024-03-01","clientName":"Acme","clientEmail":"billing@acme.test",
		"description":"Consulting","amount":"100.50","currency":"eur","paymentTerms":"net-30"}`

	suite.mockInvoiceService.On("CreateInvoice", mock.Anything,
		mock.MatchedBy(func(req dto.CreateInvoiceRequest) bool {
			return req.InvoiceNumber == "INV-001" && req.Amount.Equal(decimal.RequireFromString("100.50")) && req.DueDate == ""
		}),
		suite.userID,
	).Return(sampleInvoice("inv-1", suite.userID), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("inv-1", resp.InvoiceID)
	suite.Equal("2024-03-31", resp.DerivedDueDate)
	suite.Equal("€100.50", resp.FormattedAmount)
	suite.Equal("Pending", resp.Status)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_BindingErrors() {
	tests := []struct {
		name string
		body string
	}{
		{"unknown currency", `{"invoiceNumber":"1","date":"2024-03-01","clientName":"A","clientEmail":"a@b.test","description":"d","amount":1,"currency":"jpy","paymentTerms":"net-30"}`},
		{"unknown terms", `{"invoiceNumber":"1","date":"2024-03-01","clientName":"A","clientEmail":"a@b.test","description":"d","amount":1,"currency":"usd","paymentTerms":"net-90"}`},
		{"bad date", `{"invoiceNumber":"1","date":"01/03/2024","clientName":"A","clientEmail":"a@b.test","description":"d","amount":1,"currency":"usd","paymentTerms":"net-30"}`},
		{"bad email", `{"invoiceNumber":"1","date":"2024-03-01","clientName":"A","clientEmail":"nope","description":"d","amount":1,"currency":"usd","paymentTerms":"net-30"}`},
		{"not json", `{`},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/invoices", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_ServiceValidationError() {
	suite.mockInvoiceService.On("CreateInvoice", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)).Once()

	body := `{"invoiceNumber":"1","date":"2024-03-01","clientName":"A","clientEmail":"a@b.test","description":"d","amount":-1,"currency":"usd","paymentTerms":"net-30"}`
	w := suite.do(http.MethodPost, "/api/v1/invoices", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorMessage(w), "amount must not be negative")
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_DefaultLimitAndNextToken() {
	next := "next-page"
	suite.mockInvoiceService.On("ListInvoices", mock.Anything, suite.userID,
		dto.ListInvoicesParams{Limit: 20},
	).Return([]domain.Invoice{*sampleInvoice("inv-1", suite.userID)}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListInvoicesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Invoices, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_LastPageOmitsToken() {
	suite.mockInvoiceService.On("ListInvoices", mock.Anything, suite.userID,
		dto.ListInvoicesParams{Limit: 5, NextToken: "abc"},
	).Return([]domain.Invoice{}, nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices?limit=5&nextToken=abc", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), "nextToken")
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_InvalidParams() {
	w := suite.do(http.MethodGet, "/api/v1/invoices?limit=500", "")
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockInvoiceService.On("ListInvoices", mock.Anything, suite.userID, mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)).Once()
	w = suite.do(http.MethodGet, "/api/v1/invoices?nextToken=garbage", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestListRecentInvoices() {
	suite.mockInvoiceService.On("ListRecentInvoices", mock.Anything, suite.userID).
		Return([]domain.Invoice{*sampleInvoice("inv-2", suite.userID), *sampleInvoice("inv-1", suite.userID)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices/recent", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
	suite.Equal("inv-2", resp[0].InvoiceID)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "GetInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoiceStats() {
	suite.mockInvoiceService.On("GetInvoiceStats", mock.Anything, suite.userID).Return(domain.InvoiceStats{
		TotalInvoices:   3,
		TotalRevenue:    decimal.RequireFromString("300.25"),
		PendingInvoices: 1,
		PaidInvoices:    1,
		OverdueInvoices: 1,
		TotalCustomers:  2,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices/stats", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InvoiceStatsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.TotalInvoices)
	suite.True(decimal.RequireFromString("300.25").Equal(resp.TotalRevenue))
	suite.Equal(2, resp.TotalCustomers)
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_ErrorMapping() {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "Invoice not found"},
		{"malformed", fmt.Errorf("%w: invoice x", apperrors.ErrMalformedRecord), http.StatusUnprocessableEntity, "Stored invoice is malformed"},
		{"store failure", errors.New("connection refused"), http.StatusInternalServerError, "Failed to retrieve invoice"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockInvoiceService.On("GetInvoice", mock.Anything, "inv-x", suite.userID).Return(nil, tt.err).Once()

			w := suite.do(http.MethodGet, "/api/v1/invoices/inv-x", "")

			suite.Equal(tt.wantCode, w.Code)
			suite.Equal(tt.wantMsg, suite.errorMessage(w))
		})
	}
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_Success() {
	suite.mockInvoiceService.On("GetInvoice", mock.Anything, "inv-1", suite.userID).Return(sampleInvoice("inv-1", suite.userID), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices/inv-1", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-03-01", resp.Date)
	suite.Equal("net-30", resp.PaymentTerms)
}

func (suite *InvoiceHandlerTestSuite) TestUpdateInvoiceStatus() {
	paid := sampleInvoice("inv-1", suite.userID)
	paid.Status = domain.StatusPaid
	suite.mockInvoiceService.On("UpdateInvoiceStatus", mock.Anything, "inv-1", domain.StatusPaid, suite.userID).Return(paid, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/invoices/inv-1/status", `{"status":"Paid"}`)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"Paid"`)

	w = suite.do(http.MethodPatch, "/api/v1/invoices/inv-1/status", `{"status":"Cancelled"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNumberOfCalls(suite.T(), "UpdateInvoiceStatus", 1)
}

func (suite *InvoiceHandlerTestSuite) TestCycleInvoiceStatus() {
	overdue := sampleInvoice("inv-1", suite.userID)
	overdue.Status = domain.StatusOverdue
	suite.mockInvoiceService.On("CycleInvoiceStatus", mock.Anything, "inv-1", suite.userID).Return(overdue, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/inv-1/status/cycle", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"Overdue"`)
}

func (suite *InvoiceHandlerTestSuite) TestDownloadInvoicePDF() {
	suite.mockDocumentService.On("RenderInvoicePDF", mock.Anything, "inv-1", suite.userID).Return(&domain.RenderedDocument{
		Filename:    "invoice_INV-001.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.3 test"),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices/inv-1/pdf", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))
	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	suite.Require().NoError(err)
	suite.Equal("attachment", disposition)
	suite.Equal("invoice_INV-001.pdf", params["filename"])
	suite.Equal("%PDF-1.3 test", w.Body.String())
}

func (suite *InvoiceHandlerTestSuite) TestDownloadInvoicePDF_EscapesFilename() {
	filenames := []string{
		domain.InvoiceFilename(`Q1 "final"; x.exe`),
		domain.InvoiceFilename("INV-€1"),
	}
	for _, filename := range filenames {
		suite.Run(filename, func() {
			suite.mockDocumentService.On("RenderInvoicePDF", mock.Anything, "inv-1", suite.userID).Return(&domain.RenderedDocument{
				Filename:    filename,
				ContentType: "application/pdf",
				Content:     []byte("%PDF-1.3 test"),
			}, nil).Once()

			w := suite.do(http.MethodGet, "/api/v1/invoices/inv-1/pdf", "")

			suite.Equal(http.StatusOK, w.Code)
			disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
			suite.Require().NoError(err)
			suite.Equal("attachment", disposition)
			suite.Equal(filename, params["filename"])
		})
	}
}

func (suite *InvoiceHandlerTestSuite) TestDownloadInvoicePDF_NotFound() {
	suite.mockDocumentService.On("RenderInvoicePDF", mock.Anything, "inv-1", suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices/inv-1/pdf", "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestRequiresAuthentication() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "ListInvoices", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestInvoiceHandler(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
