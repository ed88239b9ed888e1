package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/SscSPs/school_ledger/internal/handlers"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/SscSPs/school_ledger/internal/seed"
)

const (
	testSecret   = "test-secret-key-that-is-long-enough"
	testIssuer   = "school-ledger-test"
	testAdmin    = "bursar"
	testPassword = "correct horse battery staple"
)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

func (m *MockReportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PAndLReport), args.Error(1)
}

func (m *MockReportingService) DailyActivity(ctx context.Context, days int) ([]domain.DailyActivity, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyActivity), args.Error(1)
}

func (m *MockReportingService) BudgetVariance(ctx context.Context) ([]domain.BudgetVariance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetVariance), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReportingService = (*MockReportingService)(nil)

// routerSuite boots the full router over a freshly seeded in-memory ledger.
type routerSuite struct {
	suite.Suite
	cfg      *config.Config
	router   *gin.Engine
	services *portssvc.ServiceContainer
	token    string
}

func (s *routerSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	s.Require().NoError(err)

	s.cfg = &config.Config{
		IsProduction:      true,
		JWTSecret:         testSecret,
		JWTIssuer:         testIssuer,
		JWTExpiryDuration: time.Hour,
		AdminUsername:     testAdmin,
		AdminPasswordHash: string(hash),
		RateLimit:         "1000-M",
		LoginRateLimit:    "1000-M",
	}
	s.token = mintToken(testAdmin, testSecret, testIssuer, time.Now().Add(time.Hour))
}

func (s *routerSuite) SetupTest() {
	s.services = s.seededServices()
	s.router = gin.New()
	s.Require().NoError(handlers.RegisterRoutes(s.router, s.cfg, s.services))
}

func (s *routerSuite) seededServices() *portssvc.ServiceContainer {
	f, err := seed.Default()
	s.Require().NoError(err)
	ledger := services.NewLedgerService(services.WithPostingAccounts(f.Posting))
	s.Require().NoError(seed.Apply(context.Background(), ledger, f))
	return services.NewServiceContainer(ledger)
}

// do performs an authenticated request; a nil body sends no payload.
func (s *routerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	return s.doWithToken(method, path, body, s.token)
}

func (s *routerSuite) doWithToken(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a response body, failing the test on malformed JSON.
func (s *routerSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// mintToken creates a signed JWT the way the login endpoint does.
func mintToken(subject, secret, issuer string, expiresAt time.Time) string {
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return signed
}
