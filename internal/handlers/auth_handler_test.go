package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ledgerview/internal/dto"
	"ledgerview/internal/upstream"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	backend *stubBackend
	handler *AuthHandler
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.backend = newStubBackend()
	s.handler = NewAuthHandler(s.backend)
}

func (s *AuthHandlerTestSuite) newJSONContext(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *AuthHandlerTestSuite) TestLogin() {
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, gofakeit.Email(), gofakeit.Password(true, true, true, false, false, 12))
	c, rec := s.newJSONContext("/api/v1/auth/login", body)

	err := s.handler.Login(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response dto.TokenResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("backend-token", response.AccessToken)
	s.Equal("bearer", response.TokenType)
}

func (s *AuthHandlerTestSuite) TestLogin_BadCredentials() {
	s.backend.loginErr = &upstream.StatusError{StatusCode: http.StatusUnauthorized, Detail: "Incorrect email or password"}

	c, rec := s.newJSONContext("/api/v1/auth/login", `{"email":"user@example.com","password":"wrong-password"}`)

	err := s.handler.Login(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("AUTH_003", string(response.Error.Code))
	s.Contains(response.Error.Details, "Incorrect email or password")
}

func (s *AuthHandlerTestSuite) TestLogin_MissingFields() {
	c, _ := s.newJSONContext("/api/v1/auth/login", `{"email":"user@example.com"}`)

	err := s.handler.Login(c)
	s.Error(err)
}

func (s *AuthHandlerTestSuite) TestLogin_BackendDown() {
	s.backend.loginErr = upstream.ErrUnavailable

	c, rec := s.newJSONContext("/api/v1/auth/login", `{"email":"user@example.com","password":"hunter2hunter2"}`)

	err := s.handler.Login(c)
	s.NoError(err)
	s.Equal(http.StatusBadGateway, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("UPSTREAM_001", string(response.Error.Code))
}

func (s *AuthHandlerTestSuite) TestRegister() {
	email := gofakeit.Email()
	body := fmt.Sprintf(`{"email":%q,"password":"correct-horse-battery","base_currency":"EUR"}`, email)
	c, rec := s.newJSONContext("/api/v1/auth/register", body)

	err := s.handler.Register(c)
	s.NoError(err)
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.RegisterResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(email, response.Email)
	s.Equal("EUR", response.BaseCurrency)
}

func (s *AuthHandlerTestSuite) TestRegister_ShortPassword() {
	c, _ := s.newJSONContext("/api/v1/auth/register", `{"email":"user@example.com","password":"short"}`)

	err := s.handler.Register(c)
	s.Error(err)
}

func (s *AuthHandlerTestSuite) TestRegister_DuplicateEmail() {
	s.backend.loginErr = &upstream.StatusError{StatusCode: http.StatusUnprocessableEntity, Detail: "Email already registered"}

	c, rec := s.newJSONContext("/api/v1/auth/register", `{"email":"user@example.com","password":"correct-horse-battery"}`)

	err := s.handler.Register(c)
	s.NoError(err)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("UPSTREAM_003", string(response.Error.Code))
}
