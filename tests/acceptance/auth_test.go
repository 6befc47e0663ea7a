package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/nutriacai/wellness-api/internal/domain"
	"github.com/nutriacai/wellness-api/internal/dto"
)

func (s *Suite) TestRegister_Success() {
	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "Password123",
	})

	resp, err := http.Post(s.BaseURL+"/api/v1/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))

	s.NotEmpty(authResp.AccessToken)
	s.Equal("Bearer", authResp.TokenType)
	s.NotZero(authResp.ExpiresIn)
	s.Equal("test@example.com", authResp.User.Email)
	s.NotEmpty(authResp.User.ID)
}

func (s *Suite) TestRegister_DuplicateEmail() {
	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "duplicate@example.com",
		Password: "Password123",
	})

	resp1, err := http.Post(s.BaseURL+"/api/v1/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	resp1.Body.Close()
	s.Equal(http.StatusCreated, resp1.StatusCode)

	body, _ = json.Marshal(dto.RegisterRequest{
		Email:    "duplicate@example.com",
		Password: "Password123",
	})
	resp2, err := http.Post(s.BaseURL+"/api/v1/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp2.Body.Close()

	s.Equal(http.StatusConflict, resp2.StatusCode)
}

func (s *Suite) TestRegister_WeakPassword() {
	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "weak@example.com",
		Password: "short",
	})

	resp, err := http.Post(s.BaseURL+"/api/v1/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLogin_Success() {
	s.registerUser("login@example.com", "Password123")

	body, _ := json.Marshal(dto.LoginRequest{
		Email:    "login@example.com",
		Password: "Password123",
	})

	resp, err := http.Post(s.BaseURL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))
	s.NotEmpty(authResp.AccessToken)
	s.Equal("login@example.com", authResp.User.Email)
}

func (s *Suite) TestLogin_WrongPassword() {
	s.registerUser("wrongpass@example.com", "Password123")

	body, _ := json.Marshal(dto.LoginRequest{
		Email:    "wrongpass@example.com",
		Password: "Password456",
	})

	resp, err := http.Post(s.BaseURL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe() {
	token := s.registerUser("me@example.com", "Password123")

	var user domain.User
	status := s.doJSON(http.MethodGet, "/api/v1/auth/me", token, nil, &user)

	s.Equal(http.StatusOK, status)
	s.Equal("me@example.com", user.Email)
	s.NotEmpty(user.ID)
}

func (s *Suite) TestGetMe_Unauthorized() {
	status := s.doJSON(http.MethodGet, "/api/v1/auth/me", "", nil, nil)
	s.Equal(http.StatusUnauthorized, status)
}
