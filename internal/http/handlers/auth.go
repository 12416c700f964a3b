package handlers

import (
	"net/http"

	"github.com/hongminglow/financas-be/internal/http/respond"
	"github.com/hongminglow/financas-be/internal/models/dto"
	"github.com/hongminglow/financas-be/internal/service"
)

// AuthHandler owns the register/login endpoints backed by the identity provider.
type AuthHandler struct {
	accounts *service.Accounts
	failures *Failures
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(accounts *service.Accounts, failures *Failures) *AuthHandler {
	return &AuthHandler{accounts: accounts, failures: failures}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/register", h.handleRegister)
	mux.HandleFunc("POST /api/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.failures.Write(w, r, err)
		return
	}
	user, err := h.accounts.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.failures.Write(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.RegisterResponse{Message: "Usuário criado com sucesso!", User: user})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.failures.Write(w, r, err)
		return
	}
	user, session, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.failures.Write(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		Message: "Login realizado com sucesso!",
		User:    user,
		Session: session,
	})
}
