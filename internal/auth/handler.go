package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=auth

type sessions interface {
	Login(ctx context.Context, accountID string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type accounts interface {
	Register(ctx context.Context, creds Credentials) (*Account, error)
	Authenticate(ctx context.Context, creds Credentials) (*Account, error)
}

type Handler struct {
	accounts accounts
	sessions sessions
}

type LoginResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"accountId"`
	Username  string `json:"username"`
}

func NewHandler(accounts accounts, sessions sessions) *Handler {
	return &Handler{
		accounts: accounts,
		sessions: sessions,
	}
}

// SetupRoutes expects the /a subrouter, so the caller can rate limit it.
func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/register", h.handleRegister).Methods("POST", "OPTIONS").Name("register")
	router.HandleFunc("/login", h.handleLogin).Methods("POST", "OPTIONS").Name("login")
	router.HandleFunc("/logout", h.handleLogout).Methods("GET", "POST", "OPTIONS").Name("logout")
}

func decodeCredentials(r *http.Request) (Credentials, error) {
	var creds Credentials
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			return creds, err
		}
		return creds, nil
	}
	if err := r.ParseForm(); err != nil {
		return creds, err
	}
	return Credentials{
		Username: r.Form.Get("username"),
		Password: r.Form.Get("password"),
	}, nil
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.register")
	defer span.End()

	creds, err := decodeCredentials(r)
	if err != nil {
		log.Errorf("register, decode credentials: %s", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	account, err := h.accounts.Register(ctx, creds)
	switch {
	case errors.Is(err, ErrInvalidUsername), errors.Is(err, ErrInvalidPassword):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrUsernameTaken):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("register account: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("new account registered: %s", account.ID)
	pkg.WriteJSON(w, account, http.StatusCreated)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	creds, err := decodeCredentials(r)
	if err != nil {
		log.Errorf("login, decode credentials: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}
	if creds.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if creds.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	account, err := h.accounts.Authenticate(ctx, creds)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrWrongPassword) {
			http.Error(w, "wrong username or password", http.StatusBadRequest)
			return
		}
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("login, authenticate: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	token, err := h.sessions.Login(ctx, account.ID, time.Now())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	log.Trace("new login success")
	pkg.WriteJSON(w, LoginResponse{
		Token:     token,
		AccountID: account.ID,
		Username:  account.Username,
	}, http.StatusOK)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	token := TokenFromRequest(r)
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := h.sessions.Logout(ctx, token)
	if err != nil {
		log.Errorf("logout: %s", err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
