// Package api exposes greet, sync_wallet and the server info query over HTTP for
// shells that cannot use the local socket.
package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	zerrors "github.com/Maphikza/zcash-viewer/internal/errors"
	"github.com/Maphikza/zcash-viewer/internal/logger"
)

const tokenLifetime = 15 * time.Minute

// NewAPI binds the routes to backend. jwtKey signs and verifies tokens.
func NewAPI(backend Backend, config Config, jwtKey []byte) *API {
	return &API{
		backend: backend,
		config:  config,
		jwtKey:  jwtKey,
	}
}

// Routes returns the HTTP handler with every middleware applied
func (a *API) Routes() http.Handler {
	mux := http.NewServeMux()

	common := []func(http.HandlerFunc) http.HandlerFunc{
		ErrorMiddleware,
		LoggingMiddleware,
		RequestIDMiddleware,
		a.CORSMiddleware,
	}

	mux.HandleFunc("/greet", ApplyMiddleware(a.HandleGreet, common...))
	mux.HandleFunc("/token", ApplyMiddleware(a.HandleToken, common...))
	mux.HandleFunc("/sync_wallet", ApplyMiddleware(a.HandleSyncWallet,
		append([]func(http.HandlerFunc) http.HandlerFunc{JSONContentTypeMiddleware, a.JWTMiddleware}, common...)...))
	mux.HandleFunc("/info", ApplyMiddleware(a.HandleInfo,
		append([]func(http.HandlerFunc) http.HandlerFunc{a.JWTMiddleware}, common...)...))

	return mux
}

func (a *API) HandleGreet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, GreetResponse{Message: a.backend.Greet(r.URL.Query().Get("name"))})
}

// HandleToken exchanges the configured API key for a short-lived JWT
func (a *API) HandleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if a.config.APIKey == "" {
		writeError(w, http.StatusServiceUnavailable, "API key not configured")
		return
	}

	presented := r.Header.Get("X-API-Key")
	if subtle.ConstantTimeCompare([]byte(presented), []byte(a.config.APIKey)) != 1 {
		logger.Warn("Token request with invalid API key", "remote", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "Unauthorized: invalid API key")
		return
	}

	token, expires, err := a.GenerateJWT("desktop-shell")
	if err != nil {
		logger.Error("Failed to generate token", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{Token: token, ExpiresAt: expires.Unix()})
}

func (a *API) HandleSyncWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SyncWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ViewingKey == "" {
		writeError(w, http.StatusBadRequest, "viewing_key is required")
		return
	}

	payload, err := a.backend.SyncWallet(r.Context(), req.ViewingKey, req.IsTestnet, req.Birthday)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(payload))
}

func (a *API) HandleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	isTestnet := false
	if raw := r.URL.Query().Get("testnet"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "testnet must be a boolean")
			return
		}
		isTestnet = v
	}

	info, err := a.backend.ServerInfo(r.Context(), isTestnet)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	chain := "main"
	if isTestnet {
		chain = "test"
	}
	writeJSON(w, http.StatusOK, InfoResponse{Chain: chain, Info: info})
}

// GenerateJWT issues an HS256 token valid for fifteen minutes
func (a *API) GenerateJWT(client string) (string, time.Time, error) {
	if len(a.jwtKey) == 0 {
		return "", time.Time{}, errors.New("JWT signing key not available")
	}

	expires := time.Now().Add(tokenLifetime)
	claims := &Claims{
		Client: client,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.jwtKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func statusFor(err error) int {
	switch zerrors.TypeOf(err) {
	case zerrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case zerrors.ErrorTypeWalletConstruction:
		return http.StatusUnprocessableEntity
	case zerrors.ErrorTypeBusy:
		return http.StatusConflict
	case zerrors.ErrorTypeSync, zerrors.ErrorTypeExtraction:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
