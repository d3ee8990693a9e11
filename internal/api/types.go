package api

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
)

// Backend is the command surface the HTTP routes expose
type Backend interface {
	Greet(name string) string
	SyncWallet(ctx context.Context, viewingKey string, isTestnet bool, birthday uint32) (string, error)
	ServerInfo(ctx context.Context, isTestnet bool) (string, error)
}

type Config struct {
	AllowedOrigin string
	APIKey        string
	JWTKeysDir    string
}

type API struct {
	backend Backend
	config  Config
	jwtKey  []byte
}

type SyncWalletRequest struct {
	ViewingKey string `json:"viewing_key"`
	IsTestnet  bool   `json:"is_testnet"`
	Birthday   uint32 `json:"birthday"`
}

type GreetResponse struct {
	Message string `json:"message"`
}

type InfoResponse struct {
	Chain string `json:"chain"`
	Info  string `json:"info"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Claims are the JWT claims issued by /token
type Claims struct {
	Client string `json:"client"`
	jwt.RegisteredClaims
}

type contextKey string
