package ipc

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
)

type Command struct {
	ID      int64    `json:"id"`
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// Response carries either a result or an error message, never both.
type Response struct {
	ID     int64  `json:"id"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// HandlerFunc answers one command
type HandlerFunc func(ctx context.Context, cmd Command) (string, error)

type Server struct {
	network  string
	address  string
	listener net.Listener
	wg       sync.WaitGroup
	closed   atomic.Bool
}

type Client struct {
	network string
	address string
}
