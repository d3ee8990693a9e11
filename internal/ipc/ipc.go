// Package ipc is the local socket transport between the desktop shell and the
// viewer: one JSON command in, one JSON response out, per connection.
package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/Maphikza/zcash-viewer/internal/logger"
)

const (
	DefaultUnixSocketPath    = "/tmp/zcash-viewer.sock"
	DefaultWindowsSocketPort = "127.0.0.1:7070"
)

var commandID atomic.Int64

func generateCommandID() int64 {
	return commandID.Add(1)
}

// DefaultEndpoint returns the platform's socket: a unix socket, or a local
// tcp port on Windows. Empty overrides keep the defaults.
func DefaultEndpoint(socketPath, port string) (string, string) {
	if runtime.GOOS == "windows" {
		if port == "" {
			return "tcp", DefaultWindowsSocketPort
		}
		return "tcp", "127.0.0.1:" + port
	}
	if socketPath == "" {
		socketPath = DefaultUnixSocketPath
	}
	return "unix", socketPath
}

// NewServer listens on the endpoint. A stale unix socket file is removed first.
func NewServer(network, address string) (*Server, error) {
	if network == "unix" {
		if _, err := os.Stat(address); err == nil {
			if err := os.Remove(address); err != nil {
				return nil, fmt.Errorf("failed to remove existing socket file: %v", err)
			}
		}
	}

	listener, err := net.Listen(network, address)
	if err != nil {
		return nil, err
	}

	return &Server{
		network:  network,
		address:  address,
		listener: listener,
	}, nil
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until ctx is done or the server is closed. Each
// connection carries one command and is handled on its own goroutine.
func (s *Server) Serve(ctx context.Context, handler HandlerFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		s.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				s.wg.Wait()
				return nil
			}
			logger.Warn("Failed to accept IPC connection", "error", err.Error())
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(ctx, conn, handler)
		}()
	}
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn, handler HandlerFunc) {
	defer conn.Close()

	var cmd Command
	if err := json.NewDecoder(conn).Decode(&cmd); err != nil {
		logger.Warn("Failed to decode IPC command", "error", err.Error())
		s.writeResponse(conn, Response{Error: "malformed command"})
		return
	}

	logger.Info("IPC command received", "id", cmd.ID, "command", cmd.Command)

	response := Response{ID: cmd.ID}
	result, err := s.dispatch(ctx, handler, cmd)
	if err != nil {
		response.Error = err.Error()
	} else {
		response.Result = result
	}
	s.writeResponse(conn, response)
}

func (s *Server) dispatch(ctx context.Context, handler HandlerFunc, cmd Command) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while handling IPC command", "command", cmd.Command, "panic", fmt.Sprint(r))
			err = fmt.Errorf("internal error handling %s", cmd.Command)
		}
	}()
	return handler(ctx, cmd)
}

func (s *Server) writeResponse(conn net.Conn, response Response) {
	if err := json.NewEncoder(conn).Encode(response); err != nil {
		logger.Warn("Failed to write IPC response", "id", response.ID, "error", err.Error())
	}
}

func (s *Server) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := s.listener.Close()
	if s.network == "unix" {
		os.Remove(s.address)
	}
	return err
}

func NewClient(network, address string) *Client {
	return &Client{network: network, address: address}
}

// SendCommand sends one command and waits for its response. The server's
// error message is returned as an error.
func (c *Client) SendCommand(ctx context.Context, command string, args []string) (string, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, c.network, c.address)
	if err != nil {
		return "", fmt.Errorf("error connecting to %s: %v", c.address, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	cmd := Command{
		ID:      generateCommandID(),
		Command: command,
		Args:    args,
	}
	if err := json.NewEncoder(conn).Encode(cmd); err != nil {
		return "", fmt.Errorf("error writing command to connection: %v", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return "", fmt.Errorf("error reading response from connection: %v", err)
	}
	if response.ID != 0 && response.ID != cmd.ID {
		return "", fmt.Errorf("response id %d does not match command id %d", response.ID, cmd.ID)
	}
	if response.Error != "" {
		return "", errors.New(response.Error)
	}
	return response.Result, nil
}
