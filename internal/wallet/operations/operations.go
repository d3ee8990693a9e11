package operations

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// ListenForUserCommands forwards trimmed stdin lines until in is exhausted or
// ctx is done. The channel is closed on return.
func ListenForUserCommands(ctx context.Context, in io.Reader, commandChannel chan<- string) {
	defer close(commandChannel)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		command := strings.TrimSpace(scanner.Text())
		if command == "" {
			continue
		}
		select {
		case commandChannel <- command:
		case <-ctx.Done():
			return
		}
	}
}

// HandleUserCommand runs one terminal command while the server is up. It
// reports whether the user asked to exit.
func (s *WalletServer) HandleUserCommand(command string, out io.Writer) (bool, error) {
	switch command {
	case "status":
		syncing := s.Syncing()
		if len(syncing) == 0 {
			fmt.Fprintln(out, "No sync in progress")
			return false, nil
		}
		for _, c := range syncing {
			fmt.Fprintf(out, "Sync in progress for %s\n", c.String())
		}
		return false, nil
	case "commands":
		fmt.Fprintf(out, "Socket commands: %s\n", strings.Join(s.Commands(), ", "))
		return false, nil
	case "exit":
		fmt.Fprintln(out, "Shutting down...")
		return true, nil
	default:
		return false, fmt.Errorf("unknown command: %s", command)
	}
}

// RunTerminal reads terminal commands until exit, EOF, or ctx is done
func (s *WalletServer) RunTerminal(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	commands := make(chan string)
	go ListenForUserCommands(ctx, in, commands)

	fmt.Fprintln(out, "\nAvailable commands:")
	fmt.Fprintln(out, "- 'status': Show syncs in progress")
	fmt.Fprintln(out, "- 'commands': List socket commands")
	fmt.Fprintln(out, "- 'exit': Stop the server")

	for {
		select {
		case <-ctx.Done():
			return nil
		case command, ok := <-commands:
			if !ok {
				return nil
			}
			exit, err := s.HandleUserCommand(command, out)
			if err != nil {
				fmt.Fprintf(out, "Error handling command: %v\n", err)
				continue
			}
			if exit {
				return nil
			}
		}
	}
}
