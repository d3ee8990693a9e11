package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Maphikza/zcash-viewer/internal/api"
	"github.com/Maphikza/zcash-viewer/internal/ipc"
	"github.com/Maphikza/zcash-viewer/internal/logger"
	"github.com/Maphikza/zcash-viewer/internal/wallet/operations"
)

var (
	testnetFlag     bool
	copyAddressFlag bool
	prettyFlag      bool
	noTerminalFlag  bool
	historyLimit    int
	rotateLogFlag   bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&rotateLogFlag, "rotate-log", false, "truncate the log file before running")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if rotateLogFlag && settings.LogFile != "" {
			return logger.RotateLog(settings.LogFile)
		}
		return nil
	}

	syncCmd.Flags().BoolVar(&testnetFlag, "testnet", false, "sync against the testnet profile")
	syncCmd.Flags().BoolVar(&copyAddressFlag, "copy-address", false, "copy the first unified address to the clipboard")
	syncCmd.Flags().BoolVar(&prettyFlag, "pretty", false, "print the debug log instead of the JSON payload")

	resetCmd.Flags().BoolVar(&testnetFlag, "testnet", false, "reset the testnet profile")
	infoCmd.Flags().BoolVar(&testnetFlag, "testnet", false, "query the testnet server")

	serveCmd.Flags().BoolVar(&noTerminalFlag, "no-terminal", false, "do not read commands from stdin")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "number of runs to show")
}

var greetCmd = &cobra.Command{
	Use:   "greet [name]",
	Short: "Print the greeting",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		fmt.Println(newService(nil).Greet(name))
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync [viewing-key] [birthday]",
	Short: "Sync a viewing key and print balance and history",
	Long: `Wipes the selected profile's local state, restores a watch-only wallet
from the viewing key, rescans from the birthday height and prints the result.
Without a birthday the rescan starts at Sapling activation.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		raw := ""
		if len(args) > 1 {
			raw = args[1]
		}
		birthday, err := parseBirthday(raw, testnetFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid birthday: %v\n", err)
			os.Exit(1)
		}

		out := syncOutput{pretty: prettyFlag, copyAddress: copyAddressFlag}
		if err := runSync(args[0], testnetFlag, birthday, out); err != nil {
			fmt.Fprintf(os.Stderr, "Error syncing wallet: %v\n", err)
			os.Exit(1)
		}
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the local state of a network profile",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runReset(os.Stdout, testnetFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting local state: %v\n", err)
			os.Exit(1)
		}
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Query the light-wallet server",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInfo(testnetFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error probing server: %v\n", err)
			os.Exit(1)
		}
	},
}

var callCmd = &cobra.Command{
	Use:   "call [command] [args...]",
	Short: "Send a command to a running server",
	Long: `Sends one socket command to a running 'zviewer serve', for example
'call sync_wallet <viewing-key> true 2800000'.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		result, err := callServer(context.Background(), args[0], args[1:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error calling wallet server: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(result)
	},
}

// callServer sends one command to the configured socket
func callServer(ctx context.Context, command string, args []string) (string, error) {
	ipcNetwork, ipcAddress := ipc.DefaultEndpoint(settings.IPCSocket, settings.IPCPort)
	return ipc.NewClient(ipcNetwork, ipcAddress).SendCommand(ctx, command, args)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded syncs",
	Long:  `Lists syncs recorded in the journal. Requires journal_enabled in the configuration.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runHistory(os.Stdout, historyLimit); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading sync history: %v\n", err)
			os.Exit(1)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the desktop shell over a local socket and HTTP",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runServe() error {
	journal, err := openJournal()
	if err != nil {
		return err
	}
	if journal != nil {
		defer journal.Close()
	}

	ipcNetwork, ipcAddress := ipc.DefaultEndpoint(settings.IPCSocket, settings.IPCPort)
	serverConfig := operations.ServerConfig{
		IPCNetwork:     ipcNetwork,
		IPCAddress:     ipcAddress,
		HTTPAddr:       settings.APIAddr(),
		ResolveProfile: settings.Profile,
		API: api.Config{
			AllowedOrigin: settings.AllowedOrigin,
			APIKey:        settings.APIKey,
			JWTKeysDir:    settings.JWTKeysDir,
		},
	}

	var jwtKey []byte
	if serverConfig.HTTPAddr != "" {
		jwtKey, err = api.EnsureJWTKey(settings.JWTKeysDir)
		if err != nil {
			return err
		}
	}

	server := operations.NewWalletServer(newService(journal), serverConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, jwtKey)
	})
	if !noTerminalFlag {
		g.Go(func() error {
			err := server.RunTerminal(ctx, os.Stdin, os.Stdout)
			stop()
			return err
		})
	}

	fmt.Printf("Wallet server running on %s %s\n", ipcNetwork, ipcAddress)
	err = g.Wait()
	logger.Info("Wallet server stopped")
	return err
}
