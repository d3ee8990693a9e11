package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Maphikza/zcash-viewer/internal/config"
	"github.com/Maphikza/zcash-viewer/internal/logger"
	"github.com/Maphikza/zcash-viewer/internal/tlsinit"
)

var settings config.Settings

var rootCmd = &cobra.Command{
	Use:   "zviewer",
	Short: "Zcash watch-only wallet viewer",
	Long: `Syncs a Zcash viewing key against a light-wallet server and reports its
balance and transaction history. Runs as a CLI, an interactive menu, or a
local server for the desktop shell.`,
}

func init() {
	rootCmd.AddCommand(greetCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(callCmd)
}

func initConfig() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	var err error
	settings, err = config.Current()
	if err != nil {
		log.Fatalf("Error decoding configuration: %v", err)
	}

	if settings.BaseDir == "" {
		baseDir, err := os.Getwd()
		if err != nil {
			log.Fatalf("Error getting current directory: %v", err)
		}
		settings.BaseDir = baseDir
	}

	if err := logger.Init(settings.LogFile, settings.LogLevel); err != nil {
		log.Printf("Error opening log file %s, logging to stderr: %v", settings.LogFile, err)
	}

	// failure is logged inside and leaves gRPC on its own defaults
	_ = tlsinit.Install()
}

func main() {
	initConfig()
	defer logger.Cleanup()

	if len(os.Args) > 1 {
		// CLI mode
		if err := rootCmd.Execute(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	} else {
		// Interactive mode
		interactiveMode()
	}
}

func interactiveMode() {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\nZcash Wallet Viewer")
		fmt.Println("1. Greet")
		fmt.Println("2. Sync a viewing key")
		fmt.Println("3. Reset local state")
		fmt.Println("4. Light-wallet server info")
		fmt.Println("5. Sync history")
		fmt.Println("6. Exit")
		fmt.Print("\nEnter your choice (1-6): ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)

		switch choice {
		case "1":
			name := prompt(reader, "Name: ")
			fmt.Println(newService(nil).Greet(name))
		case "2":
			if err := interactiveSync(reader); err != nil {
				log.Printf("Error syncing wallet: %s", err)
			}
		case "3":
			isTestnet := promptTestnet(reader)
			if err := runReset(os.Stdout, isTestnet); err != nil {
				log.Printf("Error resetting local state: %s", err)
			}
		case "4":
			isTestnet := promptTestnet(reader)
			if err := runInfo(isTestnet); err != nil {
				log.Printf("Error probing server: %s", err)
			}
		case "5":
			if err := runHistory(os.Stdout, 0); err != nil {
				log.Printf("Error reading sync history: %s", err)
			}
		case "6":
			fmt.Println("Exiting program. Goodbye!")
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

func interactiveSync(reader *bufio.Reader) error {
	key := prompt(reader, "Viewing key: ")
	if key == "" {
		return fmt.Errorf("a viewing key is required")
	}
	isTestnet := promptTestnet(reader)

	birthday, err := parseBirthday(prompt(reader, "Birthday height (blank for Sapling activation): "), isTestnet)
	if err != nil {
		return err
	}

	pretty := strings.EqualFold(prompt(reader, "Show debug log? (y/N): "), "y")
	return runSync(key, isTestnet, birthday, syncOutput{pretty: pretty})
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptTestnet(reader *bufio.Reader) bool {
	return strings.EqualFold(prompt(reader, "Use testnet? (y/N): "), "y")
}
