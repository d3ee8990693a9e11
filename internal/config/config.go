package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Maphikza/zcash-viewer/internal/wallet/network"
)

const envPrefix = "ZVIEWER"

// Settings is the typed view of the loaded configuration
type Settings struct {
	Env               string        `mapstructure:"env"`
	LogLevel          string        `mapstructure:"log_level"`
	LogFile           string        `mapstructure:"log_file"`
	BaseDir           string        `mapstructure:"base_dir"`
	MainnetServer     string        `mapstructure:"mainnet_server"`
	TestnetServer     string        `mapstructure:"testnet_server"`
	MainnetDataDir    string        `mapstructure:"mainnet_data_dir"`
	TestnetDataDir    string        `mapstructure:"testnet_data_dir"`
	EngineBinary      string        `mapstructure:"engine_binary"`
	ClientVersion     string        `mapstructure:"client_version"`
	IPCSocket         string        `mapstructure:"ipc_socket"`
	IPCPort           string        `mapstructure:"ipc_port"`
	APIPort           int           `mapstructure:"api_port"`
	AllowedOrigin     string        `mapstructure:"allowed_origin"`
	APIKey            string        `mapstructure:"api_key"`
	JWTKeysDir        string        `mapstructure:"jwt_keys_dir"`
	JournalEnabled    bool          `mapstructure:"journal_enabled"`
	JournalDBPath     string        `mapstructure:"journal_db_path"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
}

// LoadConfig loads config.json from the working directory
func LoadConfig() error {
	return LoadConfigFrom(".")
}

// LoadConfigFrom loads dir/.env into the environment, then dir/config.json.
// A missing config file is created with the defaults.
func LoadConfigFrom(dir string) error {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error reading .env file: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(dir)
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return createDefaultConfig()
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	setDefaults()
	return nil
}

// setDefaults sets default configuration values based on the environment
func setDefaults() {
	env := viper.GetString("env")
	if env == "" {
		env = "development"
	}
	viper.SetDefault("env", env)

	if env == "production" {
		viper.SetDefault("log_level", "info")
		viper.SetDefault("allowed_origin", "tauri://localhost")
	} else {
		viper.SetDefault("log_level", "debug")
		viper.SetDefault("allowed_origin", "http://localhost:1420")
	}

	viper.SetDefault("log_file", "zviewer.log")
	viper.SetDefault("base_dir", "")
	viper.SetDefault("mainnet_server", network.MainnetServer)
	viper.SetDefault("testnet_server", network.TestnetServer)
	viper.SetDefault("mainnet_data_dir", network.MainnetDataDir)
	viper.SetDefault("testnet_data_dir", network.TestnetDataDir)
	viper.SetDefault("engine_binary", "zingo-cli")
	viper.SetDefault("client_version", "0.1.0")
	viper.SetDefault("ipc_socket", "/tmp/zcash-viewer.sock")
	viper.SetDefault("ipc_port", "7070")
	viper.SetDefault("api_port", 9003)
	viper.SetDefault("api_key", "")
	viper.SetDefault("jwt_keys_dir", "./jwtkeys")
	viper.SetDefault("journal_enabled", false)
	viper.SetDefault("journal_db_path", "./zviewer_journal.db")
	viper.SetDefault("heartbeat_interval", "30s")
}

// createDefaultConfig creates a new configuration file if it doesn't exist
func createDefaultConfig() error {
	setDefaults()

	if err := viper.SafeWriteConfig(); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if !errors.As(err, &exists) {
			return fmt.Errorf("error creating config file: %w", err)
		}
	}
	return nil
}

// Current decodes the loaded configuration
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	return s, nil
}

// Profile resolves the network profile for a request, applying the
// configured server and state directory overrides.
func (s Settings) Profile(isTestnet bool) (network.Profile, error) {
	p := network.SelectProfile(isTestnet)
	if isTestnet {
		return p.WithOverrides(s.TestnetServer, s.BaseDir, s.TestnetDataDir)
	}
	return p.WithOverrides(s.MainnetServer, s.BaseDir, s.MainnetDataDir)
}

// APIAddr is the HTTP listen address; a non-positive port disables the API.
func (s Settings) APIAddr() string {
	if s.APIPort <= 0 {
		return ""
	}
	return fmt.Sprintf("127.0.0.1:%d", s.APIPort)
}
