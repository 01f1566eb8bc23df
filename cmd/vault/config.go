// Config loading for the vault CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/editions/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeyAdministrator = "genesis.administrator"
	cfgKeyPrice         = "genesis.price"
	cfgKeyMaxEditions   = "genesis.max_editions"
	cfgKeyBaseURI       = "genesis.base_uri"
	cfgKeySupportOps    = "options.support_operator"
	cfgKeySelfTransfer  = "options.allow_self_transfer"
	cfgKeyWithdraw      = "options.enable_withdraw"
	cfgKeyServeAddr     = "serve.addr"
	cfgKeySigningKey    = "serve.signing_key"
	cfgKeyIssuer        = "serve.issuer"

	defaultBackend   = "sqlite"
	defaultServeAddr = ":8420"
	defaultIssuer    = "editions"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Vault CLI configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

genesis:
  # Administrator address; required before the first attach.
  # administrator: tz1-...
  price: 1000000
  max_editions: 4096
  base_uri: https://blocks-on-blocks.herokuapp.com/api/

options:
  support_operator: true
  allow_self_transfer: false
  enable_withdraw: true

serve:
  addr: ":8420"
  # signing_key: change-me
  issuer: editions
`

// cfg is the loaded configuration, set by PersistentPreRunE.
var cfg *viper.Viper

// envKeyReplacer turns nested config keys into env var segments, so
// genesis.max_editions binds to EDITIONS_GENESIS_MAX_EDITIONS.
var envKeyReplacer = strings.NewReplacer(".", "_")

// loadConfig reads config.yaml from the resolved config directory using
// Viper, creating the directory and a default file on first run. Every key
// is also bound to an EDITIONS_* environment variable, so deployments can
// select capabilities without editing the file.
func loadConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyPrice, uint64(types.DefaultPrice))
	v.SetDefault(cfgKeyMaxEditions, types.DefaultMaxEditions)
	v.SetDefault(cfgKeyBaseURI, types.DefaultBaseURI)
	v.SetDefault(cfgKeySupportOps, true)
	v.SetDefault(cfgKeySelfTransfer, false)
	v.SetDefault(cfgKeyWithdraw, true)
	v.SetDefault(cfgKeyServeAddr, defaultServeAddr)
	v.SetDefault(cfgKeyIssuer, defaultIssuer)

	v.SetEnvPrefix("EDITIONS")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg = v
	configDataDir = v.GetString(cfgKeyDataDir)
	return nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// ledgerConfig assembles the store Config from the loaded configuration and
// the resolved data directory.
func ledgerConfig() (types.Config, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		Backend: cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
		Genesis: types.Genesis{
			Administrator: types.Address(cfg.GetString(cfgKeyAdministrator)),
			Price:         types.Mutez(cfg.GetUint64(cfgKeyPrice)),
			MaxEditions:   cfg.GetUint64(cfgKeyMaxEditions),
			BaseURI:       cfg.GetString(cfgKeyBaseURI),
		},
		Options: types.Options{
			SupportOperator:   cfg.GetBool(cfgKeySupportOps),
			AllowSelfTransfer: cfg.GetBool(cfgKeySelfTransfer),
			EnableWithdraw:    cfg.GetBool(cfgKeyWithdraw),
		},
	}, nil
}
