package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Backend: BackendSQLite,
		DataDir: "/tmp/editions",
		Genesis: DefaultGenesis("tz1-admin"),
		Options: DefaultOptions(),
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid config", func(c *Config) {}, nil},
		{"empty data dir is allowed", func(c *Config) { c.DataDir = "" }, nil},
		{"empty backend", func(c *Config) { c.Backend = "" }, ErrBackendEmpty},
		{"unknown backend", func(c *Config) { c.Backend = "bolt" }, ErrBackendUnknown},
		{"missing administrator", func(c *Config) { c.Genesis.Administrator = "" }, ErrAdminEmpty},
		{"zero edition ceiling", func(c *Config) { c.Genesis.MaxEditions = 0 }, ErrNoEditions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultGenesis(t *testing.T) {
	g := DefaultGenesis("tz1-admin")
	assert.Equal(t, Address("tz1-admin"), g.Administrator)
	assert.Equal(t, DefaultPrice, g.Price)
	assert.Equal(t, DefaultMaxEditions, g.MaxEditions)
	assert.Equal(t, DefaultBaseURI, g.BaseURI)
}
