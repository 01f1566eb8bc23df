package types

import "errors"

// Default genesis parameters, inherited from the reference deployment.
const (
	DefaultPrice       = Mutez(1_000_000)
	DefaultMaxEditions = uint64(4096)
	DefaultBaseURI     = "https://blocks-on-blocks.herokuapp.com/api/"
)

// Options selects the ledger's fixed capability set. The set is decided at
// genesis and never changes for the life of the ledger.
type Options struct {
	// SupportOperator enables the operator directory. When false, every
	// update_operators call fails with ErrOperatorsUnsupported.
	SupportOperator bool `json:"support_operator" yaml:"support_operator"`

	// AllowSelfTransfer authorizes the ledger's own identity to move any
	// token, in addition to owners and their operators.
	AllowSelfTransfer bool `json:"allow_self_transfer" yaml:"allow_self_transfer"`

	// EnableWithdraw exposes the native-currency withdrawal operation.
	EnableWithdraw bool `json:"enable_withdraw" yaml:"enable_withdraw"`
}

// DefaultOptions returns the reference capability set: operators on,
// self-transfer off, withdrawal on.
func DefaultOptions() Options {
	return Options{
		SupportOperator:   true,
		AllowSelfTransfer: false,
		EnableWithdraw:    true,
	}
}

// Genesis holds the governance state a fresh ledger starts with. It is only
// consulted when the store has no persisted state.
type Genesis struct {
	Administrator Address `json:"administrator" yaml:"administrator"`
	Price         Mutez   `json:"price" yaml:"price"`
	MaxEditions   uint64  `json:"max_editions" yaml:"max_editions"`
	BaseURI       string  `json:"base_uri" yaml:"base_uri"`
}

// DefaultGenesis returns the reference genesis parameters for the given
// administrator.
func DefaultGenesis(admin Address) Genesis {
	return Genesis{
		Administrator: admin,
		Price:         DefaultPrice,
		MaxEditions:   DefaultMaxEditions,
		BaseURI:       DefaultBaseURI,
	}
}

// Config holds backend selection and parameters for Store.Attach.
type Config struct {
	Backend string  `json:"backend" yaml:"backend"`
	DataDir string  `json:"data_dir" yaml:"data_dir"`
	Genesis Genesis `json:"genesis" yaml:"genesis"`
	Options Options `json:"options" yaml:"options"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrAdminEmpty     = errors.New("genesis administrator must not be empty")
	ErrNoEditions     = errors.New("genesis max editions must be positive")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Genesis.Administrator == "" {
		return ErrAdminEmpty
	}
	if c.Genesis.MaxEditions == 0 {
		return ErrNoEditions
	}
	return nil
}
