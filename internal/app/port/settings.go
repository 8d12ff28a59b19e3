package port

import "wallet_config/internal/domain/entity"

// EnvSettings are the values read from the process environment at startup.
type EnvSettings struct {
	ProjectID string
	// InfuraAPIKey holds the placeholder key when the variable is absent.
	InfuraAPIKey     string
	InfuraKeyDefault bool
}

// SettingsProvider reads the environment-supplied settings.
type SettingsProvider interface {
	Load() (EnvSettings, error)
}

// WalletConfigProvider builds the immutable wallet configuration from the environment settings.
type WalletConfigProvider interface {
	Build(settings EnvSettings) (*entity.WalletConfig, error)
}
