package envloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"wallet_config/internal/app/port"

	"github.com/joho/godotenv"
)

// Recognized environment variables.
const (
	EnvProjectID    = "WALLETCONNECT_PROJECT_ID"
	EnvInfuraAPIKey = "INFURA_API_KEY"

	// publicPrefix is the spelling used by the front-end build.
	publicPrefix = "NEXT_PUBLIC_"

	// PlaceholderInfuraAPIKey is used when no Infura key is configured.
	PlaceholderInfuraAPIKey = "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"

	defaultEnvFilePath = ".env"
)

// EnvLoader implements port.SettingsProvider on top of the process environment and an optional dotenv file.
type EnvLoader struct {
	filePath   string
	lookup     func(string) (string, bool)
	loggerInfo func(msg string, args ...any)
}

// Option configures an EnvLoader.
type Option func(*EnvLoader)

// WithFile sets the dotenv file path. An empty path disables the file.
func WithFile(path string) Option {
	return func(l *EnvLoader) { l.filePath = path }
}

// WithLookup replaces os.LookupEnv.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(l *EnvLoader) { l.lookup = lookup }
}

// NewEnvLoader creates a new EnvLoader.
func NewEnvLoader(loggerInfo func(msg string, args ...any), opts ...Option) port.SettingsProvider {
	l := &EnvLoader{
		filePath:   defaultEnvFilePath,
		lookup:     os.LookupEnv,
		loggerInfo: loggerInfo,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the recognized variables. Process environment wins over the dotenv file,
// and the unprefixed name wins over the NEXT_PUBLIC_ spelling.
// Values are taken verbatim; only an empty value counts as unset.
// A missing project ID is not an error here; the wallet config provider rejects it.
func (l *EnvLoader) Load() (port.EnvSettings, error) {
	fileVars, err := l.readFile()
	if err != nil {
		return port.EnvSettings{}, err
	}

	get := func(name string) string {
		for _, key := range []string{name, publicPrefix + name} {
			if v, ok := l.lookup(key); ok && v != "" {
				return v
			}
			if v := fileVars[key]; v != "" {
				return v
			}
		}
		return ""
	}

	s := port.EnvSettings{
		ProjectID:    get(EnvProjectID),
		InfuraAPIKey: get(EnvInfuraAPIKey),
	}
	if s.InfuraAPIKey == "" {
		s.InfuraAPIKey = PlaceholderInfuraAPIKey
		s.InfuraKeyDefault = true
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Environment settings loaded",
			"project_id_set", s.ProjectID != "",
			"infura_key_default", s.InfuraKeyDefault,
			"env_file", l.filePath)
	}
	return s, nil
}

func (l *EnvLoader) readFile() (map[string]string, error) {
	if l.filePath == "" {
		return nil, nil
	}
	vars, err := godotenv.Read(l.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", l.filePath, err)
	}
	return vars, nil
}
