package envloader

import (
	"os"
	"path/filepath"
	"testing"

	"wallet_config/internal/app/port"

	"github.com/go-test/deep"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want port.EnvSettings
	}{
		{
			name: "both set",
			env:  map[string]string{EnvProjectID: "pid", EnvInfuraAPIKey: "key"},
			want: port.EnvSettings{ProjectID: "pid", InfuraAPIKey: "key"},
		},
		{
			name: "key absent uses placeholder",
			env:  map[string]string{EnvProjectID: "pid"},
			want: port.EnvSettings{ProjectID: "pid", InfuraAPIKey: PlaceholderInfuraAPIKey, InfuraKeyDefault: true},
		},
		{
			name: "empty key uses placeholder",
			env:  map[string]string{EnvProjectID: "pid", EnvInfuraAPIKey: ""},
			want: port.EnvSettings{ProjectID: "pid", InfuraAPIKey: PlaceholderInfuraAPIKey, InfuraKeyDefault: true},
		},
		{
			name: "values kept verbatim",
			env:  map[string]string{EnvProjectID: " pid\n", EnvInfuraAPIKey: "  "},
			want: port.EnvSettings{ProjectID: " pid\n", InfuraAPIKey: "  "},
		},
		{
			name: "empty unprefixed falls back to next public spelling",
			env: map[string]string{
				EnvProjectID:                           "",
				"NEXT_PUBLIC_WALLETCONNECT_PROJECT_ID": "public-pid",
			},
			want: port.EnvSettings{ProjectID: "public-pid", InfuraAPIKey: PlaceholderInfuraAPIKey, InfuraKeyDefault: true},
		},
		{
			name: "next public spelling",
			env: map[string]string{
				"NEXT_PUBLIC_WALLETCONNECT_PROJECT_ID": "public-pid",
				"NEXT_PUBLIC_INFURA_API_KEY":           "public-key",
			},
			want: port.EnvSettings{ProjectID: "public-pid", InfuraAPIKey: "public-key"},
		},
		{
			name: "unprefixed wins",
			env: map[string]string{
				EnvProjectID:                           "pid",
				"NEXT_PUBLIC_WALLETCONNECT_PROJECT_ID": "public-pid",
			},
			want: port.EnvSettings{ProjectID: "pid", InfuraAPIKey: PlaceholderInfuraAPIKey, InfuraKeyDefault: true},
		},
		{
			name: "project id missing is not a load error",
			env:  map[string]string{},
			want: port.EnvSettings{InfuraAPIKey: PlaceholderInfuraAPIKey, InfuraKeyDefault: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEnvLoader(nil, WithFile(""), WithLookup(lookupFrom(tt.env))).Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if diff := deep.Equal(got, tt.want); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestPlaceholderKeyShape(t *testing.T) {
	if len(PlaceholderInfuraAPIKey) != 32 {
		t.Fatalf("expected 32 characters, got %d", len(PlaceholderInfuraAPIKey))
	}
	for _, r := range PlaceholderInfuraAPIKey {
		if r != 'z' {
			t.Fatalf("unexpected character %q", r)
		}
	}
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "WALLETCONNECT_PROJECT_ID=file-pid\nINFURA_API_KEY=file-key\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := NewEnvLoader(nil, WithFile(path), WithLookup(lookupFrom(nil))).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.ProjectID != "file-pid" || got.InfuraAPIKey != "file-key" {
		t.Errorf("unexpected settings %+v", got)
	}

	// process environment wins over the file
	got, err = NewEnvLoader(nil, WithFile(path), WithLookup(lookupFrom(map[string]string{EnvProjectID: "env-pid"}))).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.ProjectID != "env-pid" || got.InfuraAPIKey != "file-key" {
		t.Errorf("unexpected settings %+v", got)
	}
}

func TestLoad_MissingDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.env")
	got, err := NewEnvLoader(nil, WithFile(path), WithLookup(lookupFrom(map[string]string{EnvProjectID: "pid"}))).Load()
	if err != nil {
		t.Fatalf("missing env file must not fail: %v", err)
	}
	if got.ProjectID != "pid" {
		t.Errorf("unexpected project ID %q", got.ProjectID)
	}
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv(EnvProjectID, "from-process")
	t.Setenv(EnvInfuraAPIKey, "process-key")

	got, err := NewEnvLoader(nil, WithFile("")).Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.ProjectID != "from-process" || got.InfuraAPIKey != "process-key" {
		t.Errorf("unexpected settings %+v", got)
	}
}
