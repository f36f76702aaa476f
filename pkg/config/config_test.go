package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uberswe/DomainHunter/pkg/generator"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"tlds": ["com", ".DEV", ".com"],
		"maxPricePerYear": 20,
		"keywords": ["quill"],
		"personalNames": ["ada"],
		"strategies": ["keyword", "personal", "expired"],
		"requestDelayMs": 250
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".com", ".dev"}, cfg.TLDs)
	assert.Equal(t, 20.0, cfg.MaxPricePerYear)
	assert.Equal(t, []string{"quill"}, cfg.Keywords)
	assert.Equal(t, []string{"ada"}, cfg.PersonalNames)
	assert.Equal(t, []string{"keyword", "personal", "expired"}, cfg.Strategies)
	assert.Equal(t, 250, cfg.RequestDelayMs)
	assert.Equal(t, 50, cfg.SaveEvery, "unset fields keep their defaults")
	assert.Equal(t, AuthoritativeRevved, cfg.Authoritative)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "tlds: [.io]\nstrategies: [combo]\nsaveEvery: 5\ndnsServer: 9.9.9.9\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".io"}, cfg.TLDs)
	assert.Equal(t, []string{generator.KeyCombo}, cfg.Strategies)
	assert.Equal(t, 5, cfg.SaveEvery)
	assert.Equal(t, "9.9.9.9", cfg.DNSServer)
}

func TestLoad_ExplicitZeroValues(t *testing.T) {
	cases := map[string]string{
		"config.json": `{"requestDelayMs": 0, "maxPricePerYear": 0, "keepAwake": false, "keywords": []}`,
		"config.yaml": "requestDelayMs: 0\nmaxPricePerYear: 0\nkeepAwake: false\nkeywords: []\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, body)

			cfg, err := Load(path)
			require.NoError(t, err)

			assert.Zero(t, cfg.RequestDelayMs)
			assert.Zero(t, cfg.MaxPricePerYear)
			assert.False(t, cfg.KeepAwake)
			assert.Empty(t, cfg.Keywords)
			assert.Equal(t, Default().TLDs, cfg.TLDs, "absent keys keep their defaults")
			assert.Equal(t, 50, cfg.SaveEvery)
		})
	}
}

func TestLoad_DecimalMaxPrice(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.json", `{"maxPricePerYear": 12.5}`))
	require.NoError(t, err)
	assert.Equal(t, 12.5, cfg.MaxPricePerYear)

	t.Setenv("HUNT_MAX_PRICE", "9.99")
	cfg, err = Load(writeFile(t, "config.json", `{}`))
	require.NoError(t, err)
	assert.Equal(t, 9.99, cfg.MaxPricePerYear)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"tlds": [".com"], "requestDelayMs": 100}`)
	t.Setenv("HUNT_TLDS", ".net,.org")
	t.Setenv("HUNT_DELAY_MS", "900")
	t.Setenv("HUNT_AUTHORITATIVE", "loopia")
	t.Setenv("LOOPIA_USERNAME", "user@loopiaapi")
	t.Setenv("LOOPIA_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".net", ".org"}, cfg.TLDs)
	assert.Equal(t, 900, cfg.RequestDelayMs)
	assert.Equal(t, AuthoritativeLoopia, cfg.Authoritative)
	assert.Equal(t, "user@loopiaapi", cfg.Username)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		is   error
	}{
		{"unknown strategy", `{"strategies": ["random"]}`, generator.ErrUnknownStrategy},
		{"no usable tlds", `{"tlds": [" ", "."]}`, ErrNoTLDs},
		{"bad authoritative", `{"authoritative": "whois"}`, ErrBadAuthoritative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.json", tt.body))
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestLoad_BadJSON(t *testing.T) {
	_, err := Load(writeFile(t, "config.json", `{"tlds":`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))

	cfg.RequestDelayMs = -1
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.SaveEvery = 0
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Strategies = nil
	assert.ErrorIs(t, Validate(cfg), ErrNoStrategies)

	cfg = Default()
	cfg.Authoritative = AuthoritativeLoopia
	assert.Error(t, Validate(cfg), "loopia needs credentials")
}

func TestSave_RoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := Default()
			cfg.Keywords = []string{"quill", "ink"}
			cfg.MaxPricePerYear = 40

			require.NoError(t, Save(cfg, path))
			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}
