package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildcost/core/materials"
	"buildcost/core/types"
	"buildcost/internal/errors"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, types.CurrencyPKR, cfg.Pricing.Currency)
	assert.Equal(t, types.MarlaSize272, cfg.Estimation.MarlaSize)
	assert.Equal(t, materials.DefaultMix, cfg.Estimation.ConcreteMix)
	assert.Equal(t, "cli", cfg.Output.DefaultFormat)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Pricing.CementBag = decimal.RequireFromString("1525.50")
	cfg.Estimation.MarlaSize = types.MarlaSize252
	cfg.Server.Addr = ":9090"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Pricing.CementBag.Equal(cfg.Pricing.CementBag))
	assert.Equal(t, types.MarlaSize252, loaded.Estimation.MarlaSize)
	assert.Equal(t, ":9090", loaded.Server.Addr)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pricing":{"currency":"USD"}}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.CurrencyUSD, cfg.Pricing.Currency)
	assert.False(t, cfg.Pricing.CementBag.IsZero())
}

func TestInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))

	_, err := Load(path)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BUILDCOST_CURRENCY", "usd")
	t.Setenv("BUILDCOST_MARLA_SIZE", "252")
	t.Setenv("BUILDCOST_CEMENT_BAG_PRICE", "1600")
	t.Setenv("BUILDCOST_SAND_PRICE", "70.5")
	t.Setenv("BUILDCOST_WORKERS", "3")
	t.Setenv("BUILDCOST_ADDR", "127.0.0.1:9000")
	t.Setenv("BUILDCOST_LOG_LEVEL", "DEBUG")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, types.CurrencyUSD, cfg.Pricing.Currency)
	assert.Equal(t, types.MarlaSize252, cfg.Estimation.MarlaSize)
	assert.True(t, cfg.Pricing.CementBag.Equal(decimal.NewFromInt(1600)))
	assert.True(t, cfg.Pricing.SandPerCubicFoot.Equal(decimal.RequireFromString("70.5")))
	assert.Equal(t, 3, cfg.Estimation.Workers)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)

	engine := cfg.Engine()
	assert.True(t, engine.Rates.CementBag.Equal(decimal.NewFromInt(1600)))
	assert.Equal(t, 3, engine.Workers)
}

func TestEnvOverrideErrors(t *testing.T) {
	tests := map[string]string{
		"BUILDCOST_MARLA_SIZE":       "225",
		"BUILDCOST_CEMENT_BAG_PRICE": "-5",
		"BUILDCOST_AGGREGATE_PRICE":  "cheap",
		"BUILDCOST_WORKERS":          "many",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, value)
			_, err := Load(filepath.Join(t.TempDir(), "config.json"))
			assert.True(t, errors.IsType(err, errors.TypeConfig))
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BUILDCOST_TEST_DOTENV=from-file\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("BUILDCOST_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("BUILDCOST_TEST_DOTENV"))

	err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}
