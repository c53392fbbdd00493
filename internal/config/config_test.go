package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func resetFlagsAndArgs() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	os.Args = []string{"cmd"}
}

func setEnv(t *testing.T) {
	t.Setenv("RUN_ADDRESS", "localhost:9000")
	t.Setenv("CRYPTO_PAY_ADDRESS", "https://testnet-pay.crypt.bot")
	t.Setenv("CRYPTO_PAY_TOKEN", "test-token")
	t.Setenv("OWNER_ID", "99")
	t.Setenv("STATE_FILE", "/tmp/state.json")
	t.Setenv("SWEEP_INTERVAL", "30s")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("LOG_LVL", "debug")
}

func TestNew(t *testing.T) {
	resetFlagsAndArgs()
	setEnv(t)
	os.Args = []string{
		"cmd",
		"-a", "localhost:8080",
		"-r", "https://pay.crypt.bot",
		"-f", "data/state.json",
		"-o", "7",
		"-l", "error",
	}
	cfg := New()

	assert.Equal(t, "localhost:8080", cfg.Address)
	assert.Equal(t, "https://pay.crypt.bot", cfg.OracleAddress)
	assert.Equal(t, "test-token", cfg.OracleToken)
	assert.Equal(t, "data/state.json", cfg.StateFile)
	assert.Equal(t, 7, cfg.OwnerID)
	assert.Equal(t, "error", cfg.LogLvl)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
}

func TestDefaults(t *testing.T) {
	resetFlagsAndArgs()

	cfg := New()

	assert.Equal(t, "localhost:8080", cfg.Address)
	assert.Equal(t, "https://pay.crypt.bot", cfg.OracleAddress)
	assert.Equal(t, "data/state.json", cfg.StateFile)
	assert.Equal(t, "USDT", cfg.InvoiceAsset)
	assert.Equal(t, 0, cfg.OwnerID)
	assert.Equal(t, 60*time.Second, cfg.SweepInterval)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLvl)
}

func TestOracleAddressDefaultProtocol(t *testing.T) {
	resetFlagsAndArgs()
	setEnv(t)

	t.Setenv("CRYPTO_PAY_ADDRESS", "pay.crypt.bot/")

	cfg := New()

	assert.Equal(t, "https://pay.crypt.bot", cfg.OracleAddress)
	assert.Equal(t, "localhost:9000", cfg.Address)
}
