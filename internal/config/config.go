package config

import (
	"flag"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Address       string        `env:"RUN_ADDRESS"        envDefault:"localhost:8080"`
	OracleAddress string        `env:"CRYPTO_PAY_ADDRESS" envDefault:"https://pay.crypt.bot"`
	OracleToken   string        `env:"CRYPTO_PAY_TOKEN"   envDefault:""`
	OwnerID       int           `env:"OWNER_ID"           envDefault:"0"`
	StateFile     string        `env:"STATE_FILE"         envDefault:"data/state.json"`
	InvoiceAsset  string        `env:"INVOICE_ASSET"      envDefault:"USDT"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"     envDefault:"60s"`
	PollInterval  time.Duration `env:"POLL_INTERVAL"      envDefault:"5s"`
	SessionTTL    time.Duration `env:"SESSION_TTL"        envDefault:"15m"`
	LogLvl        string        `env:"LOG_LVL"            envDefault:"info"`
}

func New() *Config {
	cfg := &Config{}

	env.Parse(cfg)

	flag.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	flag.StringVar(&cfg.OracleAddress, "r", cfg.OracleAddress, "payment oracle address")
	flag.StringVar(&cfg.StateFile, "f", cfg.StateFile, "state file path")
	flag.IntVar(&cfg.OwnerID, "o", cfg.OwnerID, "owner user id for the admin surface")
	flag.StringVar(&cfg.LogLvl, "l", cfg.LogLvl, "log level")
	flag.Parse()

	if !strings.HasPrefix(cfg.OracleAddress, "http://") && !strings.HasPrefix(cfg.OracleAddress, "https://") {
		cfg.OracleAddress = "https://" + cfg.OracleAddress
	}
	cfg.OracleAddress = strings.TrimSuffix(cfg.OracleAddress, "/")

	return cfg
}
