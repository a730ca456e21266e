// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"github.com/caarlos0/env"
)

type Config struct {
	DefaultMaxEloDiff         int `env:"DEFAULT_MAX_ELO_DIFF"         envDefault:"100" envDocs:"ELO gap tolerance applied when a join request does not supply max_elo_diff"`
	MaxEloDiffCap             int `env:"MAX_ELO_DIFF_CAP"             envDefault:"400" envDocs:"upper cap on the widened ELO gap tolerance (0 means widening is uncapped)"`
	WideningIntervalSecond    int `env:"WIDENING_INTERVAL_SECOND"     envDefault:"10"  envDocs:"seconds of waiting after which the ELO gap tolerance widens by one step (0 disables widening)"`
	WideningStepElo           int `env:"WIDENING_STEP_ELO"            envDefault:"25"  envDocs:"ELO added to the gap tolerance per elapsed widening interval"`
	RequestTTLSecond          int `env:"REQUEST_TTL_SECOND"           envDefault:"300" envDocs:"seconds a waiting request may stay queued before the sweeper expires it"`
	SweepIntervalSecond       int `env:"SWEEP_INTERVAL_SECOND"        envDefault:"30"  envDocs:"seconds between expiration sweeper passes"`
	DefaultWaitEstimateSecond int `env:"DEFAULT_WAIT_ESTIMATE_SECOND" envDefault:"15"  envDocs:"estimated wait in seconds reported before any pairing samples exist"`
}

// New reads the engine configuration from environment variables.
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
