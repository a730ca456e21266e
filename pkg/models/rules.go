// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

// Package models holds the pairing rule set and its validation.
package models

import (
	"github.com/mitchellh/copystructure"
	"github.com/sirupsen/logrus"
)

// Rules controls how the pairing engine judges ELO compatibility and how
// the gap tolerance widens while a request waits in the queue.
type Rules struct {
	DefaultMaxEloDiff      int `json:"default_max_elo_diff"`
	MaxEloDiffCap          int `json:"max_elo_diff_cap"`
	WideningIntervalSecond int `json:"widening_interval_second"`
	WideningStepElo        int `json:"widening_step_elo"`
	RequestTTLSecond       int `json:"request_ttl_second"`
}

// Validate checks the rule set for values the engine cannot run with.
func (r Rules) Validate() error {
	if r.DefaultMaxEloDiff < 0 {
		return ValidationErrorNegativeEloDiff
	}
	if r.MaxEloDiffCap != 0 && r.MaxEloDiffCap < r.DefaultMaxEloDiff {
		return ValidationErrorCapBelowDefault
	}
	if r.WideningIntervalSecond < 0 || r.WideningStepElo < 0 {
		return ValidationErrorNegativeWidening
	}
	if r.RequestTTLSecond < 0 {
		return ValidationErrorNegativeTTL
	}

	return nil
}

func (r Rules) Copy() Rules {
	copied, err := copystructure.Copy(r)
	if err != nil {
		logrus.Warn("Failed to copy Rules struct:", err)
		return r
	}
	rules, _ := copied.(Rules)
	return rules
}
