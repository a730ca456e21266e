// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
)

var (
	ValidationErrorNegativeEloDiff  = errors.New("default max elo diff cannot be negative")
	ValidationErrorCapBelowDefault  = errors.New("max elo diff cap should not be below the default elo diff")
	ValidationErrorNegativeWidening = errors.New("widening interval and step cannot be negative")
	ValidationErrorNegativeTTL      = errors.New("request ttl cannot be negative")
)

var validationErrorCodeMap = map[error]int{
	ValidationErrorNegativeEloDiff:  520101,
	ValidationErrorCapBelowDefault:  520102,
	ValidationErrorNegativeWidening: 520103,
	ValidationErrorNegativeTTL:      520104,
}

// ValidationErrorCode returns a code for the error.
// It returns 20002 if the error is not registered in the map.
func ValidationErrorCode(err error) int {
	code, ok := validationErrorCodeMap[err]
	if !ok {
		return 20002
	}
	return code
}
