package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"heliowatch/internal/config"
	"heliowatch/internal/predict"
)

func TestPollEvery(t *testing.T) {
	assert.Equal(t, 10*time.Second, pollEvery(true, 10*time.Second, config.Duration(time.Minute)),
		"explicit flag wins over configured interval")
	assert.Equal(t, time.Minute, pollEvery(false, 0, config.Duration(time.Minute)))
	assert.Equal(t, predict.DefaultPollInterval, pollEvery(false, 0, 0))
}
