package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"999", "999.00"},
		{"1650", "1,650.00"},
		{"15000.5", "15,000.50"},
		{"1234567.891", "1,234,567.89"},
		{"-2500", "-2,500.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, parseLevel("debug", logrus.InfoLevel))
	assert.Equal(t, logrus.InfoLevel, parseLevel("", logrus.InfoLevel))
	assert.Equal(t, logrus.InfoLevel, parseLevel("loud", logrus.InfoLevel))
}
