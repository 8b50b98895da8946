package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Proton-105/warung-bot/pkg/config"
)

func TestFormatter_Format(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.CurrencyConfig
		amount string
		want   string
	}{
		{
			name:   "rupiah groups thousands with dots",
			cfg:    config.CurrencyConfig{Symbol: "Rp", Locale: "id-ID"},
			amount: "150000",
			want:   "Rp 150.000",
		},
		{
			name:   "rupiah rounds away fractions",
			cfg:    config.CurrencyConfig{Symbol: "Rp", Locale: "id-ID"},
			amount: "19.99",
			want:   "Rp 20",
		},
		{
			name:   "english locale with cents",
			cfg:    config.CurrencyConfig{Symbol: "$", Locale: "en-US", FractionDigits: 2},
			amount: "1234.5",
			want:   "$ 1,234.50",
		},
		{
			name:   "no symbol",
			cfg:    config.CurrencyConfig{Locale: "en-US"},
			amount: "15",
			want:   "15",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			f := NewFormatter(tc.cfg)
			assert.Equal(t, tc.want, f.Format(decimal.RequireFromString(tc.amount)))
		})
	}
}
