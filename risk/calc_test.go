package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		equity   float64
		fraction float64
		rr       float64
		comm     float64
		win      bool
		wantRisk float64
		wantNet  float64
		wantPct  float64
	}{
		{"win_no_commission", 2000, 0.25, 2, 0, true, 500, 1000, 0.5},
		{"loss_no_commission", 2000, 0.25, 2, 0, false, 500, -500, -0.25},
		{"second_win", 3000, 0.25, 2, 0, true, 750, 1500, 0.5},
		{"win_with_commission", 2000, 0.25, 2, 0.0003, true, 500, 1000 - 1500*0.0003, (1000 - 1500*0.0003) / 2000},
		{"loss_with_commission", 2000, 0.25, 2, 0.0003, false, 500, -500 - 1000*0.0003, (-500 - 1000*0.0003) / 2000},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Settle(tt.equity, tt.fraction, tt.rr, tt.comm, tt.win)
			assert.InDelta(t, tt.wantRisk, got.RiskAmount, 1e-9)
			assert.InDelta(t, tt.wantNet, got.Net, 1e-9)
			assert.InDelta(t, tt.wantPct, got.PercentReturn, 1e-12)
			assert.InDelta(t, got.Gross-got.Commission, got.Net, 1e-9)
		})
	}
}

func TestSettleZeroEquity(t *testing.T) {
	t.Parallel()

	got := Settle(0, 0.25, 2, 0, true)
	assert.Equal(t, 0.0, got.Net)
	assert.Equal(t, 0.0, got.PercentReturn)
}
