package difficulty_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ardanlabs/chainlab/foundation/lab/difficulty"
)

func Test_EpochPosition(t *testing.T) {
	type table struct {
		name            string
		height          int
		startHeight     int
		blocksCompleted int
		blocksRemaining int
	}

	tt := []table{
		{"genesis", 0, 0, 1, 2015},
		{"epoch boundary", 2016, 2016, 1, 2015},
		{"last of epoch", 2015, 0, 2016, 0},
		{"mid epoch", 820500, 818496, 2005, 11},
	}

	for _, tst := range tt {
		t.Run(tst.name, func(t *testing.T) {
			epoch, err := difficulty.EpochPosition(tst.height)
			if err != nil {
				t.Fatalf("error: unexpected error: %v", err)
			}

			if epoch.StartHeight != tst.startHeight {
				t.Errorf("error: expected start height %d, got %d", tst.startHeight, epoch.StartHeight)
			}
			if epoch.BlocksCompleted != tst.blocksCompleted {
				t.Errorf("error: expected %d blocks completed, got %d", tst.blocksCompleted, epoch.BlocksCompleted)
			}
			if epoch.BlocksRemaining != tst.blocksRemaining {
				t.Errorf("error: expected %d blocks remaining, got %d", tst.blocksRemaining, epoch.BlocksRemaining)
			}

			want := float64(tst.blocksCompleted) / difficulty.BlocksPerEpoch
			if epoch.Progress != want {
				t.Errorf("error: expected progress %v, got %v", want, epoch.Progress)
			}
		})
	}

	if _, err := difficulty.EpochPosition(-1); !errors.Is(err, difficulty.ErrNegativeHeight) {
		t.Errorf("error: expected ErrNegativeHeight, got %v", err)
	}
}

func Test_Predict(t *testing.T) {
	type table struct {
		name         string
		avgBlockTime float64
		percent      float64
		factor       float64
	}

	tt := []table{
		{"on target", 600, 0, 1},
		{"blocks twice as fast", 300, 100, 2},
		{"blocks twice as slow", 1200, -50, 0.5},
		{"clamped high", 0.001, 300, 4},
		{"clamped low", 1e9, -75, 0.25},
		{"exactly at high clamp", 150, 300, 4},
		{"exactly at low clamp", 2400, -75, 0.25},
	}

	const current = 72_000_000_000_000.0

	for _, tst := range tt {
		t.Run(tst.name, func(t *testing.T) {
			p, err := difficulty.Predict(current, tst.avgBlockTime)
			if err != nil {
				t.Fatalf("error: unexpected error: %v", err)
			}

			// At the clamps the percent must read exactly +300 or -75,
			// never an interpolated value.
			if p.AdjustmentPercent != tst.percent {
				t.Errorf("error: expected adjustment %v%%, got %v%%", tst.percent, p.AdjustmentPercent)
			}
			if p.PredictedDifficulty != current*tst.factor {
				t.Errorf("error: expected predicted difficulty %v, got %v", current*tst.factor, p.PredictedDifficulty)
			}
		})
	}

	if _, err := difficulty.Predict(current, 0); !errors.Is(err, difficulty.ErrInvalidBlockTime) {
		t.Errorf("error: expected ErrInvalidBlockTime, got %v", err)
	}
}

func Test_TimeUntilAdjustment(t *testing.T) {
	d, err := difficulty.TimeUntilAdjustment(11, 600)
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}

	if want := 6600 * time.Second; d != want {
		t.Errorf("error: expected %v, got %v", want, d)
	}

	if _, err := difficulty.TimeUntilAdjustment(-1, 600); !errors.Is(err, difficulty.ErrNegativeBlocks) {
		t.Errorf("error: expected ErrNegativeBlocks, got %v", err)
	}
}

func Test_NewForecast(t *testing.T) {
	f, err := difficulty.NewForecast(72e12, 820500, 570)
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}

	if f.Current.BlockHeight != 820500 || f.Current.Difficulty != 72e12 {
		t.Errorf("error: expected the current state echoed back, got %+v", f.Current)
	}
	if f.Epoch.BlocksRemaining != 11 {
		t.Errorf("error: expected 11 blocks remaining, got %d", f.Epoch.BlocksRemaining)
	}
	if f.Prediction.AvgBlockTime != 570 {
		t.Errorf("error: expected the observed block time echoed back, got %v", f.Prediction.AvgBlockTime)
	}
	if f.TimeUntilAdjustment != 11*570 {
		t.Errorf("error: expected %v seconds until adjustment, got %v", 11*570, f.TimeUntilAdjustment)
	}
}
