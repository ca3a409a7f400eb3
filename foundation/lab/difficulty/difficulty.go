// Package difficulty projects the next difficulty-epoch adjustment from
// observed block timing, using the fixed Bitcoin protocol parameters: 2016
// block epochs targeting one block every 600 seconds, with the per-epoch
// swing clamped to a factor of 4 in either direction.
package difficulty

import (
	"errors"
	"time"
)

// Protocol parameters. These are fixed by the protocol being modeled and
// are not caller configurable.
const (
	BlocksPerEpoch  = 2016
	TargetBlockTime = 600 // seconds
)

// Bounds on the per-epoch adjustment ratio.
const (
	maxRatio = 4.0
	minRatio = 0.25
)

// Argument errors reported before any computation.
var (
	ErrNegativeHeight   = errors.New("block height must not be negative")
	ErrInvalidBlockTime = errors.New("average block time must be greater than zero")
	ErrNegativeBlocks   = errors.New("blocks remaining must not be negative")
)

// =============================================================================

// Epoch describes where a block height sits inside its difficulty epoch.
// All fields are derived, recomputed on demand, never persisted.
type Epoch struct {
	StartHeight     int     `json:"epoch_start"`
	CurrentHeight   int     `json:"current_height"`
	BlocksCompleted int     `json:"blocks_completed"`
	BlocksRemaining int     `json:"blocks_remaining"`
	Progress        float64 `json:"progress"`
}

// EpochPosition locates the specified height inside its 2016 block epoch.
func EpochPosition(height int) (Epoch, error) {
	if height < 0 {
		return Epoch{}, ErrNegativeHeight
	}

	start := (height / BlocksPerEpoch) * BlocksPerEpoch
	completed := height - start + 1

	return Epoch{
		StartHeight:     start,
		CurrentHeight:   height,
		BlocksCompleted: completed,
		BlocksRemaining: BlocksPerEpoch - completed,
		Progress:        float64(completed) / BlocksPerEpoch,
	}, nil
}

// =============================================================================

// Prediction represents the projected next adjustment.
type Prediction struct {
	AvgBlockTime        float64 `json:"avg_block_time"`
	TargetBlockTime     int     `json:"target_block_time"`
	PredictedDifficulty float64 `json:"predicted_difficulty"`
	AdjustmentPercent   float64 `json:"adjustment_percent"`
}

// Predict computes the next difficulty from the observed average block
// time. The adjustment ratio target/average is clamped to [0.25, 4.0]; at
// the clamps the percent reads exactly +300 or -75, never an interpolated
// value.
func Predict(currentDifficulty float64, avgBlockTime float64) (Prediction, error) {
	if avgBlockTime <= 0 {
		return Prediction{}, ErrInvalidBlockTime
	}

	ratio := TargetBlockTime / avgBlockTime
	percent := (ratio - 1) * 100

	switch {
	case ratio > maxRatio:
		ratio = maxRatio
		percent = 300
	case ratio < minRatio:
		ratio = minRatio
		percent = -75
	}

	return Prediction{
		AvgBlockTime:        avgBlockTime,
		TargetBlockTime:     TargetBlockTime,
		PredictedDifficulty: currentDifficulty * ratio,
		AdjustmentPercent:   percent,
	}, nil
}

// TimeUntilAdjustment projects how long the remaining blocks of the epoch
// will take at the observed average block time.
func TimeUntilAdjustment(blocksRemaining int, avgBlockTime float64) (time.Duration, error) {
	if blocksRemaining < 0 {
		return 0, ErrNegativeBlocks
	}
	if avgBlockTime <= 0 {
		return 0, ErrInvalidBlockTime
	}

	seconds := float64(blocksRemaining) * avgBlockTime

	return time.Duration(seconds * float64(time.Second)), nil
}

// =============================================================================

// Forecast is the composed view a caller usually wants: current state,
// epoch position, and the projected adjustment.
type Forecast struct {
	Current struct {
		Difficulty  float64 `json:"difficulty"`
		BlockHeight int     `json:"block_height"`
	} `json:"current"`
	Epoch      Epoch      `json:"epoch"`
	Prediction Prediction `json:"prediction"`

	TimeUntilAdjustment float64 `json:"time_until_adjustment_seconds"`
}

// NewForecast composes the epoch position and prediction for the specified
// observation into a single record.
func NewForecast(currentDifficulty float64, height int, avgBlockTime float64) (Forecast, error) {
	epoch, err := EpochPosition(height)
	if err != nil {
		return Forecast{}, err
	}

	prediction, err := Predict(currentDifficulty, avgBlockTime)
	if err != nil {
		return Forecast{}, err
	}

	until, err := TimeUntilAdjustment(epoch.BlocksRemaining, avgBlockTime)
	if err != nil {
		return Forecast{}, err
	}

	f := Forecast{
		Epoch:               epoch,
		Prediction:          prediction,
		TimeUntilAdjustment: until.Seconds(),
	}
	f.Current.Difficulty = currentDifficulty
	f.Current.BlockHeight = height

	return f, nil
}
