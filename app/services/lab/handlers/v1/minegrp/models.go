package minegrp

type mineRequest struct {
	Payload     string `json:"payload" validate:"required"`
	Difficulty  int    `json:"difficulty" validate:"min=0,max=64"`
	MaxAttempts *int   `json:"max_attempts,omitempty" validate:"omitempty,min=0"`
}

type forecastRequest struct {
	CurrentDifficulty float64 `json:"current_difficulty" validate:"gt=0"`
	BlockHeight       int     `json:"block_height" validate:"min=0"`
	AvgBlockTime      float64 `json:"avg_block_time" validate:"gt=0"`
}
