package models

// LeaderboardEntry is one ranked row of the standings.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// PredictionStats summarizes a user's prediction record.
type PredictionStats struct {
	Total              int     `json:"total_predictions"`
	Correct            int     `json:"correct_predictions"`
	Incorrect          int     `json:"incorrect_predictions"`
	Pending            int     `json:"pending_predictions"`
	AccuracyPercentage float64 `json:"accuracy_percentage"`
}

// UserRank is the my-rank response: position plus prediction record.
type UserRank struct {
	Rank       int             `json:"rank"`
	Username   string          `json:"username"`
	Points     int             `json:"points"`
	TotalUsers int64           `json:"total_users"`
	Stats      PredictionStats `json:"prediction_stats"`
}

// LeaderboardStats aggregates the standings for the stats endpoint.
type LeaderboardStats struct {
	TotalUsers   int64             `json:"total_users"`
	HighestScore int               `json:"highest_score"`
	AverageScore string            `json:"average_score"`
	TotalPoints  int64             `json:"total_points"`
	TopUser      *LeaderboardEntry `json:"top_user,omitempty"`
}
