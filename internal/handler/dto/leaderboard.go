package dto

import "time"

// LeaderboardEntry — одна строка таблицы лидеров
type LeaderboardEntry struct {
	Rank      int       `json:"rank"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// LeaderboardResponse — полный ответ на запрос таблицы лидеров
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}
