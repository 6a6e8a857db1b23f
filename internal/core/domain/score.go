package domain

import "time"

const (
	ScoringModeTasks   = "tasks"
	ScoringModeBlended = "blended"
)

type CategoryScore struct {
	Category  Category `json:"category"`
	Label     string   `json:"label"`
	Score     int      `json:"score"`
	Completed int      `json:"completed"`
	Total     int      `json:"total"`
}

type Recommendation struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Score    int      `json:"score"`
	Advice   string   `json:"advice"`
}

type ScoreCard struct {
	From            string           `json:"from"`
	To              string           `json:"to"`
	Mode            string           `json:"mode"`
	Scores          []CategoryScore  `json:"scores"`
	Average         float64          `json:"average"`
	AverageLabel    string           `json:"average_label"`
	Recommendations []Recommendation `json:"recommendations"`
}

type ScoreInput struct {
	From time.Time
	To   time.Time
}
