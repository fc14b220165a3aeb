package dto

type DayTotal struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

type CategoryTotal struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Minutes  int    `json:"minutes"`
}

type SummaryOutput struct {
	Date        string `json:"date"`
	Minutes     int    `json:"minutes"`
	GoalHours   int    `json:"goal_hours"`
	GoalPercent int    `json:"goal_percent"`
	StreakDays  int    `json:"streak_days"`
}
