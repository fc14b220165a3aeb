package dto

type StatusOutput struct {
	State            string
	RemainingSeconds int
	TotalSeconds     int
}
