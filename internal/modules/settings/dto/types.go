package dto

type GoalOutput struct {
	Hours int
}
