package out

import (
	"context"

	sessionout "focuspro/internal/modules/session/port/out"
	settingsin "focuspro/internal/modules/settings/port/in"
)

// GoalAdapter lets the session machine read the daily goal without knowing
// about the settings module.
type GoalAdapter struct {
	settings settingsin.Usecase
}

func NewGoalAdapter(settings settingsin.Usecase) GoalAdapter {
	return GoalAdapter{settings: settings}
}

func (a GoalAdapter) GoalHours(ctx context.Context) (int, error) {
	goal, err := a.settings.GetGoal(ctx)
	if err != nil {
		return 0, err
	}
	return goal.Hours, nil
}

var _ sessionout.GoalSource = GoalAdapter{}
