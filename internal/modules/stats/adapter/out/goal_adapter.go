package out

import (
	"context"

	settingsin "focuspro/internal/modules/settings/port/in"
	statsout "focuspro/internal/modules/stats/port/out"
)

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

var _ statsout.GoalSource = GoalAdapter{}
