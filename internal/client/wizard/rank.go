package wizard

import "github.com/bridgehq/bridge/internal/client/models"

// ToggleInterest selects or deselects an interest on the draft. Selecting
// inserts at the front of the ranked sequence, so the most recent pick holds
// rank 1. Deselecting removes the item and leaves the relative order of the
// rest unchanged.
func ToggleInterest(d *models.Profile, interest string) {
	for i, v := range d.Interests {
		if v == interest {
			d.Interests = append(d.Interests[:i], d.Interests[i+1:]...)
			return
		}
	}
	d.Interests = append([]string{interest}, d.Interests...)
}

// ToggleGoal selects or deselects a goal. Goals are unranked; new picks
// append at the end.
func ToggleGoal(d *models.Profile, goal string) {
	for i, v := range d.Goals {
		if v == goal {
			d.Goals = append(d.Goals[:i], d.Goals[i+1:]...)
			return
		}
	}
	d.Goals = append(d.Goals, goal)
}
