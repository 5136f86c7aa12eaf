package reconcile

// PlanOutcomes renders a plan as outcomes without executing it. Used by the
// status listing: declared worktrees appear with the action a sync would
// take, orphans with [ActionOrphan].
func PlanOutcomes(plan *Plan) []Outcome {
	outcomes := make([]Outcome, 0, len(plan.Actions)+len(plan.Orphans))
	for _, pa := range plan.Actions {
		outcomes = append(outcomes, outcomeFor(plan.Repo.Name, pa, false))
	}
	for _, orphan := range plan.Orphans {
		o := orphanOutcome(plan.Repo.Name, orphan, false)
		o.Action = ActionOrphan
		outcomes = append(outcomes, o)
	}
	return outcomes
}
