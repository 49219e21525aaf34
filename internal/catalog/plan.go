package catalog

import "fmt"

// DirectoryToggles returns the directory-mode values to search for a
// requested mode. A false request also retries with directory mode forced on:
// catalogs frequently index directories without a trailing separator, and the
// forced retry finds those. Heuristic, not a catalog guarantee.
func DirectoryToggles(pathIsDirectory bool) []bool {
	if pathIsDirectory {
		return []bool{true}
	}
	return []bool{false, true}
}

// PlanAttempts enumerates the (variant, directory-mode, scope) combinations
// to execute, in order: variants outermost, toggles inner, and for each pair
// the agent-scoped attempt (when an agent was requested) before the
// unconditional all-agents fan-out. The plan is what actually gets handed to
// the shell; attempt records come back under these names.
func PlanAttempts(variants []string, toggles []bool, agentRequested bool) []PlannedAttempt {
	perPair := 1
	if agentRequested {
		perPair = 2
	}
	plan := make([]PlannedAttempt, 0, len(variants)*len(toggles)*perPair)

	for _, pattern := range variants {
		for _, dir := range toggles {
			if agentRequested {
				plan = append(plan, PlannedAttempt{
					Name:      fmt.Sprintf("agent_dir=%t", dir),
					Pattern:   pattern,
					Directory: dir,
					Scope:     ScopeAgent,
				})
			}
			plan = append(plan, PlannedAttempt{
				Name:      fmt.Sprintf("all_agents_dir=%t", dir),
				Pattern:   pattern,
				Directory: dir,
				Scope:     ScopeAllAgents,
			})
		}
	}

	return plan
}
