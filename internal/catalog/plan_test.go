package catalog

import (
	"reflect"
	"testing"
)

func TestDirectoryToggles(t *testing.T) {
	if got := DirectoryToggles(true); !reflect.DeepEqual(got, []bool{true}) {
		t.Errorf("DirectoryToggles(true) = %v, want [true]", got)
	}
	if got := DirectoryToggles(false); !reflect.DeepEqual(got, []bool{false, true}) {
		t.Errorf("DirectoryToggles(false) = %v, want [false true]", got)
	}
}

func TestPlanAttemptsNoAgent(t *testing.T) {
	variants := []string{"a", "b", "c"}
	toggles := []bool{false, true}

	plan := PlanAttempts(variants, toggles, false)

	if len(plan) != len(variants)*len(toggles) {
		t.Fatalf("plan length = %d, want %d", len(plan), len(variants)*len(toggles))
	}
	for _, a := range plan {
		if a.Scope != ScopeAllAgents {
			t.Errorf("attempt %q scope = %v, want all_agents", a.Name, a.Scope)
		}
	}
	// Outer loop over variants, inner over toggles
	want := []PlannedAttempt{
		{Name: "all_agents_dir=false", Pattern: "a", Directory: false, Scope: ScopeAllAgents},
		{Name: "all_agents_dir=true", Pattern: "a", Directory: true, Scope: ScopeAllAgents},
		{Name: "all_agents_dir=false", Pattern: "b", Directory: false, Scope: ScopeAllAgents},
		{Name: "all_agents_dir=true", Pattern: "b", Directory: true, Scope: ScopeAllAgents},
		{Name: "all_agents_dir=false", Pattern: "c", Directory: false, Scope: ScopeAllAgents},
		{Name: "all_agents_dir=true", Pattern: "c", Directory: true, Scope: ScopeAllAgents},
	}
	if !reflect.DeepEqual(plan, want) {
		t.Errorf("plan = %v, want %v", plan, want)
	}
}

func TestPlanAttemptsWithAgent(t *testing.T) {
	variants := []string{"x", "y"}
	toggles := []bool{true}

	plan := PlanAttempts(variants, toggles, true)

	if len(plan) != 4 {
		t.Fatalf("plan length = %d, want 4", len(plan))
	}

	// Agent-scoped attempt precedes the unconditional all-agents fan-out for
	// each pair.
	if plan[0].Scope != ScopeAgent || plan[0].Name != "agent_dir=true" {
		t.Errorf("plan[0] = %+v, want agent-scoped first", plan[0])
	}
	if plan[1].Scope != ScopeAllAgents || plan[1].Name != "all_agents_dir=true" {
		t.Errorf("plan[1] = %+v, want all-agents second", plan[1])
	}
	if plan[2].Pattern != "y" || plan[3].Pattern != "y" {
		t.Errorf("second variant attempts should use pattern y: %+v", plan[2:])
	}
}

func TestPlanAttemptsCountProperty(t *testing.T) {
	tests := []struct {
		variants  int
		isDir     bool
		withAgent bool
		want      int
	}{
		{3, false, false, 6},  // 3 variants x 2 toggles x 1 scope
		{3, false, true, 12},  // 3 variants x 2 toggles x 2 scopes
		{5, true, false, 5},   // 5 variants x 1 toggle x 1 scope
		{1, true, true, 2},    // 1 variant x 1 toggle x 2 scopes
	}

	for _, tt := range tests {
		variants := make([]string, tt.variants)
		for i := range variants {
			variants[i] = string(rune('a' + i))
		}
		plan := PlanAttempts(variants, DirectoryToggles(tt.isDir), tt.withAgent)
		if len(plan) != tt.want {
			t.Errorf("PlanAttempts(%d variants, isDir=%v, agent=%v) = %d attempts, want %d",
				tt.variants, tt.isDir, tt.withAgent, len(plan), tt.want)
		}
	}
}
