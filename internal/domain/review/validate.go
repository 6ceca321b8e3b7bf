package review

import (
	"fmt"
	"sort"
)

// ValidateTemplate checks the structural invariants of a template: dense,
// unique stage ordering, known stage types, non-empty attendees, and
// dependency references that stay inside the template without forming a
// cycle. Returns one message per violation.
func ValidateTemplate(t WorkflowTemplate) []string {
	var issues []string

	if t.Name == "" {
		issues = append(issues, "template name is required")
	}
	if len(t.Stages) == 0 {
		issues = append(issues, "template must have at least one stage")
	}

	ids := make(map[string]bool, len(t.Stages))
	orders := make([]int, 0, len(t.Stages))
	for _, stage := range t.Stages {
		if stage.ID == "" {
			issues = append(issues, "every stage needs an id")
			continue
		}
		if ids[stage.ID] {
			issues = append(issues, fmt.Sprintf("duplicate stage id %q", stage.ID))
		}
		ids[stage.ID] = true
		orders = append(orders, stage.Order)

		if stage.Name == "" {
			issues = append(issues, fmt.Sprintf("stage %q needs a name", stage.ID))
		}
		switch stage.Type {
		case StageTypeEvaluation, StageTypeMeeting, StageTypeReview, StageTypeApproval:
		default:
			issues = append(issues, fmt.Sprintf("stage %q has unknown type %q", stage.ID, stage.Type))
		}
		if len(stage.Attendees) == 0 {
			issues = append(issues, fmt.Sprintf("stage %q must have at least one attendee", stage.ID))
		}
		if stage.Type == StageTypeEvaluation && stage.EvaluationFormID == "" {
			issues = append(issues, fmt.Sprintf("evaluation stage %q must reference a form", stage.ID))
		}
	}

	sort.Ints(orders)
	for i, order := range orders {
		if order != i+1 {
			issues = append(issues, "stage order values must be unique and run 1..n")
			break
		}
	}

	for _, stage := range t.Stages {
		for _, dep := range stage.RequiredStageIDs {
			if dep == stage.ID {
				issues = append(issues, fmt.Sprintf("stage %q requires itself", stage.ID))
			} else if !ids[dep] {
				issues = append(issues, fmt.Sprintf("stage %q requires unknown stage %q", stage.ID, dep))
			}
		}
	}

	if cycle := findDependencyCycle(t.Stages); len(cycle) > 0 {
		issues = append(issues, fmt.Sprintf("stage dependencies form a cycle through %q", cycle[0]))
	}

	return issues
}

// findDependencyCycle runs a DFS over requiredStageIds and returns the
// stages on the first cycle found, or nil.
func findDependencyCycle(stages []Stage) []string {
	deps := make(map[string][]string, len(stages))
	for _, stage := range stages {
		deps[stage.ID] = stage.RequiredStageIDs
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(stages))

	var cycle []string
	var visit func(id string) bool
	visit = func(id string) bool {
		switch state[id] {
		case visiting:
			cycle = append(cycle, id)
			return true
		case done:
			return false
		}
		state[id] = visiting
		for _, dep := range deps[id] {
			if _, known := deps[dep]; !known {
				continue
			}
			if visit(dep) {
				return true
			}
		}
		state[id] = done
		return false
	}

	for _, stage := range stages {
		if state[stage.ID] == unvisited && visit(stage.ID) {
			return cycle
		}
	}
	return nil
}

// ValidateManagers enforces the employee-side chain invariants: at most one
// entry per level, and each entry either internal or external, not both.
func ValidateManagers(managers []ManagerLevel) []string {
	var issues []string
	seen := make(map[int]bool, len(managers))
	for _, m := range managers {
		if m.Level < 1 {
			issues = append(issues, "manager level must be 1 or higher")
			continue
		}
		if seen[m.Level] {
			issues = append(issues, fmt.Sprintf("duplicate manager entry for level %d", m.Level))
		}
		seen[m.Level] = true
		if m.EmployeeID != "" && m.IsExternal {
			issues = append(issues, fmt.Sprintf("manager level %d is both internal and external", m.Level))
		}
		if m.IsExternal && m.ExternalName == "" {
			issues = append(issues, fmt.Sprintf("external manager at level %d needs a name", m.Level))
		}
	}
	return issues
}
