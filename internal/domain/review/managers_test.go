package review

import "testing"

func TestEffectiveManagersOverrideReplacesWholesale(t *testing.T) {
	emp := Employee{ID: "e1", Managers: []ManagerLevel{
		{Level: 1, EmployeeID: "Y"},
		{Level: 2, EmployeeID: "Z"},
	}}
	assignment := WorkflowAssignment{ManagerOverrides: []ManagerLevel{{Level: 1, EmployeeID: "X"}}}

	managers := EffectiveManagers(assignment, emp)
	if len(managers) != 1 {
		t.Fatalf("expected override to replace defaults entirely, got %+v", managers)
	}
	if managers[0].Level != 1 || managers[0].EmployeeID != "X" {
		t.Fatalf("unexpected effective manager: %+v", managers[0])
	}
}

func TestEffectiveManagersFallsBackToDefaults(t *testing.T) {
	emp := Employee{ID: "e1", Managers: []ManagerLevel{{Level: 1, EmployeeID: "Y"}}}

	managers := EffectiveManagers(WorkflowAssignment{}, emp)
	if len(managers) != 1 || managers[0].EmployeeID != "Y" {
		t.Fatalf("expected default managers, got %+v", managers)
	}

	empty := EffectiveManagers(WorkflowAssignment{}, Employee{ID: "e2"})
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice for employee without managers, got %#v", empty)
	}
}

func TestManagerDisplayName(t *testing.T) {
	lookup := func(id string) *Employee {
		if id == "m1" {
			return &Employee{ID: "m1", FirstName: "Greta", LastName: "Holm"}
		}
		return nil
	}

	if got := ManagerDisplayName(ManagerLevel{Level: 1, EmployeeID: "m1"}, lookup); got != "Greta Holm" {
		t.Fatalf("expected internal manager name, got %q", got)
	}
	if got := ManagerDisplayName(ManagerLevel{Level: 2, IsExternal: true, ExternalName: "Board Contact"}, lookup); got != "Board Contact" {
		t.Fatalf("expected external name, got %q", got)
	}
	if got := ManagerDisplayName(ManagerLevel{Level: 1, EmployeeID: "missing"}, lookup); got != "" {
		t.Fatalf("expected empty name for unresolved reference, got %q", got)
	}
}
