package review

// EffectiveManagers returns the manager chain in force for an assignment.
// A non-empty override replaces the employee's default chain wholesale;
// there is no per-level merge.
func EffectiveManagers(assignment WorkflowAssignment, emp Employee) []ManagerLevel {
	if len(assignment.ManagerOverrides) > 0 {
		return assignment.ManagerOverrides
	}
	if emp.Managers == nil {
		return []ManagerLevel{}
	}
	return emp.Managers
}

// ManagerAtLevel finds the entry for a given level, or nil.
func ManagerAtLevel(managers []ManagerLevel, level int) *ManagerLevel {
	for i := range managers {
		if managers[i].Level == level {
			return &managers[i]
		}
	}
	return nil
}

// ManagerDisplayName resolves an entry to a readable name: the referenced
// employee's full name for internal entries, the external contact name
// otherwise.
func ManagerDisplayName(m ManagerLevel, lookupEmployee func(string) *Employee) string {
	if m.EmployeeID != "" {
		if emp := lookupEmployee(m.EmployeeID); emp != nil {
			return emp.FullName()
		}
		return ""
	}
	return m.ExternalName
}
