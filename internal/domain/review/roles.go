package review

// ClassifyRole derives an employee's role category from the roster. Managing
// someone else wins over the employee's own manager count.
func ClassifyRole(emp Employee, roster []Employee) string {
	for _, other := range roster {
		if other.ID == emp.ID {
			continue
		}
		for _, m := range other.Managers {
			if m.EmployeeID != "" && m.EmployeeID == emp.ID {
				return RoleManagesOthers
			}
		}
	}

	count := 0
	for _, m := range emp.Managers {
		if !m.Empty() {
			count++
		}
	}
	switch {
	case count == 0:
		return RoleNoManagers
	case count == 1:
		return RoleOneManager
	default:
		return RoleTwoManagers
	}
}

// StageTypeAllowed is the fixed policy deciding which stage types apply to a
// role category. Employees with nobody above them never self-evaluate;
// people who manage others are the approving tier and never need approval;
// individual contributors never perform review or approval duties.
func StageTypeAllowed(stageType, roleCategory string) bool {
	switch roleCategory {
	case RoleNoManagers:
		return stageType != StageTypeEvaluation
	case RoleOneManager, RoleTwoManagers:
		return stageType == StageTypeEvaluation || stageType == StageTypeMeeting
	case RoleManagesOthers:
		return stageType != StageTypeApproval
	default:
		return false
	}
}

// FilterStages returns the stages of a template that apply to the employee,
// preserving stage order. A stage excluded here never appears in the
// employee's assignment at all.
func FilterStages(stages []Stage, emp Employee, roster []Employee) []Stage {
	role := ClassifyRole(emp, roster)
	filtered := make([]Stage, 0, len(stages))
	for _, stage := range stages {
		if StageTypeAllowed(stage.Type, role) {
			filtered = append(filtered, stage)
		}
	}
	return filtered
}
