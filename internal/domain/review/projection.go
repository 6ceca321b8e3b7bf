package review

import "fmt"

// BuildAppraisal folds an assignment into the employee-facing appraisal
// view. Returns nil when the template or employee cannot be resolved.
func BuildAppraisal(a WorkflowAssignment, lookupTemplate func(string) *WorkflowTemplate, lookupEmployee func(string) *Employee) *Appraisal {
	template := lookupTemplate(a.WorkflowTemplateID)
	if template == nil {
		return nil
	}
	emp := lookupEmployee(a.EmployeeID)
	if emp == nil {
		return nil
	}

	completed, total := completionCounts(a)
	allDone := total > 0 && completed == total

	status := appraisalStatus(a.Status)
	if allDone && a.Status != AssignmentCancelled {
		status = AppraisalStatusCompleted
	}

	period := a.StartDate.Format("Jan 2, 2006") + " - "
	if a.EndDate != nil {
		period += a.EndDate.Format("Jan 2, 2006")
	} else {
		period += "ongoing"
	}

	return &Appraisal{
		ID:            "appraisal-" + a.ID,
		AssignmentID:  a.ID,
		EmployeeID:    emp.ID,
		EmployeeName:  emp.FullName(),
		TemplateID:    template.ID,
		TemplateName:  template.Name,
		Status:        status,
		OverallRating: OverallRating(a),
		ReviewPeriod:  period,
		Reviewers:     reviewerNames(a, *template, *emp, lookupEmployee),
		Comments:      appraisalComments(a, completed, total),
		StartDate:     a.StartDate,
		EndDate:       a.EndDate,
	}
}

func appraisalStatus(assignmentStatus string) string {
	switch assignmentStatus {
	case AssignmentNotStarted:
		return AppraisalStatusDraft
	case AssignmentInProgress:
		return AppraisalStatusInProgress
	case AssignmentCompleted:
		return AppraisalStatusCompleted
	case AssignmentCancelled:
		return AppraisalStatusCancelled
	default:
		return AppraisalStatusDraft
	}
}

func completionCounts(a WorkflowAssignment) (completed, total int) {
	for _, c := range a.StageCompletions {
		total++
		if c.Completed {
			completed++
		}
	}
	return completed, total
}

// OverallRating averages every numeric value in the 1-5 range found across
// all stage form data, regardless of which field produced it. Returns nil
// when no such value exists.
func OverallRating(a WorkflowAssignment) *float64 {
	var sum float64
	var count int
	for _, completion := range a.StageCompletions {
		for _, value := range completion.FormData {
			if rating, ok := numericRating(value); ok {
				sum += rating
				count++
			}
		}
	}
	if count == 0 {
		return nil
	}
	mean := sum / float64(count)
	return &mean
}

func numericRating(value any) (float64, bool) {
	var n float64
	switch v := value.(type) {
	case int:
		n = float64(v)
	case float64:
		n = v
	default:
		return 0, false
	}
	if n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}

// reviewerNames collects the deduplicated display names of the effective
// managers referenced by stages that carry a manager level.
func reviewerNames(a WorkflowAssignment, template WorkflowTemplate, emp Employee, lookupEmployee func(string) *Employee) []string {
	managers := EffectiveManagers(a, emp)
	seen := make(map[string]bool)
	var names []string
	for _, stage := range template.Stages {
		if stage.ManagerLevel == 0 {
			continue
		}
		m := ManagerAtLevel(managers, stage.ManagerLevel)
		if m == nil {
			continue
		}
		name := ManagerDisplayName(*m, lookupEmployee)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func appraisalComments(a WorkflowAssignment, completed, total int) string {
	switch {
	case total > 0 && completed == total:
		return fmt.Sprintf("All %d stages completed.", total)
	case a.CurrentStageID != "":
		return fmt.Sprintf("%d of %d stages completed, review in progress.", completed, total)
	default:
		return fmt.Sprintf("%d of %d stages completed, review not yet started.", completed, total)
	}
}

// FormCompletionByRole tallies evaluation-form progress separately for the
// employee's own forms and for manager-side forms. A stage attended by both
// groups counts toward both tallies.
func FormCompletionByRole(a WorkflowAssignment, template WorkflowTemplate) FormCompletion {
	var fc FormCompletion
	for _, stage := range template.Stages {
		if stage.Type != StageTypeEvaluation || stage.EvaluationFormID == "" {
			continue
		}
		done := a.StageCompletions[stage.ID].Completed
		if stage.HasEmployeeAttendee() {
			fc.EmployeeForms.Total++
			if done {
				fc.EmployeeForms.Completed++
			}
		}
		if len(stage.ManagerAttendeeLevels()) > 0 {
			fc.ManagerForms.Total++
			if done {
				fc.ManagerForms.Completed++
			}
		}
	}
	return fc
}
