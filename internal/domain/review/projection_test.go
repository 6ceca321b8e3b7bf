package review

import (
	"testing"
	"time"
)

func projectionFixture() (WorkflowAssignment, WorkflowTemplate, Employee) {
	template := WorkflowTemplate{
		ID:   "tmpl-A",
		Name: "Quarterly Review",
		Stages: []Stage{
			{ID: "s1", Name: "Self Evaluation", Order: 1, Type: StageTypeEvaluation, EvaluationFormID: "form-1", Attendees: []Attendee{EmployeeAttendee()}},
			{ID: "s2", Name: "Manager Evaluation", Order: 2, Type: StageTypeEvaluation, EvaluationFormID: "form-2", ManagerLevel: 1, Attendees: []Attendee{ManagerAttendee(1)}},
		},
	}
	emp := Employee{
		ID: "e1", FirstName: "Nora", LastName: "Lindqvist",
		Managers: []ManagerLevel{{Level: 1, EmployeeID: "m1"}},
	}
	end := date("2024-04-01")
	assignment := WorkflowAssignment{
		ID:                 "assignment-e1-tmpl-A-0",
		WorkflowTemplateID: "tmpl-A",
		EmployeeID:         "e1",
		Status:             AssignmentInProgress,
		StartDate:          date("2024-01-01"),
		EndDate:            &end,
		CurrentStageID:     "s2",
		StageCompletions: map[string]StageCompletion{
			"s1": {Completed: true, FormData: map[string]any{"q1": 4, "q2": "text"}},
			"s2": {FormData: map[string]any{"q3": 5}},
		},
	}
	return assignment, template, emp
}

func lookupsFor(template WorkflowTemplate, employees ...Employee) (func(string) *WorkflowTemplate, func(string) *Employee) {
	lookupTemplate := func(id string) *WorkflowTemplate {
		if id == template.ID {
			return &template
		}
		return nil
	}
	lookupEmployee := func(id string) *Employee {
		for i := range employees {
			if employees[i].ID == id {
				return &employees[i]
			}
		}
		return nil
	}
	return lookupTemplate, lookupEmployee
}

func TestBuildAppraisalNilOnUnresolvedReferences(t *testing.T) {
	assignment, template, emp := projectionFixture()
	lookupTemplate, lookupEmployee := lookupsFor(template, emp)

	if got := BuildAppraisal(assignment, func(string) *WorkflowTemplate { return nil }, lookupEmployee); got != nil {
		t.Fatalf("expected nil for missing template, got %+v", got)
	}
	if got := BuildAppraisal(assignment, lookupTemplate, func(string) *Employee { return nil }); got != nil {
		t.Fatalf("expected nil for missing employee, got %+v", got)
	}
}

func TestBuildAppraisalRatingMean(t *testing.T) {
	assignment, template, emp := projectionFixture()
	lookupTemplate, lookupEmployee := lookupsFor(template, emp, Employee{ID: "m1", FirstName: "Greta", LastName: "Holm"})

	appraisal := BuildAppraisal(assignment, lookupTemplate, lookupEmployee)
	if appraisal == nil {
		t.Fatal("expected appraisal")
	}
	if appraisal.OverallRating == nil || *appraisal.OverallRating != 4.5 {
		t.Fatalf("expected mean 4.5 over {4, 5}, got %v", appraisal.OverallRating)
	}
	if appraisal.Status != AppraisalStatusInProgress {
		t.Fatalf("expected In Progress, got %s", appraisal.Status)
	}
	if len(appraisal.Reviewers) != 1 || appraisal.Reviewers[0] != "Greta Holm" {
		t.Fatalf("unexpected reviewers: %+v", appraisal.Reviewers)
	}
}

func TestBuildAppraisalNoRatings(t *testing.T) {
	assignment, template, emp := projectionFixture()
	assignment.StageCompletions = map[string]StageCompletion{
		"s1": {Completed: true, FormData: map[string]any{"q1": "prose only", "q2": 9}},
		"s2": {},
	}
	lookupTemplate, lookupEmployee := lookupsFor(template, emp)

	appraisal := BuildAppraisal(assignment, lookupTemplate, lookupEmployee)
	if appraisal.OverallRating != nil {
		t.Fatalf("expected nil rating without 1-5 numeric values, got %v", *appraisal.OverallRating)
	}
}

func TestBuildAppraisalCompletionForcesStatus(t *testing.T) {
	assignment, template, emp := projectionFixture()
	assignment.Status = AssignmentInProgress
	assignment.StageCompletions = map[string]StageCompletion{
		"s1": {Completed: true},
		"s2": {Completed: true},
	}
	lookupTemplate, lookupEmployee := lookupsFor(template, emp)

	appraisal := BuildAppraisal(assignment, lookupTemplate, lookupEmployee)
	if appraisal.Status != AppraisalStatusCompleted {
		t.Fatalf("expected forced Completed status, got %s", appraisal.Status)
	}

	assignment.Status = AssignmentCancelled
	appraisal = BuildAppraisal(assignment, lookupTemplate, lookupEmployee)
	if appraisal.Status != AppraisalStatusCancelled {
		t.Fatalf("cancelled must not be overridden, got %s", appraisal.Status)
	}
}

func TestBuildAppraisalOverrideAwareReviewers(t *testing.T) {
	assignment, template, emp := projectionFixture()
	assignment.ManagerOverrides = []ManagerLevel{{Level: 1, IsExternal: true, ExternalName: "Interim Lead"}}
	lookupTemplate, lookupEmployee := lookupsFor(template, emp, Employee{ID: "m1", FirstName: "Greta", LastName: "Holm"})

	appraisal := BuildAppraisal(assignment, lookupTemplate, lookupEmployee)
	if len(appraisal.Reviewers) != 1 || appraisal.Reviewers[0] != "Interim Lead" {
		t.Fatalf("expected override reviewer, got %+v", appraisal.Reviewers)
	}
}

func TestFormCompletionTallyCountsBothGroups(t *testing.T) {
	template := WorkflowTemplate{
		ID: "tmpl-B",
		Stages: []Stage{
			{ID: "s1", Type: StageTypeEvaluation, EvaluationFormID: "form-1", Attendees: []Attendee{EmployeeAttendee(), ManagerAttendee(1)}},
			{ID: "s2", Type: StageTypeEvaluation, EvaluationFormID: "form-2", Attendees: []Attendee{ManagerAttendee(1)}},
			{ID: "s3", Type: StageTypeMeeting, Attendees: []Attendee{EmployeeAttendee()}},
		},
	}
	assignment := WorkflowAssignment{
		StageCompletions: map[string]StageCompletion{
			"s1": {Completed: true},
			"s2": {},
		},
	}

	fc := FormCompletionByRole(assignment, template)
	if fc.EmployeeForms.Total != 1 || fc.EmployeeForms.Completed != 1 {
		t.Fatalf("unexpected employee tally: %+v", fc.EmployeeForms)
	}
	if fc.ManagerForms.Total != 2 || fc.ManagerForms.Completed != 1 {
		t.Fatalf("unexpected manager tally: %+v", fc.ManagerForms)
	}
}

func TestBuildTasksStatusCascade(t *testing.T) {
	assignment, template, emp := projectionFixture()
	template.Stages[0].DueDateType = DueBeforeInterval
	template.Stages[0].DueDateOffset = 1
	template.Stages[1].DueDateType = DueAfterInterval
	template.Stages[1].DueDateOffset = 26

	now := date("2024-02-01")
	tasks := BuildTasks(assignment, template, emp, now)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Status != TaskStatusCompleted {
		t.Fatalf("completed stage should beat overdue, got %s", tasks[0].Status)
	}
	if tasks[1].Status != TaskStatusInProgress {
		t.Fatalf("current stage with future due date should be in_progress, got %s", tasks[1].Status)
	}

	// An incomplete non-current stage with a passed due date is overdue.
	assignment.CurrentStageID = "s1"
	assignment.StageCompletions["s1"] = StageCompletion{}
	template.Stages[1].DueDateType = DueOnInterval
	template.Stages[1].DueDateOffset = 0
	tasks = BuildTasks(assignment, template, emp, now)
	if tasks[1].Status != TaskStatusOverdue {
		t.Fatalf("expected overdue, got %s", tasks[1].Status)
	}

	assignment.Status = AssignmentCancelled
	tasks = BuildTasks(assignment, template, emp, now)
	for _, task := range tasks {
		if task.Status != TaskStatusCancelled {
			t.Fatalf("cancelled assignment must cancel every task, got %s", task.Status)
		}
	}
}

func TestBuildTasksSkipsFilteredStages(t *testing.T) {
	assignment, template, emp := projectionFixture()
	delete(assignment.StageCompletions, "s2")

	tasks := BuildTasks(assignment, template, emp, time.Now())
	if len(tasks) != 1 || tasks[0].StageID != "s1" {
		t.Fatalf("expected task only for present stages, got %+v", tasks)
	}
}
