package review

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func fixedNow() time.Time {
	return date("2024-06-15")
}

func testGenerator(templates []WorkflowTemplate, forms []EvaluationForm) *Generator {
	return NewGenerator(templates, forms, fixedNow, rand.New(rand.NewSource(42)), zerolog.Nop())
}

func reviewCycleTemplate() WorkflowTemplate {
	return WorkflowTemplate{
		ID:   "tmpl-A",
		Name: "Quarterly Review",
		Stages: []Stage{
			{ID: "s1", Name: "Self Evaluation", Order: 1, Type: StageTypeEvaluation, EvaluationFormID: "form-1", Attendees: []Attendee{EmployeeAttendee()}},
			{ID: "s2", Name: "Review Meeting", Order: 2, Type: StageTypeMeeting, Attendees: []Attendee{EmployeeAttendee(), ManagerAttendee(1)}},
			{ID: "s3", Name: "Final Approval", Order: 3, Type: StageTypeApproval, Attendees: []Attendee{ManagerAttendee(2)}},
		},
		Interval: MeetingFrequency{Type: FrequencyQuarterly},
		IsActive: true,
	}
}

func selfEvalForm() EvaluationForm {
	return EvaluationForm{
		ID:   "form-1",
		Name: "Self Evaluation",
		Fields: []FormField{
			{ID: "q1", Label: "Overall rating", Type: FieldTypeRating, Min: 1, Max: 5},
			{ID: "q2", Label: "Key achievements this period", Type: FieldTypeTextarea},
			{ID: "q3", Label: "Focus areas", Type: FieldTypeCheckbox, Options: []string{"Delivery", "Quality", "Collaboration", "Leadership", "Planning"}},
			{ID: "q4", Label: "Review date", Type: FieldTypeDate},
		},
	}
}

// A one-manager employee assigned a template whose approval stage they are
// not eligible for gets an assignment covering exactly the two surviving
// stages.
func TestGenerateFiltersStagesByRole(t *testing.T) {
	emp := Employee{
		ID:                  "e1",
		Status:              EmployeeStatusActive,
		Managers:            []ManagerLevel{{Level: 1, EmployeeID: "m1"}},
		AssignedWorkflowIDs: []string{"tmpl-A"},
	}
	gen := testGenerator([]WorkflowTemplate{reviewCycleTemplate()}, []EvaluationForm{selfEvalForm()})

	assignments := gen.Generate([]Employee{emp})
	if len(assignments) != 1 {
		t.Fatalf("expected one assignment, got %d", len(assignments))
	}

	a := assignments[0]
	if a.ID != "assignment-e1-tmpl-A-0" {
		t.Fatalf("unexpected assignment id %s", a.ID)
	}
	if len(a.StageCompletions) != 2 {
		t.Fatalf("expected exactly 2 stage completions, got %d", len(a.StageCompletions))
	}
	if _, ok := a.StageCompletions["s1"]; !ok {
		t.Fatal("expected evaluation stage to survive filtering")
	}
	if _, ok := a.StageCompletions["s2"]; !ok {
		t.Fatal("expected meeting stage to survive filtering")
	}
	if _, ok := a.StageCompletions["s3"]; ok {
		t.Fatal("approval stage must not appear for a one-manager employee")
	}

	// currentStageId points at the first incomplete surviving stage.
	if a.CurrentStageID != "" {
		if !a.StageCompletions["s1"].Completed && a.CurrentStageID != "s1" {
			t.Fatalf("expected current stage s1, got %s", a.CurrentStageID)
		}
		if a.StageCompletions["s1"].Completed && a.CurrentStageID != "s2" {
			t.Fatalf("expected current stage s2, got %s", a.CurrentStageID)
		}
	} else {
		for id, c := range a.StageCompletions {
			if !c.Completed {
				t.Fatalf("no current stage but %s is incomplete", id)
			}
		}
	}
}

func TestGenerateSkipsUnknownTemplatesAndEmptyFilterSets(t *testing.T) {
	topExec := Employee{
		ID:                  "exec",
		Status:              EmployeeStatusActive,
		AssignedWorkflowIDs: []string{"missing", "tmpl-self"},
	}
	selfOnly := WorkflowTemplate{
		ID:       "tmpl-self",
		Name:     "Self Evaluation Only",
		Stages:   []Stage{{ID: "s1", Order: 1, Type: StageTypeEvaluation, EvaluationFormID: "form-1", Attendees: []Attendee{EmployeeAttendee()}}},
		Interval: MeetingFrequency{Type: FrequencyQuarterly},
	}
	gen := testGenerator([]WorkflowTemplate{selfOnly}, []EvaluationForm{selfEvalForm()})

	// With no managers above them, the only stage is filtered out, so no
	// assignment is produced for either template id.
	assignments := gen.Generate([]Employee{topExec})
	if len(assignments) != 0 {
		t.Fatalf("expected no assignments, got %+v", assignments)
	}
}

func TestGenerateStaggersMultipleAssignments(t *testing.T) {
	emp := Employee{
		ID:                  "e1",
		Status:              EmployeeStatusActive,
		Managers:            []ManagerLevel{{Level: 1, EmployeeID: "m1"}},
		AssignedWorkflowIDs: []string{"tmpl-A", "tmpl-A"},
	}
	gen := testGenerator([]WorkflowTemplate{reviewCycleTemplate()}, []EvaluationForm{selfEvalForm()})

	assignments := gen.Generate([]Employee{emp})
	if len(assignments) != 2 {
		t.Fatalf("expected two assignments, got %d", len(assignments))
	}
	if !assignments[0].StartDate.Equal(fixedNow()) {
		t.Fatalf("first assignment should start now, got %v", assignments[0].StartDate)
	}
	if !assignments[1].StartDate.Equal(fixedNow().AddDate(0, -1, 0)) {
		t.Fatalf("second assignment should start one month earlier, got %v", assignments[1].StartDate)
	}
	if assignments[1].ID != "assignment-e1-tmpl-A-1" {
		t.Fatalf("unexpected second assignment id %s", assignments[1].ID)
	}
}

func TestGenerateCancelsInactiveEmployees(t *testing.T) {
	emp := Employee{
		ID:                  "e1",
		Status:              EmployeeStatusInactive,
		Managers:            []ManagerLevel{{Level: 1, EmployeeID: "m1"}},
		AssignedWorkflowIDs: []string{"tmpl-A"},
	}
	gen := testGenerator([]WorkflowTemplate{reviewCycleTemplate()}, []EvaluationForm{selfEvalForm()})

	assignments := gen.Generate([]Employee{emp})
	if len(assignments) != 1 {
		t.Fatalf("expected one assignment, got %d", len(assignments))
	}
	// The window ends in the future, so the pre-override status cannot be
	// completed and the inactive rule must force cancellation.
	if assignments[0].Status != AssignmentCancelled {
		t.Fatalf("expected cancelled assignment for inactive employee, got %s", assignments[0].Status)
	}
	for id, c := range assignments[0].StageCompletions {
		if c.Completed {
			t.Fatalf("cancelled assignment should have no seeded completions, %s is completed", id)
		}
	}
}

func TestGenerateSeedsCompletionMetadata(t *testing.T) {
	emp := Employee{
		ID:                  "e1",
		Status:              EmployeeStatusActive,
		Managers:            []ManagerLevel{{Level: 1, EmployeeID: "m1"}},
		AssignedWorkflowIDs: []string{"tmpl-A"},
	}
	gen := testGenerator([]WorkflowTemplate{reviewCycleTemplate()}, []EvaluationForm{selfEvalForm()})

	assignments := gen.Generate([]Employee{emp})
	a := assignments[0]
	for id, c := range a.StageCompletions {
		if !c.Completed {
			continue
		}
		if c.CompletedDate == nil {
			t.Fatalf("completed stage %s has no completion date", id)
		}
		if c.CompletedDate.Before(a.StartDate) {
			t.Fatalf("completion date %v precedes assignment start %v", c.CompletedDate, a.StartDate)
		}
		if c.CompletedBy == "" {
			t.Fatalf("completed stage %s has no actor", id)
		}
	}
}

func TestCompletedByUsesBaseManagers(t *testing.T) {
	gen := testGenerator(nil, nil)
	emp := Employee{ID: "e1", Managers: []ManagerLevel{{Level: 1, EmployeeID: "m1"}, {Level: 2, EmployeeID: "m2"}}}

	selfStage := Stage{ID: "s1", Attendees: []Attendee{EmployeeAttendee()}}
	if got := gen.completedBy(emp, selfStage); got != "e1" {
		t.Fatalf("expected employee attribution, got %q", got)
	}

	managerStage := Stage{ID: "s2", Attendees: []Attendee{ManagerAttendee(2)}}
	if got := gen.completedBy(emp, managerStage); got != "m2" {
		t.Fatalf("expected level-2 manager attribution, got %q", got)
	}

	externalOnly := Employee{ID: "e2", Managers: []ManagerLevel{{Level: 1, IsExternal: true, ExternalName: "Advisor"}}}
	if got := gen.completedBy(externalOnly, Stage{ID: "s3", Attendees: []Attendee{ManagerAttendee(1)}}); got != "" {
		t.Fatalf("expected no attribution for external manager, got %q", got)
	}
}

func TestCompletionDateDistribution(t *testing.T) {
	start := date("2024-01-01")
	end := date("2024-01-05")

	first := completionDate(0, 3, start, &end)
	second := completionDate(1, 3, start, &end)
	third := completionDate(2, 3, start, &end)
	if !first.Equal(date("2024-01-02")) || !second.Equal(date("2024-01-03")) || !third.Equal(date("2024-01-04")) {
		t.Fatalf("expected even distribution, got %v, %v, %v", first, second, third)
	}

	noEnd := completionDate(2, 3, start, nil)
	if !noEnd.Equal(date("2024-01-04")) {
		t.Fatalf("expected day increments without end date, got %v", noEnd)
	}
}

func TestSeedFormDataShapes(t *testing.T) {
	gen := testGenerator(nil, nil)
	form := selfEvalForm()
	selfStage := Stage{ID: "s1", Type: StageTypeEvaluation, Attendees: []Attendee{EmployeeAttendee()}}

	for i := 0; i < 20; i++ {
		data := gen.seedFormData(form, selfStage)

		rating, ok := data["q1"].(int)
		if !ok || rating < 3 || rating > 4 {
			t.Fatalf("self rating out of range: %v", data["q1"])
		}
		text, ok := data["q2"].(string)
		if !ok || !strings.Contains(text, "roadmap") {
			t.Fatalf("expected achievement paragraph, got %v", data["q2"])
		}
		picks, ok := data["q3"].([]string)
		if !ok || len(picks) < 2 || len(picks) > 4 {
			t.Fatalf("expected 2-4 checkbox picks, got %v", data["q3"])
		}
		if data["q4"] != "Response" {
			t.Fatalf("expected literal placeholder for date field, got %v", data["q4"])
		}
	}

	managerStage := Stage{ID: "s2", Type: StageTypeEvaluation, Attendees: []Attendee{ManagerAttendee(1)}}
	for i := 0; i < 20; i++ {
		data := gen.seedFormData(form, managerStage)
		rating, ok := data["q1"].(int)
		if !ok || rating < 3 || rating > 5 {
			t.Fatalf("manager rating out of range: %v", data["q1"])
		}
	}
}

func TestGenerateIsDeterministicForFixedSeed(t *testing.T) {
	emp := Employee{
		ID:                  "e1",
		Status:              EmployeeStatusActive,
		Managers:            []ManagerLevel{{Level: 1, EmployeeID: "m1"}},
		AssignedWorkflowIDs: []string{"tmpl-A"},
	}
	first := testGenerator([]WorkflowTemplate{reviewCycleTemplate()}, []EvaluationForm{selfEvalForm()}).Generate([]Employee{emp})
	second := testGenerator([]WorkflowTemplate{reviewCycleTemplate()}, []EvaluationForm{selfEvalForm()}).Generate([]Employee{emp})

	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	if first[0].Status != second[0].Status || first[0].CurrentStageID != second[0].CurrentStageID {
		t.Fatalf("runs differ: %+v vs %+v", first[0], second[0])
	}
	for id, c := range first[0].StageCompletions {
		if c.Completed != second[0].StageCompletions[id].Completed {
			t.Fatalf("completion for %s differs between runs", id)
		}
	}
}
