package reports

import (
	"bytes"
	"testing"
	"time"

	"appraisal/internal/domain/review"
)

type fakeData struct {
	assignments []review.WorkflowAssignment
	templates   map[string]review.WorkflowTemplate
	employees   map[string]review.Employee
}

func (f *fakeData) ListAssignments(employeeID string) []review.WorkflowAssignment {
	var out []review.WorkflowAssignment
	for _, a := range f.assignments {
		if employeeID == "" || a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeData) LookupTemplate(id string) *review.WorkflowTemplate {
	if t, ok := f.templates[id]; ok {
		return &t
	}
	return nil
}

func (f *fakeData) LookupEmployee(id string) *review.Employee {
	if e, ok := f.employees[id]; ok {
		return &e
	}
	return nil
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
}

func testData() *fakeData {
	start := fixedNow().AddDate(0, -2, 0)
	completed := fixedNow().AddDate(0, -1, 0)
	tmpl := review.WorkflowTemplate{
		ID:   "tmpl-1",
		Name: "Quarterly Review",
		Stages: []review.Stage{
			{ID: "s1", Name: "Self Evaluation", Order: 1, Type: review.StageTypeEvaluation, EvaluationFormID: "form-1", Attendees: []review.Attendee{review.EmployeeAttendee()}},
			{ID: "s2", Name: "Review Meeting", Order: 2, Type: review.StageTypeMeeting, Attendees: []review.Attendee{review.EmployeeAttendee(), review.ManagerAttendee(1)}},
		},
	}
	return &fakeData{
		templates: map[string]review.WorkflowTemplate{"tmpl-1": tmpl},
		employees: map[string]review.Employee{
			"emp-1": {ID: "emp-1", FirstName: "Nora", LastName: "Vik", Department: "Engineering"},
			"emp-2": {ID: "emp-2", FirstName: "Sven", LastName: "Holt", Department: "Sales"},
		},
		assignments: []review.WorkflowAssignment{
			{
				ID:                 "a1",
				EmployeeID:         "emp-1",
				WorkflowTemplateID: "tmpl-1",
				Status:             review.AssignmentInProgress,
				StartDate:          start,
				StageCompletions: map[string]review.StageCompletion{
					"s1": {Completed: true, CompletedDate: &completed, FormData: map[string]any{"q1": 4}},
					"s2": {},
				},
				CurrentStageID: "s2",
			},
			{
				ID:                 "a2",
				EmployeeID:         "emp-2",
				WorkflowTemplateID: "tmpl-1",
				Status:             review.AssignmentCompleted,
				StartDate:          start,
				StageCompletions: map[string]review.StageCompletion{
					"s1": {Completed: true, CompletedDate: &completed, FormData: map[string]any{"q1": 2}},
					"s2": {Completed: true, CompletedDate: &completed},
				},
			},
			// Dangling template reference, must be skipped.
			{
				ID:                 "a3",
				EmployeeID:         "emp-1",
				WorkflowTemplateID: "tmpl-gone",
				StageCompletions:   map[string]review.StageCompletion{},
			},
		},
	}
}

func TestBuildSummaryAggregates(t *testing.T) {
	svc := NewService(testData(), fixedNow)
	summary := svc.BuildSummary()

	if summary.Appraisals != 2 {
		t.Fatalf("expected 2 appraisals, got %d", summary.Appraisals)
	}
	if summary.StatusCounts[review.AppraisalStatusInProgress] != 1 {
		t.Fatalf("expected one in-progress appraisal, got %+v", summary.StatusCounts)
	}
	if summary.StatusCounts[review.AppraisalStatusCompleted] != 1 {
		t.Fatalf("expected one completed appraisal, got %+v", summary.StatusCounts)
	}
	if summary.AverageRating == nil || *summary.AverageRating != 3 {
		t.Fatalf("expected average rating 3, got %v", summary.AverageRating)
	}

	if len(summary.Departments) != 2 {
		t.Fatalf("expected 2 departments, got %+v", summary.Departments)
	}
	if summary.Departments[0].Department != "Engineering" || summary.Departments[1].Department != "Sales" {
		t.Fatalf("expected sorted departments, got %+v", summary.Departments)
	}
	if summary.Departments[1].Completed != 1 {
		t.Fatalf("expected Sales to have 1 completed, got %+v", summary.Departments[1])
	}
}

func TestSummaryPDFRenders(t *testing.T) {
	svc := NewService(testData(), fixedNow)
	data, err := SummaryPDF(svc.BuildSummary())
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected a PDF document, got %q", data[:minLen(len(data), 8)])
	}
}

func minLen(a, b int) int {
	if a < b {
		return a
	}
	return b
}
