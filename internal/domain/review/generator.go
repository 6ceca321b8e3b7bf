package review

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// Generator builds the synthetic workflow assignments for a roster. The
// clock and random source are injected so demo data is reproducible under a
// fixed seed.
type Generator struct {
	Templates map[string]WorkflowTemplate
	Forms     map[string]EvaluationForm
	Now       func() time.Time
	Rand      *rand.Rand
	Logger    zerolog.Logger
}

func NewGenerator(templates []WorkflowTemplate, forms []EvaluationForm, now func() time.Time, rnd *rand.Rand, logger zerolog.Logger) *Generator {
	tm := make(map[string]WorkflowTemplate, len(templates))
	for _, t := range templates {
		tm[t.ID] = t
	}
	fm := make(map[string]EvaluationForm, len(forms))
	for _, f := range forms {
		fm[f.ID] = f
	}
	if now == nil {
		now = time.Now
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{Templates: tm, Forms: fm, Now: now, Rand: rnd, Logger: logger}
}

// Generate produces one assignment per (employee, assigned template id)
// pair. Unknown template ids are skipped silently, as are pairings where
// role filtering leaves no stages at all.
func (g *Generator) Generate(employees []Employee) []WorkflowAssignment {
	var assignments []WorkflowAssignment
	for _, emp := range employees {
		for index, workflowID := range emp.AssignedWorkflowIDs {
			template, ok := g.Templates[workflowID]
			if !ok {
				g.Logger.Debug().Str("employeeId", emp.ID).Str("workflowId", workflowID).Msg("skipping unknown workflow template")
				continue
			}
			stages := FilterStages(template.Stages, emp, employees)
			if len(stages) == 0 {
				continue
			}
			assignments = append(assignments, g.buildAssignment(emp, template, stages, index))
		}
	}
	return assignments
}

func (g *Generator) buildAssignment(emp Employee, template WorkflowTemplate, stages []Stage, index int) WorkflowAssignment {
	now := g.Now()
	start := now.AddDate(0, -index, 0)
	end := IntervalEnd(start, template.Interval)

	status := g.seedStatus(now, start, end)
	if emp.Status == EmployeeStatusInactive && status != AssignmentCompleted {
		status = AssignmentCancelled
	}

	completions := make(map[string]StageCompletion, len(stages))
	for i, stage := range stages {
		completions[stage.ID] = g.seedCompletion(emp, stage, status, i, len(stages), start, end)
	}

	currentStageID := ""
	for _, stage := range stages {
		if !completions[stage.ID].Completed {
			currentStageID = stage.ID
			break
		}
	}

	return WorkflowAssignment{
		ID:                 fmt.Sprintf("assignment-%s-%s-%d", emp.ID, template.ID, index),
		WorkflowTemplateID: template.ID,
		EmployeeID:         emp.ID,
		Status:             status,
		StartDate:          start,
		EndDate:            end,
		CurrentStageID:     currentStageID,
		StageCompletions:   completions,
		Meetings:           []Meeting{},
		CreatedAt:          now,
	}
}

func (g *Generator) seedStatus(now, start time.Time, end *time.Time) string {
	if end != nil && end.Before(now) {
		if g.Rand.Float64() < 0.7 {
			return AssignmentCompleted
		}
		return AssignmentInProgress
	}
	if !start.After(now) {
		if g.Rand.Float64() < 0.8 {
			return AssignmentInProgress
		}
		return AssignmentNotStarted
	}
	return AssignmentNotStarted
}

func (g *Generator) seedCompletion(emp Employee, stage Stage, status string, index, total int, start time.Time, end *time.Time) StageCompletion {
	completed := status == AssignmentCompleted
	if !completed && status == AssignmentInProgress && index < total-1 {
		completed = g.Rand.Float64() < 0.7
	}
	if !completed {
		return StageCompletion{}
	}

	completion := StageCompletion{
		Completed:     true,
		CompletedDate: completionDate(index, total, start, end),
		CompletedBy:   g.completedBy(emp, stage),
	}
	if stage.EvaluationFormID != "" {
		if form, ok := g.Forms[stage.EvaluationFormID]; ok {
			completion.FormData = g.seedFormData(form, stage)
		}
	}
	return completion
}

// completionDate spreads completed stages linearly over the assignment
// window, or one day apart when there is no end date.
func completionDate(index, total int, start time.Time, end *time.Time) *time.Time {
	if end == nil {
		date := start.AddDate(0, 0, index+1)
		return &date
	}
	window := end.Sub(start)
	date := start.Add(window * time.Duration(index+1) / time.Duration(total+1))
	return &date
}

// completedBy attributes a seeded completion. Attribution deliberately uses
// the employee's base manager chain rather than the override-aware one,
// matching how the rest of the seeded history was produced.
func (g *Generator) completedBy(emp Employee, stage Stage) string {
	if stage.HasEmployeeAttendee() {
		return emp.ID
	}
	for _, level := range stage.ManagerAttendeeLevels() {
		if m := ManagerAtLevel(emp.Managers, level); m != nil && m.EmployeeID != "" {
			return m.EmployeeID
		}
	}
	return ""
}
