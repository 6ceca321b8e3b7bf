package state

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"appraisal/internal/domain/review"
	"appraisal/internal/platform/metrics"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrStageBlocked = errors.New("stage has incomplete required stages")
)

// Store is the single authoritative holder of the in-memory data set. All
// reads hand out copies; all mutations reconcile by id under one lock, so a
// stage-status change and the assignment it belongs to can never drift
// apart.
type Store struct {
	mu sync.RWMutex

	employees     []review.Employee
	templates     []review.WorkflowTemplate
	forms         []review.EvaluationForm
	assignments   []review.WorkflowAssignment
	notifications []review.Notification

	now     func() time.Time
	rnd     *rand.Rand
	logger  zerolog.Logger
	metrics *metrics.Collector
}

// Seed is the static demo data a store boots from.
type Seed struct {
	Employees     []review.Employee
	Templates     []review.WorkflowTemplate
	Forms         []review.EvaluationForm
	Notifications []review.Notification
}

func NewStore(seed Seed, now func() time.Time, rnd *rand.Rand, collector *metrics.Collector, logger zerolog.Logger) *Store {
	if now == nil {
		now = time.Now
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if collector == nil {
		collector = metrics.New()
	}
	s := &Store{
		employees:     seed.Employees,
		templates:     seed.Templates,
		forms:         seed.Forms,
		notifications: seed.Notifications,
		now:           now,
		rnd:           rnd,
		logger:        logger,
		metrics:       collector,
	}
	s.mu.Lock()
	s.regenerateLocked()
	s.mu.Unlock()
	return s
}

func (s *Store) Now() time.Time {
	return s.now()
}

// Regenerate rebuilds the assignment list from the current roster and
// catalog, fully replacing the previous one.
func (s *Store) Regenerate() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regenerateLocked()
}

func (s *Store) regenerateLocked() int {
	gen := review.NewGenerator(s.templates, s.forms, s.now, s.rnd, s.logger)
	s.assignments = gen.Generate(s.employees)
	s.metrics.RecordRegeneration(len(s.assignments))
	s.logger.Info().Int("assignments", len(s.assignments)).Msg("regenerated workflow assignments")
	return len(s.assignments)
}

// ---- employees ----

func (s *Store) ListEmployees() []review.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]review.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

func (s *Store) GetEmployee(id string) (review.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, emp := range s.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return review.Employee{}, fmt.Errorf("employee %s: %w", id, ErrNotFound)
}

// CreateEmployee adds a roster entry and regenerates assignments, since the
// roster is the generator's input.
func (s *Store) CreateEmployee(emp review.Employee) review.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	if emp.ID == "" {
		emp.ID = "emp-" + uuid.NewString()
	}
	if emp.Status == "" {
		emp.Status = review.EmployeeStatusActive
	}
	emp.CreatedAt = s.now()
	emp.UpdatedAt = emp.CreatedAt
	s.employees = append(s.employees, emp)
	s.regenerateLocked()
	return emp
}

func (s *Store) UpdateEmployee(id string, emp review.Employee) (review.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID != id {
			continue
		}
		emp.ID = id
		emp.CreatedAt = s.employees[i].CreatedAt
		emp.UpdatedAt = s.now()
		s.employees[i] = emp
		s.regenerateLocked()
		return emp, nil
	}
	return review.Employee{}, fmt.Errorf("employee %s: %w", id, ErrNotFound)
}

// ---- templates ----

func (s *Store) ListTemplates() []review.WorkflowTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]review.WorkflowTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

func (s *Store) GetTemplate(id string) (review.WorkflowTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return review.WorkflowTemplate{}, fmt.Errorf("template %s: %w", id, ErrNotFound)
}

// CreateTemplate adds a catalog entry. Existing assignments are not
// touched; templates only apply to future generations.
func (s *Store) CreateTemplate(t review.WorkflowTemplate) review.WorkflowTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = "tmpl-" + uuid.NewString()
	}
	s.templates = append(s.templates, t)
	return t
}

func (s *Store) UpdateTemplate(id string, t review.WorkflowTemplate) (review.WorkflowTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.templates {
		if s.templates[i].ID == id {
			t.ID = id
			s.templates[i] = t
			return t, nil
		}
	}
	return review.WorkflowTemplate{}, fmt.Errorf("template %s: %w", id, ErrNotFound)
}

// ---- evaluation forms ----

func (s *Store) ListForms() []review.EvaluationForm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]review.EvaluationForm, len(s.forms))
	copy(out, s.forms)
	return out
}

func (s *Store) GetForm(id string) (review.EvaluationForm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.forms {
		if f.ID == id {
			return f, nil
		}
	}
	return review.EvaluationForm{}, fmt.Errorf("form %s: %w", id, ErrNotFound)
}

func (s *Store) CreateForm(f review.EvaluationForm) review.EvaluationForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == "" {
		f.ID = "form-" + uuid.NewString()
	}
	s.forms = append(s.forms, f)
	return f
}

func (s *Store) UpdateForm(id string, f review.EvaluationForm) (review.EvaluationForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.forms {
		if s.forms[i].ID == id {
			f.ID = id
			s.forms[i] = f
			return f, nil
		}
	}
	return review.EvaluationForm{}, fmt.Errorf("form %s: %w", id, ErrNotFound)
}

// ---- assignments ----

func (s *Store) ListAssignments(employeeID string) []review.WorkflowAssignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []review.WorkflowAssignment
	for i := range s.assignments {
		if employeeID != "" && s.assignments[i].EmployeeID != employeeID {
			continue
		}
		out = append(out, cloneAssignment(s.assignments[i]))
	}
	return out
}

func (s *Store) GetAssignment(id string) (review.WorkflowAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.assignments {
		if s.assignments[i].ID == id {
			return cloneAssignment(s.assignments[i]), nil
		}
	}
	return review.WorkflowAssignment{}, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
}

// SetManagerOverrides replaces the assignment-scoped manager chain. An
// empty slice clears the override and falls back to the employee defaults.
func (s *Store) SetManagerOverrides(id string, overrides []review.ManagerLevel) (review.WorkflowAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.assignments {
		if s.assignments[i].ID == id {
			s.assignments[i].ManagerOverrides = overrides
			return cloneAssignment(s.assignments[i]), nil
		}
	}
	return review.WorkflowAssignment{}, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
}

// SetStageStatus applies a kanban move. Completing a stage is gated on its
// required stages: a dependency present in this assignment must already be
// completed. The completion map and current stage pointer are updated in
// the same critical section.
func (s *Store) SetStageStatus(assignmentID, stageID, status, actorID string) (review.WorkflowAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.assignments {
		if s.assignments[i].ID != assignmentID {
			continue
		}
		assignment := &s.assignments[i]

		template := s.templateByIDLocked(assignment.WorkflowTemplateID)
		if template == nil {
			return review.WorkflowAssignment{}, fmt.Errorf("template %s: %w", assignment.WorkflowTemplateID, ErrNotFound)
		}
		stage := template.StageByID(stageID)
		if stage == nil {
			return review.WorkflowAssignment{}, fmt.Errorf("stage %s: %w", stageID, ErrNotFound)
		}
		completion, present := assignment.StageCompletions[stageID]
		if !present {
			return review.WorkflowAssignment{}, fmt.Errorf("stage %s not part of assignment: %w", stageID, ErrNotFound)
		}

		if status == review.TaskStatusCompleted {
			for _, dep := range stage.RequiredStageIDs {
				if depCompletion, ok := assignment.StageCompletions[dep]; ok && !depCompletion.Completed {
					return review.WorkflowAssignment{}, fmt.Errorf("stage %s requires %s: %w", stageID, dep, ErrStageBlocked)
				}
			}
			now := s.now()
			completion.Completed = true
			completion.CompletedDate = &now
			completion.CompletedBy = actorID
		} else {
			completion.Completed = false
			completion.CompletedDate = nil
			completion.CompletedBy = ""
		}
		assignment.StageCompletions[stageID] = completion
		s.recomputeCurrentStageLocked(assignment, *template)

		return cloneAssignment(*assignment), nil
	}
	return review.WorkflowAssignment{}, fmt.Errorf("assignment %s: %w", assignmentID, ErrNotFound)
}

func (s *Store) recomputeCurrentStageLocked(assignment *review.WorkflowAssignment, template review.WorkflowTemplate) {
	assignment.CurrentStageID = ""
	for _, stage := range template.Stages {
		completion, present := assignment.StageCompletions[stage.ID]
		if !present {
			continue
		}
		if !completion.Completed {
			assignment.CurrentStageID = stage.ID
			return
		}
	}
}

func (s *Store) templateByIDLocked(id string) *review.WorkflowTemplate {
	for i := range s.templates {
		if s.templates[i].ID == id {
			return &s.templates[i]
		}
	}
	return nil
}

// ---- notifications ----

// DemoNotifications returns the seeded static notifications for a user.
func (s *Store) DemoNotifications(userID string) []review.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []review.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// ---- lookups for projections ----

// LookupTemplate and LookupEmployee adapt the store to the projection
// signatures. They return copies.
func (s *Store) LookupTemplate(id string) *review.WorkflowTemplate {
	t, err := s.GetTemplate(id)
	if err != nil {
		return nil
	}
	return &t
}

func (s *Store) LookupEmployee(id string) *review.Employee {
	emp, err := s.GetEmployee(id)
	if err != nil {
		return nil
	}
	return &emp
}

func cloneAssignment(a review.WorkflowAssignment) review.WorkflowAssignment {
	out := a
	out.StageCompletions = make(map[string]review.StageCompletion, len(a.StageCompletions))
	for id, c := range a.StageCompletions {
		if c.FormData != nil {
			data := make(map[string]any, len(c.FormData))
			for k, v := range c.FormData {
				data[k] = v
			}
			c.FormData = data
		}
		out.StageCompletions[id] = c
	}
	if a.ManagerOverrides != nil {
		out.ManagerOverrides = append([]review.ManagerLevel(nil), a.ManagerOverrides...)
	}
	if a.Meetings != nil {
		out.Meetings = append([]review.Meeting(nil), a.Meetings...)
	}
	return out
}
