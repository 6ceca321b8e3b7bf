package notifications

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"appraisal/internal/domain/review"
)

// DataSource is the slice of the state store the scanner needs.
type DataSource interface {
	ListEmployees() []review.Employee
	ListAssignments(employeeID string) []review.WorkflowAssignment
	LookupTemplate(id string) *review.WorkflowTemplate
	LookupEmployee(id string) *review.Employee
	DemoNotifications(userID string) []review.Notification
}

// Service derives notifications for a user by scanning the current
// assignment list. Nothing is stored between calls except read marks.
type Service struct {
	data   DataSource
	reads  *ReadMarks
	now    func() time.Time
	logger zerolog.Logger
}

func New(data DataSource, reads *ReadMarks, now func() time.Time, logger zerolog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{data: data, reads: reads, now: now, logger: logger}
}

// ForUser returns the merged static and derived notifications for a user,
// newest first, with read flags applied.
func (s *Service) ForUser(userID string) []review.Notification {
	out := append([]review.Notification(nil), s.data.DemoNotifications(userID)...)
	out = append(out, s.scan(userID)...)

	for i := range out {
		out[i].Read = s.reads.IsRead(userID, out[i].ID)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// MarkRead flags one notification id as read for the user.
// ReadIDs returns the ids the user has marked read, for clients syncing
// their local read state.
func (s *Service) ReadIDs(userID string) []string {
	return s.reads.IDs(userID)
}

func (s *Service) MarkRead(userID, notificationID string) {
	s.reads.Mark(userID, notificationID)
}

func (s *Service) scan(userID string) []review.Notification {
	now := s.now()
	var out []review.Notification

	for _, assignment := range s.data.ListAssignments("") {
		emp := s.data.LookupEmployee(assignment.EmployeeID)
		if emp == nil {
			continue
		}
		if !concernsUser(assignment, *emp, userID) {
			continue
		}
		template := s.data.LookupTemplate(assignment.WorkflowTemplateID)
		if template == nil {
			s.logger.Debug().Str("assignmentId", assignment.ID).Msg("assignment references unknown template")
			continue
		}

		out = append(out, s.scanStages(assignment, *template, *emp, now)...)

		if assignment.Status == review.AssignmentNotStarted && sameDay(assignment.CreatedAt, now) {
			out = append(out, notification(assignment, "", TypeAssignmentCreated, now,
				fmt.Sprintf("New review cycle for %s", emp.FullName()),
				fmt.Sprintf("The %q cycle has been assigned and is waiting to start.", template.Name)))
		}
	}
	return out
}

func (s *Service) scanStages(assignment review.WorkflowAssignment, template review.WorkflowTemplate, emp review.Employee, now time.Time) []review.Notification {
	var out []review.Notification
	for _, stage := range template.Stages {
		completion, present := assignment.StageCompletions[stage.ID]
		if !present {
			continue
		}
		due := review.StageDueDate(stage, assignment.StartDate, assignment.EndDate)

		if completion.Completed {
			if completion.CompletedDate == nil || !sameDay(*completion.CompletedDate, now) {
				continue
			}
			if stage.Type == review.StageTypeEvaluation {
				out = append(out, notification(assignment, stage.ID, TypeEvaluationCompleted, now,
					fmt.Sprintf("%s completed", stage.Name),
					fmt.Sprintf("%s finished the %q evaluation today.", emp.FullName(), stage.Name)))
			} else {
				out = append(out, notification(assignment, stage.ID, TypeStageCompleted, now,
					fmt.Sprintf("%s completed", stage.Name),
					fmt.Sprintf("The %q stage was completed today.", stage.Name)))
			}
			continue
		}

		if blocked(assignment, stage) {
			out = append(out, notification(assignment, stage.ID, TypeStageBlocked, now,
				fmt.Sprintf("%s is blocked", stage.Name),
				fmt.Sprintf("The %q stage is waiting on earlier stages to finish.", stage.Name)))
			continue
		}
		if due == nil {
			continue
		}
		if due.Before(now) && !sameDay(*due, now) {
			out = append(out, notification(assignment, stage.ID, TypeStageOverdue, now,
				fmt.Sprintf("%s is overdue", stage.Name),
				fmt.Sprintf("The %q stage for %s was due on %s.", stage.Name, emp.FullName(), due.Format("Jan 2, 2006"))))
			continue
		}
		if stage.Type == review.StageTypeEvaluation && withinDays(now, *due, dueSoonDays) {
			out = append(out, notification(assignment, stage.ID, TypeEvaluationDue, now,
				fmt.Sprintf("%s due soon", stage.Name),
				fmt.Sprintf("The %q evaluation for %s is due by %s.", stage.Name, emp.FullName(), due.Format("Jan 2, 2006"))))
		}
	}
	return out
}

// concernsUser reports whether the user is the assignment's employee or one
// of its effective managers.
func concernsUser(assignment review.WorkflowAssignment, emp review.Employee, userID string) bool {
	if emp.ID == userID {
		return true
	}
	for _, m := range review.EffectiveManagers(assignment, emp) {
		if m.EmployeeID == userID {
			return true
		}
	}
	return false
}

func blocked(assignment review.WorkflowAssignment, stage review.Stage) bool {
	for _, dep := range stage.RequiredStageIDs {
		if completion, ok := assignment.StageCompletions[dep]; ok && !completion.Completed {
			return true
		}
	}
	return false
}

// notification builds a record with a deterministic id so read marks
// survive regeneration of the underlying content.
func notification(assignment review.WorkflowAssignment, stageID, ntype string, createdAt time.Time, title, message string) review.Notification {
	id := "notif-" + assignment.ID + "-" + ntype
	if stageID != "" {
		id = "notif-" + assignment.ID + "-" + stageID + "-" + ntype
	}
	return review.Notification{
		ID:           id,
		UserID:       assignment.EmployeeID,
		Type:         ntype,
		Title:        title,
		Message:      message,
		AssignmentID: assignment.ID,
		StageID:      stageID,
		CreatedAt:    createdAt,
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// withinDays reports whether due falls between now and now+days,
// inclusive at the day level.
func withinDays(now, due time.Time, days int) bool {
	if due.Before(now) && !sameDay(due, now) {
		return false
	}
	limit := now.AddDate(0, 0, days)
	return due.Before(limit) || sameDay(due, limit)
}
