package seed

import (
	"time"

	"appraisal/internal/domain/review"
	"appraisal/internal/platform/state"
)

// Demo returns the static data set the dashboard boots from. Assignments
// are not part of the seed; the store generates them from this roster.
func Demo(now time.Time) state.Seed {
	return state.Seed{
		Employees:     demoEmployees(now),
		Templates:     demoTemplates(),
		Forms:         demoForms(),
		Notifications: demoNotifications(now),
	}
}

func demoEmployees(now time.Time) []review.Employee {
	created := now.AddDate(-1, 0, 0)
	return []review.Employee{
		{
			ID: "emp-astrid", FirstName: "Astrid", LastName: "Bergfalk",
			Email: "astrid.bergfalk@example.com", Department: "Executive", Position: "Chief Executive",
			Status: review.EmployeeStatusActive, IsAdmin: true,
			AssignedWorkflowIDs: []string{"tmpl-annual"},
			CreatedAt:           created, UpdatedAt: created,
		},
		{
			ID: "emp-jonas", FirstName: "Jonas", LastName: "Thornquist",
			Email: "jonas.thornquist@example.com", Department: "Engineering", Position: "Engineering Manager",
			Status: review.EmployeeStatusActive,
			Managers: []review.ManagerLevel{
				{Level: 1, EmployeeID: "emp-astrid", IsEvaluationResponsible: true},
			},
			AssignedWorkflowIDs: []string{"tmpl-quarterly", "tmpl-annual"},
			CreatedAt:           created, UpdatedAt: created,
		},
		{
			ID: "emp-mireille", FirstName: "Mireille", LastName: "Fontaine",
			Email: "mireille.fontaine@example.com", Department: "Engineering", Position: "Senior Engineer",
			Status: review.EmployeeStatusActive,
			Managers: []review.ManagerLevel{
				{Level: 1, EmployeeID: "emp-jonas", IsEvaluationResponsible: true},
				{Level: 2, EmployeeID: "emp-astrid"},
			},
			AssignedWorkflowIDs: []string{"tmpl-quarterly", "tmpl-monthly"},
			CreatedAt:           created, UpdatedAt: created,
		},
		{
			ID: "emp-tobias", FirstName: "Tobias", LastName: "Renner",
			Email: "tobias.renner@example.com", Department: "Engineering", Position: "Engineer",
			Status: review.EmployeeStatusActive,
			Managers: []review.ManagerLevel{
				{Level: 1, EmployeeID: "emp-jonas", IsEvaluationResponsible: true},
			},
			AssignedWorkflowIDs: []string{"tmpl-quarterly"},
			CreatedAt:           created, UpdatedAt: created,
		},
		{
			ID: "emp-helena", FirstName: "Helena", LastName: "Virtanen",
			Email: "helena.virtanen@example.com", Department: "Sales", Position: "Account Executive",
			Status: review.EmployeeStatusActive,
			Managers: []review.ManagerLevel{
				{Level: 1, IsExternal: true, ExternalName: "Consulting Director", ExternalEmail: "director@partner.example.com", IsEvaluationResponsible: true},
				{Level: 2, EmployeeID: "emp-astrid"},
			},
			AssignedWorkflowIDs: []string{"tmpl-quarterly"},
			CreatedAt:           created, UpdatedAt: created,
		},
		{
			ID: "emp-ruben", FirstName: "Ruben", LastName: "Castell",
			Email: "ruben.castell@example.com", Department: "Sales", Position: "Sales Associate",
			Status: review.EmployeeStatusInactive,
			Managers: []review.ManagerLevel{
				{Level: 1, EmployeeID: "emp-jonas"},
			},
			AssignedWorkflowIDs: []string{"tmpl-quarterly"},
			CreatedAt:           created, UpdatedAt: created,
		},
	}
}

func demoTemplates() []review.WorkflowTemplate {
	return []review.WorkflowTemplate{
		{
			ID:                    "tmpl-quarterly",
			Name:                  "Quarterly Performance Review",
			Description:           "Standard quarterly cycle: self evaluation, manager evaluation, review meeting and sign-off.",
			ApplicableDepartments: []string{"Engineering", "Sales"},
			Interval:              review.MeetingFrequency{Type: review.FrequencyQuarterly},
			ManagerLevels:         []int{1, 2},
			Notifications:         review.NotificationSettings{Enabled: true, RemindDays: 7, NotifyManagers: true},
			IsActive:              true,
			Stages: []review.Stage{
				{
					ID: "stage-self-eval", Name: "Self Evaluation", Order: 1,
					Type: review.StageTypeEvaluation, EvaluationFormID: "form-self",
					Attendees:     []review.Attendee{review.EmployeeAttendee()},
					DueDateType:   review.DueBeforeInterval,
					DueDateOffset: 2,
					Required:      true,
					Reminders:     &review.ReminderSettings{Enabled: true, DaysBefore: 3},
				},
				{
					ID: "stage-manager-eval", Name: "Manager Evaluation", Order: 2,
					Type: review.StageTypeEvaluation, EvaluationFormID: "form-manager",
					ManagerLevel:     1,
					Attendees:        []review.Attendee{review.ManagerAttendee(1)},
					DueDateType:      review.DueBeforeInterval,
					DueDateOffset:    1,
					Required:         true,
					RequiredStageIDs: []string{"stage-self-eval"},
				},
				{
					ID: "stage-review-meeting", Name: "Review Meeting", Order: 3,
					Type:             review.StageTypeMeeting,
					Attendees:        []review.Attendee{review.EmployeeAttendee(), review.ManagerAttendee(1)},
					DueDateType:      review.DueOnInterval,
					Required:         true,
					RequiredStageIDs: []string{"stage-self-eval", "stage-manager-eval"},
				},
				{
					ID: "stage-signoff", Name: "Final Sign-off", Order: 4,
					Type:             review.StageTypeApproval,
					ManagerLevel:     2,
					Attendees:        []review.Attendee{review.ManagerAttendee(2)},
					DueDateType:      review.DueAfterInterval,
					DueDateOffset:    1,
					Required:         true,
					RequiredStageIDs: []string{"stage-review-meeting"},
				},
			},
		},
		{
			ID:            "tmpl-annual",
			Name:          "Annual Appraisal",
			Description:   "Year-end appraisal with calibration review.",
			Interval:      review.MeetingFrequency{Type: review.FrequencyAnnually},
			ManagerLevels: []int{1},
			Notifications: review.NotificationSettings{Enabled: true, RemindDays: 14, NotifyManagers: true},
			IsActive:      true,
			Stages: []review.Stage{
				{
					ID: "stage-annual-self", Name: "Annual Self Evaluation", Order: 1,
					Type: review.StageTypeEvaluation, EvaluationFormID: "form-self",
					Attendees:     []review.Attendee{review.EmployeeAttendee()},
					DueDateType:   review.DueBeforeInterval,
					DueDateOffset: 4,
					Required:      true,
				},
				{
					ID: "stage-calibration", Name: "Calibration Review", Order: 2,
					Type:             review.StageTypeReview,
					ManagerLevel:     1,
					Attendees:        []review.Attendee{review.ManagerAttendee(1)},
					DueDateType:      review.DueBeforeInterval,
					DueDateOffset:    2,
					Required:         true,
					RequiredStageIDs: []string{"stage-annual-self"},
				},
				{
					ID: "stage-annual-meeting", Name: "Appraisal Meeting", Order: 3,
					Type:        review.StageTypeMeeting,
					Attendees:   []review.Attendee{review.EmployeeAttendee(), review.ManagerAttendee(1)},
					DueDateType: review.DueOnInterval,
					Required:    true,
				},
			},
		},
		{
			ID:            "tmpl-monthly",
			Name:          "Monthly Check-in",
			Description:   "Lightweight recurring one-on-one.",
			Interval:      review.MeetingFrequency{Type: review.FrequencyMonthly},
			ManagerLevels: []int{1},
			Notifications: review.NotificationSettings{Enabled: true, RemindDays: 2},
			IsActive:      true,
			Stages: []review.Stage{
				{
					ID: "stage-checkin", Name: "One-on-one", Order: 1,
					Type:        review.StageTypeMeeting,
					Attendees:   []review.Attendee{review.EmployeeAttendee(), review.ManagerAttendee(1)},
					DueDateType: review.DueOnInterval,
					Required:    true,
				},
				{
					ID: "stage-checkin-notes", Name: "Check-in Notes", Order: 2,
					Type: review.StageTypeEvaluation, EvaluationFormID: "form-checkin",
					Attendees:        []review.Attendee{review.EmployeeAttendee()},
					DueDateType:      review.DueCustom,
					DueDateOffset:    3,
					DueDateUnit:      review.UnitDays,
					Required:         false,
					RequiredStageIDs: []string{"stage-checkin"},
				},
			},
		},
	}
}

func demoForms() []review.EvaluationForm {
	return []review.EvaluationForm{
		{
			ID:          "form-self",
			Name:        "Self Evaluation",
			Description: "Filled in by the employee ahead of the review meeting.",
			Fields: []review.FormField{
				{ID: "self-rating", Label: "Overall self rating", Type: review.FieldTypeRating, Required: true, Min: 1, Max: 5},
				{ID: "self-achievements", Label: "Key achievements this period", Type: review.FieldTypeTextarea, Required: true, Placeholder: "What went well?"},
				{ID: "self-challenges", Label: "Main challenges faced", Type: review.FieldTypeTextarea, Required: true},
				{ID: "self-goals", Label: "Goals for next period", Type: review.FieldTypeTextarea, Required: true},
				{ID: "self-focus", Label: "Focus areas", Type: review.FieldTypeCheckbox, Options: []string{"Delivery", "Quality", "Collaboration", "Leadership", "Planning", "Mentoring"}},
				{ID: "self-date", Label: "Completion date", Type: review.FieldTypeDate},
			},
		},
		{
			ID:          "form-manager",
			Name:        "Manager Evaluation",
			Description: "Filled in by the responsible manager.",
			Fields: []review.FormField{
				{ID: "mgr-rating", Label: "Performance rating", Type: review.FieldTypeRating, Required: true, Min: 1, Max: 5},
				{ID: "mgr-potential", Label: "Potential rating", Type: review.FieldTypeRating, Min: 1, Max: 5},
				{ID: "mgr-feedback", Label: "Feedback for the employee", Type: review.FieldTypeTextarea, Required: true},
				{ID: "mgr-improvement", Label: "Areas of improvement", Type: review.FieldTypeTextarea},
				{ID: "mgr-promotion", Label: "Recommended track", Type: review.FieldTypeDropdown, Options: []string{"Stay in role", "Expand scope", "Promote", "Performance plan"}},
				{ID: "mgr-attachment", Label: "Supporting document", Type: review.FieldTypeFile},
			},
		},
		{
			ID:          "form-checkin",
			Name:        "Check-in Notes",
			Description: "Short notes after the monthly one-on-one.",
			Fields: []review.FormField{
				{ID: "checkin-mood", Label: "How is the workload?", Type: review.FieldTypeDropdown, Options: []string{"Light", "Balanced", "Heavy"}},
				{ID: "checkin-notes", Label: "Notes and feedback", Type: review.FieldTypeTextarea},
				{ID: "checkin-blockers", Label: "Blockers count", Type: review.FieldTypeNumber, Min: 0, Max: 20},
			},
		},
	}
}

func demoNotifications(now time.Time) []review.Notification {
	return []review.Notification{
		{
			ID:        "notif-demo-welcome",
			UserID:    "emp-mireille",
			Type:      "system",
			Title:     "Welcome to the appraisal dashboard",
			Message:   "Your review cycles and tasks are listed under My Appraisals.",
			CreatedAt: now.AddDate(0, 0, -10),
		},
		{
			ID:        "notif-demo-policy",
			UserID:    "emp-jonas",
			Type:      "system",
			Title:     "Review season opens",
			Message:   "Quarterly reviews for your reports are ready to be scheduled.",
			CreatedAt: now.AddDate(0, 0, -5),
		},
	}
}
