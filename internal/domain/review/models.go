package review

import "time"

type Employee struct {
	ID                  string         `json:"id"`
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName"`
	Email               string         `json:"email"`
	Department          string         `json:"department"`
	Position            string         `json:"position"`
	Status              string         `json:"status"`
	IsAdmin             bool           `json:"isAdmin"`
	Managers            []ManagerLevel `json:"managers,omitempty"`
	AssignedWorkflowIDs []string       `json:"assignedWorkflowIds,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

func (e Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// ManagerLevel is one rung of an employee's approval chain. Level 1 is the
// most immediate manager. An entry is either an internal reference
// (EmployeeID set) or an external contact (IsExternal with name/email).
type ManagerLevel struct {
	Level                   int    `json:"level"`
	EmployeeID              string `json:"employeeId,omitempty"`
	ExternalName            string `json:"externalName,omitempty"`
	ExternalEmail           string `json:"externalEmail,omitempty"`
	IsExternal              bool   `json:"isExternal,omitempty"`
	IsEvaluationResponsible bool   `json:"isEvaluationResponsible,omitempty"`
}

// Empty reports whether the entry is a placeholder slot with no real
// manager behind it.
func (m ManagerLevel) Empty() bool {
	return m.EmployeeID == "" && m.ExternalName == ""
}

type Stage struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	Order            int               `json:"order"`
	Type             string            `json:"type"`
	EvaluationFormID string            `json:"evaluationFormId,omitempty"`
	ManagerLevel     int               `json:"managerLevel,omitempty"`
	Attendees        []Attendee        `json:"attendees"`
	DueDateType      string            `json:"dueDateType,omitempty"`
	DueDateOffset    int               `json:"dueDateOffset,omitempty"`
	DueDateUnit      string            `json:"dueDateUnit,omitempty"`
	Required         bool              `json:"required"`
	RequiredStageIDs []string          `json:"requiredStageIds,omitempty"`
	Reminders        *ReminderSettings `json:"reminderSettings,omitempty"`
}

type ReminderSettings struct {
	Enabled    bool `json:"enabled"`
	DaysBefore int  `json:"daysBefore,omitempty"`
	RepeatDays int  `json:"repeatDays,omitempty"`
}

type MeetingFrequency struct {
	Type  string `json:"type"`
	Value int    `json:"value,omitempty"`
	Unit  string `json:"unit,omitempty"`
}

type NotificationSettings struct {
	Enabled        bool `json:"enabled"`
	RemindDays     int  `json:"remindDays,omitempty"`
	NotifyManagers bool `json:"notifyManagers,omitempty"`
}

type WorkflowTemplate struct {
	ID                    string               `json:"id"`
	Name                  string               `json:"name"`
	Description           string               `json:"description,omitempty"`
	ApplicablePositions   []string             `json:"applicablePositions,omitempty"`
	ApplicableDepartments []string             `json:"applicableDepartments,omitempty"`
	Stages                []Stage              `json:"stages"`
	Interval              MeetingFrequency     `json:"interval"`
	ManagerLevels         []int                `json:"managerLevels,omitempty"`
	Notifications         NotificationSettings `json:"notificationSettings"`
	IsActive              bool                 `json:"isActive"`
}

func (t WorkflowTemplate) StageByID(stageID string) *Stage {
	for i := range t.Stages {
		if t.Stages[i].ID == stageID {
			return &t.Stages[i]
		}
	}
	return nil
}

type StageCompletion struct {
	Completed     bool           `json:"completed"`
	CompletedDate *time.Time     `json:"completedDate,omitempty"`
	CompletedBy   string         `json:"completedBy,omitempty"`
	FormData      map[string]any `json:"formData,omitempty"`
}

type Meeting struct {
	ID          string    `json:"id"`
	StageID     string    `json:"stageId,omitempty"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Notes       string    `json:"notes,omitempty"`
}

// WorkflowAssignment is one concrete instantiation of a template for one
// employee. StageCompletions only holds entries for stages that survived
// role-based filtering; a filtered-out stage never appears.
type WorkflowAssignment struct {
	ID                 string                     `json:"id"`
	WorkflowTemplateID string                     `json:"workflowTemplateId"`
	EmployeeID         string                     `json:"employeeId"`
	Status             string                     `json:"status"`
	StartDate          time.Time                  `json:"startDate"`
	EndDate            *time.Time                 `json:"endDate,omitempty"`
	CurrentStageID     string                     `json:"currentStageId,omitempty"`
	StageCompletions   map[string]StageCompletion `json:"stageCompletions"`
	ManagerOverrides   []ManagerLevel             `json:"managerOverrides,omitempty"`
	Meetings           []Meeting                  `json:"meetings"`
	CreatedAt          time.Time                  `json:"createdAt"`
}

type FormField struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
	Min         int      `json:"min,omitempty"`
	Max         int      `json:"max,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	HelpText    string   `json:"helpText,omitempty"`
}

type EvaluationForm struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Fields      []FormField `json:"fields"`
}

// Appraisal is a derived, employee-facing projection of an assignment. It is
// never stored; callers rebuild it from the assignment on demand.
type Appraisal struct {
	ID            string     `json:"id"`
	AssignmentID  string     `json:"assignmentId"`
	EmployeeID    string     `json:"employeeId"`
	EmployeeName  string     `json:"employeeName"`
	TemplateID    string     `json:"templateId"`
	TemplateName  string     `json:"templateName"`
	Status        string     `json:"status"`
	OverallRating *float64   `json:"overallRating,omitempty"`
	ReviewPeriod  string     `json:"reviewPeriod"`
	Reviewers     []string   `json:"reviewers,omitempty"`
	Comments      string     `json:"comments"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       *time.Time `json:"endDate,omitempty"`
}

// Task is the unit the kanban board operates on: one (assignment, stage)
// pair present in the assignment's completion map.
type Task struct {
	ID           string     `json:"id"`
	AssignmentID string     `json:"assignmentId"`
	StageID      string     `json:"stageId"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
}

// Notification is an alert derived from assignment state for one user.
// Content is regenerated on every scan; only the read flag is tracked
// separately.
type Notification struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	AssignmentID string    `json:"assignmentId,omitempty"`
	StageID      string    `json:"stageId,omitempty"`
	Read         bool      `json:"read"`
	CreatedAt    time.Time `json:"createdAt"`
}

type FormGroupTally struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type FormCompletion struct {
	EmployeeForms FormGroupTally `json:"employeeForms"`
	ManagerForms  FormGroupTally `json:"managerForms"`
}
