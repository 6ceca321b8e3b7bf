package review

const (
	EmployeeStatusActive   = "Active"
	EmployeeStatusInactive = "Inactive"

	StageTypeEvaluation = "evaluation"
	StageTypeMeeting    = "meeting"
	StageTypeReview     = "review"
	StageTypeApproval   = "approval"

	DueBeforeInterval = "before_interval"
	DueOnInterval     = "on_interval"
	DueAfterInterval  = "after_interval"
	DueCustom         = "custom"

	UnitDays   = "days"
	UnitWeeks  = "weeks"
	UnitMonths = "months"
	UnitYears  = "years"

	FrequencyDaily      = "daily"
	FrequencyWeekly     = "weekly"
	FrequencyBiweekly   = "biweekly"
	FrequencyMonthly    = "monthly"
	FrequencyQuarterly  = "quarterly"
	FrequencyBiannually = "biannually"
	FrequencyAnnually   = "annually"
	FrequencyCustom     = "custom"

	AssignmentNotStarted = "not_started"
	AssignmentInProgress = "in_progress"
	AssignmentCompleted  = "completed"
	AssignmentCancelled  = "cancelled"

	AppraisalStatusDraft      = "Draft"
	AppraisalStatusInProgress = "In Progress"
	AppraisalStatusCompleted  = "Completed"
	AppraisalStatusCancelled  = "Cancelled"

	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusOverdue    = "overdue"
	TaskStatusCancelled  = "cancelled"

	FieldTypeText     = "text"
	FieldTypeTextarea = "textarea"
	FieldTypeNumber   = "number"
	FieldTypeRating   = "rating"
	FieldTypeDropdown = "dropdown"
	FieldTypeCheckbox = "checkbox"
	FieldTypeDate     = "date"
	FieldTypeFile     = "file"
)

const (
	RoleNoManagers    = "no_managers"
	RoleOneManager    = "one_manager"
	RoleTwoManagers   = "two_managers"
	RoleManagesOthers = "manages_others"
)
