package notifications

const (
	TypeEvaluationDue       = "evaluation_due"
	TypeEvaluationCompleted = "evaluation_completed"
	TypeStageCompleted      = "stage_completed"
	TypeStageOverdue        = "stage_overdue"
	TypeStageBlocked        = "stage_blocked"
	TypeAssignmentCreated   = "assignment_created"
)

// Stages due within this many days raise an upcoming-evaluation alert.
const dueSoonDays = 7
