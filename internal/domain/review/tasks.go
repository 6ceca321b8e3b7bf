package review

import "time"

// BuildTasks projects one task per stage present in the assignment's
// completion map, in stage order.
func BuildTasks(a WorkflowAssignment, template WorkflowTemplate, emp Employee, now time.Time) []Task {
	var tasks []Task
	for _, stage := range template.Stages {
		completion, present := a.StageCompletions[stage.ID]
		if !present {
			continue
		}
		tasks = append(tasks, Task{
			ID:           "task-" + a.ID + "-" + stage.ID,
			AssignmentID: a.ID,
			StageID:      stage.ID,
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName(),
			Name:         stage.Name,
			Type:         stage.Type,
			Status:       taskStatus(a, stage, completion, now),
			DueDate:      StageDueDate(stage, a.StartDate, a.EndDate),
		})
	}
	return tasks
}

func taskStatus(a WorkflowAssignment, stage Stage, completion StageCompletion, now time.Time) string {
	if a.Status == AssignmentCancelled {
		return TaskStatusCancelled
	}
	if completion.Completed {
		return TaskStatusCompleted
	}
	if due := StageDueDate(stage, a.StartDate, a.EndDate); due != nil && due.Before(now) {
		return TaskStatusOverdue
	}
	if stage.ID == a.CurrentStageID {
		return TaskStatusInProgress
	}
	return TaskStatusPending
}
