package reports

import (
	"sort"
	"time"

	"appraisal/internal/domain/review"
)

// DataSource is the slice of the state store the report builder reads.
type DataSource interface {
	ListAssignments(employeeID string) []review.WorkflowAssignment
	LookupTemplate(id string) *review.WorkflowTemplate
	LookupEmployee(id string) *review.Employee
}

type DepartmentSummary struct {
	Department    string   `json:"department"`
	Appraisals    int      `json:"appraisals"`
	Completed     int      `json:"completed"`
	AverageRating *float64 `json:"averageRating,omitempty"`
}

type Summary struct {
	GeneratedAt   time.Time           `json:"generatedAt"`
	Appraisals    int                 `json:"appraisals"`
	StatusCounts  map[string]int      `json:"statusCounts"`
	AverageRating *float64            `json:"averageRating,omitempty"`
	OverdueTasks  int                 `json:"overdueTasks"`
	Departments   []DepartmentSummary `json:"departments"`
}

type Service struct {
	data DataSource
	now  func() time.Time
}

func NewService(data DataSource, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{data: data, now: now}
}

// BuildSummary aggregates the appraisal projections across the whole
// roster. Assignments with unresolved references are skipped, the same
// way the appraisal list skips them.
func (s *Service) BuildSummary() Summary {
	now := s.now()
	summary := Summary{
		GeneratedAt:  now,
		StatusCounts: map[string]int{},
	}

	var ratingSum float64
	var ratingCount int
	byDepartment := map[string]*DepartmentSummary{}
	deptRatings := map[string][]float64{}

	for _, assignment := range s.data.ListAssignments("") {
		appraisal := review.BuildAppraisal(assignment, s.data.LookupTemplate, s.data.LookupEmployee)
		if appraisal == nil {
			continue
		}
		summary.Appraisals++
		summary.StatusCounts[appraisal.Status]++
		if appraisal.OverallRating != nil {
			ratingSum += *appraisal.OverallRating
			ratingCount++
		}

		emp := s.data.LookupEmployee(assignment.EmployeeID)
		template := s.data.LookupTemplate(assignment.WorkflowTemplateID)
		if emp == nil || template == nil {
			continue
		}

		dept := emp.Department
		if dept == "" {
			dept = "Unassigned"
		}
		entry, ok := byDepartment[dept]
		if !ok {
			entry = &DepartmentSummary{Department: dept}
			byDepartment[dept] = entry
		}
		entry.Appraisals++
		if appraisal.Status == review.AppraisalStatusCompleted {
			entry.Completed++
		}
		if appraisal.OverallRating != nil {
			deptRatings[dept] = append(deptRatings[dept], *appraisal.OverallRating)
		}

		for _, task := range review.BuildTasks(assignment, *template, *emp, now) {
			if task.Status == review.TaskStatusOverdue {
				summary.OverdueTasks++
			}
		}
	}

	if ratingCount > 0 {
		avg := ratingSum / float64(ratingCount)
		summary.AverageRating = &avg
	}

	for dept, ratings := range deptRatings {
		var sum float64
		for _, r := range ratings {
			sum += r
		}
		avg := sum / float64(len(ratings))
		byDepartment[dept].AverageRating = &avg
	}

	summary.Departments = make([]DepartmentSummary, 0, len(byDepartment))
	for _, entry := range byDepartment {
		summary.Departments = append(summary.Departments, *entry)
	}
	sort.Slice(summary.Departments, func(i, j int) bool {
		return summary.Departments[i].Department < summary.Departments[j].Department
	})

	return summary
}
