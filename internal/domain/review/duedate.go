package review

import "time"

// StageDueDate converts a stage's relative due-date policy into an absolute
// date anchored on the assignment's window. Returns nil when the stage has
// no due-date type at all.
//
// before_interval and after_interval always interpret the offset in weeks;
// only the custom type consults DueDateUnit.
func StageDueDate(stage Stage, start time.Time, end *time.Time) *time.Time {
	if stage.DueDateType == "" {
		return nil
	}

	switch stage.DueDateType {
	case DueOnInterval:
		due := start
		return &due
	case DueBeforeInterval:
		due := start.AddDate(0, 0, -7*stage.DueDateOffset)
		return &due
	case DueAfterInterval:
		if stage.DueDateOffset != 0 {
			due := start.AddDate(0, 0, 7*stage.DueDateOffset)
			return &due
		}
		if end != nil {
			due := *end
			return &due
		}
		due := start
		return &due
	case DueCustom:
		if stage.DueDateOffset == 0 || stage.DueDateUnit == "" {
			due := start
			return &due
		}
		var due time.Time
		switch stage.DueDateUnit {
		case UnitDays:
			due = start.AddDate(0, 0, stage.DueDateOffset)
		case UnitWeeks:
			due = start.AddDate(0, 0, 7*stage.DueDateOffset)
		case UnitMonths:
			due = start.AddDate(0, stage.DueDateOffset, 0)
		default:
			due = start
		}
		return &due
	default:
		due := start
		return &due
	}
}

// IntervalEnd adds one recurrence of the template interval to the start
// date. Returns nil for unrecognized interval types.
func IntervalEnd(start time.Time, interval MeetingFrequency) *time.Time {
	var end time.Time
	switch interval.Type {
	case FrequencyDaily:
		end = start.AddDate(0, 0, 1)
	case FrequencyWeekly:
		end = start.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		end = start.AddDate(0, 0, 14)
	case FrequencyMonthly:
		end = start.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		end = start.AddDate(0, 3, 0)
	case FrequencyBiannually:
		end = start.AddDate(0, 6, 0)
	case FrequencyAnnually:
		end = start.AddDate(1, 0, 0)
	case FrequencyCustom:
		if interval.Value <= 0 {
			return nil
		}
		switch interval.Unit {
		case UnitDays:
			end = start.AddDate(0, 0, interval.Value)
		case UnitWeeks:
			end = start.AddDate(0, 0, 7*interval.Value)
		case UnitMonths:
			end = start.AddDate(0, interval.Value, 0)
		case UnitYears:
			end = start.AddDate(interval.Value, 0, 0)
		default:
			return nil
		}
	default:
		return nil
	}
	return &end
}
