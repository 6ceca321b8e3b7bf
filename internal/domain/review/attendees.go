package review

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	AttendeeEmployee     = "employee"
	AttendeeManagerLevel = "manager_level"
)

// Attendee identifies who takes part in a stage: the employee under review
// or the manager at a specific level of their chain. It marshals to the wire
// tokens "employee" and "manager_level_N".
type Attendee struct {
	Kind  string `json:"kind"`
	Level int    `json:"level,omitempty"`
}

func EmployeeAttendee() Attendee {
	return Attendee{Kind: AttendeeEmployee}
}

func ManagerAttendee(level int) Attendee {
	return Attendee{Kind: AttendeeManagerLevel, Level: level}
}

func (a Attendee) Token() string {
	if a.Kind == AttendeeManagerLevel {
		return "manager_level_" + strconv.Itoa(a.Level)
	}
	return AttendeeEmployee
}

// ParseAttendee accepts the tokens "employee" and "manager_level_N".
func ParseAttendee(token string) (Attendee, error) {
	token = strings.TrimSpace(token)
	if token == AttendeeEmployee {
		return EmployeeAttendee(), nil
	}
	if rest, ok := strings.CutPrefix(token, "manager_level_"); ok {
		level, err := strconv.Atoi(rest)
		if err != nil || level < 1 {
			return Attendee{}, fmt.Errorf("invalid manager level in attendee %q", token)
		}
		return ManagerAttendee(level), nil
	}
	return Attendee{}, fmt.Errorf("unknown attendee token %q", token)
}

func (a Attendee) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Token())
}

func (a *Attendee) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return err
	}
	parsed, err := ParseAttendee(token)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// HasEmployeeAttendee reports whether the stage involves the employee
// themselves.
func (s Stage) HasEmployeeAttendee() bool {
	for _, a := range s.Attendees {
		if a.Kind == AttendeeEmployee {
			return true
		}
	}
	return false
}

// ManagerAttendeeLevels returns the manager levels referenced by the stage's
// attendees, in declaration order.
func (s Stage) ManagerAttendeeLevels() []int {
	var levels []int
	for _, a := range s.Attendees {
		if a.Kind == AttendeeManagerLevel {
			levels = append(levels, a.Level)
		}
	}
	return levels
}
