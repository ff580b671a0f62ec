package conflict

import "fmt"

// Hints returns human-readable suggestions for resolving c.
func Hints(c Conflict) []string {
	d := c.Detail
	switch c.Kind {
	case KindRoom:
		return []string{
			fmt.Sprintf("Reschedule '%s' to a different day or time slot", d.Label1),
			fmt.Sprintf("Reschedule '%s' to a different day or time slot", d.Label2),
			fmt.Sprintf("Move one course to a different room on %s", d.Day),
			fmt.Sprintf("Stagger the time slots so %s (%s) and %s (%s) no longer overlap in %s",
				d.Label1, d.Range1, d.Label2, d.Range2, d.Resource),
			fmt.Sprintf("Consider holding one course online to free up %s", d.Resource),
		}
	case KindLecturer:
		return []string{
			fmt.Sprintf("Assign a substitute lecturer for '%s' or '%s'", d.Label1, d.Label2),
			fmt.Sprintf("Reschedule '%s' to a different day or time", d.Label1),
			fmt.Sprintf("Reschedule '%s' to a different day or time", d.Label2),
			fmt.Sprintf("Adjust timing so %s can move between %s and %s", d.Resource, d.Room1, d.Room2),
			"Split one course section and assign it to another qualified lecturer",
		}
	default:
		return nil
	}
}
