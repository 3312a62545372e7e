package workflow

import "strings"

// Approval es Unapproved | ApprovedBy(principal).
// El valor cero es Unapproved, así no hay estado "aprobado por nadie".
type Approval struct {
	by string
}

func Unapproved() Approval { return Approval{} }

// ApprovedBy devuelve Unapproved si principal viene vacío.
func ApprovedBy(principal string) Approval {
	return Approval{by: strings.TrimSpace(principal)}
}

func (a Approval) IsApproved() bool { return a.by != "" }

// By devuelve quién aprobó, si aplica.
func (a Approval) By() (string, bool) {
	return a.by, a.by != ""
}

func (a Approval) String() string {
	if a.by == "" {
		return "unapproved"
	}
	return "approved by " + a.by
}
