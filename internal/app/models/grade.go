package models

// Grade represents the grade level offered on the RSVP form
type Grade string

const (
	Grade9  Grade = "9th"
	Grade10 Grade = "10th"
	Grade11 Grade = "11th"
	Grade12 Grade = "12th"
)

// IsValid reports whether the grade is one of the enumerated form values
func (g Grade) IsValid() bool {
	switch g {
	case Grade9, Grade10, Grade11, Grade12:
		return true
	}
	return false
}
