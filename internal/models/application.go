// internal/models/application.go
package models

// Field names as they appear in form posts, JSON bodies and stored documents.
const (
	FieldFullName  = "fullName"
	FieldEmail     = "email"
	FieldStudentID = "studentID"
)

// Fields lists the application fields in display order.
var Fields = []string{FieldFullName, FieldEmail, FieldStudentID}

// Application is the record a student submits. It is written once under a
// random document ID and never read back.
type Application struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	StudentID string `json:"studentID"`
}

// Get returns the value of the named field.
func (a Application) Get(field string) (string, bool) {
	switch field {
	case FieldFullName:
		return a.FullName, true
	case FieldEmail:
		return a.Email, true
	case FieldStudentID:
		return a.StudentID, true
	}
	return "", false
}

// Set assigns the named field and reports whether the name was known.
func (a *Application) Set(field, value string) bool {
	switch field {
	case FieldFullName:
		a.FullName = value
	case FieldEmail:
		a.Email = value
	case FieldStudentID:
		a.StudentID = value
	default:
		return false
	}
	return true
}

// IsField reports whether name is one of the application fields.
func IsField(name string) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}
