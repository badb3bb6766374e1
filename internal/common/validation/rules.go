package validation

import (
	"regexp"
	"unicode/utf16"

	"github.com/asaskevich/govalidator"

	"club-signup/internal/models"
)

var (
	caldwellPattern  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@caldwell\.edu$`)
	studentIDPattern = regexp.MustCompile(`^[0-9]{6}$`)
)

const (
	FullNameMinLength = 1
	FullNameMaxLength = 50
)

// nameLength counts UTF-16 code units, so characters outside the BMP
// count twice, matching browser-side length limits.
func nameLength(v string) int {
	return len(utf16.Encode([]rune(v)))
}

// Rule is a single predicate over a raw field value. Message is shown when
// Check returns false.
type Rule struct {
	Code    string
	Message string
	Check   func(value string) bool
}

// FieldRules holds the ordered rules of one field.
type FieldRules struct {
	Field string
	Rules []Rule
}

// RuleSet evaluates each field independently; the first failing rule of a
// field decides its message.
type RuleSet struct {
	fields []FieldRules
}

// FieldResult is the outcome of validating one field.
type FieldResult struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Result holds one FieldResult per field, in rule-set order.
type Result struct {
	Fields []FieldResult `json:"fields"`
}

func required(code, message string) Rule {
	return Rule{Code: code, Message: message, Check: func(v string) bool { return v != "" }}
}

func matches(re *regexp.Regexp, code, message string) Rule {
	return Rule{Code: code, Message: message, Check: re.MatchString}
}

// DefaultRuleSet returns the signup form rules.
func DefaultRuleSet() *RuleSet {
	return NewRuleSet(
		FieldRules{Field: models.FieldFullName, Rules: []Rule{
			required("REQUIRED", "Please Enter Your full name."),
			{
				Code:    "MIN_LENGTH",
				Message: "Too Short!",
				Check:   func(v string) bool { return nameLength(v) >= FullNameMinLength },
			},
			{
				Code:    "MAX_LENGTH",
				Message: "Too Long!",
				Check:   func(v string) bool { return nameLength(v) <= FullNameMaxLength },
			},
		}},
		FieldRules{Field: models.FieldEmail, Rules: []Rule{
			required("REQUIRED", "Please Enter Your Email."),
			{Code: "INVALID_FORMAT", Message: "Invalid email", Check: govalidator.IsEmail},
			matches(caldwellPattern, "DOMAIN_MISMATCH", "Please enter your Caldwell Email."),
		}},
		FieldRules{Field: models.FieldStudentID, Rules: []Rule{
			required("REQUIRED", "Please Enter Your Student ID."),
			matches(studentIDPattern, "PATTERN_MISMATCH", "Please enter your valid Caldwell Student ID"),
		}},
	)
}

// NewRuleSet builds a rule set from per-field rule lists.
func NewRuleSet(fields ...FieldRules) *RuleSet {
	return &RuleSet{fields: fields}
}

// Fields returns the field names covered by the rule set.
func (rs *RuleSet) Fields() []string {
	names := make([]string, len(rs.fields))
	for i, f := range rs.fields {
		names[i] = f.Field
	}
	return names
}

// ValidateField runs the rules of field against value. ok is false when the
// rule set has no such field.
func (rs *RuleSet) ValidateField(field, value string) (res FieldResult, ok bool) {
	for _, f := range rs.fields {
		if f.Field != field {
			continue
		}
		for _, rule := range f.Rules {
			if !rule.Check(value) {
				return FieldResult{Field: field, Code: rule.Code, Message: rule.Message}, true
			}
		}
		return FieldResult{Field: field, Valid: true}, true
	}
	return FieldResult{}, false
}

// Validate evaluates every field of app.
func (rs *RuleSet) Validate(app models.Application) Result {
	res := Result{Fields: make([]FieldResult, 0, len(rs.fields))}
	for _, f := range rs.fields {
		value, _ := app.Get(f.Field)
		fr, _ := rs.ValidateField(f.Field, value)
		res.Fields = append(res.Fields, fr)
	}
	return res
}

// Valid reports whether every field passed.
func (r Result) Valid() bool {
	for _, f := range r.Fields {
		if !f.Valid {
			return false
		}
	}
	return true
}

// Message returns the error text for field, or "" if it passed.
func (r Result) Message(field string) string {
	for _, f := range r.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// Invalid lists the fields that failed, in rule-set order.
func (r Result) Invalid() []string {
	var out []string
	for _, f := range r.Fields {
		if !f.Valid {
			out = append(out, f.Field)
		}
	}
	return out
}

// Errors converts the failing fields to ValidationErrors.
func (r Result) Errors() []ValidationError {
	var out []ValidationError
	for _, f := range r.Fields {
		if !f.Valid {
			out = append(out, ValidationError{Field: f.Field, Message: f.Message, Code: f.Code})
		}
	}
	return out
}
