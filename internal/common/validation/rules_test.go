package validation

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-signup/internal/models"
)

func validApplication() models.Application {
	return models.Application{
		FullName:  "Jane Doe",
		Email:     "jdoe@caldwell.edu",
		StudentID: "123456",
	}
}

func TestRuleSet_Validate_ValidApplication(t *testing.T) {
	res := DefaultRuleSet().Validate(validApplication())

	assert.True(t, res.Valid())
	assert.Empty(t, res.Invalid())
	assert.Empty(t, res.Errors())
	require.Len(t, res.Fields, 3)
	assert.Equal(t, []string{"fullName", "email", "studentID"}, DefaultRuleSet().Fields())
}

func TestRuleSet_ValidateField_Messages(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		code    string
		message string
	}{
		{"empty name", "fullName", "", "REQUIRED", "Please Enter Your full name."},
		{"long name", "fullName", strings.Repeat("a", 51), "MAX_LENGTH", "Too Long!"},
		{"empty email", "email", "", "REQUIRED", "Please Enter Your Email."},
		{"not an email", "email", "jdoe", "INVALID_FORMAT", "Invalid email"},
		{"leading dot", "email", ".jdoe@caldwell.edu", "INVALID_FORMAT", "Invalid email"},
		{"double dot", "email", "j..doe@caldwell.edu", "INVALID_FORMAT", "Invalid email"},
		{"trailing dot", "email", "jdoe.@caldwell.edu", "INVALID_FORMAT", "Invalid email"},
		{"other domain", "email", "jdoe@gmail.com", "DOMAIN_MISMATCH", "Please enter your Caldwell Email."},
		{"uppercase domain", "email", "jdoe@CALDWELL.EDU", "DOMAIN_MISMATCH", "Please enter your Caldwell Email."},
		{"subdomain", "email", "jdoe@mail.caldwell.edu", "DOMAIN_MISMATCH", "Please enter your Caldwell Email."},
		{"trailing text", "email", "jdoe@caldwell.edu.com", "DOMAIN_MISMATCH", "Please enter your Caldwell Email."},
		{"empty id", "studentID", "", "REQUIRED", "Please Enter Your Student ID."},
		{"letter in id", "studentID", "12a456", "PATTERN_MISMATCH", "Please enter your valid Caldwell Student ID"},
		{"short id", "studentID", "12345", "PATTERN_MISMATCH", "Please enter your valid Caldwell Student ID"},
	}

	rs := DefaultRuleSet()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := rs.ValidateField(tt.field, tt.value)
			require.True(t, ok)
			assert.False(t, res.Valid)
			assert.Equal(t, tt.code, res.Code)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestRuleSet_ValidateField_UnknownField(t *testing.T) {
	_, ok := DefaultRuleSet().ValidateField("phone", "555")
	assert.False(t, ok)
}

func TestRuleSet_FullNameLengths(t *testing.T) {
	rs := DefaultRuleSet()
	for n := 0; n <= 60; n++ {
		res, _ := rs.ValidateField(models.FieldFullName, strings.Repeat("é", n))
		assert.Equal(t, n >= 1 && n <= 50, res.Valid, "length %d", n)
	}

	// characters outside the BMP take two code units each
	res, _ := rs.ValidateField(models.FieldFullName, strings.Repeat("\U0001F600", 25))
	assert.True(t, res.Valid)

	res, _ = rs.ValidateField(models.FieldFullName, strings.Repeat("\U0001F600", 26))
	assert.False(t, res.Valid)
	assert.Equal(t, "MAX_LENGTH", res.Code)
	assert.Equal(t, "Too Long!", res.Message)

	res, _ = rs.ValidateField(models.FieldFullName, strings.Repeat("a", 49)+"\U0001F600")
	assert.False(t, res.Valid)
}

func TestRuleSet_EmailAcceptsValidLocalParts(t *testing.T) {
	rs := DefaultRuleSet()
	for _, email := range []string{"jdoe@caldwell.edu", "j.doe+x%y@caldwell.edu", "j_doe-1@caldwell.edu"} {
		res, _ := rs.ValidateField(models.FieldEmail, email)
		assert.True(t, res.Valid, email)
	}
}

func randomDigits(r *rand.Rand, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + r.Intn(10)))
	}
	return b.String()
}

func TestRuleSet_StudentIDDigits(t *testing.T) {
	rs := DefaultRuleSet()
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		n := r.Intn(12)
		id := randomDigits(r, n)
		res, _ := rs.ValidateField(models.FieldStudentID, id)
		assert.Equal(t, n == 6, res.Valid, "id %q", id)
	}

	for i := 0; i < 200; i++ {
		id := []byte(randomDigits(r, 6))
		id[r.Intn(6)] = "abcXYZ -_./"[r.Intn(11)]
		res, _ := rs.ValidateField(models.FieldStudentID, string(id))
		assert.False(t, res.Valid, "id %q", id)
	}
}

func TestRuleSet_EmailSuffix(t *testing.T) {
	rs := DefaultRuleSet()
	r := rand.New(rand.NewSource(7))
	domains := []string{"gmail.com", "caldwell.org", "Caldwell.edu", "caldwelledu", "caldwell.edu.", "xcaldwell.edu"}

	for i := 0; i < 200; i++ {
		local := "s" + randomDigits(r, 1+r.Intn(8))
		res, _ := rs.ValidateField(models.FieldEmail, local+"@"+domains[r.Intn(len(domains))])
		assert.False(t, res.Valid)

		res, _ = rs.ValidateField(models.FieldEmail, local+"@caldwell.edu")
		assert.True(t, res.Valid)
	}
}

func TestResult_Accessors(t *testing.T) {
	app := validApplication()
	app.Email = "jdoe@gmail.com"
	app.StudentID = "12a456"

	res := DefaultRuleSet().Validate(app)

	assert.False(t, res.Valid())
	assert.Equal(t, []string{"email", "studentID"}, res.Invalid())
	assert.Equal(t, "", res.Message("fullName"))
	assert.Equal(t, "Please enter your Caldwell Email.", res.Message("email"))
	assert.Equal(t, []ValidationError{
		{Field: "email", Message: "Please enter your Caldwell Email.", Code: "DOMAIN_MISMATCH"},
		{Field: "studentID", Message: "Please enter your valid Caldwell Student ID", Code: "PATTERN_MISMATCH"},
	}, res.Errors())
}

func TestNewRuleSet_Custom(t *testing.T) {
	rs := NewRuleSet(FieldRules{Field: "email", Rules: []Rule{
		{Code: "A", Message: "first", Check: func(string) bool { return false }},
		{Code: "B", Message: "second", Check: func(string) bool { return false }},
	}})

	res, ok := rs.ValidateField("email", "anything")
	require.True(t, ok)
	assert.Equal(t, "first", res.Message)
}
