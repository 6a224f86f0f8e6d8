package school

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/classpoint/classpoint/core"
)

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

var AllRoles = []string{RoleStudent, RoleTeacher}

// The resource records below mirror the backend schemas as-is. The client
// does not validate or transform their contents beyond JSON (de)serialization;
// schema ownership lies with the backend.

type Subject struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TeacherID   int    `json:"teacher_id,omitempty"`
}

type Student struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Group  string `json:"group"`
	Email  string `json:"email,omitempty"`
}

type Grade struct {
	ID        int    `json:"id"`
	StudentID int    `json:"student_id"`
	SubjectID int    `json:"subject_id"`
	Value     int    `json:"value"`
	Comment   string `json:"comment,omitempty"`
	Date      string `json:"date,omitempty"`
}

type ScheduleEntry struct {
	ID        int    `json:"id"`
	SubjectID int    `json:"subject_id"`
	Group     string `json:"group,omitempty"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room,omitempty"`
}

type Assignment struct {
	ID          int    `json:"id"`
	SubjectID   int    `json:"subject_id"`
	TeacherID   int    `json:"teacher_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

type Submission struct {
	ID           int    `json:"id"`
	AssignmentID int    `json:"assignment_id"`
	StudentID    int    `json:"student_id"`
	Text         string `json:"text,omitempty"`
	FileName     string `json:"file_name,omitempty"`
	Grade        *int   `json:"grade,omitempty"`
	SubmittedAt  string `json:"submitted_at,omitempty"`
}

// StudentGPA is the derived GPA read for a single student.
type StudentGPA struct {
	StudentID int     `json:"student_id"`
	GPA       float64 `json:"gpa"`
}

// NewGrade contains information needed to create or update a Grade.
type NewGrade struct {
	StudentID int    `json:"student_id" validate:"required"`
	SubjectID int    `json:"subject_id" validate:"required"`
	Value     int    `json:"value" validate:"min=0,max=100"`
	Comment   string `json:"comment"`
	Date      string `json:"date"`
}

func (ng *NewGrade) Validate(validate *validator.Validate, translator ut.Translator) error {
	ng.Comment = core.CleanString(ng.Comment)
	if err := validate.Struct(ng); err != nil {
		return core.TranslateValidationErrors(err, translator)
	}
	return nil
}

// CheckGradeBound enforces the client-side grade range before any network
// call is made on behalf of a grading operation.
func CheckGradeBound(grade int) error {
	if grade < 0 || grade > 100 {
		return core.NewValidationError(nil, core.FieldError{Field: "grade", Error: "grade must be between 0 and 100"})
	}
	return nil
}
