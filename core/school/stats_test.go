package school

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpoint/classpoint/core"
)

func TestGPA(t *testing.T) {
	grades := []Grade{
		{ID: 1, StudentID: 1, Value: 80},
		{ID: 2, StudentID: 1, Value: 90},
		{ID: 3, StudentID: 2, Value: 60},
	}

	assert.Equal(t, 85.0, GPA(grades, 1))
	assert.Equal(t, 60.0, GPA(grades, 2))
	assert.Equal(t, 0.0, GPA(grades, 3)) // no grades
}

func TestComputeDashboardStats(t *testing.T) {
	students := []Student{{ID: 1}, {ID: 2}}
	subjects := []Subject{{ID: 1}, {ID: 2}, {ID: 3}}
	assignments := []Assignment{{ID: 1}}
	grades := []Grade{
		{StudentID: 1, Value: 100},
		{StudentID: 2, Value: 50},
	}

	stats := ComputeDashboardStats(students, subjects, assignments, grades)
	assert.Equal(t, 2, stats.Students)
	assert.Equal(t, 3, stats.Subjects)
	assert.Equal(t, 1, stats.Assignments)
	assert.Equal(t, 75.0, stats.AverageGPA)

	empty := ComputeDashboardStats(nil, nil, nil, nil)
	assert.Equal(t, 0.0, empty.AverageGPA)
}

func TestTopStudents(t *testing.T) {
	students := []Student{
		{ID: 1, Name: "low"},
		{ID: 2, Name: "high"},
		{ID: 3, Name: "mid"},
	}
	grades := []Grade{
		{StudentID: 1, Value: 40},
		{StudentID: 2, Value: 95},
		{StudentID: 3, Value: 70},
	}

	top := TopStudents(students, grades, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "high", top[0].Student.Name)
	assert.Equal(t, 95.0, top[0].GPA)
	assert.Equal(t, "mid", top[1].Student.Name)

	// n <= 0 keeps everyone
	all := TopStudents(students, grades, 0)
	assert.Len(t, all, 3)
}

func TestGPADistribution(t *testing.T) {
	students := []Student{{ID: 1}, {ID: 2}, {ID: 3}}
	grades := []Grade{
		{StudentID: 1, Value: 5},   // bucket 0
		{StudentID: 2, Value: 55},  // bucket 5
		{StudentID: 3, Value: 100}, // clamped into bucket 9
	}

	dist := GPADistribution(students, grades)
	assert.Equal(t, 1, dist[0])
	assert.Equal(t, 1, dist[5])
	assert.Equal(t, 1, dist[9])
}

func TestCheckGradeBound(t *testing.T) {
	tests := []struct {
		name    string
		grade   int
		wantErr bool
	}{
		{name: "lower bound", grade: 0},
		{name: "upper bound", grade: 100},
		{name: "middle", grade: 42},
		{name: "below", grade: -1, wantErr: true},
		{name: "above", grade: 101, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckGradeBound(tt.grade)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			vErr, ok := errors.Cause(err).(*core.ValidationError)
			require.True(t, ok, "want ValidationError, got %T", err)
			require.Len(t, vErr.Fields, 1)
			assert.Equal(t, "grade", vErr.Fields[0].Field)
			assert.EqualError(t, vErr, "grade: grade must be between 0 and 100")
		})
	}
}

func TestNewGradeValidate(t *testing.T) {
	validate, translator := core.NewValidator()

	ng := NewGrade{StudentID: 1, SubjectID: 1, Value: 101}
	err := ng.Validate(validate, translator)
	require.Error(t, err)
	vErr, ok := errors.Cause(err).(*core.ValidationError)
	require.True(t, ok, "want ValidationError, got %T", err)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "value", vErr.Fields[0].Field)

	ng.Value = 100
	assert.NoError(t, ng.Validate(validate, translator))
}
