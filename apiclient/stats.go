package apiclient

import (
	"context"

	"github.com/pkg/errors"

	"github.com/classpoint/classpoint/core/school"
)

// Thin compositions of the list calls for the dashboard and rating views.
// They carry no contract of their own beyond the calls they make.

func (c *Client) DashboardStats(ctx context.Context) (school.DashboardStats, error) {
	students, subjects, grades, err := c.fetchRatingData(ctx)
	if err != nil {
		return school.DashboardStats{}, err
	}
	var assignments []school.Assignment
	seen := make(map[int]bool)
	for _, subj := range subjects {
		if subj.TeacherID == 0 || seen[subj.TeacherID] {
			continue
		}
		seen[subj.TeacherID] = true
		asgs, err := c.AssignmentsByTeacher(ctx, subj.TeacherID)
		if err != nil {
			return school.DashboardStats{}, errors.Wrap(err, "listing assignments")
		}
		assignments = append(assignments, asgs...)
	}
	return school.ComputeDashboardStats(students, subjects, assignments, grades), nil
}

func (c *Client) TopStudents(ctx context.Context, n int) ([]school.RatedStudent, error) {
	students, _, grades, err := c.fetchRatingData(ctx)
	if err != nil {
		return nil, err
	}
	return school.TopStudents(students, grades, n), nil
}

func (c *Client) GPADistribution(ctx context.Context) ([10]int, error) {
	students, _, grades, err := c.fetchRatingData(ctx)
	if err != nil {
		return [10]int{}, err
	}
	return school.GPADistribution(students, grades), nil
}

func (c *Client) fetchRatingData(ctx context.Context) ([]school.Student, []school.Subject, []school.Grade, error) {
	students, err := c.Students(ctx)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "listing students")
	}
	subjects, err := c.Subjects(ctx)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "listing subjects")
	}
	grades, err := c.Grades(ctx)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "listing grades")
	}
	return students, subjects, grades, nil
}
