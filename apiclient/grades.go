package apiclient

import (
	"context"
	"fmt"

	"github.com/classpoint/classpoint/core/school"
)

func (c *Client) Grades(ctx context.Context) ([]school.Grade, error) {
	var grades []school.Grade
	err := c.get(ctx, "/grades", &grades)
	return grades, err
}

func (c *Client) GradesByStudent(ctx context.Context, studentID int) ([]school.Grade, error) {
	var grades []school.Grade
	err := c.get(ctx, fmt.Sprintf("/grades/student/%d", studentID), &grades)
	return grades, err
}

// GPAByStudent is the derived GPA read computed by the backend.
func (c *Client) GPAByStudent(ctx context.Context, studentID int) (school.StudentGPA, error) {
	var gpa school.StudentGPA
	err := c.get(ctx, fmt.Sprintf("/grades/student/%d/gpa", studentID), &gpa)
	return gpa, err
}

func (c *Client) CreateGrade(ctx context.Context, ng school.NewGrade) (school.Grade, error) {
	if err := ng.Validate(c.validate, c.translator); err != nil {
		return school.Grade{}, err
	}
	var created school.Grade
	err := c.sendJSON(ctx, "POST", "/grades", ng, &created)
	return created, err
}

func (c *Client) UpdateGrade(ctx context.Context, id int, ng school.NewGrade) (school.Grade, error) {
	if err := ng.Validate(c.validate, c.translator); err != nil {
		return school.Grade{}, err
	}
	var updated school.Grade
	err := c.sendJSON(ctx, "PUT", fmt.Sprintf("/grades/%d", id), ng, &updated)
	return updated, err
}

func (c *Client) DeleteGrade(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/grades/%d", id))
}
