package apiclient

import (
	"context"
	"fmt"

	"github.com/classpoint/classpoint/core/school"
)

func (c *Client) AssignmentsByTeacher(ctx context.Context, userID int) ([]school.Assignment, error) {
	var assignments []school.Assignment
	err := c.get(ctx, fmt.Sprintf("/assignments/teacher/%d", userID), &assignments)
	return assignments, err
}

func (c *Client) AssignmentsByStudent(ctx context.Context, userID int) ([]school.Assignment, error) {
	var assignments []school.Assignment
	err := c.get(ctx, fmt.Sprintf("/assignments/student/%d", userID), &assignments)
	return assignments, err
}

func (c *Client) CreateAssignment(ctx context.Context, asg school.Assignment) (school.Assignment, error) {
	var created school.Assignment
	err := c.sendJSON(ctx, "POST", "/assignments", asg, &created)
	return created, err
}

// assignments have no update operation; updates happen through submissions
func (c *Client) DeleteAssignment(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/assignments/%d", id))
}
