package apiclient

import (
	"context"
	"fmt"

	"github.com/classpoint/classpoint/core/school"
)

func (c *Client) Students(ctx context.Context) ([]school.Student, error) {
	var students []school.Student
	err := c.get(ctx, "/students", &students)
	return students, err
}

func (c *Client) StudentByUserID(ctx context.Context, userID int) (school.Student, error) {
	var student school.Student
	err := c.get(ctx, fmt.Sprintf("/students/by-user/%d", userID), &student)
	return student, err
}

// StudentGroups lists the distinct group names known to the backend.
func (c *Client) StudentGroups(ctx context.Context) ([]string, error) {
	var groups []string
	err := c.get(ctx, "/students/groups", &groups)
	return groups, err
}

func (c *Client) UpdateStudent(ctx context.Context, id int, student school.Student) (school.Student, error) {
	var updated school.Student
	err := c.sendJSON(ctx, "PUT", fmt.Sprintf("/students/%d", id), student, &updated)
	return updated, err
}

// DeleteStudent is a deliberate stub: student records exist only through
// registration and the backend exposes no delete. It signals unsupported and
// returns a synthetic success without contacting the backend.
func (c *Client) DeleteStudent(ctx context.Context, id int) error {
	if c.log != nil {
		c.log.Warn("student deletion is not supported; ignoring", map[string]interface{}{"id": id})
	}
	return nil
}
