package apiclient

import (
	"context"
	"fmt"

	"github.com/classpoint/classpoint/core/school"
)

func (c *Client) Subjects(ctx context.Context) ([]school.Subject, error) {
	var subjects []school.Subject
	err := c.get(ctx, "/subjects", &subjects)
	return subjects, err
}

func (c *Client) CreateSubject(ctx context.Context, subj school.Subject) (school.Subject, error) {
	var created school.Subject
	err := c.sendJSON(ctx, "POST", "/subjects", subj, &created)
	return created, err
}

func (c *Client) UpdateSubject(ctx context.Context, id int, subj school.Subject) (school.Subject, error) {
	var updated school.Subject
	err := c.sendJSON(ctx, "PUT", fmt.Sprintf("/subjects/%d", id), subj, &updated)
	return updated, err
}

func (c *Client) DeleteSubject(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/subjects/%d", id))
}
