package apiclient

import (
	"context"
	"fmt"

	"github.com/classpoint/classpoint/core/school"
)

func (c *Client) Schedule(ctx context.Context) ([]school.ScheduleEntry, error) {
	var entries []school.ScheduleEntry
	err := c.get(ctx, "/schedules", &entries)
	return entries, err
}

func (c *Client) ScheduleByStudent(ctx context.Context, studentID int) ([]school.ScheduleEntry, error) {
	var entries []school.ScheduleEntry
	err := c.get(ctx, fmt.Sprintf("/schedules/student/%d", studentID), &entries)
	return entries, err
}

func (c *Client) CreateScheduleEntry(ctx context.Context, entry school.ScheduleEntry) (school.ScheduleEntry, error) {
	var created school.ScheduleEntry
	err := c.sendJSON(ctx, "POST", "/schedules", entry, &created)
	return created, err
}

func (c *Client) UpdateScheduleEntry(ctx context.Context, id int, entry school.ScheduleEntry) (school.ScheduleEntry, error) {
	var updated school.ScheduleEntry
	err := c.sendJSON(ctx, "PUT", fmt.Sprintf("/schedules/%d", id), entry, &updated)
	return updated, err
}

func (c *Client) DeleteScheduleEntry(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/schedules/%d", id))
}
