package apiclient

import (
	"context"
	"fmt"
	"strconv"

	"github.com/classpoint/classpoint/core/school"
)

func (c *Client) SubmissionsByAssignment(ctx context.Context, assignmentID int) ([]school.Submission, error) {
	var submissions []school.Submission
	err := c.get(ctx, fmt.Sprintf("/assignment-submissions/assignment/%d", assignmentID), &submissions)
	return submissions, err
}

func (c *Client) SubmissionsByStudent(ctx context.Context, userID int) ([]school.Submission, error) {
	var submissions []school.Submission
	err := c.get(ctx, fmt.Sprintf("/assignment-submissions/student/%d", userID), &submissions)
	return submissions, err
}

// CreateSubmission uploads a new submission; text and file are both optional
// on the backend side but the encoding is always multipart.
func (c *Client) CreateSubmission(ctx context.Context, assignmentID, studentID int, text string, file *File) (school.Submission, error) {
	fields := map[string]string{
		"assignment_id": strconv.Itoa(assignmentID),
		"student_id":    strconv.Itoa(studentID),
		"text":          text,
	}
	var created school.Submission
	err := c.sendMultipart(ctx, "POST", "/assignment-submissions", fields, file, &created)
	return created, err
}

func (c *Client) UpdateSubmission(ctx context.Context, id int, text string, file *File) (school.Submission, error) {
	fields := map[string]string{"text": text}
	var updated school.Submission
	err := c.sendMultipart(ctx, "PUT", fmt.Sprintf("/assignment-submissions/%d", id), fields, file, &updated)
	return updated, err
}

// SetSubmissionGrade is a partial update. The grade bound is enforced here,
// before any network call is made.
func (c *Client) SetSubmissionGrade(ctx context.Context, id, grade int) (school.Submission, error) {
	if err := school.CheckGradeBound(grade); err != nil {
		return school.Submission{}, err
	}
	var updated school.Submission
	err := c.sendJSON(ctx, "PATCH", fmt.Sprintf("/assignment-submissions/%d/grade", id),
		map[string]int{"grade": grade}, &updated)
	return updated, err
}

// SubmissionFileURL builds the download address of a submission's file; the
// view layer links to it directly.
func (c *Client) SubmissionFileURL(id int) string {
	return fmt.Sprintf("%s/assignment-submissions/%d/file", c.baseURL, id)
}
