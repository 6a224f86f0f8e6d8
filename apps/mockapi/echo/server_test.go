package mockapi

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpoint/classpoint/apiclient"
	"github.com/classpoint/classpoint/core"
	"github.com/classpoint/classpoint/core/school"
	"github.com/classpoint/classpoint/core/session"
	"github.com/classpoint/classpoint/storage/kv"
)

func setup(t *testing.T) (*apiclient.Client, *session.Service) {
	t.Helper()

	conf := &core.Config{
		AppName:   "Classpoint",
		SecretKey: []byte("secret"),
		TestMode:  true,
	}
	validate, translator := core.NewValidator()

	app := NewServer(&Options{
		DisableReqLogs: true,
		Conf:           conf,
		Validate:       validate,
		Translator:     translator,
	})
	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)

	conf.Client.BaseURL = srv.URL + "/api"
	sess := session.NewService(kv.NewMemStore(), conf, validate, translator)
	client := apiclient.NewClient(&apiclient.Options{
		Conf:       conf,
		Session:    sess,
		Validate:   validate,
		Translator: translator,
	})
	return client, sess
}

func login(t *testing.T, client *apiclient.Client, username, password string) session.Session {
	t.Helper()
	sess, err := client.Login(context.Background(), username, password)
	require.NoError(t, err)
	return sess
}

func downloadSubmissionFile(t *testing.T, client *apiclient.Client, token string, id int) string {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, client.SubmissionFileURL(id), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	content, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(content)
}

func TestServer_login(t *testing.T) {
	client, sessSvc := setup(t)
	ctx := context.Background()

	// seeded demo account; the backend issues the bearer token
	sess := login(t, client, "Student", "123456")
	assert.Equal(t, "Иван Студентов", sess.Name)
	assert.Equal(t, school.RoleStudent, sess.Role)
	assert.NotEmpty(t, sess.Token)
	require.NotNil(t, sessSvc.Current())
	assert.Equal(t, sess, *sessSvc.Current())

	// the issued token authorizes resource calls
	subjects, err := client.Subjects(ctx)
	require.NoError(t, err)
	assert.Len(t, subjects, 3)

	// bad credentials
	_, err = client.Login(ctx, "student", "wrong")
	require.Error(t, err)
	apiErr, ok := errors.Cause(err).(*core.APIError)
	require.True(t, ok, "want APIError, got %T", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestServer_authRequired(t *testing.T) {
	client, _ := setup(t)

	_, err := client.Subjects(context.Background())
	require.Error(t, err)
	apiErr, ok := errors.Cause(err).(*core.APIError)
	require.True(t, ok, "want APIError, got %T", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "missing or malformed jwt")
}

func TestServer_register(t *testing.T) {
	client, sessSvc := setup(t)
	ctx := context.Background()

	sess, err := client.Register(ctx, session.NewAccount{
		Name:     "New Kid",
		Username: "newkid",
		Role:     school.RoleStudent,
		Password: "abcdef",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, sess.ID) // after the two seeded accounts
	assert.NotEmpty(t, sess.Token)
	assert.True(t, sessSvc.IsAuthenticated())

	// registering a student also creates their student record
	students, err := client.Students(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	st, err := client.StudentByUserID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Kid", st.Name)
	assert.Equal(t, sess.ID, st.UserID)

	// duplicate username, case-insensitively
	_, err = client.Register(ctx, session.NewAccount{
		Name:     "Other",
		Username: "NEWKID",
		Role:     school.RoleTeacher,
		Password: "abcdef",
	})
	require.Error(t, err)
	apiErr, ok := errors.Cause(err).(*core.APIError)
	require.True(t, ok, "want APIError, got %T", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "user already exists")

	// a registered teacher gets no student record
	_, err = client.Register(ctx, session.NewAccount{
		Name:     "New Teach",
		Username: "newteach",
		Role:     school.RoleTeacher,
		Password: "abcdef",
	})
	require.NoError(t, err)
	students, err = client.Students(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 2)
}

func TestServer_subjectCRUD(t *testing.T) {
	client, _ := setup(t)
	ctx := context.Background()
	login(t, client, "teacher", "123456")

	created, err := client.CreateSubject(ctx, school.Subject{Name: "История", TeacherID: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)

	updated, err := client.UpdateSubject(ctx, created.ID, school.Subject{Name: "Всемирная история", TeacherID: 2})
	require.NoError(t, err)
	assert.Equal(t, "Всемирная история", updated.Name)

	require.NoError(t, client.DeleteSubject(ctx, created.ID))

	subjects, err := client.Subjects(ctx)
	require.NoError(t, err)
	assert.Len(t, subjects, 3)

	err = client.DeleteSubject(ctx, created.ID)
	require.Error(t, err)
	apiErr, ok := errors.Cause(err).(*core.APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestServer_students(t *testing.T) {
	client, _ := setup(t)
	ctx := context.Background()
	login(t, client, "teacher", "123456")

	students, err := client.Students(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "101", students[0].Group)

	byUser, err := client.StudentByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, students[0].ID, byUser.ID)

	updated, err := client.UpdateStudent(ctx, students[0].ID, school.Student{Name: students[0].Name, Group: "102"})
	require.NoError(t, err)
	assert.Equal(t, "102", updated.Group)
	assert.Equal(t, students[0].UserID, updated.UserID) // user link survives updates

	groups, err := client.StudentGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"102"}, groups)
}

func TestServer_grades(t *testing.T) {
	client, _ := setup(t)
	ctx := context.Background()
	login(t, client, "teacher", "123456")

	g1, err := client.CreateGrade(ctx, school.NewGrade{StudentID: 1, SubjectID: 1, Value: 80})
	require.NoError(t, err)
	_, err = client.CreateGrade(ctx, school.NewGrade{StudentID: 1, SubjectID: 2, Value: 90})
	require.NoError(t, err)

	grades, err := client.GradesByStudent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, grades, 2)

	gpa, err := client.GPAByStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 85.0, gpa.GPA)

	updated, err := client.UpdateGrade(ctx, g1.ID, school.NewGrade{StudentID: 1, SubjectID: 1, Value: 100})
	require.NoError(t, err)
	assert.Equal(t, 100, updated.Value)

	require.NoError(t, client.DeleteGrade(ctx, g1.ID))
	grades, err = client.GradesByStudent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, grades, 1)

	// out-of-range values never leave the client
	_, err = client.CreateGrade(ctx, school.NewGrade{StudentID: 1, SubjectID: 1, Value: 101})
	require.Error(t, err)
	_, ok := errors.Cause(err).(*core.ValidationError)
	assert.True(t, ok, "want ValidationError, got %T", err)
}

func TestServer_scheduleCRUD(t *testing.T) {
	client, _ := setup(t)
	ctx := context.Background()
	login(t, client, "teacher", "123456")

	entry, err := client.CreateScheduleEntry(ctx, school.ScheduleEntry{
		SubjectID: 1, Group: "101", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30", Room: "204",
	})
	require.NoError(t, err)

	all, err := client.Schedule(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// the seeded student is in group 101
	byStudent, err := client.ScheduleByStudent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byStudent, 1)

	updated, err := client.UpdateScheduleEntry(ctx, entry.ID, school.ScheduleEntry{
		SubjectID: 1, Group: "202", DayOfWeek: 2, StartTime: "11:00", EndTime: "12:30",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.DayOfWeek)

	// moved out of the student's group
	byStudent, err = client.ScheduleByStudent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byStudent, 0)

	require.NoError(t, client.DeleteScheduleEntry(ctx, entry.ID))
}

func TestServer_assignmentsAndSubmissions(t *testing.T) {
	client, sessSvc := setup(t)
	ctx := context.Background()
	login(t, client, "teacher", "123456")

	asg, err := client.CreateAssignment(ctx, school.Assignment{
		SubjectID: 1, TeacherID: 2, Title: "Домашнее задание 1", DueDate: "2021-03-01",
	})
	require.NoError(t, err)

	byTeacher, err := client.AssignmentsByTeacher(ctx, 2)
	require.NoError(t, err)
	require.Len(t, byTeacher, 1)

	byStudent, err := client.AssignmentsByStudent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byStudent, 1)

	// the student submits with a file
	login(t, client, "student", "123456")
	sub, err := client.CreateSubmission(ctx, asg.ID, 1, "мой ответ",
		&apiclient.File{Name: "solution.txt", Content: strings.NewReader("42")})
	require.NoError(t, err)
	assert.Equal(t, "solution.txt", sub.FileName)
	assert.Nil(t, sub.Grade)

	updated, err := client.UpdateSubmission(ctx, sub.ID, "исправленный ответ", nil)
	require.NoError(t, err)
	assert.Equal(t, "исправленный ответ", updated.Text)
	assert.Equal(t, "solution.txt", updated.FileName) // file survives text-only updates

	byAssignment, err := client.SubmissionsByAssignment(ctx, asg.ID)
	require.NoError(t, err)
	require.Len(t, byAssignment, 1)

	mine, err := client.SubmissionsByStudent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	// the teacher grades it
	login(t, client, "teacher", "123456")
	graded, err := client.SetSubmissionGrade(ctx, sub.ID, 95)
	require.NoError(t, err)
	require.NotNil(t, graded.Grade)
	assert.Equal(t, 95, *graded.Grade)

	// the uploaded file is downloadable at the referenced URL
	content := downloadSubmissionFile(t, client, sessSvc.Token(), sub.ID)
	assert.Equal(t, "42", content)

	// re-uploading replaces the stored file
	login(t, client, "student", "123456")
	replaced, err := client.UpdateSubmission(ctx, sub.ID, "новый ответ",
		&apiclient.File{Name: "solution2.txt", Content: strings.NewReader("43")})
	require.NoError(t, err)
	assert.Equal(t, "solution2.txt", replaced.FileName)
	content = downloadSubmissionFile(t, client, sessSvc.Token(), sub.ID)
	assert.Equal(t, "43", content)

	login(t, client, "teacher", "123456")
	require.NoError(t, client.DeleteAssignment(ctx, asg.ID))
}

func TestServer_stats(t *testing.T) {
	client, _ := setup(t)
	ctx := context.Background()
	login(t, client, "teacher", "123456")

	_, err := client.CreateGrade(ctx, school.NewGrade{StudentID: 1, SubjectID: 1, Value: 90})
	require.NoError(t, err)
	_, err = client.CreateAssignment(ctx, school.Assignment{SubjectID: 1, TeacherID: 2, Title: "T1"})
	require.NoError(t, err)

	stats, err := client.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Students)
	assert.Equal(t, 3, stats.Subjects)
	assert.Equal(t, 1, stats.Assignments)
	assert.Equal(t, 90.0, stats.AverageGPA)

	top, err := client.TopStudents(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 90.0, top[0].GPA)

	dist, err := client.GPADistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dist[9])
}
