package mockapi

import (
	"io/ioutil"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classpoint/classpoint/core/school"
)

type submissionAPI struct {
	db *database
}

func registerSubmissionAPI(g *echo.Group, jwt echo.MiddlewareFunc, db *database) {
	api := submissionAPI{db: db}

	sg := g.Group("/assignment-submissions", jwt)
	sg.GET("/assignment/:assignmentId", api.queryByAssignment)
	sg.GET("/student/:userId", api.queryByStudent)
	sg.POST("", api.create)
	sg.PUT("/:id", api.update)
	sg.PATCH("/:id/grade", api.setGrade)
	sg.GET("/:id/file", api.downloadFile)
}

func (api *submissionAPI) list() []school.Submission {
	submissions := make([]school.Submission, 0, len(api.db.submissions))
	for _, s := range api.db.submissions {
		submissions = append(submissions, *s)
	}
	sort.Slice(submissions, func(i, j int) bool { return submissions[i].ID < submissions[j].ID })
	return submissions
}

func (api *submissionAPI) queryByAssignment(ctx echo.Context) error {
	assignmentID, err := strconv.Atoi(ctx.Param("assignmentId"))
	if err != nil {
		return errHTTPNotFound
	}

	api.db.RLock()
	defer api.db.RUnlock()

	submissions := make([]school.Submission, 0)
	for _, s := range api.list() {
		if s.AssignmentID == assignmentID {
			submissions = append(submissions, s)
		}
	}
	return ctx.JSON(http.StatusOK, submissions)
}

func (api *submissionAPI) queryByStudent(ctx echo.Context) error {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		return errHTTPNotFound
	}

	api.db.RLock()
	defer api.db.RUnlock()

	var studentID int
	for _, st := range api.db.students {
		if st.UserID == userID {
			studentID = st.ID
			break
		}
	}

	submissions := make([]school.Submission, 0)
	for _, s := range api.list() {
		if s.StudentID == studentID {
			submissions = append(submissions, s)
		}
	}
	return ctx.JSON(http.StatusOK, submissions)
}

func (api *submissionAPI) create(ctx echo.Context) error {
	assignmentID, err := strconv.Atoi(ctx.FormValue("assignment_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "assignment_id is required")
	}
	studentID, err := strconv.Atoi(ctx.FormValue("student_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "student_id is required")
	}

	file, err := api.readFile(ctx)
	if err != nil {
		return err
	}

	api.db.Lock()
	defer api.db.Unlock()

	sub := &school.Submission{
		ID:           api.db.nextPK("submissions"),
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Text:         ctx.FormValue("text"),
		SubmittedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if file != nil {
		sub.FileName = file.FileName
		api.db.storeFile(sub.ID, file)
	}
	api.db.submissions[sub.ID] = sub
	return ctx.JSON(http.StatusCreated, *sub)
}

func (api *submissionAPI) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}

	file, err := api.readFile(ctx)
	if err != nil {
		return err
	}

	api.db.Lock()
	defer api.db.Unlock()

	sub, ok := api.db.submissions[id]
	if !ok {
		return errHTTPNotFound
	}
	sub.Text = ctx.FormValue("text")
	sub.SubmittedAt = time.Now().UTC().Format(time.RFC3339)
	if file != nil {
		sub.FileName = file.FileName
		api.db.storeFile(id, file)
	}
	return ctx.JSON(http.StatusOK, *sub)
}

func (api *submissionAPI) setGrade(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}
	var data struct {
		Grade int `json:"grade"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding grade")
	}
	if err := school.CheckGradeBound(data.Grade); err != nil {
		return err
	}

	api.db.Lock()
	defer api.db.Unlock()

	sub, ok := api.db.submissions[id]
	if !ok {
		return errHTTPNotFound
	}
	grade := data.Grade
	sub.Grade = &grade
	return ctx.JSON(http.StatusOK, *sub)
}

func (api *submissionAPI) downloadFile(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}

	api.db.RLock()
	defer api.db.RUnlock()

	file, ok := api.db.fileFor(id)
	if !ok {
		return errHTTPNotFound
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+file.FileName+`"`)
	return ctx.Blob(http.StatusOK, echo.MIMEOctetStream, file.Content)
}

// readFile pulls the optional multipart file; absent files are fine.
func (api *submissionAPI) readFile(ctx echo.Context) (*submissionFile, error) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return nil, nil // no file attached
	}
	src, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "opening uploaded file")
	}
	defer src.Close()

	content, err := ioutil.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "reading uploaded file")
	}
	return &submissionFile{
		StorageName: uuid.New().String(),
		FileName:    fh.Filename,
		Content:     content,
	}, nil
}
