package mockapi

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classpoint/classpoint/core/school"
)

type gradeAPI struct {
	db   *database
	opts *Options
}

func registerGradeAPI(g *echo.Group, jwt echo.MiddlewareFunc, db *database, opts *Options) {
	api := gradeAPI{db: db, opts: opts}

	gg := g.Group("/grades", jwt)
	gg.GET("", api.query)
	gg.GET("/student/:studentId", api.queryByStudent)
	gg.GET("/student/:studentId/gpa", api.retrieveGPA)
	gg.POST("", api.create)
	gg.PUT("/:id", api.update)
	gg.DELETE("/:id", api.destroy)
}

func (api *gradeAPI) list() []school.Grade {
	grades := make([]school.Grade, 0, len(api.db.grades))
	for _, g := range api.db.grades {
		grades = append(grades, *g)
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].ID < grades[j].ID })
	return grades
}

func (api *gradeAPI) query(ctx echo.Context) error {
	api.db.RLock()
	defer api.db.RUnlock()
	return ctx.JSON(http.StatusOK, api.list())
}

func (api *gradeAPI) queryByStudent(ctx echo.Context) error {
	studentID, err := strconv.Atoi(ctx.Param("studentId"))
	if err != nil {
		return errHTTPNotFound
	}

	api.db.RLock()
	defer api.db.RUnlock()

	grades := make([]school.Grade, 0)
	for _, g := range api.list() {
		if g.StudentID == studentID {
			grades = append(grades, g)
		}
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeAPI) retrieveGPA(ctx echo.Context) error {
	studentID, err := strconv.Atoi(ctx.Param("studentId"))
	if err != nil {
		return errHTTPNotFound
	}

	api.db.RLock()
	defer api.db.RUnlock()

	gpa := school.StudentGPA{
		StudentID: studentID,
		GPA:       school.GPA(api.list(), studentID),
	}
	return ctx.JSON(http.StatusOK, gpa)
}

func (api *gradeAPI) create(ctx echo.Context) error {
	var data school.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.opts.Validate, api.opts.Translator); err != nil {
		return err
	}

	api.db.Lock()
	defer api.db.Unlock()

	grade := &school.Grade{
		ID:        api.db.nextPK("grades"),
		StudentID: data.StudentID,
		SubjectID: data.SubjectID,
		Value:     data.Value,
		Comment:   data.Comment,
		Date:      data.Date,
	}
	api.db.grades[grade.ID] = grade
	return ctx.JSON(http.StatusCreated, *grade)
}

func (api *gradeAPI) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}
	var data school.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.opts.Validate, api.opts.Translator); err != nil {
		return err
	}

	api.db.Lock()
	defer api.db.Unlock()

	if _, ok := api.db.grades[id]; !ok {
		return errHTTPNotFound
	}
	grade := &school.Grade{
		ID:        id,
		StudentID: data.StudentID,
		SubjectID: data.SubjectID,
		Value:     data.Value,
		Comment:   data.Comment,
		Date:      data.Date,
	}
	api.db.grades[id] = grade
	return ctx.JSON(http.StatusOK, *grade)
}

func (api *gradeAPI) destroy(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}

	api.db.Lock()
	defer api.db.Unlock()

	if _, ok := api.db.grades[id]; !ok {
		return errHTTPNotFound
	}
	delete(api.db.grades, id)
	return ctx.NoContent(http.StatusNoContent)
}
