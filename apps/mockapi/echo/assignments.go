package mockapi

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classpoint/classpoint/core/school"
)

type assignmentAPI struct {
	db *database
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, db *database) {
	api := assignmentAPI{db: db}

	ag := g.Group("/assignments", jwt)
	ag.GET("/teacher/:userId", api.queryByTeacher)
	ag.GET("/student/:userId", api.queryByStudent)
	ag.POST("", api.create)
	ag.DELETE("/:id", api.destroy)
	// no update: assignment changes happen through submissions
}

func (api *assignmentAPI) list() []school.Assignment {
	assignments := make([]school.Assignment, 0, len(api.db.assignments))
	for _, a := range api.db.assignments {
		assignments = append(assignments, *a)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments
}

func (api *assignmentAPI) queryByTeacher(ctx echo.Context) error {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		return errHTTPNotFound
	}

	api.db.RLock()
	defer api.db.RUnlock()

	assignments := make([]school.Assignment, 0)
	for _, a := range api.list() {
		if a.TeacherID == userID {
			assignments = append(assignments, a)
		}
	}
	return ctx.JSON(http.StatusOK, assignments)
}

// queryByStudent resolves the student's subjects through their group
// schedule; a student sees every assignment of a subject they attend.
func (api *assignmentAPI) queryByStudent(ctx echo.Context) error {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		return errHTTPNotFound
	}

	api.db.RLock()
	defer api.db.RUnlock()

	var group string
	for _, st := range api.db.students {
		if st.UserID == userID {
			group = st.Group
			break
		}
	}

	attended := make(map[int]bool)
	for _, e := range api.db.schedule {
		if e.Group == "" || e.Group == group {
			attended[e.SubjectID] = true
		}
	}

	assignments := make([]school.Assignment, 0)
	for _, a := range api.list() {
		if len(attended) == 0 || attended[a.SubjectID] {
			assignments = append(assignments, a)
		}
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *assignmentAPI) create(ctx echo.Context) error {
	var data school.Assignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Assignment")
	}

	api.db.Lock()
	defer api.db.Unlock()

	data.ID = api.db.nextPK("assignments")
	api.db.assignments[data.ID] = &data
	return ctx.JSON(http.StatusCreated, data)
}

func (api *assignmentAPI) destroy(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}

	api.db.Lock()
	defer api.db.Unlock()

	if _, ok := api.db.assignments[id]; !ok {
		return errHTTPNotFound
	}
	delete(api.db.assignments, id)
	return ctx.NoContent(http.StatusNoContent)
}
