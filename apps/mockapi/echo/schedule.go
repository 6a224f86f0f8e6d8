package mockapi

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classpoint/classpoint/core/school"
)

type scheduleAPI struct {
	db *database
}

func registerScheduleAPI(g *echo.Group, jwt echo.MiddlewareFunc, db *database) {
	api := scheduleAPI{db: db}

	sg := g.Group("/schedules", jwt)
	sg.GET("", api.query)
	sg.GET("/student/:studentId", api.queryByStudent)
	sg.POST("", api.create)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

func (api *scheduleAPI) list() []school.ScheduleEntry {
	entries := make([]school.ScheduleEntry, 0, len(api.db.schedule))
	for _, e := range api.db.schedule {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

func (api *scheduleAPI) query(ctx echo.Context) error {
	api.db.RLock()
	defer api.db.RUnlock()
	return ctx.JSON(http.StatusOK, api.list())
}

// queryByStudent filters entries down to the student's group.
func (api *scheduleAPI) queryByStudent(ctx echo.Context) error {
	studentID, err := strconv.Atoi(ctx.Param("studentId"))
	if err != nil {
		return errHTTPNotFound
	}

	api.db.RLock()
	defer api.db.RUnlock()

	student, ok := api.db.students[studentID]
	if !ok {
		return errHTTPNotFound
	}
	entries := make([]school.ScheduleEntry, 0)
	for _, e := range api.list() {
		if e.Group == "" || e.Group == student.Group {
			entries = append(entries, e)
		}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *scheduleAPI) create(ctx echo.Context) error {
	var data school.ScheduleEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ScheduleEntry")
	}

	api.db.Lock()
	defer api.db.Unlock()

	data.ID = api.db.nextPK("schedule")
	api.db.schedule[data.ID] = &data
	return ctx.JSON(http.StatusCreated, data)
}

func (api *scheduleAPI) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}
	var data school.ScheduleEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ScheduleEntry")
	}

	api.db.Lock()
	defer api.db.Unlock()

	if _, ok := api.db.schedule[id]; !ok {
		return errHTTPNotFound
	}
	data.ID = id
	api.db.schedule[id] = &data
	return ctx.JSON(http.StatusOK, data)
}

func (api *scheduleAPI) destroy(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}

	api.db.Lock()
	defer api.db.Unlock()

	if _, ok := api.db.schedule[id]; !ok {
		return errHTTPNotFound
	}
	delete(api.db.schedule, id)
	return ctx.NoContent(http.StatusNoContent)
}
