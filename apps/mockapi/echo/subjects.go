package mockapi

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classpoint/classpoint/core/school"
)

type subjectAPI struct {
	db *database
}

func registerSubjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, db *database) {
	api := subjectAPI{db: db}

	sg := g.Group("/subjects", jwt)
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

func (api *subjectAPI) query(ctx echo.Context) error {
	api.db.RLock()
	defer api.db.RUnlock()

	subjects := make([]school.Subject, 0, len(api.db.subjects))
	for _, subj := range api.db.subjects {
		subjects = append(subjects, *subj)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectAPI) create(ctx echo.Context) error {
	var data school.Subject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Subject")
	}

	api.db.Lock()
	defer api.db.Unlock()

	data.ID = api.db.nextPK("subjects")
	api.db.subjects[data.ID] = &data
	return ctx.JSON(http.StatusCreated, data)
}

func (api *subjectAPI) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}
	var data school.Subject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Subject")
	}

	api.db.Lock()
	defer api.db.Unlock()

	if _, ok := api.db.subjects[id]; !ok {
		return errHTTPNotFound
	}
	data.ID = id
	api.db.subjects[id] = &data
	return ctx.JSON(http.StatusOK, data)
}

func (api *subjectAPI) destroy(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}

	api.db.Lock()
	defer api.db.Unlock()

	if _, ok := api.db.subjects[id]; !ok {
		return errHTTPNotFound
	}
	delete(api.db.subjects, id)
	return ctx.NoContent(http.StatusNoContent)
}
