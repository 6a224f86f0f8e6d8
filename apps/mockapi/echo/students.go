package mockapi

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classpoint/classpoint/core/school"
)

type studentAPI struct {
	db *database
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, db *database) {
	api := studentAPI{db: db}

	sg := g.Group("/students", jwt)
	sg.GET("", api.query)
	sg.GET("/groups", api.queryGroups)
	sg.GET("/by-user/:userId", api.retrieveByUserID)
	sg.PUT("/:id", api.update)
	// no create/delete: student records exist only through registration
}

func (api *studentAPI) query(ctx echo.Context) error {
	api.db.RLock()
	defer api.db.RUnlock()

	students := make([]school.Student, 0, len(api.db.students))
	for _, st := range api.db.students {
		students = append(students, *st)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentAPI) queryGroups(ctx echo.Context) error {
	api.db.RLock()
	defer api.db.RUnlock()

	seen := make(map[string]bool)
	groups := make([]string, 0)
	for _, st := range api.db.students {
		if st.Group == "" || seen[st.Group] {
			continue
		}
		seen[st.Group] = true
		groups = append(groups, st.Group)
	}
	sort.Strings(groups)
	return ctx.JSON(http.StatusOK, groups)
}

func (api *studentAPI) retrieveByUserID(ctx echo.Context) error {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		return errHTTPNotFound
	}

	api.db.RLock()
	defer api.db.RUnlock()

	for _, st := range api.db.students {
		if st.UserID == userID {
			return ctx.JSON(http.StatusOK, *st)
		}
	}
	return errHTTPNotFound
}

func (api *studentAPI) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}
	var data school.Student
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Student")
	}

	api.db.Lock()
	defer api.db.Unlock()

	orig, ok := api.db.students[id]
	if !ok {
		return errHTTPNotFound
	}
	data.ID = id
	data.UserID = orig.UserID
	api.db.students[id] = &data
	return ctx.JSON(http.StatusOK, data)
}
