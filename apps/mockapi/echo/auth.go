package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/classpoint/classpoint/core"
	"github.com/classpoint/classpoint/core/school"
	"github.com/classpoint/classpoint/core/session"
)

func jwtConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    conf.SecretKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
		Claims:        new(session.Claims),
	}
}

type (
	authAPI struct {
		db   *database
		opts *Options
	}

	loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	authUser struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
		Name     string `json:"name"`
	}

	authResponse struct {
		Token string   `json:"token"`
		User  authUser `json:"user"`
	}
)

func registerAuthAPI(g *echo.Group, db *database, opts *Options) {
	api := authAPI{db: db, opts: opts}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/register", api.register)
}

func (api *authAPI) login(ctx echo.Context) error {
	var data loginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to loginRequest")
	}

	api.db.RLock()
	defer api.db.RUnlock()

	uname := core.CleanString(data.Username, true /* lower */)
	for _, acct := range api.db.accounts {
		if core.CleanString(acct.Username, true) != uname {
			continue
		}
		if err := acct.CheckPassword(data.Password); err != nil {
			break
		}
		return api.respond(ctx, http.StatusOK, *acct)
	}
	return errAuthenticationFailed
}

func (api *authAPI) register(ctx echo.Context) error {
	var data session.NewAccount
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAccount")
	}
	if err := data.Validate(api.opts.Validate, api.opts.Translator); err != nil {
		return err
	}

	api.db.Lock()
	defer api.db.Unlock()

	for _, acct := range api.db.accounts {
		if core.CleanString(acct.Username, true) == data.Username {
			return core.NewValidationError(session.ErrUserExists,
				core.FieldError{Field: "username", Error: session.ErrUserExists.Error()})
		}
	}

	acct := &session.Account{
		ID:       api.db.nextPK("accounts"),
		Username: data.Username,
		Role:     data.Role,
		Name:     data.Name,
	}
	if err := acct.SetPassword(data.Password); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	api.db.accounts[acct.ID] = acct

	// Student records exist only via registration.
	if acct.Role == school.RoleStudent {
		st := &school.Student{ID: api.db.nextPK("students"), UserID: acct.ID, Name: acct.Name}
		api.db.students[st.ID] = st
	}

	return api.respond(ctx, http.StatusCreated, *acct)
}

func (api *authAPI) respond(ctx echo.Context, code int, acct session.Account) error {
	token, err := session.GenerateToken(session.GetAccountClaims(acct, api.opts.Conf), api.opts.Conf)
	if err != nil {
		return err
	}
	return ctx.JSON(code, authResponse{
		Token: token,
		User:  authUser{ID: acct.ID, Username: acct.Username, Role: acct.Role, Name: acct.Name},
	})
}
