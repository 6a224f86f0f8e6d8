package session

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpoint/classpoint/core"
	"github.com/classpoint/classpoint/core/school"
	"github.com/classpoint/classpoint/storage/kv"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	conf := &core.Config{
		AppName:     "Classpoint",
		SecretKey:   []byte("secret"),
		OfflineMode: true,
	}
	validate, translator := core.NewValidator()
	return NewService(kv.NewMemStore(), conf, validate, translator)
}

func TestService_Initialize(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Initialize())
	accounts, err := svc.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	// idempotent: a second run leaves the registry identical
	require.NoError(t, svc.Initialize())
	again, err := svc.Accounts()
	require.NoError(t, err)
	assert.Equal(t, accounts, again)

	assert.Equal(t, 1, accounts[0].ID)
	assert.Equal(t, "student", accounts[0].Username)
	assert.Equal(t, school.RoleStudent, accounts[0].Role)
	assert.Equal(t, 2, accounts[1].ID)
	assert.Equal(t, "teacher", accounts[1].Username)
	assert.Equal(t, school.RoleTeacher, accounts[1].Role)
	assert.NoError(t, accounts[0].CheckPassword("123456"))
}

func TestService_Login(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Initialize())

	tests := []struct {
		name     string
		username string
		password string
		wantName string
		wantRole string
		wantErr  bool
	}{
		{name: "seeded student", username: "student", password: "123456", wantName: "Иван Студентов", wantRole: school.RoleStudent},
		{name: "case-insensitive username", username: "STUDENT", password: "123456", wantName: "Иван Студентов", wantRole: school.RoleStudent},
		{name: "seeded teacher", username: "teacher", password: "123456", wantName: "Мария Преподавателева", wantRole: school.RoleTeacher},
		{name: "wrong password", username: "student", password: "wrong", wantErr: true},
		{name: "unknown user", username: "nobody", password: "123456", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := svc.Login(tt.username, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				authErr, ok := errors.Cause(err).(*core.AuthenticationError)
				require.True(t, ok, "want AuthenticationError, got %T", err)
				assert.Equal(t, "invalid username or password", authErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, sess.Name)
			assert.Equal(t, tt.wantRole, sess.Role)
			assert.NotEmpty(t, sess.Token)

			curr := svc.Current()
			require.NotNil(t, curr)
			assert.Equal(t, sess, *curr)
		})
	}
}

func TestService_Login_failureKeepsSession(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Initialize())

	before, err := svc.Login("teacher", "123456")
	require.NoError(t, err)

	_, err = svc.Login("student", "wrong")
	require.Error(t, err)

	curr := svc.Current()
	require.NotNil(t, curr)
	assert.Equal(t, before, *curr)

	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, school.RoleTeacher, svc.Role())
	assert.Equal(t, "Мария Преподавателева", svc.DisplayName())
	assert.Equal(t, before.Token, svc.Token())
}

func TestService_Register(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Initialize())

	sess, err := svc.Register(NewAccount{
		Name:     "X",
		Username: "x@x.com",
		Role:     school.RoleStudent,
		Password: "abcdef",
	})
	require.NoError(t, err)

	// next ID is max(existing)+1; the seed ends at 2
	assert.Equal(t, 3, sess.ID)
	assert.Equal(t, "x@x.com", sess.Username)
	assert.Equal(t, school.RoleStudent, sess.Role)

	// auto-login
	curr := svc.Current()
	require.NotNil(t, curr)
	assert.Equal(t, sess, *curr)

	// the new account can log back in
	require.NoError(t, svc.Logout())
	relogged, err := svc.Login("X@X.com", "abcdef")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, relogged.ID)
}

func TestService_Register_duplicateUsername(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(NewAccount{Name: "A", Username: "bob", Role: school.RoleStudent, Password: "abcdef"})
	require.NoError(t, err)

	_, err = svc.Register(NewAccount{Name: "B", Username: "BOB", Role: school.RoleTeacher, Password: "abcdef"})
	require.Error(t, err)
	vErr, ok := errors.Cause(err).(*core.ValidationError)
	require.True(t, ok, "want ValidationError, got %T", err)
	assert.Equal(t, "user already exists", vErr.Error())
}

func TestService_Register_invalidInput(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name    string
		na      NewAccount
		wantMsg string
	}{
		{name: "missing name", na: NewAccount{Username: "bob", Role: school.RoleStudent, Password: "abcdef"}},
		{name: "short username", na: NewAccount{Name: "B", Username: "bo", Role: school.RoleStudent, Password: "abcdef"}},
		{
			name:    "bad username characters",
			na:      NewAccount{Name: "B", Username: "bob!", Role: school.RoleStudent, Password: "abcdef"},
			wantMsg: "only alphanumeric characters, underscores, '.' and '@' are allowed",
		},
		{name: "bad role", na: NewAccount{Name: "B", Username: "bob", Role: "admin", Password: "abcdef"}},
		{name: "short password", na: NewAccount{Name: "B", Username: "bob", Role: school.RoleStudent, Password: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.na)
			require.Error(t, err)
			vErr, ok := errors.Cause(err).(*core.ValidationError)
			require.True(t, ok, "want ValidationError, got %T", err)
			require.NotEmpty(t, vErr.Fields)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, vErr.Fields[0].Error)
			}
		})
	}
}

func TestService_Logout(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Initialize())

	_, err := svc.Login("student", "123456")
	require.NoError(t, err)
	require.True(t, svc.IsAuthenticated())

	require.NoError(t, svc.Logout())
	assert.Nil(t, svc.Current())
	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, svc.Role())
	assert.Empty(t, svc.DisplayName())

	// idempotent
	require.NoError(t, svc.Logout())
}

func TestService_Current_corruptStorage(t *testing.T) {
	svc := newTestService(t)

	// a corrupt or tampered value reads back as anonymous
	require.NoError(t, svc.store.Set(sessionKey, "{not-a-session"))
	assert.Nil(t, svc.Current())
	assert.False(t, svc.IsAuthenticated())

	// a corrupt registry reads back as absent
	require.NoError(t, svc.store.Set(accountsKey, "%%%"))
	accounts, err := svc.Accounts()
	require.NoError(t, err)
	assert.Nil(t, accounts)
}

func TestService_SetSession(t *testing.T) {
	svc := newTestService(t)

	sess := Session{ID: 9, Username: "remote", Role: school.RoleTeacher, Name: "Remote", Token: "T"}
	require.NoError(t, svc.SetSession(sess))

	curr := svc.Current()
	require.NotNil(t, curr)
	assert.Equal(t, sess, *curr)
	assert.Equal(t, "T", svc.Token())
}

func TestService_Reset(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Initialize())

	_, err := svc.Register(NewAccount{Name: "X", Username: "extra", Role: school.RoleStudent, Password: "abcdef"})
	require.NoError(t, err)

	require.NoError(t, svc.Reset())
	assert.Nil(t, svc.Current())
	accounts, err := svc.Accounts()
	require.NoError(t, err)
	assert.Len(t, accounts, 2) // back to the seed

	dump := svc.DumpStorage()
	assert.Contains(t, dump, accountsKey)
	assert.NotContains(t, dump, sessionKey)
}
