package session

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpoint/classpoint/core"
	"github.com/classpoint/classpoint/core/school"
)

func TestGenerateToken(t *testing.T) {
	conf := &core.Config{AppName: "Classpoint", SecretKey: []byte("secret")}

	issued := time.Date(2021, time.March, 8, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return issued }
	defer func() { nowFunc = time.Now }()

	acct := Account{ID: 1, Username: "student", Role: school.RoleStudent, Name: "Иван Студентов"}
	token, err := GenerateToken(GetAccountClaims(acct, conf), conf)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return conf.SecretKey, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(*Claims)
	require.True(t, ok)
	assert.Equal(t, "Classpoint", claims.Issuer)
	assert.Equal(t, "student", claims.Subject)
	assert.Equal(t, issued.Unix(), claims.IssuedAt)
	assert.Equal(t, school.RoleStudent, claims.Role)
	assert.True(t, claims.IsStudent)
	assert.False(t, claims.IsTeacher)
	assert.Zero(t, claims.ExpiresAt) // sessions do not expire

	// tampered tokens do not verify
	_, err = jwt.ParseWithClaims(token+"x", &Claims{}, func(*jwt.Token) (interface{}, error) {
		return conf.SecretKey, nil
	})
	assert.Error(t, err)
}
