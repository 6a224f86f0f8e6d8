package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/classpoint/classpoint/core"
	"github.com/classpoint/classpoint/core/school"
)

var nowFunc = time.Now // mockable

// Claims represents the authorization claims carried by a bearer token.
// The offline path mints these locally; the mock API server issues and
// verifies the same shape.
type Claims struct {
	jwt.StandardClaims
	Username  string `json:"username,omitempty"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	IsStudent bool   `json:"is_student,omitempty"`
	IsTeacher bool   `json:"is_teacher,omitempty"`
}

// GetAccountClaims builds the Claims for an authenticated Account.
// Tokens carry no expiry: logout or storage loss are the only ends of a
// session, and a backend 401 is the only remote invalidation path.
func GetAccountClaims(acct Account, conf *core.Config) *Claims {
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:   conf.AppName,
			Subject:  acct.Username,
			IssuedAt: nowFunc().Unix(),
		},
		Username:  acct.Username,
		Name:      acct.Name,
		Role:      acct.Role,
		IsStudent: acct.Role == school.RoleStudent,
		IsTeacher: acct.Role == school.RoleTeacher,
	}
}

// GenerateToken signs the claims into a compact bearer token string.
func GenerateToken(claims *Claims, conf *core.Config) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(conf.SecretKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}
