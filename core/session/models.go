package session

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/classpoint/classpoint/core"
	"github.com/classpoint/classpoint/core/school"
)

// Account is a registry entry of the offline/demo authentication path.
// Accounts are created on register, read on login, and never updated or
// deleted through any exposed operation.
type Account struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash []byte `json:"password_hash"`
	Role         string `json:"role"`
	Name         string `json:"name"`
}

func (a *Account) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *Account) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

// Session identifies the currently authenticated user. At most one is active
// per store; the role is immutable after creation.
type Session struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

func (s Session) IsStudent() bool { return s.Role == school.RoleStudent }
func (s Session) IsTeacher() bool { return s.Role == school.RoleTeacher }

// NewAccount contains information needed to register a new Account.
type NewAccount struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=3,alphanum_"`
	Role     string `json:"role" validate:"required,oneof=student teacher"`
	Password string `json:"password" validate:"required,min=6"`
}

func (na *NewAccount) Validate(validate *validator.Validate, translator ut.Translator) error {
	na.Name = core.CleanString(na.Name)
	na.Username = core.CleanString(na.Username, true /* lower */)
	na.Role = core.CleanString(na.Role, true /* lower */)

	if err := validate.Struct(na); err != nil {
		return core.TranslateValidationErrors(err, translator)
	}
	return nil
}
