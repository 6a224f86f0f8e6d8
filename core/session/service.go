package session

import (
	"crypto/sha256"
	"encoding/json"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/securecookie"
	"github.com/pkg/errors"

	"github.com/classpoint/classpoint/core"
	"github.com/classpoint/classpoint/core/school"
	"github.com/classpoint/classpoint/storage/kv"
)

// storage keys
const (
	accountsKey = "classpoint:accounts"
	sessionKey  = "classpoint:session"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user already exists")

	saltValue = "classpoint.core.session"
)

// seeded demo accounts, written on first run of the offline path
var seedAccounts = []struct {
	username, password, role, name string
}{
	{"student", "123456", school.RoleStudent, "Иван Студентов"},
	{"teacher", "123456", school.RoleTeacher, "Мария Преподавателева"},
}

// Service is the single source of truth for "who is logged in". It is
// constructed once at startup and injected into every consumer; pages and
// the API client never touch storage directly.
type Service struct {
	store      kv.Store
	conf       *core.Config
	validate   *validator.Validate
	translator ut.Translator
	secure     *securecookie.SecureCookie
	sleepFunc  func(time.Duration) // mockable
}

func NewService(store kv.Store, conf *core.Config, validate *validator.Validate, translator ut.Translator) *Service {
	// the persisted session record is MAC'd at rest so a tampered value
	// reads back as absent
	hashKey := sha256.Sum256(append([]byte(saltValue), conf.SecretKey...))
	secure := securecookie.New(hashKey[:], nil)
	secure.MaxAge(0) // sessions do not expire
	secure.SetSerializer(securecookie.JSONEncoder{})

	return &Service{
		store:      store,
		conf:       conf,
		validate:   validate,
		translator: translator,
		secure:     secure,
		sleepFunc:  time.Sleep,
	}
}

// Initialize seeds the demo accounts on first run of the offline path.
// It is a no-op when a registry already exists.
func (svc *Service) Initialize() error {
	if _, err := svc.store.Get(accountsKey); err == nil {
		return nil
	} else if err != kv.ErrKeyNotFound {
		return errors.Wrap(err, "reading account registry")
	}

	accounts := make([]Account, 0, len(seedAccounts))
	for i, seed := range seedAccounts {
		acct := Account{
			ID:       i + 1,
			Username: seed.username,
			Role:     seed.role,
			Name:     seed.name,
		}
		if err := acct.SetPassword(seed.password); err != nil {
			return errors.Wrap(err, "hashing seed password")
		}
		accounts = append(accounts, acct)
	}
	return svc.saveAccounts(accounts)
}

// Login authenticates against the local registry: case-insensitive username
// match, hashed password check. A single error covers both unknown-user and
// wrong-password; a failed login leaves the current session untouched.
func (svc *Service) Login(username, password string) (Session, error) {
	svc.simulateLatency()

	accounts, err := svc.Accounts()
	if err != nil {
		return Session{}, err
	}

	uname := core.CleanString(username, true /* lower */)
	for _, acct := range accounts {
		if core.CleanString(acct.Username, true) != uname {
			continue
		}
		if err := acct.CheckPassword(password); err != nil {
			break
		}
		return svc.establish(acct)
	}
	return Session{}, core.NewAuthenticationError(ErrInvalidCredentials.Error())
}

// Register creates a new registry entry and immediately establishes it as
// the current session.
func (svc *Service) Register(na NewAccount) (Session, error) {
	if err := na.Validate(svc.validate, svc.translator); err != nil {
		return Session{}, err
	}
	svc.simulateLatency()

	accounts, err := svc.Accounts()
	if err != nil {
		return Session{}, err
	}

	var maxID int
	for _, acct := range accounts {
		if core.CleanString(acct.Username, true) == na.Username {
			return Session{}, core.NewValidationError(ErrUserExists,
				core.FieldError{Field: "username", Error: ErrUserExists.Error()})
		}
		if acct.ID > maxID {
			maxID = acct.ID
		}
	}

	acct := Account{
		ID:       maxID + 1,
		Username: na.Username,
		Role:     na.Role,
		Name:     na.Name,
	}
	if err := acct.SetPassword(na.Password); err != nil {
		return Session{}, errors.Wrap(err, "hashing password")
	}

	if err := svc.saveAccounts(append(accounts, acct)); err != nil {
		return Session{}, err
	}
	return svc.establish(acct)
}

// Logout clears the current session marker. Idempotent.
func (svc *Service) Logout() error {
	return errors.Wrap(svc.store.Delete(sessionKey), "clearing session")
}

// Current returns the persisted session, or nil when anonymous. Corrupt or
// missing storage reads back as anonymous, never as an error.
func (svc *Service) Current() *Session {
	raw, err := svc.store.Get(sessionKey)
	if err != nil {
		return nil
	}
	var sess Session
	if err := svc.secure.Decode(sessionKey, raw, &sess); err != nil {
		return nil
	}
	return &sess
}

func (svc *Service) IsAuthenticated() bool { return svc.Current() != nil }

func (svc *Service) Role() string {
	if sess := svc.Current(); sess != nil {
		return sess.Role
	}
	return ""
}

func (svc *Service) DisplayName() string {
	if sess := svc.Current(); sess != nil {
		return sess.Name
	}
	return ""
}

func (svc *Service) Token() string {
	if sess := svc.Current(); sess != nil {
		return sess.Token
	}
	return ""
}

// SetSession persists a backend-issued identity and bearer token; the
// real-backend counterpart of Login.
func (svc *Service) SetSession(sess Session) error {
	return svc.persist(sess)
}

// Accounts lists the registry; diagnostics and the mock server seed use it.
func (svc *Service) Accounts() ([]Account, error) {
	raw, err := svc.store.Get(accountsKey)
	if err != nil {
		if err == kv.ErrKeyNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading account registry")
	}
	var accounts []Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		// corrupt registry reads back as absent
		return nil, nil
	}
	return accounts, nil
}

// Reset clears both the registry and the current session, then re-seeds.
func (svc *Service) Reset() error {
	if err := svc.store.Delete(accountsKey); err != nil {
		return errors.Wrap(err, "clearing account registry")
	}
	if err := svc.Logout(); err != nil {
		return err
	}
	return svc.Initialize()
}

// DumpStorage exposes the raw persisted keys for diagnostics.
func (svc *Service) DumpStorage() map[string]string {
	dump := make(map[string]string)
	keys, err := svc.store.Keys()
	if err != nil {
		return dump
	}
	for _, key := range keys {
		if val, err := svc.store.Get(key); err == nil {
			dump[key] = val
		}
	}
	return dump
}

func (svc *Service) establish(acct Account) (Session, error) {
	token, err := GenerateToken(GetAccountClaims(acct, svc.conf), svc.conf)
	if err != nil {
		return Session{}, err
	}
	sess := Session{
		ID:       acct.ID,
		Username: acct.Username,
		Role:     acct.Role,
		Name:     acct.Name,
		Token:    token,
	}
	if err := svc.persist(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (svc *Service) persist(sess Session) error {
	encoded, err := svc.secure.Encode(sessionKey, sess)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	return errors.Wrap(svc.store.Set(sessionKey, encoded), "persisting session")
}

func (svc *Service) saveAccounts(accounts []Account) error {
	raw, err := json.Marshal(accounts)
	if err != nil {
		return errors.Wrap(err, "marshalling account registry")
	}
	return errors.Wrap(svc.store.Set(accountsKey, string(raw)), "persisting account registry")
}

func (svc *Service) simulateLatency() {
	if svc.conf.MockLatency > 0 {
		svc.sleepFunc(svc.conf.MockLatency)
	}
}
