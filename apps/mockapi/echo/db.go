package mockapi

import (
	"sync"

	"github.com/classpoint/classpoint/core/school"
	"github.com/classpoint/classpoint/core/session"
)

// database is the in-memory backing of the mock API: one table per resource,
// guarded by a single lock. State is lost on exit; the demo seed is applied
// on open.
type database struct {
	sync.RWMutex

	accounts    map[int]*session.Account
	students    map[int]*school.Student
	subjects    map[int]*school.Subject
	grades      map[int]*school.Grade
	schedule    map[int]*school.ScheduleEntry
	assignments map[int]*school.Assignment
	submissions map[int]*school.Submission
	files       map[string]*submissionFile // stored blobs keyed by StorageName
	fileKeys    map[int]string             // submission ID -> StorageName

	pks map[string]int
}

// submissionFile holds an uploaded file; StorageName decouples the stored
// blob from the user-supplied file name.
type submissionFile struct {
	StorageName string
	FileName    string
	Content     []byte
}

// storeFile replaces the submission's blob, dropping any previous one.
// Must be called with the write lock held.
func (db *database) storeFile(submissionID int, file *submissionFile) {
	if old, ok := db.fileKeys[submissionID]; ok {
		delete(db.files, old)
	}
	db.files[file.StorageName] = file
	db.fileKeys[submissionID] = file.StorageName
}

// fileFor resolves the submission's blob through its storage name.
func (db *database) fileFor(submissionID int) (*submissionFile, bool) {
	key, ok := db.fileKeys[submissionID]
	if !ok {
		return nil, false
	}
	file, ok := db.files[key]
	return file, ok
}

func openDatabase() *database {
	db := &database{
		accounts:    make(map[int]*session.Account),
		students:    make(map[int]*school.Student),
		subjects:    make(map[int]*school.Subject),
		grades:      make(map[int]*school.Grade),
		schedule:    make(map[int]*school.ScheduleEntry),
		assignments: make(map[int]*school.Assignment),
		submissions: make(map[int]*school.Submission),
		files:       make(map[string]*submissionFile),
		fileKeys:    make(map[int]string),
		pks:         make(map[string]int),
	}
	db.seed()
	return db
}

// nextPK must be called with the write lock held.
func (db *database) nextPK(table string) int {
	db.pks[table]++
	return db.pks[table]
}

func (db *database) seed() {
	db.Lock()
	defer db.Unlock()

	for _, seed := range []struct {
		username, password, role, name string
	}{
		{"student", "123456", school.RoleStudent, "Иван Студентов"},
		{"teacher", "123456", school.RoleTeacher, "Мария Преподавателева"},
	} {
		acct := &session.Account{
			ID:       db.nextPK("accounts"),
			Username: seed.username,
			Role:     seed.role,
			Name:     seed.name,
		}
		_ = acct.SetPassword(seed.password)
		db.accounts[acct.ID] = acct
	}

	for _, name := range []string{"Математика", "Физика", "Информатика"} {
		subj := &school.Subject{ID: db.nextPK("subjects"), Name: name, TeacherID: 2}
		db.subjects[subj.ID] = subj
	}

	student := &school.Student{
		ID:     db.nextPK("students"),
		UserID: 1,
		Name:   "Иван Студентов",
		Group:  "101",
	}
	db.students[student.ID] = student
}
