// Package memstore is the non-persistent storage backend selected with db.driver=memory.
// A Store is created once at startup and injected; it satisfies every repository interface.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/internal/repository"
	pkgerrors "github.com/Akhil-Baki/ai-study-pilot/pkg/errors"
)

// Store mutex-guarded in-memory tables with per-entity id counters
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users         map[int64]model.User
	syllabi       map[int64]model.Syllabus
	studyPlans    map[int64]model.StudyPlan
	studySessions map[int64]model.StudySession
	summaries     map[int64]model.Summary
	tasks         map[int64]model.Task
	focusSessions map[int64]model.FocusSession
	chatMessages  map[int64]model.ChatMessage

	seq map[string]int64
}

// New creates an empty Store
func New() *Store {
	return &Store{
		now:           time.Now,
		users:         make(map[int64]model.User),
		syllabi:       make(map[int64]model.Syllabus),
		studyPlans:    make(map[int64]model.StudyPlan),
		studySessions: make(map[int64]model.StudySession),
		summaries:     make(map[int64]model.Summary),
		tasks:         make(map[int64]model.Task),
		focusSessions: make(map[int64]model.FocusSession),
		chatMessages:  make(map[int64]model.ChatMessage),
		seq:           make(map[string]int64),
	}
}

// Repository exposes the Store through the repository aggregate
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:         userRepo{s},
		Syllabus:     syllabusRepo{s},
		StudyPlan:    studyPlanRepo{s},
		StudySession: studySessionRepo{s},
		Summary:      summaryRepo{s},
		Task:         taskRepo{s},
		FocusSession: focusSessionRepo{s},
		ChatMessage:  chatMessageRepo{s},
	}
}

// nextID caller holds s.mu
func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func sortedValues[T any](m map[int64]T, keep func(T) bool, less func(a, b T) int) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		if keep(v) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, less)
	return out
}

// newestFirst orders by creation time, then id, descending
func newestFirst(ca, cb time.Time, ia, ib int64) int {
	if c := cb.Compare(ca); c != 0 {
		return c
	}
	return cmp.Compare(ib, ia)
}

// ── users ──

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.s.nextID("users")
	now := r.s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── syllabi ──

type syllabusRepo struct{ s *Store }

func (r syllabusRepo) Create(_ context.Context, syllabus *model.Syllabus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	syllabus.ID = r.s.nextID("syllabi")
	now := r.s.now()
	syllabus.CreatedAt, syllabus.UpdatedAt = now, now
	r.s.syllabi[syllabus.ID] = *syllabus
	return nil
}

func (r syllabusRepo) GetByID(_ context.Context, id int64) (*model.Syllabus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.syllabi[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (r syllabusRepo) ListByUser(_ context.Context, userID int64) ([]model.Syllabus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.syllabi,
		func(v model.Syllabus) bool { return v.UserID == userID },
		func(a, b model.Syllabus) int { return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) },
	), nil
}

func (r syllabusRepo) Update(_ context.Context, syllabus *model.Syllabus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.syllabi[syllabus.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cur.Title = syllabus.Title
	cur.CourseName = syllabus.CourseName
	cur.ParsedContent = syllabus.ParsedContent
	cur.UpdatedAt = r.s.now()
	r.s.syllabi[cur.ID] = cur
	syllabus.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r syllabusRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.syllabi, id)
	for pid, p := range r.s.studyPlans {
		if p.SyllabusID != nil && *p.SyllabusID == id {
			p.SyllabusID = nil
			r.s.studyPlans[pid] = p
		}
	}
	return nil
}

// ── study plans ──

type studyPlanRepo struct{ s *Store }

func (r studyPlanRepo) Create(_ context.Context, plan *model.StudyPlan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	plan.ID = r.s.nextID("study_plans")
	now := r.s.now()
	plan.CreatedAt, plan.UpdatedAt = now, now
	stored := *plan
	stored.Sessions = nil
	r.s.studyPlans[plan.ID] = stored
	return nil
}

// sessionsOf caller holds s.mu
func (s *Store) sessionsOf(planID int64) []model.StudySession {
	return sortedValues(s.studySessions,
		func(v model.StudySession) bool { return v.StudyPlanID == planID },
		func(a, b model.StudySession) int {
			if c := cmp.Compare(a.Position, b.Position); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		},
	)
}

func (r studyPlanRepo) GetByID(_ context.Context, id int64) (*model.StudyPlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.studyPlans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.Sessions = r.s.sessionsOf(id)
	return &p, nil
}

func (r studyPlanRepo) ListByUser(_ context.Context, userID int64) ([]model.StudyPlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	plans := sortedValues(r.s.studyPlans,
		func(v model.StudyPlan) bool { return v.UserID == userID },
		func(a, b model.StudyPlan) int { return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) },
	)
	for i := range plans {
		plans[i].Sessions = r.s.sessionsOf(plans[i].ID)
	}
	return plans, nil
}

func (r studyPlanRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for sid, sess := range r.s.studySessions {
		if sess.StudyPlanID == id {
			delete(r.s.studySessions, sid)
		}
	}
	delete(r.s.studyPlans, id)
	return nil
}

// ── study sessions ──

type studySessionRepo struct{ s *Store }

func (r studySessionRepo) Create(_ context.Context, session *model.StudySession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.studyPlans[session.StudyPlanID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	session.ID = r.s.nextID("study_sessions")
	now := r.s.now()
	session.CreatedAt, session.UpdatedAt = now, now
	r.s.studySessions[session.ID] = *session
	return nil
}

func (r studySessionRepo) GetByID(_ context.Context, id int64) (*model.StudySession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.studySessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (r studySessionRepo) ListByPlan(_ context.Context, planID int64) ([]model.StudySession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sessionsOf(planID), nil
}

func (r studySessionRepo) UpdateCompleted(_ context.Context, id int64, completed bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.studySessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Completed = completed
	v.UpdatedAt = r.s.now()
	r.s.studySessions[id] = v
	return nil
}

// ── summaries ──

type summaryRepo struct{ s *Store }

func (r summaryRepo) Create(_ context.Context, summary *model.Summary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	summary.ID = r.s.nextID("summaries")
	summary.CreatedAt = r.s.now()
	r.s.summaries[summary.ID] = *summary
	return nil
}

func (r summaryRepo) GetByID(_ context.Context, id int64) (*model.Summary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.summaries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (r summaryRepo) ListByUser(_ context.Context, userID int64) ([]model.Summary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.summaries,
		func(v model.Summary) bool { return v.UserID == userID },
		func(a, b model.Summary) int { return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) },
	), nil
}

func (r summaryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.summaries, id)
	return nil
}

// ── tasks ──

type taskRepo struct{ s *Store }

func (r taskRepo) Create(_ context.Context, task *model.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	task.ID = r.s.nextID("tasks")
	now := r.s.now()
	task.CreatedAt, task.UpdatedAt = now, now
	r.s.tasks[task.ID] = *task
	return nil
}

func (r taskRepo) GetByID(_ context.Context, id int64) (*model.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (r taskRepo) ListByUser(_ context.Context, userID int64) ([]model.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.tasks,
		func(v model.Task) bool { return v.UserID == userID },
		compareTasks,
	), nil
}

// compareTasks open first, then by due date with undated last
func compareTasks(a, b model.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	switch {
	case a.DueDate == nil && b.DueDate != nil:
		return 1
	case a.DueDate != nil && b.DueDate == nil:
		return -1
	case a.DueDate != nil && b.DueDate != nil:
		if c := a.DueDate.Compare(*b.DueDate); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.ID, b.ID)
}

func (r taskRepo) Update(_ context.Context, task *model.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tasks[task.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	task.UserID = cur.UserID
	task.CreatedAt = cur.CreatedAt
	task.UpdatedAt = r.s.now()
	r.s.tasks[task.ID] = *task
	return nil
}

func (r taskRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.tasks, id)
	for fid, fs := range r.s.focusSessions {
		if fs.TaskID != nil && *fs.TaskID == id {
			fs.TaskID = nil
			r.s.focusSessions[fid] = fs
		}
	}
	return nil
}

// ── focus sessions ──

type focusSessionRepo struct{ s *Store }

func (r focusSessionRepo) Create(_ context.Context, session *model.FocusSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session.ID = r.s.nextID("focus_sessions")
	session.CreatedAt = r.s.now()
	r.s.focusSessions[session.ID] = *session
	return nil
}

func (r focusSessionRepo) GetByID(_ context.Context, id int64) (*model.FocusSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.focusSessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (r focusSessionRepo) ListByUser(_ context.Context, userID int64) ([]model.FocusSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.focusSessions,
		func(v model.FocusSession) bool { return v.UserID == userID },
		func(a, b model.FocusSession) int { return newestFirst(a.StartTime, b.StartTime, a.ID, b.ID) },
	), nil
}

func (r focusSessionRepo) End(_ context.Context, id int64, endTime time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.focusSessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v.EndTime != nil {
		return pkgerrors.ErrStateConflict
	}
	v.EndTime = &endTime
	r.s.focusSessions[id] = v
	return nil
}

// ── chat messages ──

type chatMessageRepo struct{ s *Store }

func (r chatMessageRepo) Create(_ context.Context, msg *model.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	msg.ID = r.s.nextID("chat_messages")
	msg.CreatedAt = r.s.now()
	r.s.chatMessages[msg.ID] = *msg
	return nil
}

func (r chatMessageRepo) ListByUser(_ context.Context, userID int64) ([]model.ChatMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.chatOf(userID), nil
}

func (r chatMessageRepo) ListRecentByUser(_ context.Context, userID int64, limit int) ([]model.ChatMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.s.chatOf(userID)
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

// chatOf caller holds s.mu
func (s *Store) chatOf(userID int64) []model.ChatMessage {
	return sortedValues(s.chatMessages,
		func(v model.ChatMessage) bool { return v.UserID == userID },
		func(a, b model.ChatMessage) int { return cmp.Compare(a.ID, b.ID) },
	)
}
