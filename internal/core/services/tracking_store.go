package services

import (
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routines/internal/observability"
)

type Clock func() time.Time

// ChangeNotifier is told about every committed mutation. Enqueue must not block.
type ChangeNotifier interface {
	Enqueue()
}

// TrackingStore owns every routine, habit and preference of a session and is the only
// component allowed to mutate them. Reads hand out deep copies. Unknown ids are a no-op.
type TrackingStore struct {
	mu       sync.RWMutex
	routines []*domain.Routine
	habits   []*domain.Habit
	prefs    domain.Preferences

	clock    Clock
	location *time.Location
	notifier ChangeNotifier
}

func NewTrackingStore(clock Clock, location *time.Location) *TrackingStore {
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &TrackingStore{
		prefs:    domain.DefaultPreferences(),
		clock:    clock,
		location: location,
	}
}

type CreateRoutineInput struct {
	Title         string
	Description   string
	Category      string
	ScheduledTime string
	Tasks         []string
}

type CreateHabitInput struct {
	Title       string
	Description string
	Color       string
	Category    string
	TargetDays  []int
}

func (s *TrackingStore) SetNotifier(n ChangeNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// Today is the current time in the store location.
func (s *TrackingStore) Today() time.Time {
	return s.clock().In(s.location)
}

func (s *TrackingStore) changed(op string) {
	observability.RecordMutation(op)
	if s.notifier != nil {
		s.notifier.Enqueue()
	}
}

// routineCopy is the read form of r, with the flag derived for today.
func (s *TrackingStore) routineCopy(r *domain.Routine) *domain.Routine {
	out := r.Clone()
	out.SyncToday(domain.DateKey(s.Today()))
	return &out
}

func (s *TrackingStore) findRoutine(id string) (int, *domain.Routine) {
	for i, r := range s.routines {
		if r.ID == id {
			return i, r
		}
	}
	return -1, nil
}

func (s *TrackingStore) findHabit(id string) (int, *domain.Habit) {
	for i, h := range s.habits {
		if h.ID == id {
			return i, h
		}
	}
	return -1, nil
}

func (s *TrackingStore) AddRoutine(input CreateRoutineInput) (*domain.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	routine, err := domain.NewRoutine(input.Title, input.Description, input.Category, input.ScheduledTime, input.Tasks, s.Today())
	if err != nil {
		return nil, err
	}

	s.routines = append(s.routines, routine)
	s.changed("add_routine")

	return s.routineCopy(routine), nil
}

func (s *TrackingStore) AddHabit(input CreateHabitInput) (*domain.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habit, err := domain.NewHabit(input.Title, input.Description, input.Color, input.Category, input.TargetDays, s.Today())
	if err != nil {
		return nil, err
	}

	s.habits = append(s.habits, habit)
	s.changed("add_habit")

	out := habit.Clone()
	return &out, nil
}

func (s *TrackingStore) DeleteRoutine(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, _ := s.findRoutine(id)
	if i < 0 {
		return
	}
	s.routines = append(s.routines[:i], s.routines[i+1:]...)
	s.changed("delete_routine")
}

func (s *TrackingStore) DeleteHabit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, _ := s.findHabit(id)
	if i < 0 {
		return
	}
	s.habits = append(s.habits[:i], s.habits[i+1:]...)
	s.changed("delete_habit")
}

func (s *TrackingStore) ToggleRoutineComplete(id string) (*domain.Routine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, routine := s.findRoutine(id)
	if routine == nil {
		return nil, false
	}

	now := s.Today()
	routine.ToggleComplete(domain.DateKey(now), now)
	s.changed("toggle_routine")

	return s.routineCopy(routine), true
}

func (s *TrackingStore) ToggleTaskComplete(routineID, taskID string) (*domain.Routine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, routine := s.findRoutine(routineID)
	if routine == nil {
		return nil, false
	}
	if !routine.ToggleTask(taskID, s.Today()) {
		return nil, false
	}
	s.changed("toggle_task")

	return s.routineCopy(routine), true
}

// AddTask appends a task to the routine. A missing routine is a no-op reported by ok.
func (s *TrackingStore) AddTask(routineID, title string) (*domain.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, routine := s.findRoutine(routineID)
	if routine == nil {
		return nil, false, nil
	}

	task, err := routine.AddTask(title)
	if err != nil {
		return nil, true, err
	}
	s.changed("add_task")
	return &task, true, nil
}

func (s *TrackingStore) DeleteTask(routineID, taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, routine := s.findRoutine(routineID)
	if routine == nil {
		return
	}
	if routine.RemoveTask(taskID) {
		s.changed("delete_task")
	}
}

// ToggleHabitComplete flips the habit's completion for the calendar day of date.
// A zero date means today in the store location.
func (s *TrackingStore) ToggleHabitComplete(id string, date time.Time) (*domain.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, habit := s.findHabit(id)
	if habit == nil {
		return nil, false
	}

	now := s.Today()
	if date.IsZero() {
		date = now
	}

	if _, err := habit.ToggleCompletion(domain.DateKey(date), now); err != nil {
		return nil, false
	}
	s.changed("toggle_habit")

	out := habit.Clone()
	return &out, true
}

func (s *TrackingStore) Routine(id string) (*domain.Routine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, routine := s.findRoutine(id)
	if routine == nil {
		return nil, false
	}
	return s.routineCopy(routine), true
}

func (s *TrackingStore) Habit(id string) (*domain.Habit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, habit := s.findHabit(id)
	if habit == nil {
		return nil, false
	}
	out := habit.Clone()
	return &out, true
}

func (s *TrackingStore) Routines() []domain.Routine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Routine, 0, len(s.routines))
	for _, r := range s.routines {
		out = append(out, *s.routineCopy(r))
	}
	return out
}

func (s *TrackingStore) Habits() []domain.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		out = append(out, h.Clone())
	}
	return out
}

// View derives task progress and the recent-days strips on every call.
func (s *TrackingStore) View() domain.ViewModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.Today()
	vm := domain.ViewModel{
		Today:       domain.DateKey(today),
		Routines:    make([]domain.RoutineView, 0, len(s.routines)),
		Habits:      make([]domain.HabitView, 0, len(s.habits)),
		Preferences: s.prefs,
	}
	for _, r := range s.routines {
		vm.Routines = append(vm.Routines, domain.NewRoutineView(r.Clone(), today))
	}
	for _, h := range s.habits {
		vm.Habits = append(vm.Habits, domain.NewHabitView(h.Clone(), today))
	}
	return vm
}

func (s *TrackingStore) Export() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefs := s.prefs
	snap := domain.Snapshot{
		Version:     domain.SnapshotVersion,
		Routines:    make([]domain.Routine, 0, len(s.routines)),
		Habits:      make([]domain.Habit, 0, len(s.habits)),
		Preferences: &prefs,
	}
	for _, r := range s.routines {
		snap.Routines = append(snap.Routines, *s.routineCopy(r))
	}
	for _, h := range s.habits {
		snap.Habits = append(snap.Habits, h.Clone())
	}
	return snap
}

// Import replaces the whole store with snapshot. An invalid snapshot leaves the store untouched.
func (s *TrackingStore) Import(snapshot domain.Snapshot) error {
	incoming := snapshot.Clone()
	if err := incoming.Validate(); err != nil {
		return err
	}
	incoming.Normalize()

	routines := make([]*domain.Routine, 0, len(incoming.Routines))
	for i := range incoming.Routines {
		routines = append(routines, &incoming.Routines[i])
	}
	habits := make([]*domain.Habit, 0, len(incoming.Habits))
	for i := range incoming.Habits {
		habits = append(habits, &incoming.Habits[i])
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.routines = routines
	s.habits = habits
	if incoming.Preferences != nil {
		s.prefs = *incoming.Preferences
	}
	s.changed("import")
	return nil
}

func (s *TrackingStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.routines = nil
	s.habits = nil
	s.prefs = domain.DefaultPreferences()
	s.changed("reset")
}

func (s *TrackingStore) Preferences() domain.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

func (s *TrackingStore) updatePreferences(op string, apply func(p *domain.Preferences)) domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply(&s.prefs)
	s.changed(op)
	return s.prefs
}

func (s *TrackingStore) SetNotificationsEnabled(enabled bool) domain.Preferences {
	return s.updatePreferences("set_notifications", func(p *domain.Preferences) {
		p.NotificationsEnabled = enabled
	})
}

func (s *TrackingStore) SetEmailRemindersEnabled(enabled bool) domain.Preferences {
	return s.updatePreferences("set_email_reminders", func(p *domain.Preferences) {
		p.EmailRemindersEnabled = enabled
	})
}

func (s *TrackingStore) SetDarkMode(enabled bool) domain.Preferences {
	return s.updatePreferences("set_dark_mode", func(p *domain.Preferences) {
		p.DarkMode = enabled
	})
}
