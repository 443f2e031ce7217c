package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var _ domain.SnapshotRepository = (*SQLSnapshotRepository)(nil)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// OpenSQLite opens (and creates) a local database file.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func OpenPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// SQLSnapshotRepository stores the snapshot in normalized tables. Every save replaces
// the previous content inside one transaction.
type SQLSnapshotRepository struct {
	db *sqlx.DB
}

func NewSQLSnapshotRepository(db *sqlx.DB) *SQLSnapshotRepository {
	return &SQLSnapshotRepository{db: db}
}

func (r *SQLSnapshotRepository) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

type metaRow struct {
	Version               int    `db:"version"`
	NotificationsEnabled  bool   `db:"notifications_enabled"`
	EmailRemindersEnabled bool   `db:"email_reminders_enabled"`
	DarkMode              bool   `db:"dark_mode"`
	SavedAt               string `db:"saved_at"`
}

type routineRow struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Category      string         `db:"category"`
	ScheduledTime string         `db:"scheduled_time"`
	IsCompleted   bool           `db:"is_completed"`
	CompletedAt   sql.NullString `db:"completed_at"`
	CreatedAt     string         `db:"created_at"`
}

type taskRow struct {
	RoutineID   string         `db:"routine_id"`
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	IsCompleted bool           `db:"is_completed"`
	CompletedAt sql.NullString `db:"completed_at"`
}

type routineDayRow struct {
	RoutineID string `db:"routine_id"`
	Day       string `db:"day"`
}

type habitRow struct {
	ID            string `db:"id"`
	Title         string `db:"title"`
	Description   string `db:"description"`
	Color         string `db:"color"`
	Category      string `db:"category"`
	TargetDays    string `db:"target_days"`
	CurrentStreak int    `db:"current_streak"`
	LongestStreak int    `db:"longest_streak"`
	CreatedAt     string `db:"created_at"`
}

type habitCompletionRow struct {
	HabitID     string `db:"habit_id"`
	ID          string `db:"id"`
	Day         string `db:"day"`
	CompletedAt string `db:"completed_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatOptionalTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: malformed timestamp %q", domain.ErrDataIntegrity, s)
	}
	return t, nil
}

func parseOptionalTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SQLSnapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	var meta metaRow
	err := r.db.GetContext(ctx, &meta, `SELECT version, notifications_enabled, email_reminders_enabled, dark_mode, saved_at FROM snapshot_meta WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot metadata: %w", err)
	}

	snap := &domain.Snapshot{
		Version:  meta.Version,
		Routines: make([]domain.Routine, 0),
		Habits:   make([]domain.Habit, 0),
		Preferences: &domain.Preferences{
			NotificationsEnabled:  meta.NotificationsEnabled,
			EmailRemindersEnabled: meta.EmailRemindersEnabled,
			DarkMode:              meta.DarkMode,
		},
	}

	if err := r.loadRoutines(ctx, snap); err != nil {
		return nil, err
	}
	if err := r.loadHabits(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *SQLSnapshotRepository) loadRoutines(ctx context.Context, snap *domain.Snapshot) error {
	var routines []routineRow
	if err := r.db.SelectContext(ctx, &routines, `SELECT id, title, description, category, scheduled_time, is_completed, completed_at, created_at FROM routines ORDER BY position`); err != nil {
		return fmt.Errorf("failed to query routines: %w", err)
	}

	var tasks []taskRow
	if err := r.db.SelectContext(ctx, &tasks, `SELECT routine_id, id, title, is_completed, completed_at FROM routine_tasks ORDER BY routine_id, position`); err != nil {
		return fmt.Errorf("failed to query routine tasks: %w", err)
	}

	var days []routineDayRow
	if err := r.db.SelectContext(ctx, &days, `SELECT routine_id, day FROM routine_completions ORDER BY routine_id, day`); err != nil {
		return fmt.Errorf("failed to query routine completions: %w", err)
	}

	tasksByRoutine := make(map[string][]domain.Task)
	for _, t := range tasks {
		completedAt, err := parseOptionalTime(t.CompletedAt)
		if err != nil {
			return err
		}
		tasksByRoutine[t.RoutineID] = append(tasksByRoutine[t.RoutineID], domain.Task{
			ID:          t.ID,
			Title:       t.Title,
			IsCompleted: t.IsCompleted,
			CompletedAt: completedAt,
		})
	}

	daysByRoutine := make(map[string][]string)
	for _, d := range days {
		daysByRoutine[d.RoutineID] = append(daysByRoutine[d.RoutineID], d.Day)
	}

	for _, row := range routines {
		createdAt, err := parseTime(row.CreatedAt)
		if err != nil {
			return err
		}
		completedAt, err := parseOptionalTime(row.CompletedAt)
		if err != nil {
			return err
		}

		routineTasks := tasksByRoutine[row.ID]
		if routineTasks == nil {
			routineTasks = []domain.Task{}
		}

		snap.Routines = append(snap.Routines, domain.Routine{
			ID:             row.ID,
			Title:          row.Title,
			Description:    row.Description,
			Category:       row.Category,
			ScheduledTime:  row.ScheduledTime,
			Tasks:          routineTasks,
			IsCompleted:    row.IsCompleted,
			CompletedAt:    completedAt,
			CompletionDays: daysByRoutine[row.ID],
			CreatedAt:      createdAt,
		})
	}
	return nil
}

func (r *SQLSnapshotRepository) loadHabits(ctx context.Context, snap *domain.Snapshot) error {
	var habits []habitRow
	if err := r.db.SelectContext(ctx, &habits, `SELECT id, title, description, color, category, target_days, current_streak, longest_streak, created_at FROM habits ORDER BY position`); err != nil {
		return fmt.Errorf("failed to query habits: %w", err)
	}

	var completions []habitCompletionRow
	if err := r.db.SelectContext(ctx, &completions, `SELECT habit_id, id, day, completed_at FROM habit_completions ORDER BY habit_id, day`); err != nil {
		return fmt.Errorf("failed to query habit completions: %w", err)
	}

	byHabit := make(map[string][]domain.HabitCompletion)
	for _, c := range completions {
		completedAt, err := parseTime(c.CompletedAt)
		if err != nil {
			return err
		}
		byHabit[c.HabitID] = append(byHabit[c.HabitID], domain.HabitCompletion{
			ID:          c.ID,
			Date:        c.Day,
			CompletedAt: completedAt,
		})
	}

	for _, row := range habits {
		createdAt, err := parseTime(row.CreatedAt)
		if err != nil {
			return err
		}

		var targetDays []int
		if err := json.Unmarshal([]byte(row.TargetDays), &targetDays); err != nil {
			return fmt.Errorf("failed to unmarshal target days: %w", err)
		}

		habitCompletions := byHabit[row.ID]
		if habitCompletions == nil {
			habitCompletions = []domain.HabitCompletion{}
		}

		snap.Habits = append(snap.Habits, domain.Habit{
			ID:            row.ID,
			Title:         row.Title,
			Description:   row.Description,
			Color:         row.Color,
			Category:      row.Category,
			TargetDays:    targetDays,
			Completions:   habitCompletions,
			CurrentStreak: row.CurrentStreak,
			LongestStreak: row.LongestStreak,
			CreatedAt:     createdAt,
		})
	}
	return nil
}

func (r *SQLSnapshotRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range snapshotTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	prefs := domain.DefaultPreferences()
	if snap.Preferences != nil {
		prefs = *snap.Preferences
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(`
        INSERT INTO snapshot_meta (id, version, notifications_enabled, email_reminders_enabled, dark_mode, saved_at)
        VALUES (1, ?, ?, ?, ?, ?)`),
		snap.Version, prefs.NotificationsEnabled, prefs.EmailRemindersEnabled, prefs.DarkMode, formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot metadata: %w", err)
	}

	if err := saveRoutines(ctx, tx, snap.Routines); err != nil {
		return err
	}
	if err := saveHabits(ctx, tx, snap.Habits); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func saveRoutines(ctx context.Context, tx *sqlx.Tx, routines []domain.Routine) error {
	insertRoutine := tx.Rebind(`
        INSERT INTO routines (id, position, title, description, category, scheduled_time, is_completed, completed_at, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	insertTask := tx.Rebind(`
        INSERT INTO routine_tasks (routine_id, id, position, title, is_completed, completed_at)
        VALUES (?, ?, ?, ?, ?, ?)`)
	insertDay := tx.Rebind(`INSERT INTO routine_completions (routine_id, day) VALUES (?, ?)`)

	for i, rt := range routines {
		_, err := tx.ExecContext(ctx, insertRoutine,
			rt.ID, i, rt.Title, rt.Description, rt.Category, rt.ScheduledTime,
			rt.IsCompleted, formatOptionalTime(rt.CompletedAt), formatTime(rt.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert routine %s: %w", rt.ID, err)
		}

		for j, t := range rt.Tasks {
			if _, err := tx.ExecContext(ctx, insertTask, rt.ID, t.ID, j, t.Title, t.IsCompleted, formatOptionalTime(t.CompletedAt)); err != nil {
				return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
			}
		}

		for _, day := range rt.CompletionDays {
			if _, err := tx.ExecContext(ctx, insertDay, rt.ID, day); err != nil {
				return fmt.Errorf("failed to insert routine completion %s: %w", day, err)
			}
		}
	}
	return nil
}

func saveHabits(ctx context.Context, tx *sqlx.Tx, habits []domain.Habit) error {
	insertHabit := tx.Rebind(`
        INSERT INTO habits (id, position, title, description, color, category, target_days, current_streak, longest_streak, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	insertCompletion := tx.Rebind(`
        INSERT INTO habit_completions (habit_id, id, day, completed_at)
        VALUES (?, ?, ?, ?)`)

	for i, h := range habits {
		targetDays, err := json.Marshal(h.TargetDays)
		if err != nil {
			return fmt.Errorf("failed to marshal target days: %w", err)
		}

		_, err = tx.ExecContext(ctx, insertHabit,
			h.ID, i, h.Title, h.Description, h.Color, h.Category, string(targetDays),
			h.CurrentStreak, h.LongestStreak, formatTime(h.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert habit %s: %w", h.ID, err)
		}

		for _, c := range h.Completions {
			if _, err := tx.ExecContext(ctx, insertCompletion, h.ID, c.ID, c.Date, formatTime(c.CompletedAt)); err != nil {
				return fmt.Errorf("failed to insert habit completion %s: %w", c.Date, err)
			}
		}
	}
	return nil
}
