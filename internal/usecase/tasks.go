package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"aide/internal/domain"
	"aide/internal/port"
)

// validateName rejects names that cannot double as a file name.
func validateName(kind domain.EntityKind, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s name must not be empty", domain.ErrInvalid, kind)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %s name %q must not contain path separators", domain.ErrInvalid, kind, name)
	}
	return nil
}

// TaskUseCase manages tasks and their log files.
type TaskUseCase struct {
	store           port.TaskStore
	catalog         *Catalog
	names           *NameResolver
	logDir          string
	defaultPriority int
	now             func() time.Time
	logger          *zap.Logger
}

func NewTaskUseCase(
	store port.TaskStore,
	catalog *Catalog,
	names *NameResolver,
	logDir string,
	defaultPriority int,
	logger *zap.Logger,
) *TaskUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskUseCase{
		store:           store,
		catalog:         catalog,
		names:           names,
		logDir:          logDir,
		defaultPriority: defaultPriority,
		now:             time.Now,
		logger:          logger,
	}
}

// Create opens the task raw names. An exact match, or a fuzzy match the user
// accepts, returns the existing task with created=false; otherwise a new task
// is stored with the default priority and an empty log file.
func (u *TaskUseCase) Create(ctx context.Context, raw string) (task domain.Task, created bool, err error) {
	if err := validateName(domain.KindTask, raw); err != nil {
		return domain.Task{}, false, err
	}

	name, found, err := u.names.Find(ctx, domain.KindTask, raw)
	if err != nil {
		return domain.Task{}, false, err
	}
	if found {
		task, err := u.store.GetTask(name)
		return task, false, err
	}

	task = domain.Task{
		Name:      raw,
		Priority:  u.defaultPriority,
		Status:    domain.StatusCreated,
		LogPath:   filepath.Join(u.logDir, raw+".log"),
		CreatedAt: u.now().UTC(),
	}

	if err := u.store.CreateTask(task); err != nil {
		return domain.Task{}, false, err
	}
	if err := touch(task.LogPath); err != nil {
		if derr := u.store.DeleteTask(task.Name); derr != nil {
			u.logger.Error("failed to roll back task", zap.String("name", task.Name), zap.Error(derr))
		}
		return domain.Task{}, false, fmt.Errorf("failed to create task log: %w", err)
	}
	u.catalog.Insert(domain.KindTask, task.Name)
	u.logger.Info("created task", zap.String("name", task.Name))
	return task, true, nil
}

// Get resolves raw and returns the stored task.
func (u *TaskUseCase) Get(ctx context.Context, raw string) (domain.Task, error) {
	name, err := u.names.Resolve(ctx, domain.KindTask, raw)
	if err != nil {
		return domain.Task{}, err
	}
	return u.store.GetTask(name)
}

func (u *TaskUseCase) update(ctx context.Context, raw string, fn func(*domain.Task)) (domain.Task, error) {
	task, err := u.Get(ctx, raw)
	if err != nil {
		return domain.Task{}, err
	}
	fn(&task)
	if err := u.store.PutTask(task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (u *TaskUseCase) SetStatus(ctx context.Context, raw string, status domain.TaskStatus) (domain.Task, error) {
	if _, err := domain.ParseTaskStatus(string(status)); err != nil {
		return domain.Task{}, err
	}
	return u.update(ctx, raw, func(t *domain.Task) { t.Status = status })
}

func (u *TaskUseCase) SetPriority(ctx context.Context, raw string, priority int) (domain.Task, error) {
	if priority < domain.MinPriority || priority > domain.MaxPriority {
		return domain.Task{}, fmt.Errorf("%w: priority must be between %d and %d", domain.ErrInvalid, domain.MinPriority, domain.MaxPriority)
	}
	return u.update(ctx, raw, func(t *domain.Task) { t.Priority = priority })
}

// AppendLog appends a timestamped line to the task's log file.
func (u *TaskUseCase) AppendLog(ctx context.Context, raw, text string) (domain.Task, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Task{}, fmt.Errorf("%w: log text must not be empty", domain.ErrInvalid)
	}
	task, err := u.Get(ctx, raw)
	if err != nil {
		return domain.Task{}, err
	}

	f, err := os.OpenFile(task.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to open task log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s\n", u.now().Format("2006-01-02 15:04:05"), text)
	if _, err := f.WriteString(line); err != nil {
		return domain.Task{}, fmt.Errorf("failed to write task log: %w", err)
	}
	return task, nil
}

// List returns tasks by priority (1 first), then oldest first.
func (u *TaskUseCase) List() ([]domain.Task, error) {
	tasks, err := u.store.ListTasks()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Name < b.Name
	})
	return tasks, nil
}

// Delete removes the task and its log file.
func (u *TaskUseCase) Delete(ctx context.Context, raw string) (domain.Task, error) {
	task, err := u.Get(ctx, raw)
	if err != nil {
		return domain.Task{}, err
	}
	if err := u.store.DeleteTask(task.Name); err != nil {
		return domain.Task{}, err
	}
	u.catalog.Remove(domain.KindTask, task.Name)

	if task.LogPath != "" {
		if err := os.Remove(task.LogPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			u.logger.Warn("failed to remove task log", zap.String("path", task.LogPath), zap.Error(err))
		}
	}
	return task, nil
}
