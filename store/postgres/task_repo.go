package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"

	"github.com/taskcart/taskcart/projects"
)

var _ projects.TaskRepo = (*TaskRepo)(nil)

type TaskRepo struct {
	db DB
}

func NewTaskRepo(db DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Create(ctx context.Context, task *projects.Task) error {
	if task.ID == "" {
		task.ID = ulid.Make().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO tasks (id, project_id, assignee_id, title, notes, done, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		task.ID,
		task.ProjectID,
		nullableString(task.AssigneeID),
		task.Title,
		task.Notes,
		task.Done,
		task.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "[TaskRepo.Create] insert task")
	}
	return nil
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*projects.Task, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, project_id, assignee_id, title, notes, done, created_at
		FROM tasks
		WHERE id = $1
	`, id)

	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, projects.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[TaskRepo.Get] scan task")
	}
	return task, nil
}

func (r *TaskRepo) ListByProject(ctx context.Context, projectID string) ([]*projects.Task, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, project_id, assignee_id, title, notes, done, created_at
		FROM tasks
		WHERE project_id = $1
		ORDER BY id
	`, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "[TaskRepo.ListByProject] query tasks")
	}
	defer rows.Close()

	list := make([]*projects.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, errors.Wrap(err, "[TaskRepo.ListByProject] scan task")
		}
		list = append(list, task)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[TaskRepo.ListByProject] rows")
	}
	return list, nil
}

func (r *TaskRepo) Update(ctx context.Context, task *projects.Task) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tasks
		SET assignee_id = $2, title = $3, notes = $4, done = $5
		WHERE id = $1
	`,
		task.ID,
		nullableString(task.AssigneeID),
		task.Title,
		task.Notes,
		task.Done,
	)
	if err != nil {
		return errors.Wrap(err, "[TaskRepo.Update] update task")
	}
	if tag.RowsAffected() == 0 {
		return projects.ErrNotFound
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "[TaskRepo.Delete] delete task")
	}
	if tag.RowsAffected() == 0 {
		return projects.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*projects.Task, error) {
	var task projects.Task
	var assignee *string
	if err := row.Scan(&task.ID, &task.ProjectID, &assignee, &task.Title, &task.Notes, &task.Done, &task.CreatedAt); err != nil {
		return nil, err
	}
	if assignee != nil {
		task.AssigneeID = *assignee
	}
	return &task, nil
}

// nullableString maps the empty string to SQL NULL.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
