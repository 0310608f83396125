package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"

	"github.com/taskcart/taskcart/projects"
)

var _ projects.Repo = (*ProjectRepo)(nil)

type ProjectRepo struct {
	db DB
}

func NewProjectRepo(db DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

func (r *ProjectRepo) Create(ctx context.Context, project *projects.Project) error {
	if project.ID == "" {
		project.ID = ulid.Make().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO projects (id, owner_id, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		project.ID,
		project.OwnerID,
		project.Name,
		project.Description,
		project.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "[ProjectRepo.Create] insert project")
	}
	return nil
}

func (r *ProjectRepo) Get(ctx context.Context, id string) (*projects.Project, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, owner_id, name, description, created_at
		FROM projects
		WHERE id = $1
	`, id)

	var project projects.Project
	err := row.Scan(&project.ID, &project.OwnerID, &project.Name, &project.Description, &project.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, projects.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[ProjectRepo.Get] scan project")
	}
	return &project, nil
}

func (r *ProjectRepo) ListByOwner(ctx context.Context, ownerID string) ([]*projects.Project, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, name, description, created_at
		FROM projects
		WHERE owner_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "[ProjectRepo.ListByOwner] query projects")
	}
	defer rows.Close()

	list := make([]*projects.Project, 0)
	for rows.Next() {
		var project projects.Project
		if err := rows.Scan(&project.ID, &project.OwnerID, &project.Name, &project.Description, &project.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "[ProjectRepo.ListByOwner] scan project")
		}
		list = append(list, &project)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[ProjectRepo.ListByOwner] rows")
	}
	return list, nil
}

func (r *ProjectRepo) Update(ctx context.Context, project *projects.Project) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE projects
		SET name = $2, description = $3
		WHERE id = $1
	`,
		project.ID,
		project.Name,
		project.Description,
	)
	if err != nil {
		return errors.Wrap(err, "[ProjectRepo.Update] update project")
	}
	if tag.RowsAffected() == 0 {
		return projects.ErrNotFound
	}
	return nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "[ProjectRepo.Delete] delete project")
	}
	if tag.RowsAffected() == 0 {
		return projects.ErrNotFound
	}
	return nil
}
