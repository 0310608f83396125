package fakeprojectrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/taskcart/taskcart/projects"
)

var _ projects.TaskRepo = (*FakeTaskRepo)(nil)

type FakeTaskRepo struct {
	byID map[string]*projects.Task
	lock sync.RWMutex
}

func NewFakeTaskRepo() *FakeTaskRepo {
	return &FakeTaskRepo{
		byID: make(map[string]*projects.Task),
	}
}

func (tr *FakeTaskRepo) Create(_ context.Context, task *projects.Task) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if task.ID == "" {
		task.ID = ulid.Make().String()
	}
	stored := *task
	tr.byID[stored.ID] = &stored
	return nil
}

func (tr *FakeTaskRepo) Get(_ context.Context, id string) (*projects.Task, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	task, ok := tr.byID[id]
	if !ok {
		return nil, projects.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (tr *FakeTaskRepo) ListByProject(_ context.Context, projectID string) ([]*projects.Task, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	list := make([]*projects.Task, 0)
	for _, task := range tr.byID {
		if task.ProjectID != projectID {
			continue
		}
		copied := *task
		list = append(list, &copied)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (tr *FakeTaskRepo) Update(_ context.Context, task *projects.Task) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.byID[task.ID]; !ok {
		return projects.ErrNotFound
	}
	stored := *task
	tr.byID[stored.ID] = &stored
	return nil
}

func (tr *FakeTaskRepo) Delete(_ context.Context, id string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.byID[id]; !ok {
		return projects.ErrNotFound
	}
	delete(tr.byID, id)
	return nil
}
