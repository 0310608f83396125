package fakeprojectrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/taskcart/taskcart/projects"
)

var _ projects.Repo = (*FakeProjectRepo)(nil)

type FakeProjectRepo struct {
	byID map[string]*projects.Project
	lock sync.RWMutex
}

func NewFakeProjectRepo() *FakeProjectRepo {
	return &FakeProjectRepo{
		byID: make(map[string]*projects.Project),
	}
}

func (pr *FakeProjectRepo) Create(_ context.Context, project *projects.Project) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if project.ID == "" {
		project.ID = ulid.Make().String()
	}
	stored := *project
	pr.byID[stored.ID] = &stored
	return nil
}

func (pr *FakeProjectRepo) Get(_ context.Context, id string) (*projects.Project, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	project, ok := pr.byID[id]
	if !ok {
		return nil, projects.ErrNotFound
	}
	copied := *project
	return &copied, nil
}

func (pr *FakeProjectRepo) ListByOwner(_ context.Context, ownerID string) ([]*projects.Project, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	list := make([]*projects.Project, 0)
	for _, p := range pr.byID {
		if p.OwnerID != ownerID {
			continue
		}
		copied := *p
		list = append(list, &copied)
	}

	// ULIDs sort by creation time
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (pr *FakeProjectRepo) Update(_ context.Context, project *projects.Project) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.byID[project.ID]; !ok {
		return projects.ErrNotFound
	}
	stored := *project
	pr.byID[stored.ID] = &stored
	return nil
}

func (pr *FakeProjectRepo) Delete(_ context.Context, id string) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.byID[id]; !ok {
		return projects.ErrNotFound
	}
	delete(pr.byID, id)
	return nil
}
