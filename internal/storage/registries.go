package storage

import (
	"time"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/validate"
)

// ColleagueRepo provides operations for Colleague records.
type ColleagueRepo struct {
	*registry[model.Colleague, model.ColleagueFields]
}

// NewColleagueRepo loads the colleague registry from kv.
func NewColleagueRepo(kv KV, opts ...Option) *ColleagueRepo {
	return &ColleagueRepo{newRegistry(kv, registryKind[model.Colleague, model.ColleagueFields]{
		name:     "colleague",
		key:      model.KeyColleagues,
		notFound: errors.ErrColleagueNotFound,
		decode:   decodeColleagues,
		id:       (*model.Colleague).GetID,
		label:    func(f model.ColleagueFields) string { return f.Name },
		clean: func(f model.ColleagueFields) model.ColleagueFields {
			f.Name = validate.SanitizeLabel(f.Name)
			f.Department = validate.SanitizeLabel(f.Department)
			f.Email = validate.SanitizeLabel(f.Email)
			return f
		},
		build: func(id string, createdAt time.Time, f model.ColleagueFields) model.Colleague {
			c := model.Colleague{ID: id, CreatedAt: createdAt}
			f.Apply(&c)
			return c
		},
		apply:   func(c *model.Colleague, f model.ColleagueFields) { f.Apply(c) },
		matches: (*model.Colleague).Matches,
	}, opts)}
}

// Snapshots returns value copies of the colleagues with the given ids, in
// the order given, for embedding in a report.
func (r *ColleagueRepo) Snapshots(ids []string) ([]model.Colleague, error) {
	out := make([]model.Colleague, 0, len(ids))
	for _, id := range ids {
		c, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

// WorksiteRepo provides operations for Worksite records.
type WorksiteRepo struct {
	*registry[model.Worksite, model.WorksiteFields]
}

// NewWorksiteRepo loads the worksite registry from kv.
func NewWorksiteRepo(kv KV, opts ...Option) *WorksiteRepo {
	return &WorksiteRepo{newRegistry(kv, registryKind[model.Worksite, model.WorksiteFields]{
		name:     "worksite",
		key:      model.KeyWorksites,
		notFound: errors.ErrWorksiteNotFound,
		decode:   decodeWorksites,
		id:       (*model.Worksite).GetID,
		label:    func(f model.WorksiteFields) string { return f.Name },
		clean: func(f model.WorksiteFields) model.WorksiteFields {
			f.Name = validate.SanitizeLabel(f.Name)
			f.Address = validate.SanitizeLabel(f.Address)
			f.Description = validate.SanitizeNote(f.Description)
			return f
		},
		build: func(id string, createdAt time.Time, f model.WorksiteFields) model.Worksite {
			w := model.Worksite{ID: id, CreatedAt: createdAt}
			f.Apply(&w)
			return w
		},
		apply:   func(w *model.Worksite, f model.WorksiteFields) { f.Apply(w) },
		matches: (*model.Worksite).Matches,
	}, opts)}
}

// ProjectRepo provides operations for Project records.
type ProjectRepo struct {
	*registry[model.Project, model.ProjectFields]
}

// NewProjectRepo loads the project registry from kv.
func NewProjectRepo(kv KV, opts ...Option) *ProjectRepo {
	return &ProjectRepo{newRegistry(kv, registryKind[model.Project, model.ProjectFields]{
		name:     "project",
		key:      model.KeyProjects,
		notFound: errors.ErrProjectNotFound,
		decode:   decodeProjects,
		id:       (*model.Project).GetID,
		label:    func(f model.ProjectFields) string { return f.Name },
		clean: func(f model.ProjectFields) model.ProjectFields {
			f.Name = validate.SanitizeLabel(f.Name)
			f.Description = validate.SanitizeNote(f.Description)
			return f
		},
		build: func(id string, createdAt time.Time, f model.ProjectFields) model.Project {
			p := model.Project{ID: id, CreatedAt: createdAt}
			f.Apply(&p)
			return p
		},
		apply:   func(p *model.Project, f model.ProjectFields) { f.Apply(p) },
		matches: (*model.Project).Matches,
	}, opts)}
}
