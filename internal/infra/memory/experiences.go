package memory

import (
	"context"
	"sort"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
	experienceRepo "github.com/MoNiLBaRiYa/BookIt/internal/infra/storage/experience"
)

// ExperienceRepository каталог хранилища в памяти
type ExperienceRepository struct {
	store *Store
}

// Experiences возвращает репозиторий каталога
func (s *Store) Experiences() *ExperienceRepository {
	return &ExperienceRepository{store: s}
}

func (r *ExperienceRepository) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	var found *domain.Experience
	err := r.store.view(ctx, func(t *tx) error {
		exp, ok := t.store.experiences[id]
		if !ok {
			return experienceRepo.ErrExperienceNotFound
		}
		found = copyExperience(exp)
		return nil
	})
	return found, err
}

func (r *ExperienceRepository) List(ctx context.Context, filter domain.ExperienceFilter) ([]*domain.Experience, error) {
	experiences := make([]*domain.Experience, 0)
	err := r.store.view(ctx, func(t *tx) error {
		for _, exp := range t.store.experiences {
			if filter.Matches(exp) {
				experiences = append(experiences, copyExperience(exp))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(experiences, func(i, j int) bool {
		return experiences[i].RanksBefore(experiences[j])
	})
	return experiences, nil
}
