package usecase

import (
	"github.com/headwind-cms/headwind/pkg/domain/interfaces"
)

// UseCases bundles the application operations exposed to controllers
type UseCases struct {
	repo interfaces.Repository

	ContentType *ContentTypeUseCase
	Content     *ContentUseCase
}

type Option func(*UseCases)

// WithActivityLimit overrides the default number of activity entries returned
// per record
func WithActivityLimit(limit int) Option {
	return func(uc *UseCases) {
		uc.Content.activityLimit = limit
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	uc.ContentType = NewContentTypeUseCase(repo)
	uc.Content = NewContentUseCase(repo)

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
