package usecases

import (
	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/domain/notification/templates"
)

type ListCategoriesUseCase struct{}

func NewListCategoriesUseCase() *ListCategoriesUseCase {
	return &ListCategoriesUseCase{}
}

func (uc *ListCategoriesUseCase) Execute() []*dto.CategoryResponse {
	return dto.ToCategoryResponses(templates.Categories())
}
