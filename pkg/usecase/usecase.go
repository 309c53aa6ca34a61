package usecase

import (
	"github.com/luanacfraga/tooldo/pkg/domain/interfaces"
	"github.com/luanacfraga/tooldo/pkg/service/kanban"
)

type UseCases struct {
	repo   interfaces.Repository
	Action *ActionUseCase
	Board  *BoardUseCase
}

func New(repo interfaces.Repository) *UseCases {
	engine := kanban.New(repo.Kanban())
	return &UseCases{
		repo:   repo,
		Action: NewActionUseCase(repo, engine),
		Board:  NewBoardUseCase(repo),
	}
}
