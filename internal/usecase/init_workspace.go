package usecase

import (
	"errors"
	"strings"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

func (uc *InitWorkspace) Execute(root string, force bool) (domain.InitResult, error) {
	if strings.TrimSpace(root) == "" {
		return domain.InitResult{}, &domain.OpError{
			Op:   "usecase.init_workspace",
			Kind: domain.KindInvalidInput,
			Err:  errors.Join(domain.ErrInvalidInput, errors.New("workspace root is empty")),
		}
	}
	return uc.initializer.Init(domain.WorkspaceSpec{Root: root, Force: force})
}
