package application

import (
	"github.com/comexhub/comex-go/internal/approval"
	"github.com/comexhub/comex-go/internal/domain/remark"
	"github.com/comexhub/comex-go/internal/repository"
)

// RemarkService is the read side of the revision log. Writes happen only
// through FormService.Reject.
type RemarkService struct {
	Repos *repository.Repos
}

func NewRemarkService(repos *repository.Repos) *RemarkService {
	return &RemarkService{Repos: repos}
}

func (s *RemarkService) ListByForm(formType string, formID uint) ([]remark.Remark, error) {
	ft, ok := approval.ParseFormType(formType)
	if !ok {
		return nil, approval.ErrUnknownFormType
	}
	return s.Repos.Remark.ListByForm(ft, formID)
}
