package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comexhub/comex-go/internal/approval"
	"github.com/comexhub/comex-go/internal/domain/form"
	"github.com/comexhub/comex-go/internal/domain/remark"
	"github.com/comexhub/comex-go/internal/notify"
	"github.com/comexhub/comex-go/internal/repository"
)

var (
	ErrNotOwner      = errors.New("only the owner may update this form")
	ErrFormFinalized = errors.New("a fully approved form can no longer be updated")
)

// FormService owns the lifecycle of form instances: submission, the
// owner's revision path, and the recording of approve/reject decisions.
// All authorization decisions are re-derived from persisted state here;
// nothing trusts the caller's view of who may act.
type FormService struct {
	Repos    *repository.Repos
	Resolver *approval.Resolver
	Notifier notify.Notifier
}

func NewFormService(repos *repository.Repos, resolver *approval.Resolver, notifier notify.Notifier) *FormService {
	return &FormService{
		Repos:    repos,
		Resolver: resolver,
		Notifier: notifier,
	}
}

func (s *FormService) SubmitForm(ownerID uint, input form.CreateFormInput) (*form.DetailDTO, error) {
	ft, ok := approval.ParseFormType(input.FormType)
	if !ok {
		return nil, approval.ErrUnknownFormType
	}

	owner, err := s.Repos.User.GetUserByID(ownerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Repos.Event.FindByID(input.EventID); err != nil {
		return nil, err
	}

	flow, err := s.Resolver.Resolve(ft, owner.RoleCategory)
	if err != nil {
		return nil, err
	}

	f := &form.Form{
		FormType: ft,
		EventID:  input.EventID,
		OwnerID:  ownerID,
		Title:    input.Title,
		Body:     input.Body,
	}
	if err := s.Repos.Form.Create(f); err != nil {
		return nil, err
	}

	st := approval.Track(flow, f.Flags())
	ev := notify.NewEvent(ft, f.ID, "submitted")
	ev.NextRole = st.NextRole
	ev.Message = fmt.Sprintf("%s submitted for %q", ft, f.Title)
	s.Notifier.Notify(ev)

	return &form.DetailDTO{Form: f, Status: form.NewStatusDTO(flow, st)}, nil
}

func (s *FormService) GetForm(formType string, id uint) (*form.DetailDTO, error) {
	ft, ok := approval.ParseFormType(formType)
	if !ok {
		return nil, approval.ErrUnknownFormType
	}
	f, err := s.Repos.Form.FindByKey(ft, id)
	if err != nil {
		return nil, err
	}
	flow, st, err := s.resolveState(f)
	if err != nil {
		return nil, err
	}
	return &form.DetailDTO{Form: f, Status: form.NewStatusDTO(flow, st)}, nil
}

func (s *FormService) ListMyForms(ownerID uint) ([]form.DetailDTO, error) {
	forms, err := s.Repos.Form.FindByOwnerID(ownerID)
	if err != nil {
		return nil, err
	}
	return s.withStatus(forms)
}

func (s *FormService) ListByEvent(eventID uint) ([]form.DetailDTO, error) {
	forms, err := s.Repos.Form.FindByEventID(eventID)
	if err != nil {
		return nil, err
	}
	return s.withStatus(forms)
}

// ListInbox returns the forms on which the given reviewer role may act
// right now.
func (s *FormService) ListInbox(role approval.Role) ([]form.DetailDTO, error) {
	forms, err := s.Repos.Form.FindIncomplete()
	if err != nil {
		return nil, err
	}

	out := make([]form.DetailDTO, 0, len(forms))
	for i := range forms {
		f := &forms[i]
		flow, st, err := s.resolveState(f)
		if err != nil {
			// A stale row with an undefined flow never blocks the inbox.
			continue
		}
		if d := approval.Authorize(role, flow, st); d.MayActNow {
			out = append(out, form.DetailDTO{Form: f, Status: form.NewStatusDTO(flow, st)})
		}
	}
	return out, nil
}

// UpdateForm is the owner's revision of a not-yet-approved form. It
// reopens the form: every collected signature is cleared in the same
// conditional update that persists the edit.
func (s *FormService) UpdateForm(formType string, id, ownerID uint, input form.UpdateFormInput) (*form.DetailDTO, error) {
	ft, ok := approval.ParseFormType(formType)
	if !ok {
		return nil, approval.ErrUnknownFormType
	}
	f, err := s.Repos.Form.FindByKey(ft, id)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	flow, st, err := s.resolveState(f)
	if err != nil {
		return nil, err
	}
	if st.Complete {
		return nil, ErrFormFinalized
	}

	if input.Title != nil {
		f.Title = *input.Title
	}
	if input.Body != nil {
		f.Body = *input.Body
	}

	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		rows, err := tx.Form.SaveRevision(f, f.Version)
		if err != nil {
			return err
		}
		if rows == 0 {
			return approval.ErrConcurrentModification
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.Repos.Form.FindByKey(ft, id)
	if err != nil {
		return nil, err
	}
	st = approval.Track(flow, updated.Flags())

	ev := notify.NewEvent(ft, id, "revised")
	ev.NextRole = st.NextRole
	ev.Message = fmt.Sprintf("%s %d was revised and returned to draft", ft, id)
	s.Notifier.Notify(ev)

	return &form.DetailDTO{Form: updated, Status: form.NewStatusDTO(flow, st)}, nil
}

// Approve records one role's sign-off. The gate is re-derived from the
// persisted flags, and the write is a single conditional update; losing
// the race surfaces as ErrAlreadyApproved or ErrConcurrentModification,
// never as a silent double-record.
func (s *FormService) Approve(formType string, id uint, actingRole approval.Role, actorID uint) (*form.DecisionResponse, error) {
	ft, ok := approval.ParseFormType(formType)
	if !ok {
		return nil, approval.ErrUnknownFormType
	}
	f, err := s.Repos.Form.FindByKey(ft, id)
	if err != nil {
		return nil, err
	}

	flow, st, err := s.resolveState(f)
	if err != nil {
		return nil, err
	}
	if err := approveGate(actingRole, flow, st, f.Flags()); err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		rows, err := tx.Form.ApplyApproval(ft, id, f.Version, actingRole, actorID, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			return approval.ErrConcurrentModification
		}
		return nil
	})
	if errors.Is(err, approval.ErrConcurrentModification) {
		// Lost the race. If the same role got there first this is a
		// duplicate approve, which the caller must see as such.
		if current, readErr := s.Repos.Form.FindByKey(ft, id); readErr == nil && current.Flags().Get(actingRole) {
			return nil, approval.ErrAlreadyApproved
		}
		return nil, approval.ErrConcurrentModification
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.Repos.Form.FindByKey(ft, id)
	if err != nil {
		return nil, err
	}
	st = approval.Track(flow, updated.Flags())

	msg := fmt.Sprintf("%s approved by %s", ft, actingRole)
	if st.Complete {
		msg = fmt.Sprintf("%s is now fully approved", ft)
	}

	ev := notify.NewEvent(ft, id, "approved")
	ev.Role = actingRole
	ev.NextRole = st.NextRole
	ev.IsComplete = st.Complete
	ev.Message = msg
	s.Notifier.Notify(ev)

	return &form.DecisionResponse{
		Form:    updated,
		Status:  form.NewStatusDTO(flow, st),
		Message: msg,
	}, nil
}

// Reject records a revision request. The remark is mandatory; prior
// approvals stay in place — the form simply stops moving forward until
// the owner revises it.
func (s *FormService) Reject(formType string, id uint, actingRole approval.Role, actorID uint, remarkText string) (*form.DecisionResponse, error) {
	ft, ok := approval.ParseFormType(formType)
	if !ok {
		return nil, approval.ErrUnknownFormType
	}
	if strings.TrimSpace(remarkText) == "" {
		return nil, approval.ErrRemarksRequired
	}

	f, err := s.Repos.Form.FindByKey(ft, id)
	if err != nil {
		return nil, err
	}

	flow, st, err := s.resolveState(f)
	if err != nil {
		return nil, err
	}
	if err := rejectGate(actingRole, flow, st); err != nil {
		return nil, err
	}

	entry := &remark.Remark{
		ID:       uuid.NewString(),
		FormType: ft,
		FormID:   id,
		Role:     actingRole,
		Remark:   strings.TrimSpace(remarkText),
		AuthorID: actorID,
	}
	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		rows, err := tx.Form.BumpVersion(ft, id, f.Version)
		if err != nil {
			return err
		}
		if rows == 0 {
			return approval.ErrConcurrentModification
		}
		return tx.Remark.Create(entry)
	})
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("%s was returned for revision by %s", ft, actingRole)
	ev := notify.NewEvent(ft, id, "rejected")
	ev.Role = actingRole
	ev.NextRole = st.NextRole
	ev.Message = msg
	s.Notifier.Notify(ev)

	return &form.DecisionResponse{
		Form:    f,
		Status:  form.NewStatusDTO(flow, st),
		Message: msg,
	}, nil
}

// resolveState recomputes the flow and derived status for a loaded form.
func (s *FormService) resolveState(f *form.Form) (approval.Flow, approval.State, error) {
	category := f.Owner.RoleCategory
	if category == "" {
		owner, err := s.Repos.User.GetUserByID(f.OwnerID)
		if err != nil {
			return approval.Flow{}, approval.State{}, err
		}
		category = owner.RoleCategory
	}
	flow, err := s.Resolver.Resolve(f.FormType, category)
	if err != nil {
		return approval.Flow{}, approval.State{}, err
	}
	return flow, approval.Track(flow, f.Flags()), nil
}

func (s *FormService) withStatus(forms []form.Form) ([]form.DetailDTO, error) {
	out := make([]form.DetailDTO, 0, len(forms))
	for i := range forms {
		f := &forms[i]
		flow, st, err := s.resolveState(f)
		if err != nil {
			return nil, err
		}
		out = append(out, form.DetailDTO{Form: f, Status: form.NewStatusDTO(flow, st)})
	}
	return out, nil
}

// approveGate is the server-side precondition for recording a sign-off.
// A role that already signed gets the dedicated duplicate error so the
// caller can tell a retry from a real authorization failure.
func approveGate(acting approval.Role, flow approval.Flow, st approval.State, flags approval.Flags) error {
	d := approval.Authorize(acting, flow, st)
	if !d.Included {
		return approval.ErrNotAuthorized
	}
	if flags.Get(acting) {
		return approval.ErrAlreadyApproved
	}
	if !d.MayActNow {
		return approval.ErrNotAuthorized
	}
	return nil
}

// rejectGate applies the same turn check, but every failure reads as an
// authorization error: a reviewer who already signed has no pending
// decision left to reject.
func rejectGate(acting approval.Role, flow approval.Flow, st approval.State) error {
	d := approval.Authorize(acting, flow, st)
	if !d.Included || !d.MayActNow {
		return approval.ErrNotAuthorized
	}
	return nil
}
