package application_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comexhub/comex-go/internal/application"
	"github.com/comexhub/comex-go/internal/approval"
	"github.com/comexhub/comex-go/internal/domain/event"
	"github.com/comexhub/comex-go/internal/domain/form"
	"github.com/comexhub/comex-go/internal/domain/remark"
	"github.com/comexhub/comex-go/internal/domain/user"
	"github.com/comexhub/comex-go/internal/notify"
	"github.com/comexhub/comex-go/internal/repository"
	"github.com/comexhub/comex-go/internal/repository/mock"
)

type formMocks struct {
	svc    *application.FormService
	form   *mock.MockFormRepo
	user   *mock.MockUserRepo
	event  *mock.MockEventRepo
	remark *mock.MockRemarkRepo
}

func setupFormServiceMocks(t *testing.T, cfg approval.FlowConfig) formMocks {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	m := formMocks{
		form:   mock.NewMockFormRepo(ctrl),
		user:   mock.NewMockUserRepo(ctrl),
		event:  mock.NewMockEventRepo(ctrl),
		remark: mock.NewMockRemarkRepo(ctrl),
	}

	repos := &repository.Repos{
		User:   m.user,
		Event:  m.event,
		Form:   m.form,
		Remark: m.remark,
	}
	m.svc = application.NewFormService(repos, approval.NewResolver(cfg), notify.ConsoleNotifier{})
	return m
}

func studentForm(ft approval.FormType, version uint) *form.Form {
	return &form.Form{
		ID:       7,
		FormType: ft,
		EventID:  3,
		OwnerID:  12,
		Title:    "Coastal cleanup",
		Version:  version,
		Owner:    user.User{UID: 12, RoleCategory: approval.CategoryStudent},
	}
}

func facultyForm(ft approval.FormType, version uint) *form.Form {
	f := studentForm(ft, version)
	f.Owner.RoleCategory = approval.CategoryFaculty
	return f
}

func TestSubmitForm(t *testing.T) {
	m := setupFormServiceMocks(t, approval.FlowConfig{})

	t.Run("success", func(t *testing.T) {
		input := form.CreateFormInput{
			FormType: "itinerary",
			EventID:  3,
			Title:    "Coastal cleanup",
			Body:     "Day trip to the coastal barangay.",
		}
		m.user.EXPECT().GetUserByID(uint(12)).
			Return(user.User{UID: 12, RoleCategory: approval.CategoryFaculty}, nil)
		m.event.EXPECT().FindByID(uint(3)).Return(&event.Event{EID: 3}, nil)
		m.form.EXPECT().Create(gomock.Any()).Do(func(f *form.Form) {
			f.ID = 7
		}).Return(nil)

		res, err := m.svc.SubmitForm(12, input)
		require.NoError(t, err)
		assert.Equal(t, uint(7), res.Form.ID)
		assert.Equal(t, []approval.Role{approval.RoleComEx, approval.RoleASD}, res.Status.RequiredRoles)
		require.NotNil(t, res.Status.NextRole)
		assert.Equal(t, approval.RoleComEx, *res.Status.NextRole)
		assert.False(t, res.Status.IsComplete)
	})

	t.Run("unknown form type", func(t *testing.T) {
		_, err := m.svc.SubmitForm(12, form.CreateFormInput{FormType: "budget_request", EventID: 3, Title: "x"})
		assert.ErrorIs(t, err, approval.ErrUnknownFormType)
	})

	t.Run("missing event", func(t *testing.T) {
		m.user.EXPECT().GetUserByID(uint(12)).
			Return(user.User{UID: 12, RoleCategory: approval.CategoryFaculty}, nil)
		m.event.EXPECT().FindByID(uint(99)).Return(nil, errors.New("record not found"))

		_, err := m.svc.SubmitForm(12, form.CreateFormInput{FormType: "itinerary", EventID: 99, Title: "x"})
		assert.Error(t, err)
	})
}

func TestApprove(t *testing.T) {
	t.Run("first reviewer signs", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 0)

		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)
		m.form.EXPECT().ApplyApproval(approval.FormItinerary, uint(7), uint(0), approval.RoleComEx, uint(30), gomock.Any()).
			Return(int64(1), nil)
		signed := facultyForm(approval.FormItinerary, 1)
		signed.IsCommex = true
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(signed, nil)

		res, err := m.svc.Approve("itinerary", 7, approval.RoleComEx, 30)
		require.NoError(t, err)
		assert.Equal(t, []approval.Role{approval.RoleComEx}, res.Status.ApprovedRoles)
		require.NotNil(t, res.Status.NextRole)
		assert.Equal(t, approval.RoleASD, *res.Status.NextRole)
		assert.False(t, res.Status.IsComplete)
	})

	t.Run("final reviewer completes the form", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 1)
		f.IsCommex = true

		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)
		m.form.EXPECT().ApplyApproval(approval.FormItinerary, uint(7), uint(1), approval.RoleASD, uint(31), gomock.Any()).
			Return(int64(1), nil)
		done := facultyForm(approval.FormItinerary, 2)
		done.IsCommex = true
		done.IsAsd = true
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(done, nil)

		res, err := m.svc.Approve("itinerary", 7, approval.RoleASD, 31)
		require.NoError(t, err)
		assert.True(t, res.Status.IsComplete)
		assert.Nil(t, res.Status.NextRole)
	})

	t.Run("not your turn", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 0)
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)

		_, err := m.svc.Approve("itinerary", 7, approval.RoleASD, 31)
		assert.ErrorIs(t, err, approval.ErrNotAuthorized)
	})

	t.Run("role outside the sequence", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 0)
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)

		_, err := m.svc.Approve("itinerary", 7, approval.RoleDean, 40)
		assert.ErrorIs(t, err, approval.ErrNotAuthorized)
	})

	t.Run("duplicate approve", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 1)
		f.IsCommex = true
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)

		_, err := m.svc.Approve("itinerary", 7, approval.RoleComEx, 30)
		assert.ErrorIs(t, err, approval.ErrAlreadyApproved)
	})

	t.Run("lost race to the same role", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 0)
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)
		m.form.EXPECT().ApplyApproval(approval.FormItinerary, uint(7), uint(0), approval.RoleComEx, uint(30), gomock.Any()).
			Return(int64(0), nil)
		rival := facultyForm(approval.FormItinerary, 1)
		rival.IsCommex = true
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(rival, nil)

		_, err := m.svc.Approve("itinerary", 7, approval.RoleComEx, 30)
		assert.ErrorIs(t, err, approval.ErrAlreadyApproved)
	})

	t.Run("lost race to a different write", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 0)
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)
		m.form.EXPECT().ApplyApproval(approval.FormItinerary, uint(7), uint(0), approval.RoleComEx, uint(30), gomock.Any()).
			Return(int64(0), nil)
		// The rival write was an owner revision, not the same role signing.
		revised := facultyForm(approval.FormItinerary, 1)
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(revised, nil)

		_, err := m.svc.Approve("itinerary", 7, approval.RoleComEx, 30)
		assert.ErrorIs(t, err, approval.ErrConcurrentModification)
	})

	t.Run("floating dean signs before the chain", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := studentForm(approval.FormTerminalReport, 0)

		m.form.EXPECT().FindByKey(approval.FormTerminalReport, uint(7)).Return(f, nil)
		m.form.EXPECT().ApplyApproval(approval.FormTerminalReport, uint(7), uint(0), approval.RoleDean, uint(41), gomock.Any()).
			Return(int64(1), nil)
		signed := studentForm(approval.FormTerminalReport, 1)
		signed.IsDean = true
		m.form.EXPECT().FindByKey(approval.FormTerminalReport, uint(7)).Return(signed, nil)

		res, err := m.svc.Approve("terminal_report", 7, approval.RoleDean, 41)
		require.NoError(t, err)
		require.NotNil(t, res.Status.NextRole)
		assert.Equal(t, approval.RoleComEx, *res.Status.NextRole)
	})

	t.Run("asd blocked while commex pending on a student report", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := studentForm(approval.FormTerminalReport, 1)
		f.IsDean = true
		m.form.EXPECT().FindByKey(approval.FormTerminalReport, uint(7)).Return(f, nil)

		_, err := m.svc.Approve("terminal_report", 7, approval.RoleASD, 31)
		assert.ErrorIs(t, err, approval.ErrNotAuthorized)
	})
}

func TestReject(t *testing.T) {
	t.Run("records the remark and stalls the form", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 2)
		f.IsCommex = true

		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)
		m.form.EXPECT().BumpVersion(approval.FormItinerary, uint(7), uint(2)).Return(int64(1), nil)
		m.remark.EXPECT().Create(gomock.Any()).Do(func(entry *remark.Remark) {
			assert.NotEmpty(t, entry.ID)
			assert.Equal(t, approval.FormItinerary, entry.FormType)
			assert.Equal(t, uint(7), entry.FormID)
			assert.Equal(t, approval.RoleASD, entry.Role)
			assert.Equal(t, "Budget breakdown is missing.", entry.Remark)
			assert.Equal(t, uint(31), entry.AuthorID)
		}).Return(nil)

		res, err := m.svc.Reject("itinerary", 7, approval.RoleASD, 31, "  Budget breakdown is missing.  ")
		require.NoError(t, err)
		// Prior approvals stay in place.
		assert.Equal(t, []approval.Role{approval.RoleComEx}, res.Status.ApprovedRoles)
		assert.False(t, res.Status.IsComplete)
	})

	t.Run("blank remark", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		_, err := m.svc.Reject("itinerary", 7, approval.RoleASD, 31, "   ")
		assert.ErrorIs(t, err, approval.ErrRemarksRequired)
	})

	t.Run("reject needs the same turn as approve", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 0)
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)

		_, err := m.svc.Reject("itinerary", 7, approval.RoleASD, 31, "not yet")
		assert.ErrorIs(t, err, approval.ErrNotAuthorized)
	})

	t.Run("a role that already signed cannot reject", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 1)
		f.IsCommex = true
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)

		// The sign-off is already recorded; there is nothing pending for
		// ComEx to reject, so this is an authorization failure.
		_, err := m.svc.Reject("itinerary", 7, approval.RoleComEx, 30, "changed my mind")
		assert.ErrorIs(t, err, approval.ErrNotAuthorized)
	})

	t.Run("version moved underneath", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 0)
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)
		m.form.EXPECT().BumpVersion(approval.FormItinerary, uint(7), uint(0)).Return(int64(0), nil)

		_, err := m.svc.Reject("itinerary", 7, approval.RoleComEx, 30, "please revise")
		assert.ErrorIs(t, err, approval.ErrConcurrentModification)
	})
}

func TestUpdateForm(t *testing.T) {
	newTitle := "Coastal cleanup v2"

	t.Run("owner revision clears signatures", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 1)
		f.IsCommex = true

		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)
		m.form.EXPECT().SaveRevision(gomock.Any(), uint(1)).Do(func(rev *form.Form, _ uint) {
			assert.Equal(t, newTitle, rev.Title)
		}).Return(int64(1), nil)
		fresh := facultyForm(approval.FormItinerary, 2)
		fresh.Title = newTitle
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(fresh, nil)

		res, err := m.svc.UpdateForm("itinerary", 7, 12, form.UpdateFormInput{Title: &newTitle})
		require.NoError(t, err)
		assert.Empty(t, res.Status.ApprovedRoles)
		require.NotNil(t, res.Status.NextRole)
		assert.Equal(t, approval.RoleComEx, *res.Status.NextRole)
	})

	t.Run("only the owner", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 0)
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)

		_, err := m.svc.UpdateForm("itinerary", 7, 999, form.UpdateFormInput{Title: &newTitle})
		assert.ErrorIs(t, err, application.ErrNotOwner)
	})

	t.Run("finalized form stays closed", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 2)
		f.IsCommex = true
		f.IsAsd = true
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)

		_, err := m.svc.UpdateForm("itinerary", 7, 12, form.UpdateFormInput{Title: &newTitle})
		assert.ErrorIs(t, err, application.ErrFormFinalized)
	})

	t.Run("revision loses the version race", func(t *testing.T) {
		m := setupFormServiceMocks(t, approval.FlowConfig{})
		f := facultyForm(approval.FormItinerary, 0)
		m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)
		m.form.EXPECT().SaveRevision(gomock.Any(), uint(0)).Return(int64(0), nil)

		_, err := m.svc.UpdateForm("itinerary", 7, 12, form.UpdateFormInput{Title: &newTitle})
		assert.ErrorIs(t, err, approval.ErrConcurrentModification)
	})
}

func TestListInbox(t *testing.T) {
	m := setupFormServiceMocks(t, approval.FlowConfig{})

	pendingCommex := facultyForm(approval.FormItinerary, 0)
	pendingAsd := facultyForm(approval.FormTravelOrder, 1)
	pendingAsd.ID = 8
	pendingAsd.IsCommex = true
	studentPending := studentForm(approval.FormTerminalReport, 0)
	studentPending.ID = 9

	m.form.EXPECT().FindIncomplete().
		Return([]form.Form{*pendingCommex, *pendingAsd, *studentPending}, nil)

	inbox, err := m.svc.ListInbox(approval.RoleASD)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, uint(8), inbox[0].Form.ID)

	// The Dean sees the student report immediately (floating co-signer).
	m.form.EXPECT().FindIncomplete().
		Return([]form.Form{*pendingCommex, *studentPending}, nil)
	inbox, err = m.svc.ListInbox(approval.RoleDean)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, uint(9), inbox[0].Form.ID)
}

func TestGetFormFallsBackToOwnerLookup(t *testing.T) {
	m := setupFormServiceMocks(t, approval.FlowConfig{})

	// Row loaded without its owner preloaded.
	f := &form.Form{ID: 7, FormType: approval.FormItinerary, OwnerID: 12, Version: 0}
	m.form.EXPECT().FindByKey(approval.FormItinerary, uint(7)).Return(f, nil)
	m.user.EXPECT().GetUserByID(uint(12)).
		Return(user.User{UID: 12, RoleCategory: approval.CategoryFaculty}, nil)

	res, err := m.svc.GetForm("itinerary", 7)
	require.NoError(t, err)
	assert.Equal(t, []approval.Role{approval.RoleComEx, approval.RoleASD}, res.Status.RequiredRoles)
}
