package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comexhub/comex-go/internal/approval"
)

// TestFacultyItineraryFlow walks a two-step form through its full life:
// submission, the ordered ComEx then ASD sign-offs, and the error
// responses on out-of-turn and duplicate decisions.
func TestFacultyItineraryFlow(t *testing.T) {
	faculty := setupAccount(t, "prof_reyes", "faculty", "")
	commex := setupAccount(t, "commex_itin", "", approval.RoleComEx)
	asd := setupAccount(t, "asd_itin", "", approval.RoleASD)

	eventID := createEvent(t, faculty.Token, "Tree planting drive")
	detail := submitForm(t, faculty.Token, eventID, "itinerary", "Route to the upland sitio")

	require.Equal(t, []string{"commex", "asd"}, detail.Status.RequiredRoles)
	require.NotNil(t, detail.Status.NextRole)
	assert.Equal(t, "commex", *detail.Status.NextRole)

	base := fmt.Sprintf("/forms/itinerary/%d", detail.Form.ID)

	t.Run("ASD cannot act before ComEx", func(t *testing.T) {
		doRequest(t, "PUT", base+"/approve", asd.Token, nil, http.StatusForbidden)
	})

	t.Run("submitter cannot approve at all", func(t *testing.T) {
		doRequest(t, "PUT", base+"/approve", faculty.Token, nil, http.StatusForbidden)
	})

	t.Run("ComEx approves first", func(t *testing.T) {
		w := doRequest(t, "PUT", base+"/approve", commex.Token, nil, http.StatusOK)
		var res formDetail
		decodeBody(t, w, &res)
		assert.Equal(t, []string{"commex"}, res.Status.ApprovedRoles)
		require.NotNil(t, res.Status.NextRole)
		assert.Equal(t, "asd", *res.Status.NextRole)
		assert.False(t, res.Status.IsComplete)
	})

	t.Run("duplicate ComEx approve conflicts", func(t *testing.T) {
		doRequest(t, "PUT", base+"/approve", commex.Token, nil, http.StatusConflict)
	})

	t.Run("ASD completes the form", func(t *testing.T) {
		w := doRequest(t, "PUT", base+"/approve", asd.Token, nil, http.StatusOK)
		var res formDetail
		decodeBody(t, w, &res)
		assert.True(t, res.Status.IsComplete)
		assert.Nil(t, res.Status.NextRole)
	})

	t.Run("completed form accepts no more decisions", func(t *testing.T) {
		doRequest(t, "PUT", base+"/approve", asd.Token, nil, http.StatusConflict)
	})

	t.Run("owner cannot revise a finalized form", func(t *testing.T) {
		newTitle := "Changed route"
		doRequest(t, "PUT", base, faculty.Token, map[string]interface{}{"title": newTitle}, http.StatusConflict)
	})
}

// TestStudentTerminalReportFlow exercises the full chain with the Dean
// as a floating co-signer on a student submission.
func TestStudentTerminalReportFlow(t *testing.T) {
	student := setupAccount(t, "stud_cruz", "student", "")
	commex := setupAccount(t, "commex_term", "", approval.RoleComEx)
	asd := setupAccount(t, "asd_term", "", approval.RoleASD)
	ad := setupAccount(t, "ad_term", "", approval.RoleAD)
	dean := setupAccount(t, "dean_term", "", approval.RoleDean)

	eventID := createEvent(t, student.Token, "Literacy caravan")
	detail := submitForm(t, student.Token, eventID, "terminal_report", "Caravan terminal report")

	require.Equal(t, []string{"commex", "asd", "ad", "dean"}, detail.Status.RequiredRoles)
	base := fmt.Sprintf("/forms/terminal_report/%d", detail.Form.ID)

	t.Run("Dean may sign before the chain starts", func(t *testing.T) {
		w := doRequest(t, "PUT", base+"/approve", dean.Token, nil, http.StatusOK)
		var res formDetail
		decodeBody(t, w, &res)
		assert.Contains(t, res.Status.ApprovedRoles, "dean")
		require.NotNil(t, res.Status.NextRole)
		assert.Equal(t, "commex", *res.Status.NextRole)
	})

	t.Run("ASD still waits for ComEx", func(t *testing.T) {
		doRequest(t, "PUT", base+"/approve", asd.Token, nil, http.StatusForbidden)
	})

	t.Run("chain runs in order after the Dean", func(t *testing.T) {
		doRequest(t, "PUT", base+"/approve", commex.Token, nil, http.StatusOK)
		doRequest(t, "PUT", base+"/approve", asd.Token, nil, http.StatusOK)
		w := doRequest(t, "PUT", base+"/approve", ad.Token, nil, http.StatusOK)

		var res formDetail
		decodeBody(t, w, &res)
		assert.True(t, res.Status.IsComplete)
	})
}

// TestRejectFlow verifies the remark requirement, that prior approvals
// survive a rejection, and that the owner's revision reopens the form.
func TestRejectFlow(t *testing.T) {
	faculty := setupAccount(t, "prof_santos", "faculty", "")
	commex := setupAccount(t, "commex_rej", "", approval.RoleComEx)
	asd := setupAccount(t, "asd_rej", "", approval.RoleASD)

	eventID := createEvent(t, faculty.Token, "Health mission")
	detail := submitForm(t, faculty.Token, eventID, "travel_order", "Travel to the island barangay")
	base := fmt.Sprintf("/forms/travel_order/%d", detail.Form.ID)

	doRequest(t, "PUT", base+"/approve", commex.Token, nil, http.StatusOK)

	t.Run("reject without a remark fails", func(t *testing.T) {
		doRequest(t, "PUT", base+"/reject", asd.Token, map[string]string{"remark": ""}, http.StatusBadRequest)
		doRequest(t, "PUT", base+"/reject", asd.Token, map[string]string{"remark": "   "}, http.StatusBadRequest)
	})

	t.Run("reject keeps earlier approvals", func(t *testing.T) {
		w := doRequest(t, "PUT", base+"/reject", asd.Token,
			map[string]string{"remark": "Attach the vehicle request."}, http.StatusOK)
		var res formDetail
		decodeBody(t, w, &res)
		assert.Equal(t, []string{"commex"}, res.Status.ApprovedRoles)
		assert.False(t, res.Status.IsComplete)
	})

	t.Run("remark is recorded against the form", func(t *testing.T) {
		w := doRequest(t, "GET", base+"/remarks", faculty.Token, nil, http.StatusOK)
		var entries []struct {
			FormType string `json:"form_type"`
			FormID   uint   `json:"form_id"`
			Role     string `json:"role"`
			Remark   string `json:"remark"`
		}
		decodeBody(t, w, &entries)
		require.Len(t, entries, 1)
		assert.Equal(t, "travel_order", entries[0].FormType)
		assert.Equal(t, detail.Form.ID, entries[0].FormID)
		assert.Equal(t, "asd", entries[0].Role)
		assert.Equal(t, "Attach the vehicle request.", entries[0].Remark)
	})

	t.Run("owner revision clears the collected signature", func(t *testing.T) {
		newTitle := "Travel to the island barangay (rev 2)"
		w := doRequest(t, "PUT", base, faculty.Token,
			map[string]interface{}{"title": newTitle}, http.StatusOK)
		var res formDetail
		decodeBody(t, w, &res)
		assert.Equal(t, newTitle, res.Form.Title)
		assert.Empty(t, res.Status.ApprovedRoles)
		require.NotNil(t, res.Status.NextRole)
		assert.Equal(t, "commex", *res.Status.NextRole)
	})

	t.Run("ComEx signs the revision again", func(t *testing.T) {
		doRequest(t, "PUT", base+"/approve", commex.Token, nil, http.StatusOK)
	})
}

// TestSingleStepForm covers the ComEx-only sequence.
func TestSingleStepForm(t *testing.T) {
	org := setupAccount(t, "org_ccso", "organization", "")
	commex := setupAccount(t, "commex_single", "", approval.RoleComEx)

	eventID := createEvent(t, org.Token, "Coastal cleanup")
	detail := submitForm(t, org.Token, eventID, "consent_letter", "Parental consent letter")

	require.Equal(t, []string{"commex"}, detail.Status.RequiredRoles)
	base := fmt.Sprintf("/forms/consent_letter/%d", detail.Form.ID)

	w := doRequest(t, "PUT", base+"/approve", commex.Token, nil, http.StatusOK)
	var res formDetail
	decodeBody(t, w, &res)
	assert.True(t, res.Status.IsComplete)
}

// TestInbox verifies the reviewer work queue only lists actionable forms.
func TestInbox(t *testing.T) {
	faculty := setupAccount(t, "prof_inbox", "faculty", "")
	commex := setupAccount(t, "commex_inbox", "", approval.RoleComEx)
	asd := setupAccount(t, "asd_inbox", "", approval.RoleASD)

	eventID := createEvent(t, faculty.Token, "Feeding program")
	detail := submitForm(t, faculty.Token, eventID, "meeting_minutes", "Kickoff minutes")
	base := fmt.Sprintf("/forms/meeting_minutes/%d", detail.Form.ID)

	t.Run("pending form shows for ComEx, not ASD", func(t *testing.T) {
		w := doRequest(t, "GET", "/forms/inbox", commex.Token, nil, http.StatusOK)
		var inbox []formDetail
		decodeBody(t, w, &inbox)
		assert.True(t, inboxContains(inbox, detail.Form.ID))

		w = doRequest(t, "GET", "/forms/inbox", asd.Token, nil, http.StatusOK)
		decodeBody(t, w, &inbox)
		assert.False(t, inboxContains(inbox, detail.Form.ID))
	})

	t.Run("inbox is reviewer-only", func(t *testing.T) {
		doRequest(t, "GET", "/forms/inbox", faculty.Token, nil, http.StatusForbidden)
	})

	t.Run("form moves to the ASD queue after ComEx signs", func(t *testing.T) {
		doRequest(t, "PUT", base+"/approve", commex.Token, nil, http.StatusOK)

		w := doRequest(t, "GET", "/forms/inbox", asd.Token, nil, http.StatusOK)
		var inbox []formDetail
		decodeBody(t, w, &inbox)
		assert.True(t, inboxContains(inbox, detail.Form.ID))

		w = doRequest(t, "GET", "/forms/inbox", commex.Token, nil, http.StatusOK)
		decodeBody(t, w, &inbox)
		assert.False(t, inboxContains(inbox, detail.Form.ID))
	})
}

func TestUnknownFormType(t *testing.T) {
	faculty := setupAccount(t, "prof_unknown", "faculty", "")
	eventID := createEvent(t, faculty.Token, "Unknown form event")

	doRequest(t, "POST", "/forms", faculty.Token, map[string]interface{}{
		"form_type": "budget_request",
		"event_id":  eventID,
		"title":     "not a real kind",
	}, http.StatusBadRequest)

	doRequest(t, "GET", "/forms/budget_request/1", faculty.Token, nil, http.StatusBadRequest)
}

func inboxContains(inbox []formDetail, id uint) bool {
	for _, d := range inbox {
		if d.Form.ID == id {
			return true
		}
	}
	return false
}
