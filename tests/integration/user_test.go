package integration

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	registerUser(t, "alice_int", "123456", "student")

	t.Run("duplicate username conflicts", func(t *testing.T) {
		w := doRequest(t, "POST", "/register", "", map[string]string{
			"username": "alice_int",
			"password": "654321",
		}, http.StatusConflict)
		assert.Contains(t, w.Body.String(), "taken")
	})

	t.Run("login returns the profile and a token", func(t *testing.T) {
		res := login(t, "alice_int", "123456")
		assert.Equal(t, "alice_int", res.Username)
		assert.Equal(t, "student", res.RoleCategory)
		assert.Empty(t, res.ReviewerRole)
		assert.False(t, res.IsAdmin)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		doRequest(t, "POST", "/login", "", map[string]string{
			"username": "alice_int",
			"password": "wrong",
		}, http.StatusUnauthorized)
	})

	t.Run("auth status reflects the token", func(t *testing.T) {
		res := login(t, "alice_int", "123456")
		doRequest(t, "GET", "/auth/status", res.Token, nil, http.StatusOK)
		doRequest(t, "GET", "/auth/status", "", nil, http.StatusUnauthorized)
	})
}

func TestAssignReviewerRole(t *testing.T) {
	registerUser(t, "admin_int", "123456", "")
	promoteAdmin(t, "admin_int")
	admin := login(t, "admin_int", "123456")

	registerUser(t, "newdean_int", "123456", "faculty")
	dean := login(t, "newdean_int", "123456")

	t.Run("non-admin may not assign", func(t *testing.T) {
		doRequest(t, "PUT", userPath(dean.UID)+"/reviewer-role", dean.Token,
			map[string]string{"reviewer_role": "dean"}, http.StatusForbidden)
	})

	t.Run("admin assigns a reviewer office", func(t *testing.T) {
		w := doRequest(t, "PUT", userPath(dean.UID)+"/reviewer-role", admin.Token,
			map[string]string{"reviewer_role": "dean"}, http.StatusOK)
		assert.Contains(t, w.Body.String(), `"reviewer_role":"dean"`)
	})

	t.Run("unknown office is rejected", func(t *testing.T) {
		doRequest(t, "PUT", userPath(dean.UID)+"/reviewer-role", admin.Token,
			map[string]string{"reviewer_role": "registrar"}, http.StatusBadRequest)
	})

	t.Run("fresh login carries the new role", func(t *testing.T) {
		res := login(t, "newdean_int", "123456")
		require.Equal(t, "dean", res.ReviewerRole)
	})

	t.Run("user listing is admin-only", func(t *testing.T) {
		doRequest(t, "GET", "/users", dean.Token, nil, http.StatusForbidden)
		doRequest(t, "GET", "/users", admin.Token, nil, http.StatusOK)
	})

	t.Run("paged listing", func(t *testing.T) {
		w := doRequest(t, "GET", "/users?page=1&limit=1", admin.Token, nil, http.StatusOK)
		var users []struct {
			Username string `json:"username"`
		}
		decodeBody(t, w, &users)
		assert.Len(t, users, 1)

		doRequest(t, "GET", "/users?page=zero&limit=1", admin.Token, nil, http.StatusBadRequest)
		doRequest(t, "GET", "/users?page=0", admin.Token, nil, http.StatusBadRequest)
	})
}

func TestAuditTrail(t *testing.T) {
	registerUser(t, "admin_audit", "123456", "")
	promoteAdmin(t, "admin_audit")
	admin := login(t, "admin_audit", "123456")

	faculty := setupAccount(t, "prof_audit", "faculty", "")
	eventID := createEvent(t, faculty.Token, "Audited event")
	submitForm(t, faculty.Token, eventID, "waiver_form", "Waiver for volunteers")

	t.Run("audit log is admin-only", func(t *testing.T) {
		doRequest(t, "GET", "/audit/logs", faculty.Token, nil, http.StatusForbidden)
	})

	t.Run("admin reads the trail", func(t *testing.T) {
		// Audit entries are written asynchronously.
		require.Eventually(t, func() bool {
			w := doRequest(t, "GET", "/audit/logs?resource_type=form", admin.Token, nil, http.StatusOK)
			return strings.Contains(w.Body.String(), "waiver_form")
		}, 5*time.Second, 100*time.Millisecond)
	})
}

func userPath(id uint) string {
	return "/users/" + strconv.FormatUint(uint64(id), 10)
}
