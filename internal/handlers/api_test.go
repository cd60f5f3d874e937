package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lodestone-dev/lodestone/db"
	"github.com/lodestone-dev/lodestone/internal/auth"
	"github.com/lodestone-dev/lodestone/internal/authz"
	"github.com/lodestone-dev/lodestone/internal/models"
	"github.com/lodestone-dev/lodestone/internal/router"
)

// setupAPI connects to the database named by TEST_DATABASE_DSN and returns a
// fresh router over empty tables. Tests are skipped when no test database is
// configured.
func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")

	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping database-backed tests")
	}

	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "handler-test-secret")
	t.Setenv("SIGNUP_RATE", "1000-S")
	t.Setenv("CONTACT_RATE", "1000-S")
	t.Setenv("API_RATE", "1000-S")

	if err := auth.InitJWTSecret(); err != nil {
		t.Fatalf("InitJWTSecret: %v", err)
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		t.Fatalf("ConnectDatabase: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("MigrateDatabase: %v", err)
	}

	err := db.DB.Exec(`TRUNCATE audit_logs, memberships, organizations, users,
		contact_forms, contents, media, system_logs RESTART IDENTITY CASCADE`).Error

	if err != nil {
		t.Fatalf("truncating tables: %v", err)
	}

	return router.NewRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer

	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)

	return recorder
}

// signupUser registers a user through the API and returns their token plus
// the created user and org IDs.
func signupUser(t *testing.T, r *gin.Engine, email string) (string, uint, uint) {
	t.Helper()

	resp := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"email":    email,
		"password": "Aa1aaaaa",
	}, "", nil)

	if resp.Code != http.StatusCreated {
		t.Fatalf("signup for %s: expected 201, got %d: %s", email, resp.Code, resp.Body.String())
	}

	var user models.User

	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		t.Fatalf("fetching signed-up user: %v", err)
	}

	var membership models.Membership

	if err := db.DB.Where("user_id = ?", user.ID).First(&membership).Error; err != nil {
		t.Fatalf("fetching signup membership: %v", err)
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	return token, user.ID, membership.OrgID
}

func TestSignupCreatesOwnerMembership(t *testing.T) {
	r := setupAPI(t)

	_, userID, orgID := signupUser(t, r, "a@x.com")

	var userCount, orgCount, memberCount int64

	db.DB.Model(&models.User{}).Count(&userCount)
	db.DB.Model(&models.Organization{}).Count(&orgCount)
	db.DB.Model(&models.Membership{}).Count(&memberCount)

	if userCount != 1 || orgCount != 1 || memberCount != 1 {
		t.Errorf("expected exactly one user/org/membership, got %d/%d/%d", userCount, orgCount, memberCount)
	}

	var membership models.Membership

	if err := db.DB.Where("user_id = ? AND org_id = ?", userID, orgID).First(&membership).Error; err != nil {
		t.Fatalf("fetching membership: %v", err)
	}

	if membership.Role != models.RoleOwner || membership.Status != models.StatusActive {
		t.Errorf("expected ACTIVE OWNER, got %s %s", membership.Status, membership.Role)
	}

	// Duplicate email is a conflict and must not create anything.
	resp := doJSON(t, r, http.MethodPost, "/api/auth/signup", gin.H{
		"email":    "a@x.com",
		"password": "Aa1aaaaa",
	}, "", nil)

	if resp.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate signup, got %d", resp.Code)
	}

	db.DB.Model(&models.User{}).Count(&userCount)

	if userCount != 1 {
		t.Errorf("duplicate signup created a user, count %d", userCount)
	}
}

func TestSignupValidation(t *testing.T) {
	r := setupAPI(t)

	for name, body := range map[string]gin.H{
		"missing password": {"email": "b@x.com"},
		"short password":   {"email": "b@x.com", "password": "Aa1"},
		"no digit":         {"email": "b@x.com", "password": "Aaaaaaaa"},
		"bad email":        {"email": "not-an-email", "password": "Aa1aaaaa"},
	} {
		resp := doJSON(t, r, http.MethodPost, "/api/auth/signup", body, "", nil)

		if resp.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, resp.Code)
		}
	}
}

func TestInviteConflicts(t *testing.T) {
	r := setupAPI(t)

	ownerToken, _, _ := signupUser(t, r, "owner@x.com")

	resp := doJSON(t, r, http.MethodPost, "/api/orgs/members/invite", gin.H{
		"email": "invitee@x.com",
	}, ownerToken, nil)

	if resp.Code != http.StatusCreated {
		t.Fatalf("first invite: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var membership models.Membership

	err := db.DB.Joins("User").Where(`"User".email = ?`, "invitee@x.com").First(&membership).Error

	if err != nil {
		t.Fatalf("fetching invited membership: %v", err)
	}

	if membership.Status != models.StatusPending || membership.Role != models.RoleMember {
		t.Errorf("expected PENDING MEMBER, got %s %s", membership.Status, membership.Role)
	}

	// Re-inviting while PENDING is a conflict, twice over, with no new row.
	for i := 0; i < 2; i++ {
		resp := doJSON(t, r, http.MethodPost, "/api/orgs/members/invite", gin.H{
			"email": "invitee@x.com",
		}, ownerToken, nil)

		if resp.Code != http.StatusConflict {
			t.Errorf("repeat invite %d: expected 409, got %d", i+1, resp.Code)
		}
	}

	var count int64

	db.DB.Model(&models.Membership{}).Where("user_id = ?", membership.UserID).Count(&count)

	if count != 1 {
		t.Errorf("expected one membership row for invitee, got %d", count)
	}

	// Inviting as OWNER is not a grantable role.
	resp = doJSON(t, r, http.MethodPost, "/api/orgs/members/invite", gin.H{
		"email": "second@x.com",
		"role":  "OWNER",
	}, ownerToken, nil)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for OWNER invite, got %d", resp.Code)
	}
}

func TestInviteActiveMemberConflict(t *testing.T) {
	r := setupAPI(t)

	ownerToken, _, orgID := signupUser(t, r, "owner@x.com")
	_, memberID, _ := signupUser(t, r, "member@x.com")

	err := db.DB.Create(&models.Membership{
		UserID: memberID,
		OrgID:  orgID,
		Role:   models.RoleMember,
		Status: models.StatusActive,
	}).Error

	if err != nil {
		t.Fatalf("creating member membership: %v", err)
	}

	headers := map[string]string{"X-Org-Id": fmt.Sprint(orgID)}

	resp := doJSON(t, r, http.MethodPost, "/api/orgs/members/invite", gin.H{
		"email": "member@x.com",
	}, ownerToken, headers)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 inviting an active member, got %d: %s", resp.Code, resp.Body.String())
	}

	if !strings.Contains(resp.Body.String(), "already_active_member") {
		t.Errorf("expected already_active_member in body, got %s", resp.Body.String())
	}

	var count int64

	db.DB.Model(&models.Membership{}).
		Where("user_id = ? AND org_id = ?", memberID, orgID).
		Count(&count)

	if count != 1 {
		t.Errorf("expected the single existing membership row, got %d", count)
	}
}

func TestRemoveMember(t *testing.T) {
	r := setupAPI(t)

	ownerToken, _, orgID := signupUser(t, r, "owner@x.com")
	_, memberID, _ := signupUser(t, r, "member@x.com")

	err := db.DB.Create(&models.Membership{
		UserID: memberID,
		OrgID:  orgID,
		Role:   models.RoleMember,
		Status: models.StatusActive,
	}).Error

	if err != nil {
		t.Fatalf("creating member membership: %v", err)
	}

	headers := map[string]string{"X-Org-Id": fmt.Sprint(orgID)}

	resp := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/orgs/members/%d", memberID), nil, ownerToken, headers)

	if resp.Code != http.StatusOK {
		t.Fatalf("removing member: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// Hard delete: no row survives, not even soft-deleted.
	var count int64

	db.DB.Unscoped().Model(&models.Membership{}).
		Where("user_id = ? AND org_id = ?", memberID, orgID).
		Count(&count)

	if count != 0 {
		t.Errorf("expected membership row gone, found %d", count)
	}

	var entries []models.AuditLog

	err = db.DB.Where("org_id = ? AND action = ?", orgID, "MEMBERS_DELETE").Find(&entries).Error

	if err != nil {
		t.Fatalf("fetching audit entries: %v", err)
	}

	if len(entries) != 1 {
		t.Errorf("expected exactly one MEMBERS_DELETE entry, got %d", len(entries))
	}
}

func TestSelfUpdateAsMember(t *testing.T) {
	r := setupAPI(t)

	_, ownerID, orgID := signupUser(t, r, "owner@x.com")
	memberToken, memberID, _ := signupUser(t, r, "member@x.com")

	err := db.DB.Create(&models.Membership{
		UserID: memberID,
		OrgID:  orgID,
		Role:   models.RoleMember,
		Status: models.StatusActive,
	}).Error

	if err != nil {
		t.Fatalf("creating member membership: %v", err)
	}

	headers := map[string]string{"X-Org-Id": fmt.Sprint(orgID)}

	// A plain MEMBER may always update themself.
	resp := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/users/%d", memberID), gin.H{
		"name": "Renamed",
	}, memberToken, headers)

	if resp.Code != http.StatusOK {
		t.Fatalf("self update: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var user models.User

	if err := db.DB.First(&user, memberID).Error; err != nil {
		t.Fatalf("fetching updated user: %v", err)
	}

	if user.Name == nil || *user.Name != "Renamed" {
		t.Error("expected name to be updated")
	}

	// The same MEMBER may not touch anyone else.
	resp = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/users/%d", ownerID), gin.H{
		"name": "Hijacked",
	}, memberToken, headers)

	if resp.Code != http.StatusForbidden {
		t.Errorf("expected 403 updating another user as MEMBER, got %d", resp.Code)
	}
}

func TestInviteRequiresPrivilegedRole(t *testing.T) {
	r := setupAPI(t)

	ownerToken, _, orgID := signupUser(t, r, "owner@x.com")
	memberToken, memberID, _ := signupUser(t, r, "member@x.com")

	// Move the second user into the first org as a plain ACTIVE MEMBER.
	err := db.DB.Create(&models.Membership{
		UserID: memberID,
		OrgID:  orgID,
		Role:   models.RoleMember,
		Status: models.StatusActive,
	}).Error

	if err != nil {
		t.Fatalf("creating member membership: %v", err)
	}

	headers := map[string]string{"X-Org-Id": fmt.Sprint(orgID)}

	resp := doJSON(t, r, http.MethodPost, "/api/orgs/members/invite", gin.H{
		"email": "x@x.com",
	}, memberToken, headers)

	if resp.Code != http.StatusForbidden {
		t.Errorf("expected 403 for MEMBER inviting, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodPost, "/api/orgs/members/invite", gin.H{
		"email": "x@x.com",
	}, ownerToken, headers)

	if resp.Code != http.StatusCreated {
		t.Errorf("expected 201 for OWNER inviting, got %d", resp.Code)
	}
}

func TestLastOwnerProtection(t *testing.T) {
	r := setupAPI(t)

	ownerToken, ownerID, orgID := signupUser(t, r, "u1@x.com")
	adminToken, adminID, _ := signupUser(t, r, "u2@x.com")

	err := db.DB.Create(&models.Membership{
		UserID: adminID,
		OrgID:  orgID,
		Role:   models.RoleAdmin,
		Status: models.StatusActive,
	}).Error

	if err != nil {
		t.Fatalf("creating admin membership: %v", err)
	}

	headers := map[string]string{"X-Org-Id": fmt.Sprint(orgID)}

	// The sole ACTIVE OWNER cannot be removed, even by an ADMIN.
	resp := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/orgs/members/%d", ownerID), nil, adminToken, headers)

	if resp.Code != http.StatusConflict {
		t.Errorf("expected 409 removing last owner, got %d: %s", resp.Code, resp.Body.String())
	}

	// The guard itself: rejects for the sole owner, no-ops for others.
	if err := authz.EnsureOwnerIsNotLast(db.DB, orgID, ownerID); err != authz.ErrLastOwner {
		t.Errorf("expected ErrLastOwner for sole owner, got %v", err)
	}

	if err := authz.EnsureOwnerIsNotLast(db.DB, orgID, adminID); err != nil {
		t.Errorf("expected no-op for non-owner target, got %v", err)
	}

	// Promote the admin to OWNER, then demoting the original owner is safe.
	resp = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orgs/members/%d/role", adminID), gin.H{
		"role": "OWNER",
	}, ownerToken, headers)

	if resp.Code != http.StatusOK {
		t.Fatalf("promoting admin: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orgs/members/%d/role", ownerID), gin.H{
		"role": "MEMBER",
	}, adminToken, headers)

	if resp.Code != http.StatusOK {
		t.Errorf("demoting with two owners: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var owners int64

	db.DB.Model(&models.Membership{}).
		Where("org_id = ? AND role = ? AND status = ?", orgID, models.RoleOwner, models.StatusActive).
		Count(&owners)

	if owners != 1 {
		t.Errorf("expected one remaining owner, got %d", owners)
	}
}

func TestRoleChangeGuards(t *testing.T) {
	r := setupAPI(t)

	ownerToken, ownerID, orgID := signupUser(t, r, "u1@x.com")
	_, otherID, _ := signupUser(t, r, "u2@x.com")

	err := db.DB.Create(&models.Membership{
		UserID: otherID,
		OrgID:  orgID,
		Role:   models.RoleAdmin,
		Status: models.StatusActive,
	}).Error

	if err != nil {
		t.Fatalf("creating admin membership: %v", err)
	}

	headers := map[string]string{"X-Org-Id": fmt.Sprint(orgID)}

	// Changing your own role is rejected outright.
	resp := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orgs/members/%d/role", ownerID), gin.H{
		"role": "MEMBER",
	}, ownerToken, headers)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for self role change, got %d", resp.Code)
	}

	// Unknown roles are rejected at the boundary.
	resp = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orgs/members/%d/role", otherID), gin.H{
		"role": "SUPERADMIN",
	}, ownerToken, headers)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid role, got %d", resp.Code)
	}

	// No-op role changes are conflicts.
	resp = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orgs/members/%d/role", otherID), gin.H{
		"role": "ADMIN",
	}, ownerToken, headers)

	if resp.Code != http.StatusConflict {
		t.Errorf("expected 409 for same-role change, got %d", resp.Code)
	}

	// Absent members are not found.
	resp = doJSON(t, r, http.MethodPatch, "/api/orgs/members/99999/role", gin.H{
		"role": "MEMBER",
	}, ownerToken, headers)

	if resp.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown member, got %d", resp.Code)
	}
}

func TestAuditTrail(t *testing.T) {
	r := setupAPI(t)

	ownerToken, _, orgID := signupUser(t, r, "u1@x.com")
	_, otherID, _ := signupUser(t, r, "u2@x.com")

	err := db.DB.Create(&models.Membership{
		UserID: otherID,
		OrgID:  orgID,
		Role:   models.RoleAdmin,
		Status: models.StatusActive,
	}).Error

	if err != nil {
		t.Fatalf("creating admin membership: %v", err)
	}

	headers := map[string]string{"X-Org-Id": fmt.Sprint(orgID)}

	resp := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orgs/members/%d/role", otherID), gin.H{
		"role": "MEMBER",
	}, ownerToken, headers)

	if resp.Code != http.StatusOK {
		t.Fatalf("role change: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var entries []models.AuditLog

	err = db.DB.Where("org_id = ? AND action = ?", orgID, "MEMBERS_ROLE_CHANGE").Find(&entries).Error

	if err != nil {
		t.Fatalf("fetching audit entries: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected exactly one MEMBERS_ROLE_CHANGE entry, got %d", len(entries))
	}

	entry := entries[0]

	if entry.ActorID == nil {
		t.Fatal("expected actor on audit entry")
	}

	var before, after map[string]interface{}

	if err := json.Unmarshal(entry.Before, &before); err != nil {
		t.Fatalf("decoding before snapshot: %v", err)
	}

	if err := json.Unmarshal(entry.After, &after); err != nil {
		t.Fatalf("decoding after snapshot: %v", err)
	}

	if before["role"] != "ADMIN" || after["role"] != "MEMBER" {
		t.Errorf("expected ADMIN -> MEMBER snapshots, got %v -> %v", before["role"], after["role"])
	}

	// The audit list is org-scoped and privileged.
	resp = doJSON(t, r, http.MethodGet, "/api/audit", nil, ownerToken, headers)

	if resp.Code != http.StatusOK {
		t.Errorf("audit list: expected 200, got %d", resp.Code)
	}
}

func TestAuditListForbiddenForMembers(t *testing.T) {
	r := setupAPI(t)

	_, _, orgID := signupUser(t, r, "owner@x.com")
	memberToken, memberID, _ := signupUser(t, r, "member@x.com")

	err := db.DB.Create(&models.Membership{
		UserID: memberID,
		OrgID:  orgID,
		Role:   models.RoleMember,
		Status: models.StatusActive,
	}).Error

	if err != nil {
		t.Fatalf("creating member membership: %v", err)
	}

	headers := map[string]string{"X-Org-Id": fmt.Sprint(orgID)}

	resp := doJSON(t, r, http.MethodGet, "/api/audit", nil, memberToken, headers)

	if resp.Code != http.StatusForbidden {
		t.Errorf("expected 403 for MEMBER reading audit log, got %d", resp.Code)
	}
}

func TestOrgSwitch(t *testing.T) {
	r := setupAPI(t)

	token, _, firstOrg := signupUser(t, r, "u@x.com")

	// Switching to an org without membership is forbidden.
	resp := doJSON(t, r, http.MethodPatch, "/api/session/org", gin.H{"org_id": firstOrg + 100}, token, nil)

	if resp.Code != http.StatusForbidden {
		t.Errorf("expected 403 switching to foreign org, got %d", resp.Code)
	}

	// Create a second org; the caller becomes its OWNER and can switch.
	resp = doJSON(t, r, http.MethodPost, "/api/orgs", gin.H{"name": "Second Org"}, token, nil)

	if resp.Code != http.StatusCreated {
		t.Fatalf("creating org: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ID uint `json:"id"`
	}

	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding created org: %v", err)
	}

	resp = doJSON(t, r, http.MethodPatch, "/api/session/org", gin.H{"org_id": created.ID}, token, nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("switching org: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var user models.User

	if err := db.DB.Where("email = ?", "u@x.com").First(&user).Error; err != nil {
		t.Fatalf("fetching user: %v", err)
	}

	if user.CurrentOrgID == nil || *user.CurrentOrgID != created.ID {
		t.Error("expected current org to be updated")
	}

	// Without an override header, resolution now follows the stored org.
	resp = doJSON(t, r, http.MethodGet, "/api/session/org", nil, token, nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("session summary: expected 200, got %d", resp.Code)
	}

	var summary struct {
		OrgID uint   `json:"org_id"`
		Role  string `json:"role"`
	}

	if err := json.Unmarshal(resp.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decoding session summary: %v", err)
	}

	if summary.OrgID != created.ID || summary.Role != "OWNER" {
		t.Errorf("expected OWNER of org %d, got %s of org %d", created.ID, summary.Role, summary.OrgID)
	}
}

func TestContactIntake(t *testing.T) {
	r := setupAPI(t)

	resp := doJSON(t, r, http.MethodPost, "/api/contact", gin.H{
		"name":    "Visitor",
		"email":   "visitor@x.com",
		"service": "consulting",
		"message": "I would like to talk about a project.",
	}, "", nil)

	if resp.Code != http.StatusCreated {
		t.Fatalf("contact intake: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var contact models.ContactForm

	if err := db.DB.Where("email = ?", "visitor@x.com").First(&contact).Error; err != nil {
		t.Fatalf("fetching contact form: %v", err)
	}

	if contact.Status != models.ContactNew {
		t.Errorf("expected NEW status, got %s", contact.Status)
	}

	resp = doJSON(t, r, http.MethodPost, "/api/contact", gin.H{
		"name":    "Visitor",
		"email":   "not-an-email",
		"service": "consulting",
		"message": "too short?",
	}, "", nil)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid email, got %d", resp.Code)
	}
}

func TestContentLifecycle(t *testing.T) {
	r := setupAPI(t)

	token, _, _ := signupUser(t, r, "editor@x.com")

	body := gin.H{"key": "home.hero", "title": "Hero", "content": "Welcome", "locale": "en"}

	resp := doJSON(t, r, http.MethodPost, "/api/content", body, token, nil)

	if resp.Code != http.StatusCreated {
		t.Fatalf("creating content: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, r, http.MethodPost, "/api/content", body, token, nil)

	if resp.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate key+locale, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodGet, "/api/content?key=home.hero&locale=en", nil, token, nil)

	if resp.Code != http.StatusOK {
		t.Errorf("fetching content: expected 200, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodPut, "/api/content?key=home.hero&locale=en", gin.H{"title": "New Hero"}, token, nil)

	if resp.Code != http.StatusOK {
		t.Errorf("updating content: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, r, http.MethodDelete, "/api/content?key=home.hero&locale=en", nil, token, nil)

	if resp.Code != http.StatusOK {
		t.Errorf("deleting content: expected 200, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodGet, "/api/content?key=home.hero&locale=en", nil, token, nil)

	if resp.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.Code)
	}
}
