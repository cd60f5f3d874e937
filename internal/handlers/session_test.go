package handlers

import (
	"slices"
	"testing"

	"github.com/lodestone-dev/lodestone/internal/models"
)

func TestPermissionsFor(t *testing.T) {
	cases := []struct {
		role     models.Role
		included []string
		excluded []string
	}{
		{
			role:     models.RoleOwner,
			included: []string{"members.changeRole", "members.invite", "audit.view"},
		},
		{
			role:     models.RoleAdmin,
			included: []string{"members.invite", "audit.view"},
			excluded: []string{"members.changeRole"},
		},
		{
			role:     models.RoleMember,
			included: []string{"org.read", "members.list"},
			excluded: []string{"members.invite", "members.remove", "audit.view"},
		},
	}

	for _, tc := range cases {
		perms := permissionsFor(tc.role)

		for _, want := range tc.included {
			if !slices.Contains(perms, want) {
				t.Errorf("%s: missing permission %s", tc.role, want)
			}
		}

		for _, deny := range tc.excluded {
			if slices.Contains(perms, deny) {
				t.Errorf("%s: unexpected permission %s", tc.role, deny)
			}
		}
	}
}

func TestPermissionsForUnknownRole(t *testing.T) {
	perms := permissionsFor(models.Role("SOMETHING"))

	if !slices.Contains(perms, "org.read") {
		t.Error("unknown roles should fall back to read-only permissions")
	}

	if slices.Contains(perms, "members.invite") {
		t.Error("unknown roles must not gain privileged permissions")
	}
}
