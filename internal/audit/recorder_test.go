package audit

import "testing"

func TestRecordRequiresOrg(t *testing.T) {
	_, err := Record(nil, Entry{Action: "ORG_CREATE"})

	if err != ErrOrgRequired {
		t.Errorf("expected ErrOrgRequired, got %v", err)
	}
}

func TestRecordRequiresAction(t *testing.T) {
	_, err := Record(nil, Entry{OrgID: 1})

	if err == nil {
		t.Error("expected error for entry without an action")
	}
}

func TestSnapshotEncodesVerbatim(t *testing.T) {
	raw, err := snapshot(map[string]interface{}{"role": "OWNER"})

	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if string(raw) != `{"role":"OWNER"}` {
		t.Errorf("unexpected snapshot %s", raw)
	}

	raw, err = snapshot(nil)

	if err != nil {
		t.Fatalf("snapshot(nil): %v", err)
	}

	if raw != nil {
		t.Errorf("expected nil snapshot, got %s", raw)
	}
}
