package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"pomodoro/internal/core/model"
)

// TestHelperKeyNames guards the attribute names log queries depend on.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Mode", KeyMode, "focus", Mode(model.ModeFocus)},
		{"NextMode", KeyNextMode, "long", NextMode(model.ModeLongBreak)},
		{"SessionID", KeySessionID, "abc", SessionID("abc")},
		{"DateKey", KeyDateKey, "2026-01-01", DateKey("2026-01-01")},
		{"DayCount", KeyDayCount, "3", DayCount(3)},
		{"RemainingS", KeyRemainingS, "42", RemainingS(42)},
		{"Store", KeyStore, "sqlite", Store("sqlite")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Capability", KeyCapability, "sound", Capability("sound")},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}
