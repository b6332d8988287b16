// Package logfields holds canonical slog attribute keys so every package logs
// the same names.
package logfields

import (
	"log/slog"

	"pomodoro/internal/core/model"
)

const (
	KeyMode       = "mode"
	KeyNextMode   = "next_mode"
	KeySessionID  = "session_id"
	KeyDateKey    = "date_key"
	KeyDayCount   = "day_count"
	KeyRemainingS = "remaining_s"
	KeyStore      = "store"
	KeyPath       = "path"
	KeyCapability = "capability"
	KeyError      = "error"
)

func Mode(mode model.Mode) slog.Attr { return slog.String(KeyMode, string(mode)) }
func NextMode(mode model.Mode) slog.Attr { return slog.String(KeyNextMode, string(mode)) }
func SessionID(id string) slog.Attr { return slog.String(KeySessionID, id) }
func DateKey(key string) slog.Attr { return slog.String(KeyDateKey, key) }
func DayCount(count int) slog.Attr { return slog.Int(KeyDayCount, count) }
func RemainingS(seconds int) slog.Attr { return slog.Int(KeyRemainingS, seconds) }
func Store(kind string) slog.Attr { return slog.String(KeyStore, kind) }
func Path(path string) slog.Attr { return slog.String(KeyPath, path) }
func Capability(name string) slog.Attr { return slog.String(KeyCapability, name) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
