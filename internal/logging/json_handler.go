package logging

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// newJSONHandler writes one object per record with short keys. Durations
// become fractional milliseconds under a "_ms" suffixed key so per-frame and
// whole-run timings can be compared without parsing Go duration strings.
func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) == 0 {
				switch attr.Key {
				case slog.TimeKey:
					attr.Key = "ts"
					if attr.Value.Kind() == slog.KindTime {
						attr.Value = slog.StringValue(formatFileTimestamp(attr.Value.Time()))
					}
					return attr
				case slog.LevelKey:
					attr.Key = "level"
					attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
					return attr
				case slog.MessageKey:
					attr.Key = "msg"
					return attr
				case slog.SourceKey:
					if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
						attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
					}
					return attr
				}
			}
			if attr.Value.Kind() == slog.KindDuration {
				attr.Key += "_ms"
				attr.Value = slog.Float64Value(durationMillis(attr.Value.Duration()))
			}
			return attr
		},
	}

	return slog.NewJSONHandler(w, &opts)
}
