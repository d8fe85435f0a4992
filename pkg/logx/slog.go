package logx

import (
	"fmt"
	"log/slog"

	"github.com/lmittmann/tint"
)

// Error renders an error attribute the way the tint handler highlights it.
var Error = tint.Err //nolint:gochecknoglobals

func Stringer(name string, value fmt.Stringer) slog.Attr {
	return slog.String(name, value.String())
}
