/* logger.go
 * Contains NewLogger, which builds the slog logger shared by the api, web and bot packages
 * Authors: scouting-admin contributors
 */

package config

import (
	"io"
	"log/slog"
)

// NewLogger returns a structured text logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
