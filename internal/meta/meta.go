// Package meta carries the housekeeping commands: uptime and about.
package meta

import (
	"fmt"
	"strings"
	"time"

	"github.com/park285/Lag-KakaoTalk-bot/internal/command"
	"github.com/park285/Lag-KakaoTalk-bot/internal/util"
)

// Handlers answers questions about the bot itself.
type Handlers struct {
	startedAt time.Time
	version   string
	sourceURL string
	prefix    string
}

func NewHandlers(startedAt time.Time, version, sourceURL, prefix string) *Handlers {
	return &Handlers{startedAt: startedAt, version: version, sourceURL: sourceURL, prefix: prefix}
}

func (h *Handlers) Commands() []*command.Command {
	return []*command.Command{
		{
			Name: "uptime",
			Help: "How long the bot has been online.",
			Run:  h.uptime,
		},
		{
			Name: "about",
			Help: "Bot version and links.",
			Run:  h.about,
		},
	}
}

func (h *Handlers) uptime(ctx *command.Context) error {
	return ctx.ReplyText("Uptime: " + FormatUptime(time.Since(h.startedAt)))
}

func (h *Handlers) about(ctx *command.Context) error {
	lines := []string{
		"lagbot " + h.version,
		"Uptime: " + FormatUptime(time.Since(h.startedAt)),
		fmt.Sprintf("Say %shelp for commands.", h.prefix),
	}
	if h.sourceURL != "" {
		lines = append(lines, "Source: "+h.sourceURL)
	}
	return ctx.ReplyText(strings.Join(lines, "\n"))
}

// FormatUptime renders a duration as its nonzero units, leading zeros
// dropped. A duration under a second reads "0 seconds".
func FormatUptime(d time.Duration) string {
	total := int(d.Seconds())
	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	parts := make([]string, 0, 4)
	for _, u := range []struct {
		n    int
		unit string
	}{
		{days, "day"},
		{hours, "hour"},
		{minutes, "minute"},
		{seconds, "second"},
	} {
		if u.n > 0 || len(parts) > 0 {
			parts = append(parts, util.Pluralize(u.n, u.unit))
		}
	}
	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, ", ")
}
