package overwatch

import (
	"errors"
	"strings"

	"github.com/park285/Lag-KakaoTalk-bot/internal/command"
	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
	"github.com/park285/Lag-KakaoTalk-bot/internal/msgcat"
	"github.com/park285/Lag-KakaoTalk-bot/internal/owapi"
	"github.com/park285/Lag-KakaoTalk-bot/internal/profile"
)

// Handlers exposes the Overwatch command group.
type Handlers struct {
	svc    *Service
	store  profile.Store
	cat    *msgcat.Catalog
	prefix string
}

func NewHandlers(svc *Service, store profile.Store, cat *msgcat.Catalog, prefix string) *Handlers {
	return &Handlers{svc: svc, store: store, cat: cat, prefix: prefix}
}

// Commands returns the "ow" group. Subcommands ride on the first argument;
// everything else is a loosely-ordered stats query.
func (h *Handlers) Commands() []*command.Command {
	return []*command.Command{{
		Name:    "ow",
		Aliases: []string{"overwatch"},
		Usage:   "[tag] [mode] [region] [platform]",
		Help:    "Overwatch stats. Subcommands: heroes, set, unset.",
		Run:     h.run,
	}}
}

func (h *Handlers) run(ctx *command.Context) error {
	if len(ctx.Args) > 0 {
		switch strings.ToLower(ctx.Args[0]) {
		case "heroes":
			return h.heroes(ctx, ctx.Args[1:])
		case "set", "save":
			return h.set(ctx, ctx.Args[1:])
		case "unset", "delete", "remove":
			return h.unset(ctx)
		}
	}
	return h.stats(ctx, ctx.Args)
}

func (h *Handlers) stats(ctx *command.Context, tokens []string) error {
	summary, err := h.svc.Stats(ctx, Disambiguate(tokens...), ctx.SenderID)
	if err != nil {
		return h.wrap(err)
	}
	return ctx.ReplyText(FormatSummary(summary))
}

func (h *Handlers) heroes(ctx *command.Context, tokens []string) error {
	report, err := h.svc.Heroes(ctx, Disambiguate(tokens...), ctx.SenderID)
	if err != nil {
		return h.wrap(err)
	}
	return ctx.ReplyText(FormatHeroes(report))
}

func (h *Handlers) set(ctx *command.Context, args []string) error {
	if ctx.SenderID == 0 {
		return command.Userf(h.cat.Text("errors.no_identity", nil))
	}
	if len(args) == 0 {
		return command.Userf(h.cat.Text("overwatch.usage_set", map[string]any{"Prefix": h.prefix}))
	}

	// Field-targeted updates: "set mode comp" and friends.
	if len(args) >= 1 {
		switch strings.ToLower(args[0]) {
		case "tag", "btag", "battletag":
			return h.setTag(ctx, args[1:])
		case "mode":
			return h.setMode(ctx, args[1:])
		case "region":
			return h.setRegion(ctx, args[1:])
		case "platform":
			return h.setPlatform(ctx, args[1:])
		}
	}

	return h.register(ctx, args)
}

func (h *Handlers) register(ctx *command.Context, args []string) error {
	a := Disambiguate(args...)
	if a.Tag == "" {
		return command.Userf(h.cat.Text("overwatch.usage_set", map[string]any{"Prefix": h.prefix}))
	}
	tag, err := ToCanonical(a.Tag)
	if err != nil {
		return command.User(h.cat.Text("overwatch.invalid_btag", map[string]any{"Tag": a.Tag}), err)
	}

	pref := domain.UserPreference{
		AccountID: ctx.SenderID,
		BTag:      tag,
		Mode:      domain.DefaultMode,
		Region:    domain.DefaultRegion,
		Platform:  domain.DefaultPlatform,
	}
	if a.Mode != nil {
		pref.Mode = *a.Mode
	}
	if a.Region != nil {
		pref.Region = *a.Region
	}
	if a.Platform != nil {
		pref.Platform = *a.Platform
	}

	if err := h.store.Register(ctx, pref); err != nil {
		if errors.Is(err, profile.ErrAlreadyRegistered) {
			return command.User(h.cat.Text("overwatch.already_registered", nil), err)
		}
		return err
	}
	return ctx.ReplyText(h.cat.Text("overwatch.registered", nil))
}

func (h *Handlers) setTag(ctx *command.Context, args []string) error {
	if len(args) == 0 {
		return h.usageSetField(ctx, "tag")
	}
	tag, err := ToCanonical(args[0])
	if err != nil {
		return command.User(h.cat.Text("overwatch.invalid_btag", map[string]any{"Tag": args[0]}), err)
	}
	return h.applyUpdate(ctx, h.store.SetTag(ctx, ctx.SenderID, tag), "overwatch.tag_updated")
}

func (h *Handlers) setMode(ctx *command.Context, args []string) error {
	if len(args) == 0 {
		return h.usageSetField(ctx, "mode")
	}
	mode, ok := domain.ParseMode(args[0])
	if !ok {
		return command.Userf(h.cat.Text("overwatch.invalid_mode", map[string]any{"Mode": args[0]}))
	}
	return h.applyUpdate(ctx, h.store.SetMode(ctx, ctx.SenderID, mode), "overwatch.mode_updated")
}

func (h *Handlers) setRegion(ctx *command.Context, args []string) error {
	if len(args) == 0 {
		return h.usageSetField(ctx, "region")
	}
	region, ok := domain.ParseRegion(args[0])
	if !ok {
		return command.Userf(h.cat.Text("overwatch.invalid_region", map[string]any{"Region": args[0]}))
	}
	return h.applyUpdate(ctx, h.store.SetRegion(ctx, ctx.SenderID, region), "overwatch.region_updated")
}

func (h *Handlers) setPlatform(ctx *command.Context, args []string) error {
	if len(args) == 0 {
		return h.usageSetField(ctx, "platform")
	}
	platform, ok := domain.ParsePlatform(args[0])
	if !ok {
		return command.Userf(h.cat.Text("overwatch.invalid_platform", map[string]any{"Platform": args[0]}))
	}
	return h.applyUpdate(ctx, h.store.SetPlatform(ctx, ctx.SenderID, platform), "overwatch.platform_updated")
}

func (h *Handlers) usageSetField(ctx *command.Context, field string) error {
	return command.Userf(h.cat.Text("overwatch.usage_set_field", map[string]any{
		"Prefix": h.prefix,
		"Field":  field,
	}))
}

func (h *Handlers) applyUpdate(ctx *command.Context, err error, successKey string) error {
	if err != nil {
		if errors.Is(err, profile.ErrNotRegistered) {
			return command.User(h.cat.Text("overwatch.not_registered", nil), err)
		}
		return err
	}
	return ctx.ReplyText(h.cat.Text(successKey, nil))
}

func (h *Handlers) unset(ctx *command.Context) error {
	if ctx.SenderID == 0 {
		return command.Userf(h.cat.Text("errors.no_identity", nil))
	}
	return h.applyUpdate(ctx, h.store.Remove(ctx, ctx.SenderID), "overwatch.removed")
}

// wrap translates the stats pipeline taxonomy into chat-safe messages.
// Anything outside the taxonomy propagates and renders as the generic
// failure.
func (h *Handlers) wrap(err error) error {
	var (
		notFound  *NotFoundError
		notPlayed *NotPlayedError
		regionErr *RegionNotPlayedError
		upstream  *owapi.UpstreamError
	)
	switch {
	case errors.As(err, &notFound):
		return command.User(h.cat.Text("overwatch.not_found", map[string]any{"BTag": notFound.BTag}), err)
	case errors.As(err, &upstream):
		return command.User(h.cat.Text("overwatch.server_error", nil), err)
	case errors.Is(err, ErrNotInDB):
		return command.User(h.cat.Text("overwatch.not_in_db", nil), err)
	case errors.As(err, &notPlayed):
		return command.User(h.cat.Text("overwatch.not_played", map[string]any{"BTag": notPlayed.BTag}), err)
	case errors.As(err, &regionErr):
		return command.User(h.cat.Text("overwatch.not_played_region", map[string]any{
			"BTag":   regionErr.BTag,
			"Region": string(regionErr.Region),
		}), err)
	case errors.Is(err, ErrInvalidBTag):
		return command.User(h.cat.Text("overwatch.invalid_btag", map[string]any{"Tag": ""}), err)
	}
	return err
}
