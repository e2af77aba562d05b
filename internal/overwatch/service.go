package overwatch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
	"github.com/park285/Lag-KakaoTalk-bot/internal/obslog"
	"github.com/park285/Lag-KakaoTalk-bot/internal/owapi"
	"github.com/park285/Lag-KakaoTalk-bot/internal/profile"
)

// ErrNotInDB reports that tag resolution fell through to a stored profile
// that does not exist.
var ErrNotInDB = errors.New("not in the db")

// NotPlayedError reports a snapshot with no data in any region.
type NotPlayedError struct {
	BTag string // display form
}

func (e *NotPlayedError) Error() string {
	return fmt.Sprintf("%s has not played", e.BTag)
}

// RegionNotPlayedError reports an explicitly requested region with no data.
type RegionNotPlayedError struct {
	BTag   string // display form
	Region domain.Region
}

func (e *RegionNotPlayedError) Error() string {
	return fmt.Sprintf("%s has not played in %s", e.BTag, e.Region)
}

// NotFoundError wraps an upstream miss with the tag it was for.
type NotFoundError struct {
	BTag string // display form
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no stats for %s", e.BTag)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Notifier delivers the fire-and-forget operator alert on upstream 5xx.
// Failures must never propagate to the user-facing response.
type Notifier func(detail string)

// Service runs the stats pipeline: argument resolution against the
// preference store, one upstream fetch, then projection.
type Service struct {
	store  profile.Store
	api    *owapi.Client
	notify Notifier
}

func NewService(store profile.Store, api *owapi.Client, notify Notifier) *Service {
	return &Service{store: store, api: api, notify: notify}
}

// Resolved is the fully resolved snapshot selection for one invocation.
type Resolved struct {
	Tag      string // canonical form
	Mode     domain.Mode
	Region   domain.Region
	Platform domain.Platform

	Stats    *owapi.ModeStats
	Playtime map[string]float64
	RawURL   string
}

// Stats resolves, fetches, and projects the summary response.
func (s *Service) Stats(ctx context.Context, args Args, invoker int64) (*Summary, error) {
	res, err := s.snapshot(ctx, args, invoker)
	if err != nil {
		return nil, err
	}
	return buildSummary(res), nil
}

// HeroReport is the per-hero playtime projection.
type HeroReport struct {
	BTag     string // display form
	Platform domain.Platform
	Region   domain.Region
	Mode     domain.Mode

	Entries   []HeroPlaytime
	CareerURL string
}

// Heroes resolves, fetches, and projects the hero playtime listing.
func (s *Service) Heroes(ctx context.Context, args Args, invoker int64) (*HeroReport, error) {
	res, err := s.snapshot(ctx, args, invoker)
	if err != nil {
		return nil, err
	}
	return &HeroReport{
		BTag:      ToDisplay(res.Tag),
		Platform:  res.Platform,
		Region:    res.Region,
		Mode:      res.Mode,
		Entries:   MostPlayed(res.Playtime),
		CareerURL: CareerURL(res.Tag, res.Region, res.Platform),
	}, nil
}

func (s *Service) snapshot(ctx context.Context, args Args, invoker int64) (*Resolved, error) {
	tag, err := s.ResolveTag(ctx, args.Tag, invoker)
	if err != nil {
		return nil, err
	}
	mode, err := s.resolveMode(ctx, args.Mode, tag, invoker)
	if err != nil {
		return nil, err
	}
	platform, err := s.resolvePlatform(ctx, args.Platform, tag)
	if err != nil {
		return nil, err
	}

	blob, err := s.fetch(ctx, tag, platform)
	if err != nil {
		return nil, err
	}

	region, data, err := s.resolveRegion(ctx, blob, args.Region, tag, platform)
	if err != nil {
		return nil, err
	}

	// Competitive falls back to quickplay for this response only when the
	// snapshot has neither competitive aggregates nor competitive hero
	// playtime. Stored preferences are not touched.
	if mode == domain.ModeCompetitive &&
		data.Stats[string(domain.ModeCompetitive)] == nil &&
		len(data.Heroes.Playtime[string(domain.ModeCompetitive)]) == 0 {
		mode = domain.ModeQuickplay
	}

	stats := data.Stats[string(mode)]
	if stats == nil {
		return nil, &NotPlayedError{BTag: ToDisplay(tag)}
	}

	return &Resolved{
		Tag:      tag,
		Mode:     mode,
		Region:   region,
		Platform: platform,
		Stats:    stats,
		Playtime: data.Heroes.Playtime[string(mode)],
		RawURL:   s.api.BlobURL(tag, platform),
	}, nil
}

// ResolveTag normalizes a raw token into a canonical tag. Valid display
// tags convert directly; anything else resolves through the preference
// store by mention id or the invoking account.
func (s *Service) ResolveTag(ctx context.Context, token string, invoker int64) (string, error) {
	if token != "" && ValidDisplayTag(token) {
		return ToCanonical(token)
	}
	accountID := invoker
	if id, ok := MentionID(token); ok {
		accountID = id
	}
	pref, err := s.store.Lookup(ctx, accountID)
	if err != nil {
		return "", err
	}
	if pref == nil {
		return "", ErrNotInDB
	}
	return pref.BTag, nil
}

// resolveMode prefers the explicit argument, then the stored preference of
// the tag's owner, then the invoker's own stored preference, then default.
func (s *Service) resolveMode(ctx context.Context, explicit *domain.Mode, tag string, invoker int64) (domain.Mode, error) {
	if explicit != nil {
		return *explicit, nil
	}
	byTag, err := s.store.LookupByTag(ctx, tag)
	if err != nil {
		return "", err
	}
	if byTag != nil && byTag.Mode != "" {
		return byTag.Mode, nil
	}
	byID, err := s.store.Lookup(ctx, invoker)
	if err != nil {
		return "", err
	}
	if byID != nil && byID.Mode != "" {
		return byID.Mode, nil
	}
	return domain.DefaultMode, nil
}

func (s *Service) resolvePlatform(ctx context.Context, explicit *domain.Platform, tag string) (domain.Platform, error) {
	if explicit != nil {
		return *explicit, nil
	}
	pref, err := s.store.LookupByTag(ctx, tag)
	if err != nil {
		return "", err
	}
	if pref != nil && pref.Platform != "" {
		return pref.Platform, nil
	}
	return domain.DefaultPlatform, nil
}

// resolveRegion picks the snapshot region. Non-PC platforms always use the
// "any" sentinel. An explicit region must have data or the command fails;
// otherwise a stored preference is honored when it has data, and the first
// region with data wins in fixed priority order.
func (s *Service) resolveRegion(ctx context.Context, blob owapi.Blob, requested *domain.Region, tag string, platform domain.Platform) (domain.Region, *owapi.RegionStats, error) {
	display := ToDisplay(tag)

	if platform != domain.PlatformPC {
		data := blob[string(domain.RegionAny)]
		if data == nil {
			return "", nil, &NotPlayedError{BTag: display}
		}
		return domain.RegionAny, data, nil
	}

	if requested != nil {
		data := blob[string(*requested)]
		if data == nil {
			return "", nil, &RegionNotPlayedError{BTag: display, Region: *requested}
		}
		return *requested, data, nil
	}

	if pref, err := s.store.LookupByTag(ctx, tag); err != nil {
		return "", nil, err
	} else if pref != nil && pref.Region != "" {
		if data := blob[string(pref.Region)]; data != nil {
			return pref.Region, data, nil
		}
	}

	for _, region := range domain.Regions {
		if data := blob[string(region)]; data != nil {
			return region, data, nil
		}
	}
	return "", nil, &NotPlayedError{BTag: display}
}

// fetch runs the upstream GET and, on a 5xx, kicks the operator alert
// without blocking or failing the user-facing path further than it already
// has.
func (s *Service) fetch(ctx context.Context, tag string, platform domain.Platform) (owapi.Blob, error) {
	blob, err := s.api.Blob(ctx, tag, platform)
	if err == nil {
		return blob, nil
	}

	var upstream *owapi.UpstreamError
	switch {
	case errors.As(err, &upstream):
		obslog.L().Warn("owapi upstream error",
			zap.Int("status", upstream.Status),
			zap.String("tag", tag),
		)
		if s.notify != nil {
			go s.notify(upstream.Detail)
		}
		return nil, err
	case errors.Is(err, owapi.ErrNotFound):
		return nil, &NotFoundError{BTag: ToDisplay(tag), Err: err}
	default:
		return nil, err
	}
}
