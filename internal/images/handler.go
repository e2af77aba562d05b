package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/Lag-KakaoTalk-bot/internal/command"
	"github.com/park285/Lag-KakaoTalk-bot/internal/msgcat"
	"github.com/park285/Lag-KakaoTalk-bot/internal/util"
)

const maxImageAttempts = 3

// Handlers exposes the cat and xkcd command groups.
type Handlers struct {
	cats    *CatAPI
	xkcd    *XKCDService
	session *SessionStore
	cat     *msgcat.Catalog
}

func NewHandlers(cats *CatAPI, xkcd *XKCDService, session *SessionStore, cat *msgcat.Catalog) *Handlers {
	return &Handlers{cats: cats, xkcd: xkcd, session: session, cat: cat}
}

func (h *Handlers) Commands() []*command.Command {
	return []*command.Command{
		{
			Name:  "cat",
			Usage: "[category] | fact [count] | rate <1-10> | fave | faves | unfave <id> | ratings",
			Help:  "Random cat images, cat facts, and rating/favorite handling.",
			Run:   h.runCat,
		},
		{
			Name:  "xkcd",
			Usage: "[num|random]",
			Help:  "xkcd comics by number, random, or latest.",
			Run:   h.runXKCD,
		},
	}
}

func (h *Handlers) runCat(ctx *command.Context) error {
	if len(ctx.Args) > 0 {
		switch strings.ToLower(ctx.Args[0]) {
		case "fact", "facts":
			return h.facts(ctx, ctx.Args[1:])
		case "rate":
			return h.rate(ctx, ctx.Args[1:])
		case "fave", "favorite", "favourite":
			return h.fave(ctx)
		case "faves", "favorites", "favourites":
			return h.faves(ctx)
		case "unfave", "unfavorite", "unfavourite":
			return h.unfave(ctx, ctx.Args[1:])
		case "ratings":
			return h.ratings(ctx)
		}
	}
	return h.image(ctx, ctx.Args)
}

// subID attributes Cat API actions to the caller. Falls back to a random
// id when the gateway delivered no numeric sender.
func (h *Handlers) subID(ctx *command.Context) string {
	if ctx.SenderID != 0 {
		return strconv.FormatInt(ctx.SenderID, 10)
	}
	return uuid.NewString()
}

func (h *Handlers) image(ctx *command.Context, args []string) error {
	category := ""
	if len(args) > 0 {
		category = strings.ToLower(args[0])
		if !ValidCategory(category) {
			return command.Userf(h.cat.Text("cat.invalid_category", map[string]any{
				"Categories": strings.Join(Categories, ", "),
			}))
		}
	}
	subID := h.subID(ctx)

	// Broken upstream URLs get reported and replaced, bounded so a bad
	// streak cannot spin forever.
	var img *CatImage
	var raw []byte
	for attempt := 0; attempt < maxImageAttempts; attempt++ {
		candidate, err := h.cats.Image(ctx, category, subID)
		if err != nil {
			return h.wrapCat(err)
		}
		raw, err = h.cats.ImageBytes(ctx, candidate.URL)
		if err == nil {
			img = candidate
			break
		}
		ctx.Log.Warn("cat image fetch failed, reporting",
			zap.String("image_id", candidate.ID), zap.Error(err))
		if rerr := h.cats.Report(ctx, subID, candidate.ID, "image not fetchable"); rerr != nil {
			ctx.Log.Warn("cat image report failed", zap.Error(rerr))
		}
	}
	if img == nil {
		return command.Userf(h.cat.Text("cat.not_found", nil))
	}

	if err := ctx.ReplyImage(base64.StdEncoding.EncodeToString(raw)); err != nil {
		return err
	}
	if err := h.session.Remember(ctx, ctx.Room, img); err != nil {
		ctx.Log.Warn("cat session remember failed", zap.Error(err))
	}

	caption := img.ID + ": " + img.PageURL()
	if facts, err := h.cats.Facts(ctx, 1); err == nil {
		caption += "\n" + facts[0]
	}
	return ctx.ReplyText(caption)
}

func (h *Handlers) facts(ctx *command.Context, args []string) error {
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			n = 1
		}
		if n > 20 {
			n = 20
		}
		count = n
	}
	facts, err := h.cats.Facts(ctx, count)
	if err != nil {
		return command.User(h.cat.Text("cat.no_fact", nil), err)
	}
	if len(facts) == 1 {
		return ctx.ReplyText(facts[0])
	}
	var b strings.Builder
	for i, fact := range facts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, fact)
	}
	return ctx.ReplyText(util.SeeMore("Cat Facts", strings.TrimRight(b.String(), "\n")))
}

func (h *Handlers) rate(ctx *command.Context, args []string) error {
	if len(args) == 0 {
		return command.Userf(h.cat.Text("cat.invalid_score", nil))
	}
	score, err := parseScore(args[0])
	if err != nil {
		return command.User(h.cat.Text("cat.invalid_score", nil), err)
	}
	img, err := h.session.Last(ctx, ctx.Room)
	if err != nil {
		return h.wrapCat(err)
	}
	if err := h.cats.Rate(ctx, h.subID(ctx), img.ID, score); err != nil {
		return h.wrapCat(err)
	}
	return ctx.ReplyText(h.cat.Text("cat.rated", map[string]any{"Score": score}))
}

// parseScore accepts "7" or "7/10".
func parseScore(raw string) (int, error) {
	raw = strings.TrimSuffix(raw, "/10")
	score, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if score < 1 || score > 10 {
		return 0, fmt.Errorf("score %d out of range", score)
	}
	return score, nil
}

func (h *Handlers) fave(ctx *command.Context) error {
	img, err := h.session.Last(ctx, ctx.Room)
	if err != nil {
		return h.wrapCat(err)
	}
	if err := h.cats.Favourite(ctx, h.subID(ctx), img.ID, "add"); err != nil {
		return h.wrapCat(err)
	}
	return ctx.ReplyText(h.cat.Text("cat.faved", nil))
}

func (h *Handlers) faves(ctx *command.Context) error {
	faves, err := h.cats.Favourites(ctx, h.subID(ctx))
	if err != nil {
		return h.wrapCat(err)
	}
	if len(faves) == 0 {
		return command.Userf(h.cat.Text("cat.no_faves", nil))
	}
	var b strings.Builder
	for _, img := range faves {
		fmt.Fprintf(&b, "%s: %s\n", img.ID, img.URL)
	}
	return ctx.ReplyText(util.SeeMore("Favorites", strings.TrimRight(b.String(), "\n")))
}

func (h *Handlers) unfave(ctx *command.Context, args []string) error {
	if len(args) == 0 {
		return command.Userf(h.cat.Text("cat.not_in_faves", nil))
	}
	subID := h.subID(ctx)
	faves, err := h.cats.Favourites(ctx, subID)
	if err != nil {
		return h.wrapCat(err)
	}
	target := args[0]
	known := false
	for _, img := range faves {
		if img.ID == target {
			known = true
			break
		}
	}
	if !known {
		return command.Userf(h.cat.Text("cat.not_in_faves", nil))
	}
	if err := h.cats.Favourite(ctx, subID, target, "remove"); err != nil {
		return h.wrapCat(err)
	}
	return ctx.ReplyText(h.cat.Text("cat.unfaved", nil))
}

func (h *Handlers) ratings(ctx *command.Context) error {
	votes, err := h.cats.Votes(ctx, h.subID(ctx))
	if err != nil {
		return h.wrapCat(err)
	}
	if len(votes) == 0 {
		return command.Userf(h.cat.Text("cat.no_ratings", nil))
	}
	var b strings.Builder
	for _, v := range votes {
		fmt.Fprintf(&b, "%d/10 %s: %s\n", v.Score, v.ID, v.URL)
	}
	return ctx.ReplyText(util.SeeMore("Ratings", strings.TrimRight(b.String(), "\n")))
}

func (h *Handlers) wrapCat(err error) error {
	switch {
	case errors.Is(err, ErrNoLastImage):
		return command.User(h.cat.Text("cat.no_last_image", nil), err)
	case errors.Is(err, ErrNoCat):
		return command.User(h.cat.Text("cat.not_found", nil), err)
	case errors.Is(err, ErrNoFact):
		return command.User(h.cat.Text("cat.no_fact", nil), err)
	}
	return err
}

func (h *Handlers) runXKCD(ctx *command.Context) error {
	var comic *Comic
	var err error
	switch {
	case len(ctx.Args) == 0:
		comic, err = h.xkcd.Latest(ctx)
	case ctx.Args[0] == "r" || ctx.Args[0] == "rand" || ctx.Args[0] == "random":
		comic, err = h.xkcd.Random(ctx)
	default:
		num, perr := strconv.Atoi(ctx.Args[0])
		if perr != nil {
			return nil
		}
		comic, err = h.xkcd.ByNum(ctx, num)
	}
	if err != nil {
		if errors.Is(err, ErrComicNotFound) {
			return command.User(h.cat.Text("xkcd.not_found", nil), err)
		}
		return err
	}
	return ctx.ReplyText(formatComic(comic))
}

func formatComic(c *Comic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n", c.PostedOn.Format("01/02/2006"))
	fmt.Fprintf(&b, "Title: %d. %s\n", c.Num, c.SafeTitle)
	fmt.Fprintf(&b, "Alt Text: %s\n", c.Alt)
	fmt.Fprintf(&b, "Image: %s", c.Img)
	return b.String()
}
