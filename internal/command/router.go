package command

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/Lag-KakaoTalk-bot/internal/irisfast"
	"github.com/park285/Lag-KakaoTalk-bot/internal/msgcat"
	"github.com/park285/Lag-KakaoTalk-bot/internal/obslog"
)

const handlerTimeout = 60 * time.Second

// Router matches prefixed chat messages against the command table and runs
// handlers, each on its own goroutine so the gateway read loop never blocks.
type Router struct {
	prefix  string
	replier Replier
	cat     *msgcat.Catalog
	allowed map[string]struct{}

	cmds  map[string]*Command
	order []*Command
}

func NewRouter(prefix string, replier Replier, cat *msgcat.Catalog, allowedRooms []string) *Router {
	r := &Router{
		prefix:  prefix,
		replier: replier,
		cat:     cat,
		cmds:    make(map[string]*Command),
	}
	if len(allowedRooms) > 0 {
		r.allowed = make(map[string]struct{}, len(allowedRooms))
		for _, room := range allowedRooms {
			r.allowed[room] = struct{}{}
		}
	}
	return r
}

// Register adds commands and their aliases to the dispatch table.
func (r *Router) Register(cmds ...*Command) {
	for _, cmd := range cmds {
		r.cmds[cmd.Name] = cmd
		for _, alias := range cmd.Aliases {
			r.cmds[alias] = cmd
		}
		r.order = append(r.order, cmd)
	}
}

// Commands returns the registered commands in registration order.
func (r *Router) Commands() []*Command { return r.order }

// HandleMessage is the gateway OnMessage callback.
func (r *Router) HandleMessage(msg *irisfast.Message) {
	if msg == nil || msg.Msg == "" {
		return
	}
	if r.allowed != nil {
		if _, ok := r.allowed[msg.Room]; !ok {
			return
		}
	}
	raw := strings.TrimSpace(msg.Msg)
	if !strings.HasPrefix(raw, r.prefix) {
		return
	}
	raw = strings.TrimSpace(strings.TrimPrefix(raw, r.prefix))
	if raw == "" {
		return
	}

	parts := strings.Fields(raw)
	name := strings.ToLower(parts[0])
	args := parts[1:]

	go r.dispatch(msg, name, args)
}

func (r *Router) dispatch(msg *irisfast.Message, name string, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	log := obslog.L().With(
		zap.String("invocation", uuid.NewString()[:8]),
		zap.String("command", name),
		zap.String("room", msg.Room),
	)

	cmd, ok := r.cmds[name]
	if !ok {
		_ = r.replier.SendText(ctx, msg.Room, r.cat.Text("errors.unknown_command", nil))
		return
	}

	cctx := &Context{
		Context:    ctx,
		Room:       msg.Room,
		SenderID:   senderID(msg),
		SenderName: senderName(msg),
		Args:       args,
		Log:        log,
		replier:    r.replier,
	}

	if err := cmd.Run(cctx); err != nil {
		var userErr *UserError
		if errors.As(err, &userErr) {
			if sendErr := r.replier.SendText(ctx, msg.Room, userErr.Text); sendErr != nil {
				log.Warn("reply failed", zap.Error(sendErr))
			}
			return
		}
		log.Error("command failed", zap.Error(err))
		_ = r.replier.SendText(ctx, msg.Room, r.cat.Text("errors.generic", nil))
	}
}

// HelpCommand builds the table listing from the registered commands.
func (r *Router) HelpCommand() *Command {
	return &Command{
		Name: "help",
		Help: "List available commands.",
		Run: func(ctx *Context) error {
			var b strings.Builder
			b.WriteString("Commands:")
			for _, cmd := range r.order {
				b.WriteString("\n• ")
				b.WriteString(r.prefix)
				b.WriteString(cmd.Name)
				if cmd.Usage != "" {
					b.WriteString(" ")
					b.WriteString(cmd.Usage)
				}
				if cmd.Help != "" {
					b.WriteString("\n  ")
					b.WriteString(cmd.Help)
				}
			}
			return ctx.ReplyText(b.String())
		},
	}
}

func senderID(msg *irisfast.Message) int64 {
	if msg.JSON == nil {
		return 0
	}
	id, err := strconv.ParseInt(strings.TrimSpace(msg.JSON.UserID), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func senderName(msg *irisfast.Message) string {
	if msg.Sender != nil && strings.TrimSpace(*msg.Sender) != "" {
		return strings.TrimSpace(*msg.Sender)
	}
	if msg.JSON != nil {
		return strings.TrimSpace(msg.JSON.UserID)
	}
	return ""
}
