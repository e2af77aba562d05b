package command

import (
	"context"

	"go.uber.org/zap"
)

// Replier sends replies back through the gateway. Satisfied by
// *irisfast.Client.
type Replier interface {
	SendText(ctx context.Context, room, text string) error
	SendImage(ctx context.Context, room, imageBase64 string) error
}

// Context carries one command invocation.
type Context struct {
	context.Context

	Room       string
	SenderID   int64 // 0 when the gateway did not deliver a numeric id
	SenderName string
	Args       []string
	Log        *zap.Logger

	replier Replier
}

// NewContext builds an invocation context. The router does this for live
// messages; handler tests use it directly.
func NewContext(ctx context.Context, room string, senderID int64, senderName string, args []string, log *zap.Logger, replier Replier) *Context {
	return &Context{
		Context:    ctx,
		Room:       room,
		SenderID:   senderID,
		SenderName: senderName,
		Args:       args,
		Log:        log,
		replier:    replier,
	}
}

// ReplyText sends a text reply into the invoking room.
func (c *Context) ReplyText(text string) error {
	return c.replier.SendText(c, c.Room, text)
}

// ReplyImage sends a base64-encoded image reply into the invoking room.
func (c *Context) ReplyImage(imageBase64 string) error {
	return c.replier.SendImage(c, c.Room, imageBase64)
}

type HandlerFunc func(*Context) error

// Command is one entry of the static dispatch table.
type Command struct {
	Name    string
	Aliases []string
	Usage   string
	Help    string
	Run     HandlerFunc
}
