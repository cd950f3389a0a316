package slackclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"

	"github.com/emcarter/chief-rota/pkg/core/model"
)

// Client wraps the Slack Web API for the two rotation channels. Message
// handles are Slack message timestamps; "marking" a message as the
// current weekly reference is implemented as pinning it.
type Client struct {
	api               *slack.Client
	publicChannelID   string
	internalChannelID string
}

// NewClient creates a new Slack client for the given bot token and
// channel IDs
func NewClient(token, publicChannelID, internalChannelID string) *Client {
	return &Client{
		api:               slack.New(token),
		publicChannelID:   publicChannelID,
		internalChannelID: internalChannelID,
	}
}

// SendPublic posts a message to the public channel and returns its handle
func (c *Client) SendPublic(ctx context.Context, text string) (string, error) {
	return c.send(ctx, c.publicChannelID, text)
}

// SendInternal posts a message to the internal channel and returns its handle
func (c *Client) SendInternal(ctx context.Context, text string) (string, error) {
	return c.send(ctx, c.internalChannelID, text)
}

func (c *Client) send(ctx context.Context, channelID, text string) (string, error) {
	_, timestamp, err := c.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return "", fmt.Errorf("failed to post message to %s: %w", channelID, err)
	}
	return timestamp, nil
}

// MarkCurrent pins the message so it is the channel's visible reference
func (c *Client) MarkCurrent(ctx context.Context, ch model.Channel, handle string) error {
	channelID := c.channelID(ch)
	if err := c.api.AddPinContext(ctx, channelID, slack.NewRefToMessage(channelID, handle)); err != nil {
		return fmt.Errorf("failed to pin message %s in %s: %w", handle, channelID, err)
	}
	return nil
}

// UnmarkCurrent removes the pin from a previously marked message
func (c *Client) UnmarkCurrent(ctx context.Context, ch model.Channel, handle string) error {
	channelID := c.channelID(ch)
	if err := c.api.RemovePinContext(ctx, channelID, slack.NewRefToMessage(channelID, handle)); err != nil {
		return fmt.Errorf("failed to unpin message %s in %s: %w", handle, channelID, err)
	}
	return nil
}

// ListCurrentlyMarked returns the handles of all pinned messages in the
// given channel
func (c *Client) ListCurrentlyMarked(ctx context.Context, ch model.Channel) ([]string, error) {
	channelID := c.channelID(ch)
	items, _, err := c.api.ListPinsContext(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pins in %s: %w", channelID, err)
	}

	handles := make([]string, 0, len(items))
	for _, item := range items {
		if item.Message != nil {
			handles = append(handles, item.Message.Timestamp)
		}
	}

	return handles, nil
}

// UnmarkAll removes every pinned message from both channels, sweeping the
// channels concurrently, and returns how many pins were removed
func (c *Client) UnmarkAll(ctx context.Context) (int, error) {
	var (
		mu    sync.Mutex
		count int
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, ch := range []model.Channel{model.ChannelPublic, model.ChannelInternal} {
		ch := ch
		g.Go(func() error {
			handles, err := c.ListCurrentlyMarked(ctx, ch)
			if err != nil {
				return err
			}
			for _, handle := range handles {
				if err := c.UnmarkCurrent(ctx, ch, handle); err != nil {
					return err
				}
				mu.Lock()
				count++
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return count, fmt.Errorf("failed to clear pinned messages: %w", err)
	}

	return count, nil
}

func (c *Client) channelID(ch model.Channel) string {
	if ch == model.ChannelInternal {
		return c.internalChannelID
	}
	return c.publicChannelID
}
