package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/emcarter/chief-rota/pkg/core/model"
	"github.com/emcarter/chief-rota/pkg/core/selector"
)

// sentNotices holds the message handles produced by a successful fan-out
type sentNotices struct {
	publicTS   string
	internalTS string
}

// sendResult is the outcome of one channel's send-then-mark sequence
type sendResult struct {
	handle string
	err    error
}

// sendAssignmentNotices posts the weekly announcement to both channels
// concurrently and waits for both to finish before combining outcomes.
//
// Each sequence is: send the message, then best-effort mark it as the
// week's visible reference (a mark failure is logged, never fatal). The
// combined result is a failure if either send failed, but a message that
// did get through is never rolled back; partial success is logged so the
// caller can see exactly which channel was told.
func sendAssignmentNotices(
	ctx context.Context,
	notifier Notifier,
	logger *zap.Logger,
	selection *selector.Selection,
	weekStart time.Time,
) (*sentNotices, error) {
	var (
		wg               sync.WaitGroup
		public, internal sendResult
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		public = runNoticeSequence(ctx, notifier, logger, model.ChannelPublic,
			publicAnnouncement(selection.Chief, selection.Backup, weekStart))
	}()

	go func() {
		defer wg.Done()
		internal = runNoticeSequence(ctx, notifier, logger, model.ChannelInternal,
			internalNotice(selection.Chief, selection.Backup, weekStart))
	}()

	wg.Wait()

	if public.err != nil {
		if internal.err == nil {
			logger.Warn("Internal notice delivered despite public send failure",
				zap.String("internal_ts", internal.handle))
		}
		return nil, fmt.Errorf("failed to send public announcement: %w", public.err)
	}

	if internal.err != nil {
		// The public message is already out; accept it as a tolerated
		// side effect and report the step as failed.
		logger.Warn("Public announcement delivered but internal notice failed",
			zap.String("public_ts", public.handle),
			zap.Error(internal.err))
		return nil, fmt.Errorf("failed to send internal notice: %w", internal.err)
	}

	return &sentNotices{
		publicTS:   public.handle,
		internalTS: internal.handle,
	}, nil
}

// runNoticeSequence sends one message and best-effort marks it current
func runNoticeSequence(
	ctx context.Context,
	notifier Notifier,
	logger *zap.Logger,
	ch model.Channel,
	text string,
) sendResult {
	var (
		handle string
		err    error
	)

	switch ch {
	case model.ChannelPublic:
		handle, err = notifier.SendPublic(ctx, text)
	case model.ChannelInternal:
		handle, err = notifier.SendInternal(ctx, text)
	}
	if err != nil {
		return sendResult{err: err}
	}

	logger.Debug("Notice sent", zap.String("channel", string(ch)), zap.String("ts", handle))

	if err := notifier.MarkCurrent(ctx, ch, handle); err != nil {
		logger.Warn("Failed to mark notice as current",
			zap.String("channel", string(ch)),
			zap.String("ts", handle),
			zap.Error(err))
	}

	return sendResult{handle: handle}
}
