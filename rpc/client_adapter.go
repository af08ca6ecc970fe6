package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/synchro-systems/synchro/adapter"
	"github.com/synchro-systems/synchro/value"
)

// ClientAdapter implements adapter.Source and adapter.GuardedWriter over a
// SafePollingClient, letting an adapter.Adapter drive a remote platform
// that exposes the safe-polling contract of spec §6.
type ClientAdapter struct {
	SourceID string
	Client   SafePollingClient
}

var _ adapter.Source = (*ClientAdapter)(nil)
var _ adapter.GuardedWriter = (*ClientAdapter)(nil)

func (c *ClientAdapter) Poll(ctx context.Context) (adapter.PollResult, error) {
	sentAt := time.Now()
	resp, err := c.Client.Poll(ctx, &PollRequest{SourceID: c.SourceID})
	if err != nil {
		return adapter.PollResult{}, err
	}
	v, err := adapter.ParseQuantity(resp.Value)
	if err != nil {
		return adapter.PollResult{}, fmt.Errorf("rpc: parsing poll response quantity %q: %w", resp.Value, err)
	}
	return adapter.PollResult{
		Value:          v,
		SentAt:         sentAt,
		RepliedAt:      time.Now(),
		SequenceNumber: resp.SequenceNumber,
	}, nil
}

func (c *ClientAdapter) Write(ctx context.Context, newValue, guard value.Value) (value.Value, bool, error) {
	resp, err := c.Client.Write(ctx, &WriteRequest{
		SourceID:   c.SourceID,
		NewValue:   adapter.FormatQuantity(newValue),
		GuardValue: adapter.FormatQuantity(guard),
	})
	if err != nil {
		return value.Zero, false, err
	}
	current, err := adapter.ParseQuantity(resp.Current)
	if err != nil {
		return value.Zero, false, fmt.Errorf("rpc: parsing write response quantity %q: %w", resp.Current, err)
	}
	return current, resp.Committed, nil
}
