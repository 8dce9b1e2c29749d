package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/eventdesk/internal/bridge"
)

// Bridge runs one console command. *bridge.Client satisfies it.
type Bridge interface {
	Do(ctx context.Context, cmd bridge.Command) (bridge.Response, error)
}

// mutate runs a console mutation and maps its status. A NotFound status means
// the console rejected the target, which the caller names with missing.
func mutate(ctx context.Context, b Bridge, cmd bridge.Command, missing error) (bridge.Response, error) {
	resp, err := b.Do(ctx, cmd)
	if err != nil {
		return resp, fmt.Errorf("s.bridge.Do -> %w", err)
	}

	switch resp.Status {
	case bridge.StatusOK:
		return resp, nil
	case bridge.StatusNotFound:
		if missing != nil {
			return resp, missing
		}
	}

	return resp, fmt.Errorf("%s answered %s -> %w", cmd.Opcode(), resp.Status, ErrUnexpectedResponse)
}
