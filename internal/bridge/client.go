package bridge

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/vietanh2810/eventdesk/internal/metrics"
	"github.com/vietanh2810/eventdesk/internal/tracing"
)

// Client turns typed commands into console invocations and parsed responses.
type Client struct {
	runner Runner
}

func NewClient(runner Runner) *Client {
	return &Client{
		runner: runner,
	}
}

// Do scripts cmd, runs the console once and parses its output. A response
// whose output matched no marker is returned together with
// ErrUnrecognizedOutput so callers can log the raw text.
func (c *Client) Do(ctx context.Context, cmd Command) (Response, error) {
	op := cmd.Opcode()
	ctx, span := tracing.Tracer().Start(ctx, "bridge."+op.String())
	defer span.End()
	span.SetAttributes(
		attribute.Int("bridge.opcode", int(op)),
		attribute.String("bridge.protocol", ProtocolV2),
	)

	start := time.Now()
	output, err := c.runner.Execute(ctx, Script(cmd))
	elapsed := time.Since(start)
	metrics.BridgeDuration.WithLabelValues(op.String()).Observe(elapsed.Seconds())

	if err != nil {
		metrics.BridgeCalls.WithLabelValues(op.String(), "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		zap.L().Error("console invocation failed",
			zap.String("opcode", op.String()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return Response{Output: output}, fmt.Errorf("c.runner.Execute -> %w", err)
	}

	resp := Parse(op, output)
	metrics.BridgeCalls.WithLabelValues(op.String(), resp.Status.String()).Inc()
	span.SetAttributes(attribute.String("bridge.status", resp.Status.String()))

	zap.L().Debug("console invocation",
		zap.String("opcode", op.String()),
		zap.String("status", resp.Status.String()),
		zap.Int("id", resp.ID),
		zap.Int("rows", len(resp.Rows)),
		zap.Duration("elapsed", elapsed),
	)

	if resp.Status == StatusUnrecognized {
		span.SetStatus(codes.Error, "unrecognized output")
		zap.L().Warn("console output not recognized",
			zap.String("opcode", op.String()),
			zap.String("output", output),
		)
		return resp, fmt.Errorf("parse %s -> %w", op, ErrUnrecognizedOutput)
	}

	return resp, nil
}
