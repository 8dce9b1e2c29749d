package bridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrTimeout       = errors.New("console process timed out, data directory state unknown")
	ErrProcessFailed = errors.New("console process exited abnormally")
)

const (
	DefaultTimeout = 15 * time.Second
	// waitDelay bounds how long Wait blocks on the output pipes after a kill.
	waitDelay = time.Second
)

// Runner runs one console invocation and returns its standard output.
type Runner interface {
	Execute(ctx context.Context, lines []string) (string, error)
}

// Process spawns the console executable once per call. The console reads
// every file relative to its working directory, so Dir must be the data
// directory.
type Process struct {
	Executable string
	Args       []string
	Dir        string
	Env        []string
	Timeout    time.Duration
}

func NewProcess(executable string, args []string, dataDir string, timeout time.Duration) *Process {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Process{
		Executable: executable,
		Args:       args,
		Dir:        dataDir,
		Timeout:    timeout,
	}
}

// Execute writes lines to the child's stdin, one per line with a trailing
// newline, closes stdin and waits for exit. When the timeout fires the child
// is killed and ErrTimeout returned.
func (p *Process) Execute(ctx context.Context, lines []string) (string, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, p.Executable, p.Args...)
	cmd.Dir = p.Dir
	if len(p.Env) > 0 {
		cmd.Env = append(os.Environ(), p.Env...)
	}
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()

	if stderr.Len() > 0 {
		zap.L().Debug("console stderr",
			zap.String("executable", p.Executable),
			zap.String("stderr", stderr.String()),
		)
	}

	if runCtx.Err() != nil && ctx.Err() == nil {
		zap.L().Warn("console process killed after timeout",
			zap.String("executable", p.Executable),
			zap.Duration("timeout", timeout),
			zap.Duration("elapsed", time.Since(start)),
		)
		return stdout.String(), ErrTimeout
	}
	if ctx.Err() != nil {
		return stdout.String(), fmt.Errorf("cmd.Run -> %w", ctx.Err())
	}
	if err != nil {
		return stdout.String(), fmt.Errorf("cmd.Run -> %w: %w", ErrProcessFailed, err)
	}

	return stdout.String(), nil
}
