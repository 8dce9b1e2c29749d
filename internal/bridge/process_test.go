package bridge_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eventdesk/internal/bridge"
	"github.com/vietanh2810/eventdesk/internal/console"
	"github.com/vietanh2810/eventdesk/internal/mocks"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

const helperEnv = "EVENTDESK_HELPER_PROCESS"

// TestHelperProcess is not a real test: it is the child process the tests
// below spawn through the bridge.
func TestHelperProcess(t *testing.T) {
	mode := os.Getenv(helperEnv)
	if mode == "" {
		return
	}
	switch mode {
	case "console":
		wd, _ := os.Getwd()
		if err := console.Run(wd, os.Stdin, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "sleep":
		time.Sleep(time.Minute)
	case "pwd":
		wd, _ := os.Getwd()
		fmt.Println(wd)
	case "fail":
		os.Exit(3)
	}
	os.Exit(0)
}

func helperProcess(dir, mode string, timeout time.Duration) *bridge.Process {
	p := bridge.NewProcess(os.Args[0], []string{"-test.run=TestHelperProcess", "--"}, dir, timeout)
	p.Env = []string{helperEnv + "=" + mode}
	return p
}

func TestProcessWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	out, err := helperProcess(dir, "pwd", 10*time.Second).Execute(context.Background(), nil)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProcessTimeoutKills(t *testing.T) {
	start := time.Now()
	_, err := helperProcess(t.TempDir(), "sleep", 300*time.Millisecond).Execute(context.Background(), []string{"1"})
	assert.ErrorIs(t, err, bridge.ErrTimeout)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestProcessParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()
	_, err := helperProcess(t.TempDir(), "sleep", 10*time.Second).Execute(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, bridge.ErrTimeout))
}

func TestProcessAbnormalExit(t *testing.T) {
	_, err := helperProcess(t.TempDir(), "fail", 10*time.Second).Execute(context.Background(), nil)
	assert.ErrorIs(t, err, bridge.ErrProcessFailed)
}

func TestClientRoundTripThroughConsole(t *testing.T) {
	dir := t.TempDir()
	client := bridge.NewClient(helperProcess(dir, "console", 10*time.Second))
	ctx := context.Background()

	resp, err := client.Do(ctx, bridge.OrganiserSignup{Name: "Olga", Email: "olga@example.com", Username: "olga", Password: "pass1234"})
	require.NoError(t, err)
	require.Equal(t, bridge.StatusOK, resp.Status)
	require.True(t, resp.HasID())

	store, err := dao.Open(dir, dao.LayoutV2)
	require.NoError(t, err)
	org, err := store.Organisers.FindByID(int32(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "olga", org.Username)

	resp, err = client.Do(ctx, bridge.OrganiserLogin{Username: "olga", Password: "pass1234"})
	require.NoError(t, err)
	assert.Equal(t, bridge.StatusOK, resp.Status)
	assert.Equal(t, int(org.ID), resp.ID)

	resp, err = client.Do(ctx, bridge.OrganiserLogin{Username: "olga", Password: "nope"})
	require.NoError(t, err)
	assert.Equal(t, bridge.StatusRejected, resp.Status)

	resp, err = client.Do(ctx, bridge.AddVendor{EventID: 5, Name: "Food Co", Email: "food@example.com", ProductService: "Catering", ChargesDue: 99.5})
	require.NoError(t, err)
	vendorID := resp.ID

	resp, err = client.Do(ctx, bridge.VendorsByEvent{EventID: 5})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, fmt.Sprint(vendorID), resp.Rows[0]["id"])
	assert.Equal(t, "99.5", resp.Rows[0]["chargesDue"])

	resp, err = client.Do(ctx, bridge.VendorCount{EventID: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
}

func TestClientUnrecognizedOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	runner.EXPECT().Execute(gomock.Any(), []string{"15", "731"}).Return("Segmentation fault\n", nil).Times(1)

	resp, err := bridge.NewClient(runner).Do(context.Background(), bridge.DeleteStaff{StaffID: 731})
	assert.ErrorIs(t, err, bridge.ErrUnrecognizedOutput)
	assert.Equal(t, "Segmentation fault\n", resp.Output)
}

func TestClientRunnerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	runner.EXPECT().Execute(gomock.Any(), gomock.Any()).Return("", bridge.ErrTimeout)

	_, err := bridge.NewClient(runner).Do(context.Background(), bridge.StaffCount{EventID: 1})
	assert.ErrorIs(t, err, bridge.ErrTimeout)
}
