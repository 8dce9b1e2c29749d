package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vietanh2810/eventdesk/internal/bridge"
	"github.com/vietanh2810/eventdesk/internal/config"
	"github.com/vietanh2810/eventdesk/internal/facade"
	"github.com/vietanh2810/eventdesk/internal/logger"
	"github.com/vietanh2810/eventdesk/internal/reconcile"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

const defaultConfigPath = "./cmd/app/config.yml"

// Start runs the eventdesk command line.
func Start() error {
	return newRootCmd().Execute()
}

// runtime is everything one command needs over one data directory.
type runtime struct {
	conf      *config.AppConfig
	store     *dao.Store
	queue     *reconcile.Queue
	projector *reconcile.Projector
	facade    *facade.Facade
}

func bootstrap(configPath string) (*runtime, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}

	layout, err := dao.ParseLayout(conf.Store.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse store layout -> %w", err)
	}

	dataDir, err := filepath.Abs(conf.Store.DataDir)
	if err != nil {
		return nil, fmt.Errorf("filepath.Abs -> %w", err)
	}

	store, err := dao.Open(dataDir, layout)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory -> %w", err)
	}

	process := bridge.NewProcess(conf.Bridge.Executable, conf.Bridge.Args, dataDir, conf.Bridge.Timeout)
	client := bridge.NewClient(process)
	settle := reconcile.NewReconciler(conf.Bridge.SettleDelay)

	queue := reconcile.NewQueue()
	projector := reconcile.NewProjector(store)

	zap.L().Debug("runtime ready",
		zap.String("data_dir", dataDir),
		zap.Stringer("layout", layout),
		zap.String("console", conf.Bridge.Executable),
	)

	return &runtime{
		conf:      conf,
		store:     store,
		queue:     queue,
		projector: projector,
		facade:    facade.New(queue, projector, facade.NewServices(store, client, settle)),
	}, nil
}

func (r *runtime) close() {
	r.queue.Close()
	_ = zap.L().Sync()
}

// checkLayout refuses to run over files written under another layout.
func (r *runtime) checkLayout() error {
	if err := r.store.Verify(); err != nil {
		return fmt.Errorf("data files do not match layout %s, run migrate -> %w", r.store.Layout, err)
	}
	return nil
}

func (r *runtime) rebuild(ctx context.Context, trigger string) error {
	res := r.facade.Rebuild(ctx, trigger)
	if !res.OK {
		return fmt.Errorf("projection rebuild failed: %s", res.Message)
	}
	return nil
}
