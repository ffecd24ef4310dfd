package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/internal/api"
	"github.com/nodoff/nodoff/internal/config"
	daemonpkg "github.com/nodoff/nodoff/internal/daemon"
	"github.com/nodoff/nodoff/internal/power"
	"github.com/nodoff/nodoff/internal/sched"
	"github.com/nodoff/nodoff/internal/server"
	"github.com/nodoff/nodoff/pkg/logger"
)

// DaemonComponents holds all initialized daemon components.
// This allows for unified initialization and cleanup across
// console mode and Windows service mode.
type DaemonComponents struct {
	Config *config.Config
	Engine *sched.Engine
	Power  power.Dispatcher
	Api    *api.Api
	Pool   *server.Pool
	Web    *server.WebServer
	Server *server.Server
	Runner *daemonpkg.Runner
	Logger logger.Logger

	logFile *os.File
}

// initDaemonComponents initializes all daemon components with the provided
// bootstrap logger. This is the shared initialization used by both console
// mode and Windows service mode.
//
// On error, any partially initialized components are cleaned up before
// returning.
var initDaemonComponents = func(bootLog logger.Logger) (*DaemonComponents, error) {
	cfg, err := config.Load(bootLog)
	if err != nil {
		return nil, err
	}

	dlog, logFile, err := buildDaemonLogger(cfg)
	if err != nil {
		bootLog.Error("log setup failed: %v", err)
		return nil, err
	}

	disp := power.New(dlog, cfg.Dispatch)
	engine := sched.New(dlog, disp, &sched.Options{Tick: cfg.Tick})

	apiS, err := api.NewApi(dlog, engine, disp,
		currentBuildArgs.Version, currentBuildArgs.Commit, currentBuildArgs.BuildType)
	if err != nil {
		dlog.Error("api initialization failed: %v", err)
		_ = engine.Close()
		_ = disp.Close()
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}

	pool := server.NewPool(dlog)
	var web *server.WebServer
	if cfg.RPC.Enabled {
		web = server.NewWebServer(dlog, apiS, &server.RPCConfig{
			Secret:    cfg.RPC.Secret,
			Version:   currentBuildArgs.Version,
			Commit:    currentBuildArgs.Commit,
			BuildType: currentBuildArgs.BuildType,
		}, cfg.RPC.Port)
	}

	serv := server.NewServer(dlog, pool, web, cfg.SocketPath, common.DefaultTCPPort)
	apiS.RegisterHandlers(serv)

	runner := daemonpkg.New(
		&daemonpkg.Config{ShutdownTimeout: 5 * time.Second},
		&daemonpkg.Dependencies{Serve: serv.Start},
	)
	// The stop handler replies first and then brings the runner down.
	apiS.SetShutdownFunc(func() { _ = runner.Shutdown() })

	c := &DaemonComponents{
		Config:  cfg,
		Engine:  engine,
		Power:   disp,
		Api:     apiS,
		Pool:    pool,
		Web:     web,
		Server:  serv,
		Runner:  runner,
		Logger:  dlog,
		logFile: logFile,
	}
	go c.pumpEvents()
	return c, nil
}

// buildDaemonLogger assembles the daemon logger from the configuration:
// stderr always, plus the configured log file, filtered by level.
func buildDaemonLogger(cfg *config.Config) (logger.Logger, *os.File, error) {
	var out logger.Logger = logger.NewStandardLogger(log.Default())
	var f *os.File
	if cfg.Log.File != "" {
		var err error
		f, err = os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		fileLog := logger.NewStandardLogger(log.New(f, "", log.LstdFlags))
		out = logger.NewMultiLogger(out, fileLog)
	}
	return logger.NewLevelLogger(cfg.Log.Level, out), f, nil
}

// pumpEvents fans engine events out to attached socket connections and
// WebSocket feeds. It exits when the engine closes its event channel.
func (c *DaemonComponents) pumpEvents() {
	for ev := range c.Engine.Events() {
		u := api.TickingUpdate(ev)
		c.Pool.Broadcast(server.MakeResult(common.UPDATE_TICKING, u))
		if c.Web != nil {
			c.Web.PushTicking(u)
		}
	}
}

// Run blocks serving requests until ctx is cancelled or the serve loop
// fails. A cancelled context is a clean exit.
func (c *DaemonComponents) Run(ctx context.Context) error {
	_ = daemonpkg.NotifyReady()
	defer func() { _ = daemonpkg.NotifyStopping() }()
	err := c.Runner.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close releases all daemon component resources in reverse order of
// initialization. Closing the engine cancels a still running schedule,
// so no action can fire while the daemon is going down.
func (c *DaemonComponents) Close() {
	if c.Server != nil {
		_ = c.Server.Shutdown()
	}
	if c.Api != nil {
		_ = c.Api.Close()
	}
	if c.Logger != nil {
		c.Logger.Info("daemon stopped")
	}
	if c.logFile != nil {
		_ = c.logFile.Close()
	}
}

// RunDaemon runs the scheduling daemon in the foreground until a
// shutdown signal or a stop request arrives.
func RunDaemon(bArgs BuildArgs) error {
	currentBuildArgs = bArgs
	bootLog := logger.NewStandardLogger(log.Default())
	if err := CleanupStalePidFile(); err != nil {
		return err
	}
	comps, err := initDaemonComponents(bootLog)
	if err != nil {
		return err
	}
	defer comps.Close()
	if err := WritePidFile(); err != nil {
		comps.Logger.Warning("could not write pidfile: %v", err)
	}
	defer func() { _ = RemovePidFile() }()
	ctx, cancel := setupShutdownHandler()
	defer cancel()
	comps.Logger.Info("daemon ready")
	return comps.Run(ctx)
}
