package api

import (
	"github.com/nodoff/nodoff/common"
	"github.com/nodoff/nodoff/internal/power"
	"github.com/nodoff/nodoff/internal/sched"
	"github.com/nodoff/nodoff/internal/server"
	"github.com/nodoff/nodoff/pkg/logger"
)

// Api glues the scheduling engine and the power dispatcher to the
// daemon's request surfaces. The framed socket handlers and the
// JSON-RPC methods both route through it.
type Api struct {
	log       logger.Logger
	engine    *sched.Engine
	power     power.Dispatcher
	version   string
	commit    string
	buildType string
	shutdown  func()
}

func NewApi(l logger.Logger, engine *sched.Engine, disp power.Dispatcher, version, commit, buildType string) (*Api, error) {
	return &Api{
		log:       l,
		engine:    engine,
		power:     disp,
		version:   version,
		commit:    commit,
		buildType: buildType,
	}, nil
}

// SetShutdownFunc installs the callback the stop handler invokes to
// bring the daemon down. Wired after construction because the runner
// that owns the callback needs the Api first.
func (s *Api) SetShutdownFunc(fn func()) {
	s.shutdown = fn
}

func (s *Api) RegisterHandlers(serv *server.Server) {
	serv.RegisterHandler(common.UPDATE_SCHEDULE, s.scheduleHandler)
	serv.RegisterHandler(common.UPDATE_CANCEL, s.cancelHandler)
	serv.RegisterHandler(common.UPDATE_STATUS, s.statusHandler)
	serv.RegisterHandler(common.UPDATE_RESET, s.resetHandler)
	serv.RegisterHandler(common.UPDATE_ATTACH, s.attachHandler)
	serv.RegisterHandler(common.UPDATE_DETACH, s.detachHandler)
	serv.RegisterHandler(common.UPDATE_ACTIONS, s.actionsHandler)
	serv.RegisterHandler(common.UPDATE_VERSION, s.versionHandler)
	serv.RegisterHandler(common.UPDATE_STOP, s.stopHandler)
}

func (s *Api) Close() error {
	err := s.engine.Close()
	if cerr := s.power.Close(); err == nil {
		err = cerr
	}
	return err
}
