package cli

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licscan/pkg/observability"
)

var stageMessages = map[string]string{
	observability.StageSetup:   "Generating license catalog...",
	observability.StageTree:    "Resolving dependency tree...",
	observability.StageScope:   "Reading production scope...",
	observability.StageCatalog: "Reading license catalog...",
}

// stageHooks logs scan stages and external processes at debug level and
// drives the status spinner, if one is attached.
type stageHooks struct {
	logger *log.Logger

	mu      sync.Mutex
	spinner *Spinner
}

func newStageHooks(logger *log.Logger) *stageHooks {
	return &stageHooks{logger: logger}
}

// register installs h as the process-wide scan and process hooks.
func (h *stageHooks) register() {
	observability.SetScanHooks(h)
	observability.SetProcessHooks(h)
}

// attach routes stage messages to s. A nil s detaches.
func (h *stageHooks) attach(s *Spinner) {
	h.mu.Lock()
	h.spinner = s
	h.mu.Unlock()
}

func (h *stageHooks) OnStageStart(_ context.Context, manager, stage string) {
	h.logger.Debug("stage started", "manager", manager, "stage", stage)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.spinner == nil {
		return
	}
	// Rows have their own progress bar.
	if stage == observability.StageRows {
		h.spinner.Stop()
		return
	}
	if msg, ok := stageMessages[stage]; ok {
		h.spinner.SetMessage(msg)
	}
}

func (h *stageHooks) OnStageComplete(_ context.Context, manager, stage string, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("stage failed", "manager", manager, "stage", stage, "elapsed", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("stage done", "manager", manager, "stage", stage, "count", count, "elapsed", d.Round(time.Millisecond))
}

func (h *stageHooks) OnRecordSkipped(_ context.Context, manager, pkg string, err error) {
	h.logger.Debug("record skipped", "manager", manager, "package", pkg, "err", err)
}

func (h *stageHooks) OnStart(_ context.Context, name string, args []string) {
	h.logger.Debug("exec", "cmd", name, "args", args)
}

func (h *stageHooks) OnExit(_ context.Context, name string, code int, d time.Duration, err error) {
	h.logger.Debug("exit", "cmd", name, "code", code, "elapsed", d.Round(time.Millisecond), "err", err)
}
