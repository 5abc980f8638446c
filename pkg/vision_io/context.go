// pkg/vision_io/context.go

package vision_io

import (
	"context"
	"os"
	"os/user"
	"runtime"
	"strings"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/wastevision/visionctl/pkg/vision_err"
	"go.uber.org/zap"
)

type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Term       *Terminal
	Timestamp  time.Time
	RunID      string
	Command    string
	Component  string
	Attributes map[string]string
}

// NewContext sets up logging, run identity and terminal IO for one command.
func NewContext(ctx context.Context, cmdName string) *RuntimeContext {
	runID := uuid.New().String()[:8]

	comp, action := resolveCallContext(3)
	logger := zap.L().With(
		zap.String("component", comp),
		zap.String("action", action),
		zap.String("run_id", runID),
	).Named(comp)

	logEnv(logger)

	return &RuntimeContext{
		Ctx:        ctx,
		Log:        logger,
		Term:       DefaultTerminal(),
		Timestamp:  time.Now(),
		RunID:      runID,
		Command:    cmdName,
		Component:  comp,
		Attributes: make(map[string]string),
	}
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("panic recovered", zap.Any("panic", r))
	}
}

// End logs the command outcome with its duration.
func (rc *RuntimeContext) End(errPtr *error) {
	duration := time.Since(rc.Timestamp)

	if *errPtr == nil {
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
		return
	}

	rc.Log.Error("Command failed",
		zap.Duration("duration", duration),
		zap.Error(*errPtr),
		zap.String("error_type", classifyError(*errPtr)),
	)
}

func logEnv(log *zap.Logger) {
	if u, err := user.Current(); err == nil {
		log.Debug("user context",
			zap.String("username", u.Username),
			zap.String("uid", u.Uid),
			zap.String("home", u.HomeDir),
		)
	}
	if exe, err := os.Executable(); err == nil {
		log.Debug("executable path", zap.String("path", exe))
	}
}

func resolveCallContext(skip int) (component, action string) {
	pc, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", "unknown"
	}
	parts := strings.Split(file, "/")
	if len(parts) >= 2 {
		component = parts[len(parts)-2]
	} else {
		component = strings.TrimSuffix(file, ".go")
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		name := fn.Name()
		fields := strings.Split(name, ".")
		action = fields[len(fields)-1]
	} else {
		action = "unknown"
	}
	return
}

func classifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case vision_err.IsInterrupt(err):
		return "interrupt"
	case vision_err.IsExpectedUserError(err):
		return "user"
	default:
		return "system"
	}
}
