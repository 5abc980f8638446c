// pkg/pipeline/pipeline.go

// Package pipeline drives the external YOLO toolchain. Training,
// detection, export and dependency installation each pair an
// interactive form with a flag-friendly settings struct, run the
// toolchain as a subprocess scoped to the managed venv, and register
// behind a console target so the menu and the cobra commands share
// one implementation.
package pipeline

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/wastevision/visionctl/pkg/execute"
	"github.com/wastevision/visionctl/pkg/vision_err"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"github.com/wastevision/visionctl/pkg/workspace"
)

// Subprocess budgets. Training is open-ended and installs pull wheels
// over the network, so both get generous ceilings.
const (
	trainTimeout   = 24 * time.Hour
	detectTimeout  = 2 * time.Hour
	exportTimeout  = 30 * time.Minute
	installTimeout = 30 * time.Minute
)

const yoloBinary = "yolo"

// runVenvTool invokes a toolchain binary inside the venv, streaming
// its output to the operator while keeping a capture buffer for
// failure summaries.
func runVenvTool(rc *vision_io.RuntimeContext, cfg *workspace.Config, timeout time.Duration, command string, args ...string) (string, error) {
	out, err := execute.Run(rc.Ctx, execute.Options{
		Command: command,
		Args:    args,
		Env:     workspace.VenvEnv(cfg),
		Timeout: timeout,
		Capture: true,
		Stream:  rc.Term.Out(),
		Logger:  rc.Log,
	})
	if err != nil {
		otelzap.Ctx(rc.Ctx).Error("Toolchain invocation failed",
			zap.String("command", command),
			zap.Strings("args", args),
			zap.String("summary", vision_err.ExtractSummary(out, 2)),
		)
	}
	return out, err
}

// checkSettings gates a settings struct before any subprocess runs.
// Violations are operator mistakes, not bugs.
func checkSettings(kind string, s interface{}) error {
	if err := validator.New().Struct(s); err != nil {
		return vision_err.NewValidationError(
			"invalid "+kind+" settings: "+err.Error(),
			"Check the values against their documented ranges",
		)
	}
	return nil
}

// kv renders one yolo CLI argument. The toolchain takes key=value
// pairs rather than flags.
func kv(key, value string) string {
	return key + "=" + value
}

// pythonBool renders a bool the way the toolchain's CLI parser
// expects it.
func pythonBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// summarize renders a settings listing for describe entry points and
// pre-run confirmation output.
func summarize(title string, pairs [][2]string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for _, p := range pairs {
		b.WriteString("  ")
		b.WriteString(p[0])
		b.WriteString(": ")
		b.WriteString(p[1])
		b.WriteString("\n")
	}
	return b.String()
}
