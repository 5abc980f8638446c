// pkg/workspace/python.go

package workspace

import (
	"os/exec"
	"strings"

	cerr "github.com/cockroachdb/errors"
	goversion "github.com/hashicorp/go-version"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/wastevision/visionctl/pkg/execute"
	"github.com/wastevision/visionctl/pkg/vision_err"
	"github.com/wastevision/visionctl/pkg/vision_io"
)

var pythonCandidates = []string{"python3", "python"}

// FindPython locates an interpreter on PATH satisfying the version
// spec (e.g. ">= 3.9"). Returns the resolved binary path and its
// parsed version.
func FindPython(rc *vision_io.RuntimeContext, spec string) (string, *goversion.Version, error) {
	logger := otelzap.Ctx(rc.Ctx)

	constraint, err := goversion.NewConstraint(spec)
	if err != nil {
		return "", nil, cerr.Wrapf(err, "invalid python version spec %q", spec)
	}

	var probed []string
	for _, candidate := range pythonCandidates {
		path, lookErr := exec.LookPath(candidate)
		if lookErr != nil {
			continue
		}

		out, runErr := execute.Run(rc.Ctx, execute.Options{
			Command: path,
			Args:    []string{"--version"},
			Capture: true,
			Logger:  rc.Log,
		})
		if runErr != nil {
			logger.Debug("Python probe failed", zap.String("binary", path), zap.Error(runErr))
			continue
		}

		version, parseErr := parsePythonVersion(out)
		if parseErr != nil {
			logger.Debug("Unparseable python version", zap.String("binary", path), zap.String("output", out))
			continue
		}

		probed = append(probed, candidate+" "+version.String())
		if constraint.Check(version) {
			logger.Info("Found suitable python",
				zap.String("binary", path),
				zap.String("version", version.String()),
				zap.String("spec", spec))
			return path, version, nil
		}
	}

	msg := "no python interpreter satisfying " + spec + " found on PATH"
	if len(probed) > 0 {
		msg += " (probed: " + strings.Join(probed, ", ") + ")"
	}
	return "", nil, vision_err.NewDependencyError(msg, nil,
		"Install Python 3.9 or newer",
		"Make sure python3 is on your PATH",
	)
}

// parsePythonVersion extracts a semantic version from output like
// "Python 3.11.4". Some builds print the banner on stderr, which the
// runner folds into the same capture buffer.
func parsePythonVersion(output string) (*goversion.Version, error) {
	fields := strings.Fields(strings.TrimSpace(output))
	if len(fields) == 0 {
		return nil, cerr.New("empty version output")
	}
	raw := fields[len(fields)-1]
	// Truncate pre-release tags like "3.13.0rc1" at the first
	// character that is neither a digit nor a dot.
	if i := strings.IndexFunc(raw, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	}); i > 0 {
		raw = raw[:i]
	}
	raw = strings.TrimSuffix(raw, ".")
	version, err := goversion.NewVersion(raw)
	if err != nil {
		return nil, cerr.Wrapf(err, "parsing python version from %q", output)
	}
	return version, nil
}
