// pkg/workspace/workspace.go

package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/wastevision/visionctl/pkg/input"
	"github.com/wastevision/visionctl/pkg/vision_err"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"github.com/wastevision/visionctl/pkg/xdg"
)

// Setup scaffolds the managed directory tree under cfg.Root. With
// confirm set, the operator sees the planned tree and approves it
// before anything is created. Per-directory failures are aggregated so
// one bad path does not hide the rest.
func Setup(rc *vision_io.RuntimeContext, cfg *Config, confirm bool) error {
	logger := otelzap.Ctx(rc.Ctx)

	rc.Term.Print("\n=== Project Directory Setup ===\n")
	rc.Term.Printf("Base location: %s\n", cfg.Root)

	if err := probeWritable(cfg.Root); err != nil {
		return vision_err.NewExpectedError(cerr.WithHint(err,
			"run setup from a directory you can write to, or adjust the workspace root"))
	}

	rc.Term.Print("\nDirectory structure to be created:\n")
	for _, dir := range cfg.Directories {
		rc.Term.Printf("  %s\n", filepath.Join(cfg.Root, dir))
	}

	if confirm {
		ok, err := input.PromptBool(rc, input.Boolean("Create these directories?").Default(true))
		if err != nil {
			return err
		}
		if !ok {
			rc.Term.Print("Directory creation cancelled.\n")
			return vision_err.NewExpectedError(cerr.New("directory creation cancelled"))
		}
	}

	var result *multierror.Error
	created := 0
	for _, dir := range cfg.Directories {
		full := filepath.Join(cfg.Root, dir)
		existed := dirExists(full)

		if err := xdg.EnsureDir(full); err != nil {
			rc.Term.Errorf("✗ Failed to create %s: %v\n", full, err)
			result = multierror.Append(result, cerr.Wrapf(err, "creating %s", full))
			continue
		}

		if existed {
			rc.Term.Printf("• Already exists: %s\n", full)
		} else {
			rc.Term.Printf("✓ Created: %s\n", full)
			created++
		}
	}

	// Verify after creating: a path can "succeed" and still be missing
	// when a component is a dangling symlink.
	for _, dir := range cfg.Directories {
		full := filepath.Join(cfg.Root, dir)
		if !dirExists(full) {
			result = multierror.Append(result, cerr.Newf("directory missing after setup: %s", full))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return cerr.Wrap(err, "workspace setup incomplete")
	}

	logger.Info("Workspace directories ready",
		zap.String("root", cfg.Root),
		zap.Int("created", created),
		zap.Int("total", len(cfg.Directories)))
	rc.Term.Printf("\nCreated %d new directories (of %d total)\n", created, len(cfg.Directories))
	return nil
}

// UniqueDir returns the first unused path of name, name2, name3...
// under parent. Nothing is created.
func UniqueDir(parent, name string) string {
	for counter := 1; ; counter++ {
		dirName := name
		if counter > 1 {
			dirName = fmt.Sprintf("%s%d", name, counter)
		}
		target := filepath.Join(parent, dirName)
		if _, err := os.Stat(target); os.IsNotExist(err) {
			return target
		}
	}
}

func probeWritable(root string) error {
	if err := xdg.EnsureDir(root); err != nil {
		return cerr.Wrapf(err, "no write permission in %s", root)
	}
	marker := filepath.Join(root, ".permission_test")
	if err := os.WriteFile(marker, nil, xdg.FilePermStandard); err != nil {
		return cerr.Wrapf(err, "no write permission in %s", root)
	}
	return os.Remove(marker)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
