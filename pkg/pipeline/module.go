// pkg/pipeline/module.go

package pipeline

import (
	"github.com/wastevision/visionctl/pkg/console"
	"github.com/wastevision/visionctl/pkg/vision_io"
	"github.com/wastevision/visionctl/pkg/workspace"
)

// Module wires the pipeline targets into a console registry. The
// interactive menu and the non-interactive commands dispatch through
// the same handlers: menu invocations carry no keyword arguments and
// prompt for everything, command invocations pass interactive=false
// plus resolved flag values.
type Module struct{}

func (Module) Register(r *console.Registry) {
	r.Register("pipeline.train", console.Target{
		"run":      runTrain,
		"describe": describeTrain,
	})
	r.Register("pipeline.detect", console.Target{
		"run":      runDetect,
		"describe": describeDetect,
	})
	r.Register("pipeline.export", console.Target{
		"run":      runExport,
		"describe": describeExport,
	})
	r.Register("pipeline.install", console.Target{
		"run":      runInstall,
		"describe": describeInstall,
		"_probe":   runProbe,
	})
}

func loadConfig(rc *vision_io.RuntimeContext, args console.Args) (*workspace.Config, error) {
	return workspace.Load(rc, args.String("config", ""))
}

func runTrain(rc *vision_io.RuntimeContext, args console.Args) (interface{}, error) {
	cfg, err := loadConfig(rc, args)
	if err != nil {
		return nil, err
	}
	s := trainSettingsFromArgs(cfg, args)
	if args.Bool("interactive", true) {
		if s, err = promptTrainSettings(rc, cfg); err != nil {
			return nil, err
		}
	}
	if _, err := Train(rc, cfg, s); err != nil {
		return nil, err
	}
	return nil, nil
}

func describeTrain(rc *vision_io.RuntimeContext, args console.Args) (interface{}, error) {
	cfg, err := loadConfig(rc, args)
	if err != nil {
		return nil, err
	}
	return trainSettingsFromArgs(cfg, args).summary(), nil
}

func runDetect(rc *vision_io.RuntimeContext, args console.Args) (interface{}, error) {
	cfg, err := loadConfig(rc, args)
	if err != nil {
		return nil, err
	}
	s := detectSettingsFromArgs(cfg, args)
	if args.Bool("interactive", true) {
		if s, err = promptDetectSettings(rc, cfg); err != nil {
			return nil, err
		}
	}
	if _, err := Detect(rc, cfg, s); err != nil {
		return nil, err
	}
	return nil, nil
}

func describeDetect(rc *vision_io.RuntimeContext, args console.Args) (interface{}, error) {
	cfg, err := loadConfig(rc, args)
	if err != nil {
		return nil, err
	}
	return detectSettingsFromArgs(cfg, args).summary(), nil
}

func runExport(rc *vision_io.RuntimeContext, args console.Args) (interface{}, error) {
	cfg, err := loadConfig(rc, args)
	if err != nil {
		return nil, err
	}
	s := exportSettingsFromArgs(cfg, args)
	if args.Bool("interactive", true) {
		if s, err = promptExportSettings(rc, cfg); err != nil {
			return nil, err
		}
	}
	if _, err := Export(rc, cfg, s); err != nil {
		return nil, err
	}
	return nil, nil
}

func describeExport(rc *vision_io.RuntimeContext, args console.Args) (interface{}, error) {
	cfg, err := loadConfig(rc, args)
	if err != nil {
		return nil, err
	}
	return exportSettingsFromArgs(cfg, args).summary(), nil
}

func runInstall(rc *vision_io.RuntimeContext, args console.Args) (interface{}, error) {
	cfg, err := loadConfig(rc, args)
	if err != nil {
		return nil, err
	}
	s := installSettingsFromArgs(cfg, args)
	if args.Bool("interactive", true) {
		if s, err = promptInstallSettings(rc, cfg); err != nil {
			return nil, err
		}
	}
	if err := Install(rc, cfg, s); err != nil {
		return nil, err
	}
	return nil, nil
}

func describeInstall(rc *vision_io.RuntimeContext, args console.Args) (interface{}, error) {
	cfg, err := loadConfig(rc, args)
	if err != nil {
		return nil, err
	}
	return installSettingsFromArgs(cfg, args).summary(), nil
}

func runProbe(rc *vision_io.RuntimeContext, args console.Args) (interface{}, error) {
	cfg, err := loadConfig(rc, args)
	if err != nil {
		return nil, err
	}
	return probeInstall(cfg), nil
}
