package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojs/internal/logging"
)

// profileFlags holds the output paths for the optional runtime profiles.
type profileFlags struct {
	cpu    string
	memory string
	trace  string
}

func (p *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.cpu, "cpuprofile", "", "write CPU profile to file")
	cmd.Flags().StringVar(&p.memory, "memprofile", "", "write memory profile to file")
	cmd.Flags().StringVar(&p.trace, "trace", "", "write execution trace to file")
}

// start begins the requested profiles. The returned function stops them and
// writes the heap profile; it is safe to call when nothing was requested.
func (p *profileFlags) start() (func(), error) {
	var stops []func() error

	stopAll := func() {
		logger := logging.Default()
		for i := len(stops) - 1; i >= 0; i-- {
			if err := stops[i](); err != nil {
				logger.Warn("profile", logging.FieldError, err)
			}
		}
	}

	if p.cpu != "" {
		file, err := os.Create(p.cpu)
		if err != nil {
			return nil, fmt.Errorf("create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(file); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("start cpu profile: %w", err)
		}
		stops = append(stops, func() error {
			pprof.StopCPUProfile()
			return file.Close()
		})
	}

	if p.trace != "" {
		file, err := os.Create(p.trace)
		if err != nil {
			stopAll()
			return nil, fmt.Errorf("create trace: %w", err)
		}
		if err := trace.Start(file); err != nil {
			_ = file.Close()
			stopAll()
			return nil, fmt.Errorf("start trace: %w", err)
		}
		stops = append(stops, func() error {
			trace.Stop()
			return file.Close()
		})
	}

	if p.memory != "" {
		path := p.memory
		stops = append(stops, func() error {
			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create memory profile: %w", err)
			}
			runtime.GC()
			return errors.Join(pprof.WriteHeapProfile(file), file.Close())
		})
	}

	return stopAll, nil
}
