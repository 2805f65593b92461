package engine

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/bspgraph/bsp/internal/bsplog"
)

// Options configures an Engine: a flat struct, built either by hand or by
// FlagsToOptions from the command line.
type Options struct {
	NumPartitions    uint32 // Number of partitions (and thus devices) to shard the graph across.
	DeviceMode       string // gocca device mode: "Serial", "OpenMP", "CUDA", "OpenCL", "HIP".
	QueueMultiplier  uint8  // 2^n multiplier applied to each outbox's worst-case fan-out capacity.
	DebugLevel       uint8  // 0 for info, 1 for debug, 2+ for trace.
	ColourOutput     bool   // If true, colour terminal stdout output.
	Profile          bool   // If true, log per-superstep phase timings.
	PprofAddr        string // If non-empty, serve pprof on this address:port.
	CheckCorrectness bool   // If true, compare the final result against a gonum oracle.
	Name             string // Name of the input graph file.
}

// FlagsToOptions declares the engine's command line flags, parses them,
// and derives an Options from the result. Callers may declare their own
// flags before calling this.
func FlagsToOptions() (opts Options) {
	graphPtr := flag.String("g", "", "Edge list file.")
	partsPtr := flag.Int("p", runtime.NumCPU(), "Number of partitions.")
	modePtr := flag.String("mode", "Serial", "gocca device mode: Serial, OpenMP, CUDA, OpenCL, HIP.")
	mqPtr := flag.Int("m", 8, "Multiplier for outbox capacity. 2^n.")
	checkPtr := flag.Bool("c", false, "Compare the result against a gonum oracle.")
	profilePtr := flag.Bool("profile", false, "Log per-superstep phase timings.")
	pprofPtr := flag.String("pprof", "", "If set, serve pprof on the given address:port.")
	debugPtr := flag.Int("debug", 0, "0 for info, 1 for debug, 2+ for trace.")
	colourPtr := flag.Bool("nc", false, "Disable coloured log output.")
	flag.Parse()

	if !*colourPtr {
		bsplog.SetConsole(false)
	} else {
		bsplog.SetConsole(true)
	}
	bsplog.SetLevel(*debugPtr)

	if *graphPtr == "" {
		log.Info().Msg("Note: not all options apply to every algorithm.")
		flag.Usage()
		os.Exit(1)
	}

	if *pprofPtr != "" {
		go func() {
			log.Info().Msg("pprof starting on " + *pprofPtr)
			if err := http.ListenAndServe(*pprofPtr, nil); err != nil {
				log.Error().Err(err).Msg("pprof failed to start.")
			}
		}()
	}

	parts := *partsPtr
	if parts <= 0 {
		log.Panic().Msg("Invalid partition count.")
	}

	return Options{
		Name:             *graphPtr,
		NumPartitions:    uint32(parts),
		DeviceMode:       *modePtr,
		QueueMultiplier:  uint8(*mqPtr),
		DebugLevel:       uint8(*debugPtr),
		ColourOutput:     !*colourPtr,
		Profile:          *profilePtr,
		PprofAddr:        *pprofPtr,
		CheckCorrectness: *checkPtr,
	}
}

func (o Options) String() string {
	return fmt.Sprintf("partitions=%d mode=%s debug=%d", o.NumPartitions, o.DeviceMode, o.DebugLevel)
}
