package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/impair-sim/impair-sim/internal/monitoring"
	"github.com/impair-sim/impair-sim/sim"
	"github.com/impair-sim/impair-sim/sim/trace"
	"github.com/impair-sim/impair-sim/sim/traffic"
)

var (
	// Run control
	seed         int64   // Seed for all random draws
	ticks        int     // Number of simulation ticks
	tickInterval float64 // Simulated seconds per tick
	logLevel     string  // Log verbosity level

	// Link impairment profile
	latencyMin    float64 // Min ordinary latency (seconds)
	latencyMax    float64 // Max ordinary latency (seconds)
	lossRate      float64 // Packet loss probability
	burstProb     float64 // Burst onset probability per enqueue
	burstDuration float64 // Burst window length (seconds)
	burstLatency  float64 // Mean added latency while bursting (seconds)

	// Traffic shape
	topic          string  // Topic label on generated packets
	packetsPerTick int     // Packets enqueued per tick
	payloadMean    float64 // Mean payload size (bytes)
	payloadStdev   float64 // Payload size standard deviation
	payloadMin     int     // Min payload size
	payloadMax     int     // Max payload size

	// Outputs
	scenarioPath string // YAML scenario file overriding flags
	traceOut     string // JSONL delivery trace output path
	metricsAddr  string // Address for the Prometheus /metrics endpoint
	linkName     string // Label for metrics
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "impair-sim",
	Short: "Discrete-event network impairment simulator for V2X links",
}

// runCmd drives one impaired link with synthetic traffic and reports
// delivery statistics.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a link impairment simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", logLevel)
		}
		logrus.SetLevel(level)

		config := sim.Config{
			MinLatency:       latencyMin,
			MaxLatency:       latencyMax,
			LossRate:         lossRate,
			BurstProbability: burstProb,
			BurstDuration:    burstDuration,
			BurstLatencyMean: burstLatency,
		}
		spec := traffic.Spec{
			Topic:          topic,
			PacketsPerTick: packetsPerTick,
			Size: traffic.SizeDist{
				Kind:   "gaussian",
				Mean:   payloadMean,
				StdDev: payloadStdev,
				Min:    payloadMin,
				Max:    payloadMax,
			},
		}
		runSeed, runTicks, runInterval := seed, ticks, tickInterval

		if scenarioPath != "" {
			sc, err := LoadScenario(scenarioPath)
			if err != nil {
				return err
			}
			if err := sc.Validate(); err != nil {
				return fmt.Errorf("invalid scenario %s: %w", scenarioPath, err)
			}
			if sc.Link != nil {
				config = *sc.Link
			}
			if sc.Traffic != nil {
				spec = *sc.Traffic
			}
			if sc.Run.Seed != nil {
				runSeed = *sc.Run.Seed
			}
			if sc.Run.Ticks != nil {
				runTicks = *sc.Run.Ticks
			}
			if sc.Run.TickInterval != nil {
				runInterval = *sc.Run.TickInterval
			}
		}

		var observer sim.Observer
		if metricsAddr != "" {
			monitoring.Serve(metricsAddr)
			observer = monitoring.NewLinkObserver(linkName)
		}

		harness, err := sim.NewHarness(config, spec, sim.NewSimulationKey(runSeed), observer)
		if err != nil {
			return err
		}

		logrus.Infof("starting run: %d ticks x %.3fs, latency %.0f-%.0fms, loss %.0f%%, burst %.0f%%",
			runTicks, runInterval, 1000*config.MinLatency, 1000*config.MaxLatency,
			100*config.LossRate, 100*config.BurstProbability)

		if err := harness.Run(runTicks, runInterval); err != nil {
			return err
		}
		harness.Flush()

		harness.Link().Stats().Print()
		printSummary(trace.Summarize(harness.Trace()))

		if traceOut != "" {
			if err := writeTrace(harness.Trace(), traceOut); err != nil {
				return err
			}
			logrus.Infof("wrote delivery trace to %s", traceOut)
		}
		return nil
	},
}

func printSummary(s *trace.Summary) {
	fmt.Printf("Run ID            : %s\n", s.RunID)
	fmt.Printf("Reordered         : %d (%.1f%%)\n", s.ReorderedCount, 100*s.ReorderedRatio)
	if s.Delivered > 0 {
		fmt.Printf("Delay p50/p95/p99 : %.0f/%.0f/%.0f ms\n",
			1000*s.P50Delay, 1000*s.P95Delay, 1000*s.P99Delay)
		fmt.Printf("Max Delay         : %.0f ms\n", 1000*s.MaxDelay)
	}
}

func writeTrace(rt *trace.RunTrace, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	if err := rt.WriteJSONL(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for all random draws")
	runCmd.Flags().IntVar(&ticks, "ticks", 1000, "Number of simulation ticks")
	runCmd.Flags().Float64Var(&tickInterval, "tick-interval", 0.05, "Simulated seconds per tick")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().Float64Var(&latencyMin, "latency-min", 0.050, "Min ordinary latency (seconds)")
	runCmd.Flags().Float64Var(&latencyMax, "latency-max", 0.300, "Max ordinary latency (seconds)")
	runCmd.Flags().Float64Var(&lossRate, "loss", 0.10, "Packet loss probability [0,1]")
	runCmd.Flags().Float64Var(&burstProb, "burst", 0.05, "Burst onset probability per enqueue [0,1]")
	runCmd.Flags().Float64Var(&burstDuration, "burst-duration", 0.500, "Burst window length (seconds)")
	runCmd.Flags().Float64Var(&burstLatency, "burst-latency", 0.800, "Mean added latency while bursting (seconds)")

	runCmd.Flags().StringVar(&topic, "topic", "telemetry", "Topic label on generated packets")
	runCmd.Flags().IntVar(&packetsPerTick, "packets-per-tick", 10, "Packets enqueued per tick")
	runCmd.Flags().Float64Var(&payloadMean, "payload-mean", 200, "Mean payload size (bytes)")
	runCmd.Flags().Float64Var(&payloadStdev, "payload-stdev", 40, "Payload size standard deviation")
	runCmd.Flags().IntVar(&payloadMin, "payload-min", 64, "Min payload size (bytes)")
	runCmd.Flags().IntVar(&payloadMax, "payload-max", 512, "Max payload size (bytes)")

	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (overrides profile flags)")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write delivery trace as JSONL to this path")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	runCmd.Flags().StringVar(&linkName, "link-name", "v2x", "Link label used in metrics")

	rootCmd.AddCommand(runCmd)
}
