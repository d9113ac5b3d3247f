package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qos-sim/qos-sim/sim"
	"github.com/qos-sim/qos-sim/sim/workload"
)

var (
	// Traffic generation flags
	seed         int64   // Seed for random packet generation
	numPackets   int     // Number of packets to generate
	arrivalRate  float64 // Packets arrival per second
	trafficModel string  // Arrival process (poisson, bursty)
	scenarioFile string  // Optional YAML scenario overriding the flags above

	// Discipline flags
	discipline string // Queue discipline to simulate (run command)
	capacity   int    // Buffer capacity in packets (0 = unbounded)
	classifier string // Flow classifier (priority, modulo)
	numQueues  int    // Number of round-robin sub-queues

	// Engine flags
	onInvalid string // Invalid-packet handling (reject-and-continue, abort)
	logLevel  string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "qos-sim",
	Short: "Discrete-event simulator for packet-scheduling disciplines",
}

// loadScenario builds the effective scenario from the YAML file or flags.
func loadScenario() *workload.ScenarioSpec {
	if scenarioFile != "" {
		spec, err := workload.LoadScenario(scenarioFile)
		if err != nil {
			logrus.Fatalf("unable to load scenario: %v", err)
		}
		return spec
	}
	spec := workload.DefaultScenario()
	spec.Seed = seed
	spec.NumPackets = numPackets
	spec.ArrivalRate = arrivalRate
	spec.TrafficModel = trafficModel
	spec.Capacity = capacity
	if err := spec.Validate(); err != nil {
		logrus.Fatalf("invalid parameters: %v", err)
	}
	return spec
}

// simulate runs one discipline over the given packets and returns its summary.
func simulate(name string, spec *workload.ScenarioSpec, packets []*sim.Packet) *sim.Summary {
	cfg := sim.DisciplineConfig{
		Capacity:  spec.Capacity,
		NumQueues: numQueues,
	}
	// An empty classifier flag keeps each discipline's own default: priority
	// flows for the flow-aware disciplines, sequence-id sub-queue spreading
	// for round-robin.
	if classifier != "" {
		cfg.Classifier = sim.NewFlowClassifier(classifier, numQueues)
	}
	d := sim.NewDiscipline(name, cfg)
	engine := sim.NewEngine(d, sim.EngineConfig{OnInvalid: onInvalid})
	result, err := engine.Run(packets)
	if err != nil {
		logrus.Fatalf("run aborted: %v", err)
	}
	return result.Summarize()
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd simulates a single discipline using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one queue discipline over a generated packet sequence",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if !sim.IsValidDiscipline(discipline) {
			logrus.Fatalf("unknown discipline %q; valid disciplines: %v", discipline, sim.ValidDisciplines())
		}

		spec := loadScenario()
		packets := workload.NewGenerator(spec.Seed).GeneratePackets(spec)
		logrus.Infof("Starting simulation: %d packets, discipline=%s, capacity=%d",
			len(packets), discipline, spec.Capacity)

		summary := simulate(discipline, spec, packets)
		summary.Print()
	},
}

// compareCmd runs every requested discipline on one shared packet sequence
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare disciplines on an identical packet sequence",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		spec := loadScenario()
		disciplines := spec.Disciplines
		if len(disciplines) == 0 {
			disciplines = sim.ValidDisciplines()
		}
		for _, name := range disciplines {
			if !sim.IsValidDiscipline(name) {
				logrus.Fatalf("unknown discipline %q; valid disciplines: %v", name, sim.ValidDisciplines())
			}
		}

		packets := workload.NewGenerator(spec.Seed).GeneratePackets(spec)
		logrus.Infof("Comparing %d disciplines over %d packets (capacity=%d)",
			len(disciplines), len(packets), spec.Capacity)

		summaries := make([]*sim.Summary, 0, len(disciplines))
		for _, name := range disciplines {
			// Each discipline gets a fresh copy of the same sequence.
			summaries = append(summaries, simulate(name, spec, sim.ClonePackets(packets)))
		}
		printComparison(summaries)
	},
}

// printComparison renders the per-discipline result table.
func printComparison(summaries []*sim.Summary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DISCIPLINE\tCOMPLETED\tDROPPED\tDROP%\tAVG LATENCY\tAVG WAIT\tTHROUGHPUT\tFAIR(PKT)\tFAIR(FLOW)")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\t%.3fs\t%.3fs\t%.3f/s\t%.4f\t%.4f\n",
			s.Discipline, s.Completed, s.Dropped, s.DropRate*100,
			s.AvgLatency, s.AvgWaitingTime, s.Throughput,
			s.FairnessPerPacket, s.FairnessPerFlow)
	}
	if err := w.Flush(); err != nil {
		logrus.Fatalf("writing comparison table: %v", err)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, cmd := range []*cobra.Command{runCmd, compareCmd} {
		cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random packet generation")
		cmd.Flags().IntVar(&numPackets, "packets", 100, "Number of packets to generate")
		cmd.Flags().Float64Var(&arrivalRate, "rate", 2.0, "Packet arrivals per second")
		cmd.Flags().StringVar(&trafficModel, "traffic", "poisson", "Traffic model (poisson, bursty)")
		cmd.Flags().StringVar(&scenarioFile, "scenario", "", "YAML scenario file (overrides generation flags)")

		cmd.Flags().IntVar(&capacity, "capacity", 0, "Buffer capacity in packets (0 = unbounded)")
		cmd.Flags().StringVar(&classifier, "classifier", "", "Flow classifier (priority, modulo); empty keeps each discipline's default")
		cmd.Flags().IntVar(&numQueues, "rr-queues", sim.DefaultRRQueues, "Number of round-robin sub-queues")

		cmd.Flags().StringVar(&onInvalid, "on-invalid", sim.OnInvalidReject, "Invalid packet handling (reject-and-continue, abort)")
		cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	}
	runCmd.Flags().StringVar(&discipline, "discipline", "fcfs", "Queue discipline (fcfs, priority, round-robin, fair-queue, las)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
