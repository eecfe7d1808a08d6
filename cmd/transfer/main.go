package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	kitlog "github.com/go-kit/kit/log"

	"github.com/astrionics/ott"
	"github.com/astrionics/ott/nlp"
)

// This tool only reads a scenario file, solves the transfer and reports.

const defaultScenario = "~~unset~~"

var (
	scenario string
	csvPath  string
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "transfer scenario TOML file")
	flag.StringVar(&csvPath, "csv", "", "path to save the solved trajectory as CSV")
	flag.BoolVar(&verbose, "verbose", false, "log assembly and solver progress")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	sc, err := ott.LoadScenario(scenario)
	if err != nil {
		log.Fatalf("loading scenario: %s", err)
	}
	transfer, err := sc.NewTransfer()
	if err != nil {
		log.Fatalf("building transfer: %s", err)
	}
	if verbose {
		klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
		transfer.SetLogger(kitlog.With(klog, "scenario", sc.Name))
	}

	sol, err := transfer.Solve(nlp.NewAugLag())
	if err == ott.ErrNotConverged {
		log.Fatalf("%s (worst violation %e)", err, sol.Infeasibility)
	} else if err != nil {
		log.Fatalf("solving: %s", err)
	}

	fmt.Printf("fuel cost: %f", sol.Fuel)
	if sc.FuelBudget > 0 {
		if sol.Fuel <= sc.FuelBudget {
			fmt.Printf(" (within budget %f)", sc.FuelBudget)
		} else {
			fmt.Printf(" (OVER budget %f)", sc.FuelBudget)
		}
	}
	fmt.Println()

	if report := transfer.Audit(sol, 1e-6); len(report) > 0 {
		for _, violation := range report {
			fmt.Println(violation)
		}
		os.Exit(1)
	}
	if gap, err := transfer.VerifyContinuity(sol, 10); err == nil {
		fmt.Printf("worst RK4 position gap: %e\n", gap)
	}

	if csvPath != "" {
		if err := sol.ExportCSVFile(csvPath); err != nil {
			log.Fatalf("saving CSV: %s", err)
		}
		fmt.Printf("trajectory saved to %s\n", csvPath)
	}
}
