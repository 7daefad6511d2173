// welltest — well-test interpretation engine
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramware/welltest/api"
	"github.com/ramware/welltest/internal/config"
	"github.com/ramware/welltest/internal/engine"
	"github.com/ramware/welltest/internal/pvt"
	"github.com/ramware/welltest/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "welltest",
	Short: "welltest — oil and gas well-test interpretation engine",
	Long: `welltest reads separator test data, runs the PVT correlation chain
(solution GOR, bubble point, formation volume factors, viscosities),
and reports stock-tank oil, water, and gas rates.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(methodsCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(serveCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("welltest %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Methods Command ---

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List the registered PVT correlation methods",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  welltest — Correlation Methods")
		fmt.Println("═══════════════════════════════════════")
		var last models.Property
		for _, m := range pvt.Methods() {
			if m.Property != last {
				fmt.Printf("\n  %s:\n", m.Property)
				last = m.Property
			}
			mark := " "
			if m.Default {
				mark = "*"
			}
			fmt.Printf("   %s %-15s %s\n", mark, m.Method, m.Description)
		}
		fmt.Println("\n  (* = default)")
	},
}

// --- Calc Command ---

var calcCmd = &cobra.Command{
	Use:   "calc [reading.json]",
	Short: "Calculate rates for a test reading",
	Long: `Calculate stock-tank rates for a well-test reading stored as JSON.

Examples:
  welltest calc reading.json
  welltest calc reading.json --gor KATZ
  welltest calc reading.json --pb VASQUEZ_BEGGS --bo VASQUEZ_BEGGS`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read reading: %w", err)
		}

		var reading models.TestReading
		if err := json.Unmarshal(data, &reading); err != nil {
			return fmt.Errorf("parse reading: %w", err)
		}

		sel := cfg.Selection()
		if m, _ := cmd.Flags().GetString("gor"); m != "" {
			sel.SolutionGOR = models.Method(m)
		}
		if m, _ := cmd.Flags().GetString("pb"); m != "" {
			sel.BubblePoint = models.Method(m)
		}
		if m, _ := cmd.Flags().GetString("bo"); m != "" {
			sel.Bo = models.Method(m)
		}

		eng := engine.New(cfg.Selection(), cfg.Engine.BatchWorkers)
		result, err := eng.Run(reading, sel)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		printResult(result)
		return nil
	},
}

func init() {
	calcCmd.Flags().String("gor", "", "solution-GOR method (AUTO, STANDING, VASQUEZ_BEGGS, KATZ)")
	calcCmd.Flags().String("pb", "", "bubble-point method (STANDING, VASQUEZ_BEGGS)")
	calcCmd.Flags().String("bo", "", "oil FVF method (STANDING, VASQUEZ_BEGGS)")
	calcCmd.Flags().Bool("json", false, "print the full result as JSON")
}

// printResult renders the headline numbers of a calculation.
func printResult(res models.RateResult) {
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("  welltest — %s\n", res.Reading.WellName)
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("  Oil rate:    %10.1f %s\n", res.Qoil.Value, res.Qoil.Unit)
	fmt.Printf("  Water rate:  %10.1f %s\n", res.Qwater.Value, res.Qwater.Unit)
	fmt.Printf("  Gas rate:    %10.1f %s\n", res.Qgas.Value, res.Qgas.Unit)
	fmt.Printf("  GOR1:        %10.1f scf/stb\n", res.GOR1)
	fmt.Printf("  GOR2:        %10.1f scf/stb\n", res.GOR2)
	fmt.Printf("  Total GOR:   %10.1f scf/stb\n", res.TotalGOR)
	fmt.Println()

	fmt.Println("  PVT chain:")
	printPVT("Oil API @60F", res.PVT.OilAPI60F, "°API")
	printPVT("Bubble point", res.PVT.BubblePoint, "psia")
	printPVT("Solution GOR", res.PVT.SolutionGOR, "scf/stb")
	printPVT("Bo", res.PVT.Bo, "bbl/stb")
	printPVT("Z factor", res.PVT.ZFactor, "")
	printPVT("Bg", res.PVT.Bg, "cf/scf")

	if res.GasLift != nil {
		fmt.Println()
		fmt.Println("  Gas lift:")
		fmt.Printf("    Injection:     %10.1f Mscf/d\n", res.GasLift.InjectionRate)
		fmt.Printf("    Formation gas: %10.1f Mscf/d\n", res.GasLift.FormationGas)
	}

	if len(res.Warnings) > 0 {
		fmt.Println()
		fmt.Println("  Warnings:")
		for _, warn := range res.Warnings {
			fmt.Printf("    - %s (%s): %s\n", warn.Property, warn.Method, warn.Reason)
		}
	}
	fmt.Println("═══════════════════════════════════════")
}

func printPVT(label string, v models.PVTValue, unit string) {
	if !v.Computed() {
		return
	}
	flag := ""
	if !v.InRange {
		flag = "  (out of range)"
	}
	fmt.Printf("    %-14s %10.4g %-7s [%s]%s\n", label+":", v.Value, unit, v.Method, flag)
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("Starting welltest API server on %s\n", addr)
		srv := api.NewServer(cfg, version)
		return srv.ListenAndServe(addr)
	},
}
