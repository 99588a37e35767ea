package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"energyguard/internal/config"
	"energyguard/internal/history"
	"energyguard/internal/models"
	"energyguard/internal/services"
	"energyguard/pkg/logging"
	"energyguard/pkg/metrics"
)

var rootCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Interactive energy monitoring console",
	Long: `EnergyGuard monitor: prompts for energy usage readings, analyzes each one
for waste recovery and alerting, and prints a rule-based diagnosis and
action plan. Readings accumulate into a session history so usage spikes
are detected against the previous entry.`,
	RunE:          runMonitor,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().Bool("debug", false, "enable debug logging")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logLevel := logging.WarnLevel
	if debug, _ := cmd.Flags().GetBool("debug"); debug || cfg.Logging.Level == "debug" {
		logLevel = logging.DebugLevel
	}

	// Logs go to stderr so they never interleave with the prompts.
	logger := logging.NewStructuredLogger("energyguard-monitor", "1.0.0", logLevel)
	logger.SetOutput(os.Stderr)

	metricsCollector := metrics.NewCollector("energyguard_monitor")

	sessionStore := history.NewStore(0)
	monitorService := services.NewMonitorService(sessionStore, logger, metricsCollector)

	sessionID := uuid.NewString()
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "=== EnergyGuard Monitoring Console ===")
	fmt.Fprintln(out)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(out, "\nMonitoring stopped.")
			return nil
		}

		reading, err := promptReading(reader, out)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out, "\nMonitoring stopped.")
			return nil
		}
		if err != nil {
			// Input-format error: warn and restart the entry, the engine
			// is never invoked for this attempt.
			fmt.Fprintf(out, "\nPlease enter valid numeric values.\n\n")
			continue
		}

		result, recommendation, err := monitorService.AnalyzeReading(ctx, sessionID, reading)
		if err != nil {
			var validationErr *models.ValidationError
			if errors.As(err, &validationErr) {
				fmt.Fprintf(out, "\nInvalid reading: %s\n\n", validationErr.Message)
				continue
			}
			return fmt.Errorf("analysis failed: %w", err)
		}

		renderResult(out, result, recommendation)

		if series, err := monitorService.Timeseries(ctx, sessionID); err == nil {
			renderSeries(out, series)
		}

		again, err := promptString(reader, out, "\nAdd another entry? (yes/no): ")
		if errors.Is(err, io.EOF) || !isYes(again) {
			fmt.Fprintln(out, "\nMonitoring session complete.")
			return nil
		}
		fmt.Fprintln(out)
	}
}

// promptReading collects the six reading fields from the console.
func promptReading(reader *bufio.Reader, out io.Writer) (models.Reading, error) {
	usage, err := promptFloat(reader, out, "Energy usage (kWh): ")
	if err != nil {
		return models.Reading{}, err
	}

	expected, err := promptFloat(reader, out, "Expected usage (kWh): ")
	if err != nil {
		return models.Reading{}, err
	}

	sector, err := promptString(reader, out, "Sector (Home / Factory / Power Plant): ")
	if err != nil {
		return models.Reading{}, err
	}

	timeOfDay, err := promptString(reader, out, "Time (Day/Night): ")
	if err != nil {
		return models.Reading{}, err
	}

	sunlight, err := promptString(reader, out, "Sunlight available? (yes/no): ")
	if err != nil {
		return models.Reading{}, err
	}

	temperature, err := promptFloat(reader, out, "Temperature (C): ")
	if err != nil {
		return models.Reading{}, err
	}

	return models.Reading{
		UsageKWh:           usage,
		ExpectedKWh:        expected,
		Sector:             models.ParseSector(sector),
		TimeOfDay:          models.ParseTimeOfDay(timeOfDay),
		SunlightAvailable:  isYes(sunlight),
		TemperatureCelsius: temperature,
	}, nil
}

func promptString(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptFloat(reader *bufio.Reader, out io.Writer, prompt string) (float64, error) {
	line, err := promptString(reader, out, prompt)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(line, 64)
}

func isYes(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}

func renderResult(out io.Writer, result *models.AnalysisResult, recommendation *models.Recommendation) {
	fmt.Fprintln(out, "\n========== ENERGY STATUS ==========")
	fmt.Fprintln(out, result.AlertLevel.Banner())
	fmt.Fprintf(out, "Efficiency Score: %.1f/100\n", result.EfficiencyScore)

	fmt.Fprintln(out, "\n--- DIAGNOSIS ---")
	for _, reason := range recommendation.Reasons {
		fmt.Fprintf(out, "* %s\n", reason)
	}

	fmt.Fprintln(out, "\n--- ACTION PLAN ---")
	for _, action := range recommendation.Actions {
		fmt.Fprintf(out, "[%s] %s\n", action.Priority, action.Text)
	}

	fmt.Fprintf(out, "\nConfidence Level: %d%%\n", recommendation.ConfidencePercent)
}

// renderSeries prints the cumulative usage/recovered/remaining table. Only
// called once the session holds enough readings for a trend to exist.
func renderSeries(out io.Writer, series *history.Timeseries) {
	fmt.Fprintln(out, "\n--- WASTE RECOVERY TREND ---")
	fmt.Fprintf(out, "%-6s %12s %15s %15s\n", "Step", "Usage (kWh)", "Recovered (kWh)", "Remaining (kWh)")
	for i, step := range series.Steps {
		fmt.Fprintf(out, "%-6d %12.2f %15.2f %15.2f\n",
			step,
			series.UsageKWh[i],
			series.RecoveredKWh[i],
			series.RemainingKWh[i],
		)
	}
}
