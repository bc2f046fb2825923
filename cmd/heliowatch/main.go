// Heliowatch - renewable telemetry analysis
//
// Usage:
//   heliowatch analyze --file plant.csv [--format table|json] [--lang en|fr]
//   heliowatch predict --url http://host:5000 [--file plant.csv | --solar 1200 --load 800]
//   heliowatch watch --url http://host:5000 --interval 30s
//   heliowatch serve [--config heliowatch.yaml]
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"heliowatch/api"
	"heliowatch/internal/advisor"
	"heliowatch/internal/config"
	"heliowatch/internal/kpi"
	"heliowatch/internal/predict"
	"heliowatch/internal/session"
	"heliowatch/internal/telemetry"
	apictr "heliowatch/pkg/api"
	"heliowatch/pkg/platform"
)

// Exit codes for scripting and CI integration.
const (
	ExitSuccess       = 0
	ExitCriticalState = 1
	ExitUnusableInput = 10
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "heliowatch",
		Usage:   "Solar telemetry analysis - KPIs, battery advisories, SOC prediction",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"HELIOWATCH_LOG_LEVEL"},
			},
		},

		Commands: []*cli.Command{
			analyzeCommand(),
			predictCommand(),
			watchCommand(),
			serveCommand(),
			{
				Name:  "version",
				Usage: "Print build information",
				Action: func(c *cli.Context) error {
					fmt.Printf("heliowatch %s (commit: %s, built: %s)\n", version, commit, date)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Parse a telemetry file and report KPIs, advisory, and recommendations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to telemetry CSV or spreadsheet",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "table",
				Usage: "Output format (table, json)",
			},
			&cli.StringFlag{
				Name:    "lang",
				Value:   "en",
				Usage:   "Advisory language (en, fr)",
				EnvVars: []string{"HELIOWATCH_LANG"},
			},
			&cli.StringFlag{
				Name:    "predict-url",
				Usage:   "Prediction endpoint base URL; adds a live SOC estimate to the report",
				EnvVars: []string{"HELIOWATCH_PREDICT_URL"},
			},
		},
		Action: runAnalyze,
	}
}

type analyzeOutput struct {
	File            string             `json:"file"`
	Rows            int                `json:"rows"`
	Kpis            *apictr.KpiView    `json:"kpis"`
	Metrics         kpi.Instant        `json:"metrics"`
	Advisory        advisor.Advisory   `json:"advisory"`
	Recommendations []advisor.Advice   `json:"recommendations"`
	Prediction      *predict.Result    `json:"prediction,omitempty"`
	Samples         []telemetry.Sample `json:"-"`
}

func runAnalyze(c *cli.Context) error {
	path := c.String("file")
	lang := advisor.Language(c.String("lang"))

	samples, err := loadSamples(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), ExitUnusableInput)
	}
	if len(samples) == 0 {
		return cli.Exit("Error: no usable data rows found", ExitUnusableInput)
	}

	summary := kpi.Aggregate(samples)
	last := samples[len(samples)-1]

	trend := advisor.TrendStable
	if len(samples) > 1 {
		trend = advisor.TrendOf(last.BatterySocPct, samples[len(samples)-2].BatterySocPct)
	}

	out := analyzeOutput{
		File:     path,
		Rows:     len(samples),
		Kpis:     apictr.NewKpiView(summary),
		Metrics:  kpi.InstantMetrics(last.BatterySocPct, last.SolarPowerW, last.LoadPowerW),
		Advisory: advisor.Classify(last.BatterySocPct, lang),
		Recommendations: advisor.Recommend(advisor.State{
			SocPct:        last.BatterySocPct,
			IrradianceWm2: last.IrradianceWm2,
			SolarPowerW:   last.SolarPowerW,
			LoadPowerW:    last.LoadPowerW,
			Trend:         trend,
		}, lang),
	}

	if baseURL := c.String("predict-url"); baseURL != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			client := predict.NewClient(baseURL, 0)
			res, err := client.PredictFile(context.Background(), path, bytes.NewReader(raw))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: prediction unavailable: %v\n", err)
			} else {
				out.Prediction = res
			}
		}
	}

	if c.String("format") == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		printAnalysis(out)
	}

	if out.Advisory.Tier == advisor.TierCritical {
		return cli.Exit("", ExitCriticalState)
	}
	return nil
}

// loadSamples reads a local telemetry file through the same validation
// and parsing path the upload endpoint uses.
func loadSamples(path string) ([]telemetry.Sample, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if err := telemetry.ValidateUpload(path, info.Size()); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		text := string(raw)
		if err := telemetry.ValidateHeader(text); err != nil {
			return nil, err
		}
		return telemetry.Parse(text), nil
	}
	return telemetry.ParseWorkbook(bytes.NewReader(raw))
}

func printAnalysis(out analyzeOutput) {
	fmt.Println()
	fmt.Printf("File: %s (%d rows)\n", out.File, out.Rows)
	fmt.Println()
	fmt.Println("KPIs")
	fmt.Printf("  Peak power:      %s kW\n", out.Kpis.TotalPower)
	fmt.Printf("  Today's output:  %s kWh\n", out.Kpis.TodaysOutput)
	fmt.Printf("  Efficiency:      %s %%\n", out.Kpis.Efficiency)
	fmt.Printf("  Carbon saved:    %s t CO2\n", out.Kpis.CarbonSaved)
	fmt.Println()
	fmt.Println("Latest reading")
	fmt.Printf("  Efficiency:      %.1f %%\n", out.Metrics.EfficiencyPct)
	fmt.Printf("  Charge rate:     %.0f W\n", out.Metrics.ChargeRateW)
	fmt.Printf("  Discharge rate:  %.0f W\n", out.Metrics.DischargeRateW)
	fmt.Printf("  Net power:       %.0f W\n", out.Metrics.NetPowerW)
	fmt.Println()
	fmt.Printf("Battery: %s [%s]\n", out.Advisory.Title, out.Advisory.Tier)
	fmt.Printf("  %s\n", out.Advisory.Description)
	fmt.Println()
	fmt.Println("Recommendations")
	for _, rec := range out.Recommendations {
		fmt.Printf("  [%-8s] %s\n", rec.Severity, rec.Text)
	}
	if out.Prediction != nil {
		fmt.Println()
		fmt.Printf("Predicted SOC: %.1f %% (model %s)\n", out.Prediction.SocPct, out.Prediction.ModelUsed)
	}
	fmt.Println()
}

func predictCommand() *cli.Command {
	return &cli.Command{
		Name:  "predict",
		Usage: "Request a one-shot SOC prediction",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Value:   "http://127.0.0.1:5000",
				Usage:   "Prediction endpoint base URL",
				EnvVars: []string{"HELIOWATCH_PREDICT_URL"},
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Predict from the last row of a telemetry file",
			},
			&cli.StringFlag{
				Name:  "time",
				Usage: "Sample timestamp; defaults to now",
			},
			&cli.Float64Flag{
				Name:  "irradiance",
				Usage: "Irradiance in W/m2",
			},
			&cli.Float64Flag{
				Name:  "solar",
				Usage: "Solar power in W",
			},
			&cli.Float64Flag{
				Name:  "load",
				Usage: "Load power in W",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 15 * time.Second,
				Usage: "Request timeout",
			},
		},
		Action: runPredict,
	}
}

func runPredict(c *cli.Context) error {
	client := predict.NewClient(c.String("url"), c.Duration("timeout"))
	ctx := context.Background()

	var (
		res *predict.Result
		err error
	)
	if path := c.String("file"); path != "" {
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", readErr), ExitUnusableInput)
		}
		res, err = client.PredictFile(ctx, path, bytes.NewReader(raw))
	} else {
		res, err = client.Predict(ctx, predict.Input{
			TimeH:         c.String("time"),
			IrradianceWm2: c.Float64("irradiance"),
			SolarPowerW:   c.Float64("solar"),
			LoadPowerW:    c.Float64("load"),
		})
	}
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Poll the prediction endpoint and print live SOC estimates until interrupted",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				EnvVars: []string{"HELIOWATCH_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "url",
				Usage:   "Prediction endpoint base URL (overrides config)",
				EnvVars: []string{"HELIOWATCH_PREDICT_URL"},
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Poll interval (overrides config)",
			},
			&cli.Float64Flag{
				Name:  "irradiance",
				Usage: "Irradiance in W/m2",
			},
			&cli.Float64Flag{
				Name:  "solar",
				Usage: "Solar power in W",
			},
			&cli.Float64Flag{
				Name:  "load",
				Usage: "Load power in W",
			},
		},
		Action: runWatch,
	}
}

// pollEvery picks the watch cadence: an explicit flag beats the
// configured interval, which beats the built-in default.
func pollEvery(flagSet bool, flag time.Duration, configured config.Duration) time.Duration {
	if flagSet {
		return flag
	}
	return configured.Or(predict.DefaultPollInterval)
}

func runWatch(c *cli.Context) error {
	log := platform.InitLogger(true, c.String("log-level"))

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	url := cfg.Predictor.BaseURL
	if c.IsSet("url") {
		url = c.String("url")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := predict.NewClient(url, cfg.Predictor.Timeout.Or(0))
	poller := predict.NewPoller(client, pollEvery(c.IsSet("interval"), c.Duration("interval"), cfg.Predictor.PollInterval), log)

	in := predict.Input{
		IrradianceWm2: c.Float64("irradiance"),
		SolarPowerW:   c.Float64("solar"),
		LoadPowerW:    c.Float64("load"),
	}

	for update := range poller.Run(ctx, func() predict.Input { return in }) {
		if update.Err != nil {
			fmt.Fprintf(os.Stderr, "[%s] prediction unavailable: %v\n",
				time.Now().Format("15:04:05"), update.Err)
			continue
		}
		fmt.Printf("[%s] SOC %.1f %% (model %s)\n",
			update.Result.ReceivedAt.Format("15:04:05"), update.Result.SocPct, update.Result.ModelUsed)
	}
	return nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				EnvVars: []string{"HELIOWATCH_CONFIG"},
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "Listen port (overrides config)",
				EnvVars: []string{"HELIOWATCH_PORT"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	log := platform.InitLogger(false, c.String("log-level"))

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if port := c.Int("port"); port > 0 {
		cfg.Server.Port = port
	}

	ttl := cfg.Session.TTL.Or(session.DefaultTTL)
	var store session.Store
	if cfg.Session.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(cfg.Session.RedisAddr, ttl)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		store = redisStore
		log.Info().Str("addr", cfg.Session.RedisAddr).Msg("using redis session store")
	} else {
		store = session.NewMemoryStore(ttl)
		log.Info().Msg("using in-memory session store")
	}

	var predictor *predict.Client
	if cfg.Predictor.BaseURL != "" {
		predictor = predict.NewClient(cfg.Predictor.BaseURL, cfg.Predictor.Timeout.Or(0))
	}

	aggregator := kpi.Aggregator{EmissionsFactor: kpi.DefaultEmissionsFactor}
	if cfg.EmissionsFactor > 0 {
		aggregator.EmissionsFactor = cfg.EmissionsFactor
	}

	server := api.NewServer(store, aggregator, predictor, &api.Config{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout.Or(30 * time.Second),
		WriteTimeout:    cfg.Server.WriteTimeout.Or(60 * time.Second),
		MaxRequestSize:  cfg.Server.MaxRequestSize,
		CORSOrigins:     cfg.Server.CORSOrigins,
		DefaultLanguage: advisor.Language(cfg.Language),
	}, log)

	log.Info().Int("port", cfg.Server.Port).Str("predict_url", cfg.Predictor.BaseURL).Msg("starting server")
	return server.StartWithGracefulShutdown()
}
