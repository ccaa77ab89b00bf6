package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea/v2"

	"arrive/internal/app"
	"arrive/internal/config"
	"arrive/internal/export"
	"arrive/internal/journey"
	"arrive/internal/logging"
	"arrive/internal/store"
	"arrive/internal/types"
)

const usageText = `arrive is a sonic sanctuary for the terminal.

Usage:
  arrive <command> [flags]

Commands:
  journey    walk the narrative arrival journey
  survey     answer the sanctuary research questions
  dashboard  view the aggregate research field
  history    print finalized journeys and research sessions
  export     write journey or research data to a file
  reset      clear journey and research history
  help       show help

Flags:
  -h, --help   show help

Survey flags:
  --facilitator NAME   run in facilitated mode as NAME

Export flags:
  --scope journey|research|all   what to export (default all)
  --format json|csv              output format; csv is research-only
  --out PATH                     output file (default derived from scope)

Reset flags:
  --yes   skip the confirmation prompt

Examples:
  arrive journey
  arrive survey --facilitator "Jero"
  arrive export --scope research --format csv
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	case "journey":
		exitOnErr("journey", runJourney(args[1:]))
	case "survey":
		exitOnErr("survey", runSurvey(args[1:]))
	case "dashboard":
		exitOnErr("dashboard", runDashboard(args[1:]))
	case "history":
		exitOnErr("history", runHistory(args[1:]))
	case "export":
		exitOnErr("export", runExport(args[1:]))
	case "reset":
		exitOnErr("reset", runReset(args[1:]))
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

// environment bundles the shared wiring every command needs: loaded
// settings, an open repository, and a file-backed operator log.
type environment struct {
	settings config.Settings
	repo     store.Repository
	log      logging.Logger
	logFile  io.Closer
}

func openEnvironment() (*environment, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	dataDir, err := settings.DataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}

	paths, err := settings.RepositoryPaths()
	if err != nil {
		return nil, err
	}
	repo, err := store.OpenRepository(paths, settings.Backend())
	if err != nil {
		return nil, err
	}

	logPath, err := settings.LogPath()
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	log, logFile, err := logging.NewFileLogger(logPath, logging.ParseLevel(settings.LogLevel()))
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	repo.SetLogger(log)

	return &environment{settings: settings, repo: repo, log: log, logFile: logFile}, nil
}

func (e *environment) Close() {
	_ = e.repo.Close()
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}

func (e *environment) recorder() *journey.Recorder {
	return journey.NewRecorder(e.repo.Journeys(), e.repo.Surveys(), journey.WithRecorderLogger(e.log))
}

func runJourney(args []string) error {
	fs := flag.NewFlagSet("journey", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := context.Background()
	checkpoints, err := env.repo.Checkpoints().Load(ctx)
	if err != nil {
		return err
	}

	rec := env.recorder()
	seq := journey.NewSequencer(
		journey.WithCheckpoints(checkpoints),
		journey.WithCheckpointWriter(env.repo.Checkpoints()),
		journey.WithSequencerLogger(env.log),
		journey.WithFinalizer(func(ctx context.Context, completed *types.JourneyCheckpoints) {
			if _, err := rec.FinalizeJourney(ctx, completed); err != nil {
				env.log.Error("journey finalize failed", logging.F("error", err.Error()))
				return
			}
			// The next run starts fresh; the finished journey lives on
			// in the history log.
			if err := env.repo.Checkpoints().Reset(ctx); err != nil {
				env.log.Warn("checkpoint reset failed", logging.F("error", err.Error()))
			}
		}),
	)

	minHeight, maxHeight := env.settings.NoteHeights()
	model := app.NewJourneyModel(ctx, app.JourneyOptions{
		Sequencer:     seq,
		Recorder:      rec,
		Journeys:      env.repo.Journeys(),
		Notes:         env.repo.Notes(),
		Logger:        env.log,
		NoteMinHeight: minHeight,
		NoteMaxHeight: maxHeight,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func runSurvey(args []string) error {
	fs := flag.NewFlagSet("survey", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	facilitator := fs.String("facilitator", "", "run in facilitated mode as NAME")
	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	name := strings.TrimSpace(*facilitator)
	if name == "" {
		name = env.settings.DefaultFacilitator()
	}

	var opts []journey.SurveyOption
	if name != "" {
		opts = append(opts, journey.WithFacilitator(name))
	}
	flow := journey.NewSurveyFlow(env.recorder(), opts...)

	ctx := context.Background()
	minHeight, maxHeight := env.settings.NoteHeights()
	model := app.NewSurveyModel(ctx, app.SurveyOptions{
		Flow:          flow,
		Logger:        env.log,
		NoteMinHeight: minHeight,
		NoteMaxHeight: maxHeight,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func runDashboard(args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := context.Background()
	model := app.NewDashboardModel(ctx, app.DashboardOptions{
		Surveys:  env.repo.Surveys(),
		Recorder: env.recorder(),
		Logger:   env.log,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func runHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := context.Background()
	journeys, err := env.repo.Journeys().List(ctx)
	if err != nil {
		return err
	}
	sessions, err := env.repo.Surveys().List(ctx)
	if err != nil {
		return err
	}

	printJourneys(journeys)
	fmt.Fprintln(os.Stdout)
	printSessions(sessions)
	return nil
}

func printJourneys(journeys []*types.JourneyRecord) {
	fmt.Fprintf(os.Stdout, "Journeys (%d)\n", len(journeys))
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "WHEN\tARRIVAL\tVERB\tDEPARTURE")
	for _, record := range journeys {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			record.CreatedAt.Format("2006-01-02 15:04"),
			orDash(record.Arrival),
			orDash(record.Verb),
			orDash(record.Departure),
		)
	}
	_ = writer.Flush()
}

func printSessions(sessions []*types.SessionRecord) {
	fmt.Fprintf(os.Stdout, "Research sessions (%d)\n", len(sessions))
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "WHEN\tMODE\tFACILITATOR\tANSWERED")
	for _, record := range sessions {
		answered := 0
		for _, answer := range record.Answers {
			if !answer.IsEmpty() {
				answered++
			}
		}
		facilitator := record.Facilitator
		if facilitator == "" {
			facilitator = "-"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%d\n",
			record.CreatedAt.Format("2006-01-02 15:04"),
			record.Mode,
			facilitator,
			answered,
		)
	}
	_ = writer.Flush()
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	scope := fs.String("scope", "all", "what to export: journey, research or all")
	format := fs.String("format", "json", "output format: json or csv")
	out := fs.String("out", "", "output file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch *format {
	case "json", "csv":
	default:
		return fmt.Errorf("unknown format: %s", *format)
	}
	if *format == "csv" && *scope != "research" {
		return errors.New("csv export is only available for --scope research")
	}

	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := context.Background()
	var data []byte
	var name string
	switch *scope {
	case "journey":
		checkpoints, err := env.repo.Checkpoints().Load(ctx)
		if err != nil {
			return err
		}
		history, err := env.repo.Journeys().List(ctx)
		if err != nil {
			return err
		}
		if data, err = export.JourneyJSON(checkpoints, history); err != nil {
			return err
		}
		name = "arrive-journey-export.json"
	case "research":
		sessions, err := env.repo.Surveys().List(ctx)
		if err != nil {
			return err
		}
		if *format == "csv" {
			data = export.SummaryCSV(sessions)
			name = "sanctuary-research-summary.csv"
		} else {
			if data, err = export.ResearchJSON(sessions); err != nil {
				return err
			}
			name = "sanctuary-research-all.json"
		}
	case "all":
		checkpoints, err := env.repo.Checkpoints().Load(ctx)
		if err != nil {
			return err
		}
		history, err := env.repo.Journeys().List(ctx)
		if err != nil {
			return err
		}
		sessions, err := env.repo.Surveys().List(ctx)
		if err != nil {
			return err
		}
		if data, err = export.ArchiveJSON(checkpoints, history, sessions); err != nil {
			return err
		}
		name = "arrive-archive.json"
	default:
		return fmt.Errorf("unknown scope: %s", *scope)
	}

	path := *out
	if path == "" {
		path = name
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, path)
	return nil
}

func runReset(args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*yes {
		fmt.Fprint(os.Stdout, "This clears the journey in progress and all finished journeys and research sessions. The shared note pool is kept. Continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
		default:
			fmt.Fprintln(os.Stdout, "aborted")
			return nil
		}
	}

	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := context.Background()
	if err := env.repo.Checkpoints().Reset(ctx); err != nil {
		return err
	}
	if err := env.repo.Journeys().Clear(ctx); err != nil {
		return err
	}
	if err := env.repo.Surveys().Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "history cleared")
	return nil
}

func exitOnErr(label string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}
