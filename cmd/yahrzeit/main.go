package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/zikaron/yahrzeit/internal/config"
	"github.com/zikaron/yahrzeit/internal/engine"
	"github.com/zikaron/yahrzeit/internal/hebdate"
	"github.com/zikaron/yahrzeit/internal/server"
	"github.com/zikaron/yahrzeit/internal/store"
)

// main delegates to runMain so deferred cleanup (log file close) runs before
// the process exits. os.Exit() does not run defers.
func main() {
	os.Exit(runMain())
}

// cliOptions holds the parsed command-line configuration.
type cliOptions struct {
	records  string
	source   string
	url      string
	user     string
	serve    bool
	port     string
	date     string
	lang     string
	reminder string
	write    bool
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)

	var opts cliOptions
	flag.StringVar(&opts.records, config.FlagRecords, "", config.FlagDescRecords)
	flag.StringVar(&opts.source, config.FlagSource, "", config.FlagDescSource)
	flag.StringVar(&opts.url, config.FlagURL, "", config.FlagDescURL)
	flag.StringVar(&opts.user, config.FlagUser, "", config.FlagDescUser)
	flag.BoolVar(&opts.serve, config.FlagServe, false, config.FlagDescServe)
	flag.StringVar(&opts.port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	flag.StringVar(&opts.date, config.FlagDate, "", config.FlagDescDate)
	flag.StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	flag.StringVar(&opts.reminder, config.FlagReminder, "", config.FlagDescRem)
	flag.BoolVar(&opts.write, config.FlagWrite, false, config.FlagDescWrite)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() { _ = logCloser.Close() }()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	if err := run(ctx, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the dependencies and executes either a one-shot today query or
// the feed server loop.
func run(ctx context.Context, opts cliOptions) error {
	clock, err := buildClock(opts.date)
	if err != nil {
		return err
	}

	translator := engine.NewTranslator(opts.lang)
	gen := &engine.Generator{
		Clock:         clock,
		Fetcher:       store.NewHTTPFetcher(),
		FormatSummary: translator.SummaryFunc(),
	}

	mode := sourceMode(opts)
	res, err := gen.RunSync(ctx, engine.SyncConfig{
		Mode:            mode,
		RecordsPath:     opts.records,
		WebURL:          opts.url,
		WebUser:         opts.user,
		ReminderTrigger: opts.reminder,
	})
	if err != nil {
		return err
	}

	if opts.write {
		if mode != config.SourceModeJSON {
			return errors.New(config.ErrWriteMode)
		}
		src := &store.JSONSource{Path: opts.records}
		if err := src.Save(res.Records); err != nil {
			return err
		}
	}

	if !opts.serve {
		return printToday(res, translator)
	}

	if err := validatePort(opts.port); err != nil {
		return err
	}
	srv := server.NewFeedServer(opts.port)
	srv.Update(res.Feed)
	return srv.Start(ctx)
}

// sourceMode resolves the record source mode: the explicit flag wins,
// otherwise web when a URL is given, otherwise by file extension.
func sourceMode(opts cliOptions) string {
	if opts.source != "" {
		return opts.source
	}
	if opts.url != "" {
		return config.SourceModeWeb
	}
	switch strings.ToLower(filepath.Ext(opts.records)) {
	case config.ExtVCF, config.ExtVCard:
		return config.SourceModeVCard
	case config.ExtJSON:
		return config.SourceModeJSON
	default:
		return config.SourceModeJSON
	}
}

// buildClock pins "today" to the explicit date flag when given.
func buildClock(date string) (engine.Clock, error) {
	if date == "" {
		return engine.RealClock{}, nil
	}
	t, err := time.Parse(config.DateFormatFullDash, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return engine.FixedClock{T: t}, nil
}

// validatePort rejects ports outside the TCP range before binding.
func validatePort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil || n < config.MinPort || n > config.MaxPort {
		return errors.New(config.ErrPortRequired)
	}
	return nil
}

// printToday writes the localized today query result to stdout.
func printToday(res *engine.SyncResult, translator *engine.Translator) error {
	canonical, err := hebdate.Format(res.TodayHebrew)
	if err != nil {
		return err
	}

	if len(res.Today) == 0 {
		fmt.Println(translator.MsgData(config.TKeyTodayNone, map[string]interface{}{"Date": canonical}))
		return nil
	}

	fmt.Println(translator.MsgData(config.TKeyTodayHeader, map[string]interface{}{"Date": canonical}))
	for _, rec := range res.Today {
		line := rec.Name
		if rec.NeedsReview {
			line += " (" + translator.Msg(config.TKeyNeedsReview) + ")"
		}
		fmt.Println(line)
	}
	return nil
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger: JSON to stdout, plus a
// per-run file in the user cache directory when available.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	writers = append(writers, os.Stdout)

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
