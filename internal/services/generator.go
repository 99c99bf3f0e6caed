package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"dailyoffice/internal/amqp"
	"dailyoffice/internal/core"
	"dailyoffice/internal/log"
	"dailyoffice/internal/render"
	"dailyoffice/internal/sheets"
	"dailyoffice/internal/site"
)

// Output names of the fixed pages.
const (
	IndexPage = "index.html"
	AllPage   = "all.html"
	AboutPage = "about.html"
)

type (
	// Options configure a generation run.
	Options struct {
		Year        int
		AnalyticsID string
		ColorColumn string
		ColorMap    map[string]string
		Workers     int
		OutputDir   string

		// Static is copied into the output's static directory. StaticDir is
		// the directory inside Static to copy; empty copies nothing.
		Static    fs.FS
		StaticDir string
	}

	// PageManifest remembers what earlier builds wrote so unchanged pages
	// can be skipped.
	PageManifest interface {
		BeginBuild(ctx context.Context, id string, year int) error
		PageHash(ctx context.Context, path string) (string, bool, error)
		RecordPage(ctx context.Context, buildID, path, hash string) error
		FinishBuild(ctx context.Context, id string, stats core.BuildStats) error
	}

	// Notifier announces a finished build.
	Notifier interface {
		PublishBuildCompleted(ctx context.Context, msg *amqp.BuildCompletedMessage) error
	}

	// BuildReport summarizes a finished run.
	BuildReport struct {
		BuildID     string
		OutputDir   string
		Stats       core.BuildStats
		Months      []string
		StaticFiles int
		Warnings    []core.RowWarning
		Duration    time.Duration
	}

	pageCounter struct {
		written atomic.Int64
		skipped atomic.Int64
	}
)

// Generator turns a tabular dataset into the static site.
type Generator struct {
	source   sheets.TableReader
	renderer *render.Renderer
	out      *site.Writer
	opts     Options
	manifest PageManifest
	notifier Notifier
	newID    func() string
}

// NewGenerator wires a run. manifest and notifier may be nil.
func NewGenerator(source sheets.TableReader, renderer *render.Renderer, out *site.Writer, opts Options, manifest PageManifest, notifier Notifier) *Generator {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Generator{
		source:   source,
		renderer: renderer,
		out:      out,
		opts:     opts,
		manifest: manifest,
		notifier: notifier,
		newID:    func() string { return uuid.NewString() },
	}
}

// Run reads the source, renders every page and writes the site. Rows with
// unreadable dates are reported in the BuildReport; any other failure
// aborts the run.
func (g *Generator) Run(ctx context.Context) (*BuildReport, error) {
	start := time.Now()
	buildID := g.newID()
	logger := log.FromContext(ctx).WithComponent(log.ComponentGenerator).With(log.FieldBuildID, buildID)
	sl := log.NewStructuredLogger(logger)

	table, err := g.source.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	records, warnings, err := core.ParseRecords(table, g.opts.Year)
	for _, w := range warnings {
		sl.LogRowSkipped(ctx, w.Row, w.DateText, w.Err)
	}
	if err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	months := core.GroupByMonth(records)
	calLogger := logger.WithComponent(log.ComponentCalendar)
	for _, name := range months.Names() {
		m, _ := months.Get(name)
		filled := 0
		for _, s := range m.Weeks.Slots() {
			if !s.Empty() {
				filled++
			}
		}
		calLogger.DebugContext(ctx, "Month laid out",
			log.FieldOperation, log.OpGroup,
			log.FieldMonth, m.Name,
			log.FieldCount, len(m.Records),
			"weeks", len(m.Weeks),
			"filled_slots", filled)
	}

	logger.InfoContext(ctx, "Dataset loaded",
		log.FieldCount, len(records),
		log.FieldYear, g.opts.Year,
		"months", months.Len(),
		"warnings", len(warnings))

	if g.manifest != nil {
		if err := g.manifest.BeginBuild(ctx, buildID, g.opts.Year); err != nil {
			return nil, fmt.Errorf("begin build: %w", err)
		}
	}

	siteCtx := render.Site{
		Year:        g.opts.Year,
		AnalyticsID: g.opts.AnalyticsID,
		ColorColumn: g.opts.ColorColumn,
		ColorMap:    g.opts.ColorMap,
	}
	var counter pageCounter

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i := range records {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			page := render.DayPage{Site: siteCtx, Day: &records[i]}
			if i > 0 {
				page.Prev = &records[i-1]
			}
			if i < len(records)-1 {
				page.Next = &records[i+1]
			}
			err := g.emit(egCtx, sl, buildID, render.DayTemplate, render.PageURL(records[i].Slug), page, &counter)
			if err != nil {
				sl.LogError(egCtx, "Failed to generate day page", err,
					log.ComponentRender, log.OpRender,
					log.LogFields{log.FieldSlug: records[i].Slug})
			}
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("render day pages: %w", err)
	}

	fixed := []struct {
		template string
		path     string
		data     any
	}{
		{render.IndexTemplate, IndexPage, render.IndexPage{Site: siteCtx, Days: records, Months: months.All()}},
		{render.AllTemplate, AllPage, render.AllPage{Site: siteCtx, Days: records}},
		{render.AboutTemplate, AboutPage, render.AboutPage{Site: siteCtx}},
	}
	for _, p := range fixed {
		if err := g.emit(ctx, sl, buildID, p.template, p.path, p.data, &counter); err != nil {
			return nil, err
		}
	}

	staticFiles := 0
	if g.opts.Static != nil && g.opts.StaticDir != "" {
		staticFiles, err = g.out.CopyTree(g.opts.Static, g.opts.StaticDir, site.StaticDir)
		if err != nil {
			return nil, fmt.Errorf("copy static assets: %w", err)
		}
		logger.DebugContext(ctx, "Static assets copied",
			log.FieldOperation, log.OpCopy,
			log.FieldCount, staticFiles)
	}

	report := &BuildReport{
		BuildID:   buildID,
		OutputDir: g.opts.OutputDir,
		Stats: core.BuildStats{
			Records:      len(records),
			Warnings:     len(warnings),
			PagesWritten: int(counter.written.Load()),
			PagesSkipped: int(counter.skipped.Load()),
		},
		Months:      months.Names(),
		StaticFiles: staticFiles,
		Warnings:    warnings,
	}

	if g.manifest != nil {
		if err := g.manifest.FinishBuild(ctx, buildID, report.Stats); err != nil {
			return nil, fmt.Errorf("finish build: %w", err)
		}
	}

	report.Duration = time.Since(start)
	logger.InfoContext(ctx, "Site generated",
		"pages_written", report.Stats.PagesWritten,
		"pages_skipped", report.Stats.PagesSkipped,
		log.FieldDuration, report.Duration.Milliseconds())

	g.notify(ctx, sl, report)
	return report, nil
}

// emit renders one page and writes it unless the manifest shows the same
// content is already on disk.
func (g *Generator) emit(ctx context.Context, sl *log.StructuredLogger, buildID, template, path string, data any, counter *pageCounter) error {
	body, err := g.renderer.Render(template, data)
	if err != nil {
		return err
	}
	sum := sha256.Sum256(body)
	hash := hex.EncodeToString(sum[:])

	if g.manifest != nil {
		prev, ok, err := g.manifest.PageHash(ctx, path)
		if err != nil {
			return err
		}
		if ok && prev == hash {
			exists, err := g.out.Exists(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if exists {
				counter.skipped.Add(1)
				sl.LogPageWritten(ctx, template, path, true)
				return nil
			}
		}
	}

	if err := g.out.WriteFile(path, body); err != nil {
		return err
	}
	if g.manifest != nil {
		if err := g.manifest.RecordPage(ctx, buildID, path, hash); err != nil {
			return err
		}
	}
	counter.written.Add(1)
	sl.LogPageWritten(ctx, template, path, false)
	return nil
}

func (g *Generator) notify(ctx context.Context, sl *log.StructuredLogger, report *BuildReport) {
	if g.notifier == nil {
		return
	}
	msg := amqp.NewBuildCompletedMessage(report.BuildID, g.opts.Year, report.OutputDir)
	msg.Records = report.Stats.Records
	msg.Warnings = report.Stats.Warnings
	msg.PagesWritten = report.Stats.PagesWritten
	msg.PagesSkipped = report.Stats.PagesSkipped

	if err := g.notifier.PublishBuildCompleted(ctx, msg); err != nil {
		sl.LogError(ctx, "Failed to publish build notification", err,
			log.ComponentAMQP, log.OpPublish,
			log.LogFields{log.FieldPath: report.OutputDir})
	}
}
