package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"course-catalog/internal/app"
	"course-catalog/internal/catalog"
	"course-catalog/internal/config"
	"course-catalog/internal/devutil"
	"course-catalog/internal/domain"
	"course-catalog/internal/export"
	"course-catalog/internal/handlers"
	"course-catalog/internal/logger"
	"course-catalog/internal/sftpclient"
)

type options struct {
	filter   catalog.Filter
	show     string
	complete string
	progress bool
	fields   []string
	outPath  string
	sftp     bool
}

func main() {
	var (
		sheetURL = flag.String("sheet-url", "", "catalog sheet URL(s), space separated (overrides CATALOG_SHEET_URL)")
		mode     = flag.String("mode", "", "payload mode: csv or gviz (overrides CATALOG_SHEET_MODE)")
		query    = flag.String("q", "", "search text")
		category = flag.String("category", "", "exact category filter")
		level    = flag.String("level", "", "exact level filter")
		show     = flag.String("show", "", "print the detail of one course id")
		complete = flag.String("complete", "", "mark a course id as completed")
		progress = flag.Bool("progress", false, "print completion progress")
		outPath  = flag.String("out", "", "export the catalog as csv to this path")
		upload   = flag.Bool("sftp", false, "upload the exported CSV via SFTP (requires -out)")
		fields   = flag.String("fields", "", "comma separated course fields to print per listed course")
	)
	flag.Parse()

	cfg := config.Load()
	if *sheetURL != "" {
		cfg.SheetURLs = config.SplitURLs(*sheetURL)
	}
	if *mode != "" {
		cfg.SheetMode = *mode
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	a, err := app.New(cfg, logger.Logger)
	if err != nil {
		log.Fatal(err)
	}

	// timeout general para carga + export + upload
	rootCtx, rootCancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer rootCancel()

	opts := options{
		filter:   catalog.Filter{Search: *query, Category: *category, Level: *level},
		show:     *show,
		complete: *complete,
		progress: *progress,
		fields:   config.SplitList(*fields),
		outPath:  *outPath,
		sftp:     *upload,
	}
	if err := run(rootCtx, a, cfg, opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, a *app.App, cfg config.Config, opts options, w io.Writer) error {
	if opts.sftp && opts.outPath == "" {
		return fmt.Errorf("-sftp requires -out")
	}

	status := a.Load(ctx)
	if status.State == catalog.StateFallback {
		fmt.Fprintln(w, "note: showing built-in courses, the catalog could not be fetched")
	}

	switch {
	case opts.complete != "":
		if err := markComplete(a, opts.complete, w); err != nil {
			return err
		}
	case opts.show != "":
		if err := printDetail(a, opts.show, w); err != nil {
			return err
		}
	case opts.progress:
		printProgress(a, w)
	case opts.outPath == "":
		printListing(a, opts, status, w)
	}

	if opts.outPath == "" {
		return nil
	}
	return exportCatalog(ctx, a, cfg, opts, w)
}

func printListing(a *app.App, opts options, status catalog.LoadStatus, w io.Writer) {
	courses := a.Store.Filter(opts.filter)
	if status.State == catalog.StateFailed {
		fmt.Fprintln(w, status.Message)
		return
	}
	if len(courses) == 0 {
		fmt.Fprintln(w, handlers.NoMatchMessage)
		return
	}
	for _, c := range courses {
		if len(opts.fields) > 0 {
			fmt.Fprintln(w, devutil.PickLine(c, opts.fields...))
			continue
		}
		fmt.Fprintln(w, cardLine(c, a.Tracker.IsCompleted(c.ID)))
	}
}

func cardLine(c domain.Course, completed bool) string {
	mark := " "
	if completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s  %s  (%s / %s)  %s  %s", mark, c.ID, c.Title, c.Category, c.Level, c.Duration, c.Price)
}

func printDetail(a *app.App, id string, w io.Writer) error {
	c, ok := a.Store.ByID(id)
	if !ok {
		return fmt.Errorf("course %q not found", id)
	}

	fmt.Fprintf(w, "%s\n%s\n\n", c.Title, c.FullDescription)
	fmt.Fprintf(w, "category: %s\nlevel:    %s\nduration: %s\nprice:    %s\n", c.Category, c.Level, c.Duration, c.Price)
	if u := a.Embed.RenderURL(c); u != "" {
		fmt.Fprintf(w, "video:    %s\n", u)
	} else {
		fmt.Fprintln(w, "video:    none")
	}
	if len(c.Resources) > 0 {
		fmt.Fprintln(w, "resources:")
		for _, r := range c.Resources {
			fmt.Fprintf(w, "  - %s <%s>\n", r.Name, r.Href)
		}
	}
	if a.Tracker.IsCompleted(c.ID) {
		fmt.Fprintln(w, "status:   completed")
	}
	return nil
}

func markComplete(a *app.App, id string, w io.Writer) error {
	if _, ok := a.Store.ByID(id); !ok {
		return fmt.Errorf("course %q not found", id)
	}
	added, err := a.Tracker.MarkCompleted(id)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	pct := a.Tracker.PercentComplete(a.Store.Len())
	if added {
		fmt.Fprintf(w, "marked %s completed (%d%%)\n", id, pct)
	} else {
		fmt.Fprintf(w, "%s already completed (%d%%)\n", id, pct)
	}
	return nil
}

func printProgress(a *app.App, w io.Writer) {
	total := a.Store.Len()
	done := 0
	for _, id := range a.Tracker.IDs() {
		if _, ok := a.Store.ByID(id); ok {
			done++
		}
	}
	fmt.Fprintf(w, "progress: %d%% (%d of %d courses)\n", a.Tracker.PercentComplete(total), done, total)
}

func exportCatalog(ctx context.Context, a *app.App, cfg config.Config, opts options, w io.Writer) error {
	courses := a.Store.All()
	if err := export.WriteCatalogCSVFile(opts.outPath, courses); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %d courses to %s\n", len(courses), opts.outPath)

	if !opts.sftp {
		return nil
	}

	// mismo nombre de archivo en el remoto
	remoteName := filepath.Base(opts.outPath)
	upCfg := sftpclient.Config{
		Host:                  cfg.SFTPHost,
		Port:                  cfg.SFTPPort,
		User:                  cfg.SFTPUser,
		Pass:                  cfg.SFTPPass,
		RemoteDir:             cfg.SFTPDir,
		InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
	}

	upCtx, upCancel := context.WithTimeout(ctx, 5*time.Minute)
	defer upCancel()

	if err := sftpclient.UploadFile(upCtx, upCfg, opts.outPath, remoteName); err != nil {
		return err
	}
	fmt.Fprintf(w, "uploaded to sftp://%s:%d%s\n", upCfg.Host, upCfg.Port, strings.TrimRight(upCfg.RemoteDir, "/")+"/"+remoteName)
	return nil
}
