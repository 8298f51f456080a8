// Package runtime provides application runtime context for workreport.
package runtime

import (
	"time"

	"github.com/manav03panchal/workreport/internal/config"
	"github.com/manav03panchal/workreport/internal/export"
	"github.com/manav03panchal/workreport/internal/logging"
	"github.com/manav03panchal/workreport/internal/output"
	"github.com/manav03panchal/workreport/internal/storage"
	"github.com/manav03panchal/workreport/internal/worktime"
)

// Context holds the application runtime context.
type Context struct {
	DB        *storage.DB
	Formatter *output.Formatter
	Config    *config.RuntimeConfig

	// Stores
	Reports    *storage.ReportStore
	Colleagues *storage.ColleagueRepo
	Worksites  *storage.WorksiteRepo
	Projects   *storage.ProjectRepo
	Settings   *storage.SettingsStore

	// Debug mode
	Debug bool

	// now is the clock behind Today; tests pin it.
	now func() time.Time
}

// Options configures the runtime context.
type Options struct {
	DBPath    string
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
	// Config overrides config.Global.
	Config *config.RuntimeConfig
	// StoreOptions are passed to every store.
	StoreOptions []storage.Option
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath:    storage.DefaultPath(),
		InMemory:  false,
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Debug:     false,
	}
}

// New opens the database and loads every store.
func New(opts Options) (*Context, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Global
	}

	// WORKREPORT_DATABASE overrides the path; ":memory:" forces memory mode.
	if cfg.InMemory() {
		opts.InMemory = true
	} else if cfg.Storage.Path != "" {
		opts.DBPath = cfg.Storage.Path
	}

	opts.Debug = opts.Debug || cfg.Debug
	logging.Setup(opts.Debug, nil)

	db, err := storage.Open(storage.Options{
		Path:         opts.DBPath,
		InMemory:     opts.InMemory,
		MinFreeSpace: cfg.Storage.MinFreeSpace,
	})
	if err != nil {
		return nil, err
	}

	if !db.InMemory() {
		if warning := storage.CheckDiskSpaceWarning(db.Path(), cfg.Storage.MinFreeSpaceWarning); warning != "" {
			logging.Warn(warning, logging.KeyPath, db.Path())
		}
	}

	settings := storage.NewSettingsStore(db, opts.StoreOptions...)

	formatter := output.NewFormatter()
	if opts.Format != "" {
		formatter.Format = opts.Format
	}
	if opts.ColorMode != "" {
		formatter.ColorMode = opts.ColorMode
	}
	formatter.Theme = settings.CurrentTheme()

	return &Context{
		DB:         db,
		Formatter:  formatter,
		Config:     cfg,
		Reports:    storage.NewReportStore(db, opts.StoreOptions...),
		Colleagues: storage.NewColleagueRepo(db, opts.StoreOptions...),
		Worksites:  storage.NewWorksiteRepo(db, opts.StoreOptions...),
		Projects:   storage.NewProjectRepo(db, opts.StoreOptions...),
		Settings:   settings,
		Debug:      opts.Debug,
		now:        time.Now,
	}, nil
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Now returns the current time.
func (c *Context) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// SetClock pins the clock used by Now and Today.
func (c *Context) SetClock(now func() time.Time) {
	c.now = now
}

// Today returns the current local calendar date.
func (c *Context) Today() worktime.Date {
	return worktime.Today(c.Now())
}

// Stores returns every store, for reloading after a restore.
func (c *Context) Stores() []export.Reloader {
	return []export.Reloader{c.Reports, c.Colleagues, c.Worksites, c.Projects, c.Settings}
}

// RefreshTheme re-reads the active theme into the formatter.
func (c *Context) RefreshTheme() {
	c.Formatter.Theme = c.Settings.CurrentTheme()
}

// Summary returns the statistics view relative to today.
func (c *Context) Summary() output.Summary {
	return output.Summary{
		Stats:      c.Reports.Stats(c.Today()),
		Colleagues: c.Colleagues.Count(),
		Worksites:  c.Worksites.Count(),
		Projects:   c.Projects.Count(),
	}
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI or plain.
func (c *Context) IsCLI() bool {
	return !c.IsJSON()
}

// Debugf logs a debug message when debug mode is enabled.
func (c *Context) Debugf(msg string, args ...any) {
	if c.Debug {
		logging.DebugLog(msg, args...)
	}
}
