package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"tickmd/internal/checklist"
	"tickmd/internal/config"
	"tickmd/internal/storage"
)

// session carries the resolved settings of one invocation.
type session struct {
	cfg    config.Config
	path   string
	logger *log.Logger
	out    io.Writer
	quiet  bool
}

func newSession(opts *options, out, errOut io.Writer) (*session, error) {
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	levelName := cfg.LogLevel
	if opts.logLevel != "" {
		levelName = opts.logLevel
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", levelName)
	}
	logger := log.NewWithOptions(errOut, log.Options{
		Level:           level,
		Prefix:          "todo",
		ReportTimestamp: false,
	})

	file := cfg.File
	if opts.file != "" {
		file = opts.file
	}
	if opts.dir != "" && !filepath.IsAbs(file) {
		file = filepath.Join(opts.dir, file)
	}
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	logger.Debug("session ready", "config", configPath, "file", file)

	return &session{
		cfg:    cfg,
		path:   file,
		logger: logger,
		out:    out,
		quiet:  opts.quiet,
	}, nil
}

func (s *session) load() (*checklist.Checklist, error) {
	list, err := storage.Load(s.path)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded checklist", "file", s.path, "tasks", list.Len())
	return list, nil
}

// commit writes the checklist back and journals the edit. Journal failures
// are logged and otherwise ignored.
func (s *session) commit(list *checklist.Checklist, op, args string) error {
	if err := storage.Dump(s.path, list); err != nil {
		return err
	}
	s.logger.Debug("wrote checklist", "file", s.path, "tasks", list.Len())
	s.record(op, args)
	return nil
}

func (s *session) record(op, args string) {
	j, err := storage.Open(s.cfg.JournalPath)
	if err != nil {
		s.logger.Warn("journal unavailable", "path", s.cfg.JournalPath, "err", err)
		return
	}
	defer j.Close()
	id, err := j.Record(s.path, op, args)
	if err != nil {
		s.logger.Warn("journal write failed", "op", op, "err", err)
		return
	}
	s.logger.Debug("journaled", "id", id, "op", op, "args", args)
}

// edit loads the checklist, applies fn, and commits the result.
func (s *session) edit(op, args string, fn func(*checklist.Checklist)) error {
	list, err := s.load()
	if err != nil {
		return err
	}
	fn(list)
	return s.commit(list, op, args)
}

func (s *session) printf(format string, a ...any) {
	if s.quiet {
		return
	}
	fmt.Fprintf(s.out, format, a...)
}
