package app

import (
	"github.com/sirupsen/logrus"

	"github.com/gajzzs/focus/internal/blocker"
	"github.com/gajzzs/focus/internal/config"
	"github.com/gajzzs/focus/internal/dns"
	"github.com/gajzzs/focus/internal/editor"
	"github.com/gajzzs/focus/internal/logging"
)

// Options are the persistent command-line flags.
type Options struct {
	ConfigPath string
	HostsFile  string
	Verbose    bool
}

// Runtime is everything the commands act on.
type Runtime struct {
	Config    *config.Config
	Logger    *logrus.Logger
	BlockList *blocker.BlockList
	Hosts     *blocker.HostsBlocker
	Flusher   dns.Flusher
	Editor    *editor.Editor
}

// Builder creates the Runtime once flags are parsed.
type Builder func(opts Options) (*Runtime, error)

func NewRuntime(opts Options) (*Runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.HostsFile != "" {
		cfg.HostsFile = opts.HostsFile
	}

	logger := logging.New(cfg, opts.Verbose)

	var flusher dns.Flusher = dns.NopFlusher{}
	if cfg.FlushDNS {
		flusher = dns.NewCacheFlusher(logger)
	}

	return &Runtime{
		Config:    cfg,
		Logger:    logger,
		BlockList: blocker.NewBlockList(cfg.DomainsFile(), logger),
		Hosts:     blocker.NewHostsBlocker(cfg.HostsFile, cfg.Addresses, cfg.IncludeWWW),
		Flusher:   flusher,
		Editor:    editor.New(cfg.Editor),
	}, nil
}
