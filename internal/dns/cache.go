package dns

import (
	"os/exec"
	"runtime"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/gajzzs/focus/internal/system"
)

// Flusher drops cached name lookups so hosts file changes apply immediately.
type Flusher interface {
	Flush()
}

type processSignaller interface {
	IsRunning(name string) bool
	SignalByName(name string, sig syscall.Signal) (int, error)
}

// CacheFlusher flushes the resolver caches of the running OS. Every step is best
// effort; failures are logged and never returned.
type CacheFlusher struct {
	logger  logrus.FieldLogger
	procs   processSignaller
	goos    string
	command func(name string, args ...string) error
}

func NewCacheFlusher(logger logrus.FieldLogger) *CacheFlusher {
	return &CacheFlusher{
		logger:  logger,
		procs:   system.NewProcessManager(),
		goos:    runtime.GOOS,
		command: runCommand,
	}
}

func (cf *CacheFlusher) Flush() {
	switch cf.goos {
	case "darwin":
		cf.flushMac()
	case "linux":
		cf.flushLinux()
	default:
		cf.logger.Debugf("no resolver cache flush for %s", cf.goos)
	}
}

func (cf *CacheFlusher) flushMac() {
	cf.run("dscacheutil", "-flushcache")
	cf.signal("mDNSResponder", syscall.SIGHUP)
}

func (cf *CacheFlusher) flushLinux() {
	if cf.procs.IsRunning("systemd-resolved") {
		cf.run("resolvectl", "flush-caches")
	}
	if cf.procs.IsRunning("nscd") {
		cf.run("nscd", "-i", "hosts")
	}
	cf.signal("dnsmasq", syscall.SIGHUP)
}

func (cf *CacheFlusher) run(name string, args ...string) {
	if err := cf.command(name, args...); err != nil {
		cf.logger.WithError(err).Warnf("failed to run %s", name)
		return
	}
	cf.logger.Debugf("flushed resolver cache with %s", name)
}

func (cf *CacheFlusher) signal(name string, sig syscall.Signal) {
	sent, err := cf.procs.SignalByName(name, sig)
	if err != nil {
		cf.logger.WithError(err).Warnf("failed to signal %s", name)
	}
	if sent > 0 {
		cf.logger.Debugf("sent %s to %d %s process(es)", sig, sent, name)
	}
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// NopFlusher does nothing; used when flushing is disabled in the config.
type NopFlusher struct{}

func (NopFlusher) Flush() {}
