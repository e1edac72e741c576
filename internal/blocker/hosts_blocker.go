package blocker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/samber/lo"
)

const (
	BlockMarkerStart = "# FOCUS-MODE-BLOCK START"
	BlockMarkerEnd   = "# FOCUS-MODE-BLOCK END"
)

var ErrMalformedBlock = errors.New("malformed focus block in hosts file")

// HostsBlocker owns the sentinel-delimited block of override lines in a hosts file.
// Everything outside the block is left byte-for-byte as found.
type HostsBlocker struct {
	Path       string
	Addresses  []string
	IncludeWWW bool
}

func NewHostsBlocker(path string, addresses []string, includeWWW bool) *HostsBlocker {
	return &HostsBlocker{
		Path:       path,
		Addresses:  addresses,
		IncludeWWW: includeWWW,
	}
}

// Enable replaces any existing focus block with one redirecting domains.
func (hb *HostsBlocker) Enable(domains []string) error {
	content, err := hb.read()
	if err != nil {
		return err
	}

	base, _, err := stripBlocks(content)
	if err != nil {
		return err
	}

	return hb.write(renderBlock(base, hb.overrideLines(domains)))
}

// Disable removes the focus block. The file is not rewritten when no block exists.
func (hb *HostsBlocker) Disable() error {
	content, err := hb.read()
	if err != nil {
		return err
	}

	base, removed, err := stripBlocks(content)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}

	return hb.write(base)
}

func (hb *HostsBlocker) Active() (bool, error) {
	content, err := hb.read()
	if err != nil {
		return false, err
	}
	_, _, found, err := findBlock(content)
	return found, err
}

// Entries returns the override lines currently inside the focus block.
func (hb *HostsBlocker) Entries() ([]string, error) {
	content, err := hb.read()
	if err != nil {
		return nil, err
	}
	start, end, found, err := findBlock(content)
	if err != nil || !found {
		return nil, err
	}

	entries := []string{}
	for _, line := range strings.Split(content[start:end], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == BlockMarkerStart || line == BlockMarkerEnd {
			continue
		}
		entries = append(entries, line)
	}
	return entries, nil
}

func (hb *HostsBlocker) overrideLines(domains []string) []string {
	hosts := lo.FlatMap(domains, func(domain string, _ int) []string {
		if !hb.IncludeWWW || strings.HasPrefix(domain, "www.") {
			return []string{domain}
		}
		return []string{domain, "www." + domain}
	})
	hosts = lo.Uniq(hosts)

	lines := make([]string, 0, len(hosts)*len(hb.Addresses))
	for _, host := range hosts {
		for _, addr := range hb.Addresses {
			lines = append(lines, fmt.Sprintf("%s %s", addr, host))
		}
	}
	return lines
}

func (hb *HostsBlocker) read() (string, error) {
	data, err := os.ReadFile(hb.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read hosts file: %w", err)
	}
	return string(data), nil
}

// write atomically replaces the hosts file, following a symlinked path to its target.
func (hb *HostsBlocker) write(content string) error {
	target, err := filepath.EvalSymlinks(hb.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve hosts file: %w", err)
	}

	// A rename only needs write access to the directory, not the file.
	f, err := os.OpenFile(target, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open hosts file for writing: %w", err)
	}
	f.Close()

	err = renameio.WriteFile(target, []byte(content), 0o644,
		renameio.WithTempDir(filepath.Dir(target)),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("failed to write hosts file: %w", err)
	}
	return nil
}

// findBlock locates the first start marker and the first end marker after it. The
// returned range covers both marker lines, the end marker's newline, and, when the
// end marker is the unterminated last line, the newline before the start marker.
func findBlock(content string) (start, end int, found bool, err error) {
	start = -1
	for off := 0; off < len(content); {
		lineEnd, next := len(content), len(content)
		if i := strings.IndexByte(content[off:], '\n'); i >= 0 {
			lineEnd = off + i
			next = lineEnd + 1
		}

		switch strings.TrimSpace(content[off:lineEnd]) {
		case BlockMarkerStart:
			if start < 0 {
				start = off
			}
		case BlockMarkerEnd:
			if start < 0 {
				return 0, 0, false, fmt.Errorf("%w: %q without %q", ErrMalformedBlock, BlockMarkerEnd, BlockMarkerStart)
			}
			if lineEnd == len(content) && start > 0 && content[start-1] == '\n' {
				start--
			}
			return start, next, true, nil
		}
		off = next
	}

	if start >= 0 {
		return 0, 0, false, fmt.Errorf("%w: %q without %q", ErrMalformedBlock, BlockMarkerStart, BlockMarkerEnd)
	}
	return 0, 0, false, nil
}

// stripBlocks removes every focus block from content.
func stripBlocks(content string) (string, bool, error) {
	removed := false
	for {
		start, end, found, err := findBlock(content)
		if err != nil {
			return "", false, err
		}
		if !found {
			return content, removed, nil
		}
		content = content[:start] + content[end:]
		removed = true
	}
}

// renderBlock appends a focus block to base. When base is missing its final newline
// the block is prefixed with one and left unterminated, so stripping it gives back
// base exactly.
func renderBlock(base string, lines []string) string {
	var b strings.Builder
	b.WriteString(base)

	unterminated := base != "" && !strings.HasSuffix(base, "\n")
	if unterminated {
		b.WriteByte('\n')
	}
	b.WriteString(BlockMarkerStart)
	b.WriteByte('\n')
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(BlockMarkerEnd)
	if !unterminated {
		b.WriteByte('\n')
	}
	return b.String()
}
