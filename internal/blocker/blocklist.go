package blocker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"

	"github.com/gajzzs/focus/internal/config"
)

const defaultBlockList = `# Add one domain per line
# Lines starting with # are comments
# The www. variant of every domain is blocked as well.
# Example:
# youtube.com
instagram.com
x.com
twitter.com
`

// BlockList is the user-editable file of domains to block.
type BlockList struct {
	path   string
	logger logrus.FieldLogger
}

func NewBlockList(path string, logger logrus.FieldLogger) *BlockList {
	return &BlockList{
		path:   path,
		logger: logger,
	}
}

func (bl *BlockList) Path() string {
	return bl.path
}

// Ensure creates the block-list with example content when it does not exist yet.
func (bl *BlockList) Ensure() (bool, error) {
	if _, err := os.Stat(bl.path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to stat block-list: %w", err)
	}

	if err := config.EnsureDir(filepath.Dir(bl.path)); err != nil {
		if !errors.Is(err, config.ErrOwnership) {
			return false, err
		}
		bl.logger.WithError(err).Warn("focus directory left owned by root")
	}
	if err := os.WriteFile(bl.path, []byte(defaultBlockList), 0o644); err != nil {
		return false, fmt.Errorf("failed to create block-list: %w", err)
	}
	if err := config.ChownToInvoker(bl.path); err != nil {
		bl.logger.WithError(err).Warn("block-list left owned by root")
	}

	bl.logger.WithField("path", bl.path).Info("created default block-list")
	return true, nil
}

// Load returns the domains listed in the block-list, in file order.
func (bl *BlockList) Load() ([]string, error) {
	f, err := os.Open(bl.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open block-list: %w", err)
	}
	defer f.Close()

	return bl.Parse(f)
}

// Parse reads domains from r. Comments, blank lines and lines that are not a
// usable domain name are skipped.
func (bl *BlockList) Parse(r io.Reader) ([]string, error) {
	domains := []string{}
	reader := bufio.NewReader(r)
	lineNum := 0

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read block-list: %w", err)
		}
		if line != "" {
			lineNum++
			if domain, ok := bl.parseLine(lineNum, line); ok {
				domains = append(domains, domain)
			}
		}
		if err != nil {
			return domains, nil
		}
	}
}

func (bl *BlockList) parseLine(lineNum int, line string) (string, bool) {
	if !utf8.ValidString(line) {
		bl.logger.WithField("line", lineNum).Warn("skipping block-list line with invalid encoding")
		return "", false
	}
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}

	domain, ok := normalizeDomain(line)
	if !ok {
		bl.logger.WithFields(logrus.Fields{"line": lineNum, "entry": line}).Warn("skipping invalid domain in block-list")
		return "", false
	}
	return domain, true
}

func normalizeDomain(s string) (string, bool) {
	if strings.ContainsAny(s, " \t/:@*") {
		return "", false
	}
	s = strings.ToLower(strings.TrimSuffix(s, "."))
	if s == "" || strings.HasPrefix(s, ".") {
		return "", false
	}
	if _, err := netip.ParseAddr(s); err == nil {
		return "", false
	}
	if _, ok := dns.IsDomainName(s); !ok {
		return "", false
	}
	return s, true
}
