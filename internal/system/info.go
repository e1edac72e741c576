package system

import (
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// Platform describes the running OS, e.g. "darwin 14.4.1" or "ubuntu 24.04 (linux)".
func Platform() (string, error) {
	info, err := host.Info()
	if err != nil {
		return "", err
	}

	desc := strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	if info.OS != "" && info.OS != info.Platform {
		desc = fmt.Sprintf("%s (%s)", desc, info.OS)
	}
	return desc, nil
}

func IsElevated() bool {
	return os.Geteuid() == 0
}
