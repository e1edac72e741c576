package system

import (
	"syscall"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessManager finds and signals running processes by executable name.
type ProcessManager struct{}

func NewProcessManager() *ProcessManager {
	return &ProcessManager{}
}

func (pm *ProcessManager) FindProcessesByName(name string) ([]*process.Process, error) {
	processes, err := process.Processes()
	if err != nil {
		return nil, err
	}

	var matches []*process.Process
	for _, proc := range processes {
		procName, err := proc.Name()
		if err != nil {
			continue
		}
		if procName == name {
			matches = append(matches, proc)
		}
	}

	return matches, nil
}

func (pm *ProcessManager) IsRunning(name string) bool {
	procs, err := pm.FindProcessesByName(name)
	return err == nil && len(procs) > 0
}

// SignalByName sends sig to every process called name and returns how many were
// signalled.
func (pm *ProcessManager) SignalByName(name string, sig syscall.Signal) (int, error) {
	procs, err := pm.FindProcessesByName(name)
	if err != nil {
		return 0, err
	}

	sent := 0
	var lastErr error
	for _, proc := range procs {
		if err := proc.SendSignal(sig); err != nil {
			lastErr = err
			continue
		}
		sent++
	}
	return sent, lastErr
}
