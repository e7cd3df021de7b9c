package execute

import (
	"os/exec"
	"syscall"

	"github.com/Ellandq/Wizard-Duelling/internal/pattern"
)

// Command starts command in its own session so that it outlives the caller.
// An empty command does nothing. The caller must Wait on the result.
func Command(command string) (*exec.Cmd, error) {
	if command == "" {
		return nil, nil
	}

	cmd := exec.Command("sh", "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	return cmd, cmd.Start()
}

// Spawn starts command like Command and reaps it in the background. The
// channel receives the exit error once the process ends and is nil for an
// empty command.
func Spawn(command string) (<-chan error, error) {
	cmd, err := Command(command)
	if err != nil || cmd == nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	return done, nil
}

// Template launches the command bound to a recognised template.
func Template(t *pattern.Template) (<-chan error, error) {
	if t == nil {
		return nil, nil
	}
	return Spawn(t.Command)
}
