//go:build !windows

package probe

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// configureCommand places the command in its own process group so that a
// cancelled probe takes down anything the utility forked as well.
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	}
	cmd.WaitDelay = waitDelay
}
