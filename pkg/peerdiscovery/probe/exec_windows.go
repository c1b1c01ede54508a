//go:build windows

package probe

import "os/exec"

func configureCommand(cmd *exec.Cmd) {
	cmd.WaitDelay = waitDelay
}
