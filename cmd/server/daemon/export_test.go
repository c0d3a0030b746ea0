package daemon

import "net"

// SetArgs sets the command line arguments of the root command.
func (a *App) SetArgs(args ...string) {
	a.cmd.SetArgs(args)
}

// Verbosity returns the decoded verbosity.
func (a *App) Verbosity() int {
	return a.config.Verbosity
}

// Addr returns the daemon listening address once ready.
func (a *App) Addr() net.Addr {
	a.WaitReady()
	if a.daemon == nil {
		return nil
	}
	return a.daemon.Addr()
}
