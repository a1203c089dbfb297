/*
Package command implements the text command vocabulary used to drive a machine
interactively, from the REPL, the HTTP API or an MCP client.

A line such as "add (S, 0) -> (S, 1, R)" is split into a command name and its argument
and dispatched against a session's machine:

	d := command.NewDispatcher(command.WithStore(store))
	reply, err := d.Dispatch(ctx, m, "run 500")

User mistakes (bad syntax, configuring a built machine, stepping a halted one) come
back as *UsageError so transports can tell them apart from internal faults.
*/
package command
