// Package process provides the simulated process table.
//
// Processes are bookkeeping entries with fake CPU and memory figures, each
// backed by a goroutine running its Work function. A process is Running
// until killed, then Terminated for good; entries stay in the table so the
// full history can be listed.
//
// Example Usage:
//
//	table := process.NewTable()
//	pid := table.Spawn("system_health", func(ctx context.Context) { <-ctx.Done() })
//	_ = table.Kill(pid)
//	running := table.ListRunning()
package process
