package shell

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiniOS/internal/domain/session"
	"github.com/GriffinCanCode/MiniOS/internal/domain/vfs"
	"github.com/GriffinCanCode/MiniOS/internal/shared/paths"
)

func (d *Dispatcher) help(_ context.Context, cmd Command) (reward, error) {
	renderHelp(d.out)
	return fixed(cmd), nil
}

func (d *Dispatcher) info(_ context.Context, cmd Command) (reward, error) {
	renderInfo(d.out, d.session.Snapshot())
	return fixed(cmd), nil
}

func (d *Dispatcher) ps(_ context.Context, cmd Command) (reward, error) {
	procs := d.session.Processes()
	renderProcesses(d.out, procs.ListRunning(), procs.Totals(), d.session.Now())
	return fixed(cmd), nil
}

// top resamples every running process once, then shows the table with
// CPU statistics.
func (d *Dispatcher) top(_ context.Context, cmd Command) (reward, error) {
	procs := d.session.Processes()
	procs.ResampleAll()

	totals := procs.Totals()
	renderProcesses(d.out, procs.ListRunning(), totals, d.session.Now())
	fmt.Fprintf(d.out, "CPU mean: %.1f%% | CPU stddev: %.1f\n", totals.CPUMean, totals.CPUStdDev)
	return fixed(cmd), nil
}

func (d *Dispatcher) kill(_ context.Context, cmd Command) (reward, error) {
	pid, err := strconv.Atoi(cmd.Arg(0))
	if err != nil {
		return reward{}, fmt.Errorf("%w: invalid PID %q", ErrInvalidArgument, cmd.Arg(0))
	}
	if err := d.session.Kill(pid); err != nil {
		return reward{}, err
	}
	fmt.Fprintf(d.out, "🔴 Process %d terminated\n", pid)
	return fixed(cmd), nil
}

func (d *Dispatcher) ls(_ context.Context, cmd Command) (reward, error) {
	dir := paths.Root
	if len(cmd.Args) > 0 {
		dir = d.session.Resolve(cmd.Arg(0))
	}

	entries, err := d.session.FS().List(dir)
	if err != nil {
		return reward{}, err
	}
	renderListing(d.out, dir, entries)
	return fixed(cmd), nil
}

func (d *Dispatcher) create(_ context.Context, cmd Command) (reward, error) {
	fs := d.session.FS()
	p := d.session.Resolve(cmd.Arg(0))
	if fs.Exists(p) {
		return reward{}, fmt.Errorf("%s: %w", p, vfs.ErrAlreadyExists)
	}

	content, err := d.prompter.Prompt("Enter file content: ")
	if err != nil {
		return reward{}, fmt.Errorf("failed to read content: %w", err)
	}
	if err := fs.Create(p, content); err != nil {
		return reward{}, err
	}
	fmt.Fprintf(d.out, "✅ File %s created\n", p)
	return fixed(cmd), nil
}

func (d *Dispatcher) read(_ context.Context, cmd Command) (reward, error) {
	p := d.session.Resolve(cmd.Arg(0))
	content, err := d.session.FS().Read(p)
	if err != nil {
		return reward{}, err
	}
	fmt.Fprintf(d.out, "\nContent of %s:\n%s\n%s\n%s\n", p, rule('-', 40), content, rule('-', 40))
	return fixed(cmd), nil
}

func (d *Dispatcher) delete(_ context.Context, cmd Command) (reward, error) {
	p := d.session.Resolve(cmd.Arg(0))
	if err := d.session.FS().Delete(p); err != nil {
		return reward{}, err
	}
	fmt.Fprintf(d.out, "✅ File %s deleted\n", p)
	return fixed(cmd), nil
}

func (d *Dispatcher) game(ctx context.Context, cmd Command) (reward, error) {
	choice := cmd.Arg(0)
	if choice == "" {
		fmt.Fprint(d.out, d.games.Menu())
		line, err := d.prompter.Prompt("\nChoose a game (name or number): ")
		if err != nil {
			return reward{}, fmt.Errorf("failed to read choice: %w", err)
		}
		choice = line
	}

	g, err := d.games.Resolve(choice)
	if err != nil {
		return reward{}, err
	}

	res, err := g.Play(ctx, d.prompter, d.out)
	if err != nil {
		return reward{}, fmt.Errorf("game %s aborted: %w", g.Name(), err)
	}
	d.logger.Debug("Game finished", zap.String("game", g.Name()), zap.Int("points", res.Points))
	return reward{points: res.Points, reason: res.Reason, award: true}, nil
}

func (d *Dispatcher) weather(_ context.Context, cmd Command) (reward, error) {
	renderWeather(d.out, d.rng)
	return fixed(cmd), nil
}

func (d *Dispatcher) fortune(_ context.Context, cmd Command) (reward, error) {
	renderFortune(d.out, d.rng)
	return fixed(cmd), nil
}

func (d *Dispatcher) time(_ context.Context, cmd Command) (reward, error) {
	fmt.Fprintf(d.out, "🕒 Current time: %s\n", d.session.Now().Format(timeLayout))
	return fixed(cmd), nil
}

func (d *Dispatcher) history(_ context.Context, cmd Command) (reward, error) {
	fmt.Fprintln(d.out, "\n📜 Command History:")
	for i, line := range d.session.History() {
		fmt.Fprintf(d.out, "%2d: %s\n", i+1, line)
	}
	return fixed(cmd), nil
}

func (d *Dispatcher) points(_ context.Context, cmd Command) (reward, error) {
	renderPoints(d.out, d.session.Snapshot())
	return fixed(cmd), nil
}

func (d *Dispatcher) clear(_ context.Context, cmd Command) (reward, error) {
	fmt.Fprint(d.out, clearScreen)
	return fixed(cmd), nil
}

// exit shuts the session down. A failed profile save is reported but
// does not keep the session alive.
func (d *Dispatcher) exit(_ context.Context, cmd Command) (reward, error) {
	fmt.Fprintln(d.out, "🔄 Shutting down system...")
	if err := d.session.Shutdown(); err != nil {
		d.logger.Error("Failed to save profile on exit", zap.Error(err))
		fmt.Fprintf(d.out, "⚠️  Profile not saved: %v\n", err)
	} else {
		fmt.Fprintln(d.out, "💾 Profiles saved.")
	}
	fmt.Fprintln(d.out, "👋 Goodbye!")
	return fixed(cmd), nil
}

func (d *Dispatcher) find(_ context.Context, cmd Command) (reward, error) {
	pattern := d.session.Resolve(cmd.Arg(0))
	matches, err := d.session.FS().Glob(pattern)
	if err != nil {
		return reward{}, err
	}

	if len(matches) == 0 {
		fmt.Fprintf(d.out, "🔍 No paths match %s\n", pattern)
	} else {
		fmt.Fprintf(d.out, "🔍 %d match(es) for %s:\n", len(matches), pattern)
		for _, m := range matches {
			fmt.Fprintf(d.out, "  %s\n", m)
		}
	}
	return fixed(cmd), nil
}

func (d *Dispatcher) stat(_ context.Context, cmd Command) (reward, error) {
	info, err := d.session.FS().Inspect(d.session.Resolve(cmd.Arg(0)))
	if err != nil {
		return reward{}, err
	}
	renderStat(d.out, info)
	return fixed(cmd), nil
}

func (d *Dispatcher) spawn(_ context.Context, cmd Command) (reward, error) {
	name := cmd.Arg(0)
	pid := d.session.Spawn(name, idle)
	fmt.Fprintf(d.out, "🔄 Process '%s' (PID: %d) started\n", name, pid)
	return fixed(cmd), nil
}

func (d *Dispatcher) export(_ context.Context, cmd Command) (reward, error) {
	format, err := session.ParseFormat(cmd.Arg(1))
	if err != nil {
		return reward{}, err
	}
	data, err := d.session.Export(format)
	if err != nil {
		return reward{}, err
	}

	p := d.session.Resolve(cmd.Arg(0))
	if err := d.session.FS().Write(p, string(data)); err != nil {
		return reward{}, err
	}
	fmt.Fprintf(d.out, "✅ Report written to %s (%s, %d bytes)\n", p, format, len(data))
	return fixed(cmd), nil
}

// idle is the body of user-spawned processes
func idle(ctx context.Context) {
	<-ctx.Done()
}
