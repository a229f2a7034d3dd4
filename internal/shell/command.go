package shell

import (
	"fmt"
	"strings"
)

// Kind identifies a command
type Kind int

const (
	KindHelp Kind = iota
	KindInfo
	KindPs
	KindTop
	KindKill
	KindLs
	KindCreate
	KindRead
	KindDelete
	KindGame
	KindWeather
	KindFortune
	KindTime
	KindHistory
	KindPoints
	KindClear
	KindExit
	KindFind
	KindStat
	KindSpawn
	KindExport
)

// Help categories in display order
const (
	categoryFiles     = "📁 File System"
	categoryProcesses = "🔄 Process Management"
	categoryFun       = "🎮 Entertainment"
	categoryInfo      = "ℹ️ System Info"
	categoryUtilities = "⚙️ Utilities"
)

var categories = []string{categoryFiles, categoryProcesses, categoryFun, categoryInfo, categoryUtilities}

// unbounded marks a command that ignores extra arguments
const unbounded = -1

// definition is one row of the command table
type definition struct {
	kind        Kind
	name        string
	usage       string
	description string
	category    string
	minArgs     int
	maxArgs     int
	award       int
	reason      string
}

var definitions = []definition{
	{KindLs, "ls", "ls [dir]", "List directory contents", categoryFiles, 0, 1, 1, "for file exploration"},
	{KindCreate, "create", "create <file>", "Create new file", categoryFiles, 1, 1, 3, "for file creation"},
	{KindRead, "read", "read <file>", "Read file content", categoryFiles, 1, 1, 1, "for reading files"},
	{KindDelete, "delete", "delete <file>", "Delete file", categoryFiles, 1, 1, 2, "for file management"},
	{KindFind, "find", "find <pattern>", "Find paths by glob", categoryFiles, 1, 1, 1, "for searching files"},
	{KindStat, "stat", "stat <path>", "Show file details", categoryFiles, 1, 1, 1, "for inspecting files"},
	{KindExport, "export", "export <file> [fmt]", "Save a session report (json, yaml, toml)", categoryFiles, 1, 2, 3, "for exporting a report"},

	{KindPs, "ps", "ps", "List running processes", categoryProcesses, 0, unbounded, 2, "for system monitoring"},
	{KindKill, "kill", "kill <pid>", "Terminate process", categoryProcesses, 1, 1, 3, "for process management"},
	{KindTop, "top", "top", "System monitor", categoryProcesses, 0, unbounded, 2, "for system monitoring"},
	{KindSpawn, "spawn", "spawn <name>", "Start a background process", categoryProcesses, 1, 1, 2, "for starting processes"},

	{KindGame, "game", "game [name]", "Play games", categoryFun, 0, 1, 0, ""},
	{KindWeather, "weather", "weather", "Check weather", categoryFun, 0, unbounded, 2, "for checking weather"},
	{KindFortune, "fortune", "fortune", "Random fortune", categoryFun, 0, unbounded, 1, "for seeking wisdom"},

	{KindInfo, "info", "info", "System information", categoryInfo, 0, unbounded, 1, "for checking system info"},
	{KindTime, "time", "time", "Current time", categoryInfo, 0, unbounded, 1, "for time awareness"},
	{KindHistory, "history", "history", "Command history", categoryInfo, 0, unbounded, 1, "for reviewing history"},
	{KindPoints, "points", "points", "Check your points", categoryInfo, 0, unbounded, 0, ""},

	{KindClear, "clear", "clear", "Clear screen", categoryUtilities, 0, unbounded, 1, "for keeping clean"},
	{KindHelp, "help", "help", "Show this help", categoryUtilities, 0, unbounded, 1, "for seeking help"},
	{KindExit, "exit", "exit", "Shutdown system", categoryUtilities, 0, unbounded, 0, ""},
}

var (
	byName = make(map[string]*definition, len(definitions))
	byKind = make(map[Kind]*definition, len(definitions))
)

func init() {
	for i := range definitions {
		d := &definitions[i]
		byName[d.name] = d
		byKind[d.kind] = d
	}
}

// String returns the command name
func (k Kind) String() string {
	if d, ok := byKind[k]; ok {
		return d.name
	}
	return "unknown"
}

// Command is a parsed command line
type Command struct {
	Kind Kind
	Name string
	Args []string
	Raw  string
}

// Arg returns the i-th argument or the empty string
func (c Command) Arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}

// Parse splits a non-empty line on whitespace, resolves the lowercased
// first token and checks the argument count.
func Parse(raw string) (Command, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty command", ErrInvalidArgument)
	}

	name := strings.ToLower(fields[0])
	def, ok := byName[name]
	if !ok {
		return Command{Name: name, Raw: raw}, fmt.Errorf("%w: %s", ErrUnrecognized, name)
	}

	cmd := Command{Kind: def.kind, Name: name, Args: fields[1:], Raw: raw}
	n := len(cmd.Args)
	if n < def.minArgs || (def.maxArgs != unbounded && n > def.maxArgs) {
		return cmd, fmt.Errorf("%w: usage: %s", ErrInvalidArgument, def.usage)
	}
	return cmd, nil
}
