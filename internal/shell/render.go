package shell

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/GriffinCanCode/MiniOS/internal/domain/process"
	"github.com/GriffinCanCode/MiniOS/internal/domain/session"
	"github.com/GriffinCanCode/MiniOS/internal/domain/vfs"
)

const (
	timeLayout  = "2006-01-02 15:04:05"
	clearScreen = "\033[H\033[2J"
	osVersion   = "MiniOS 2.0 🚀"
	infoWidth   = 50
)

var weatherTypes = []string{"☀️ Sunny", "🌧️ Rainy", "⛅ Cloudy", "❄️ Snowy", "🌪️ Stormy", "🌈 Rainbow"}

var fortunes = []string{
	"The code that is written today will debug you tomorrow.",
	"A bug in the code is worth two in the documentation.",
	"He who laughs last probably made a backup.",
	"There are 10 types of people: those who understand binary and those who don't.",
	"The best way to predict the future is to implement it.",
	"Keep calm and code on!",
	"Your computer will do what you tell it to do, but that may be much different from what you had in mind.",
}

func rule(c rune, n int) string {
	return strings.Repeat(string(c), n)
}

// formatDuration renders whole seconds as h:mm:ss
func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

func renderHelp(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n🆘 MINIOS HELP SYSTEM\n%s\n", rule('=', infoWidth), rule('=', infoWidth))
	for _, category := range categories {
		fmt.Fprintf(w, "\n%s:\n", category)
		for _, def := range definitions {
			if def.category == category {
				fmt.Fprintf(w, "  %-20s %s\n", def.usage, def.description)
			}
		}
	}
	fmt.Fprintf(w, "\n💡 Tip: Earn points by using the system!\n%s\n", rule('=', infoWidth))
}

func renderInfo(w io.Writer, snap session.Snapshot) {
	user := snap.User
	if user == "" {
		user = "nobody"
	}

	rows := []struct{ label, value string }{
		{"OS Version", osVersion},
		{"Boot Time", snap.BootTime.Format(timeLayout)},
		{"Uptime", formatDuration(snap.Uptime)},
		{"Active Processes", fmt.Sprintf("%d 🔄", snap.Processes.Running)},
		{"System Health", fmt.Sprintf("%d%% %s", snap.Health, healthIcon(snap.Health))},
		{"Temperature", fmt.Sprintf("%d°C %s", snap.Temperature, temperatureIcon(snap.Temperature))},
		{"Logged in as", user + " 👤"},
		{"User Points", fmt.Sprintf("%d 🏆", snap.Points)},
	}

	fmt.Fprintf(w, "\n%s\n🖥️  SYSTEM INFORMATION\n%s\n", rule('=', infoWidth), rule('=', infoWidth))
	for _, r := range rows {
		fmt.Fprintf(w, "%-20s: %s\n", r.label, r.value)
	}
	fmt.Fprintf(w, "\nStatus: %s\n%s\n", healthStatus(snap.Health), rule('=', infoWidth))
}

func healthIcon(health int) string {
	switch {
	case health > 70:
		return "💚"
	case health > 30:
		return "💛"
	default:
		return "💔"
	}
}

func temperatureIcon(temp int) string {
	switch {
	case temp < 40:
		return "❄️"
	case temp > 60:
		return "🔥"
	default:
		return "🌡️"
	}
}

func healthStatus(health int) string {
	switch {
	case health > 80:
		return "System is in excellent condition! 🌟"
	case health > 50:
		return "System is running normally. ✅"
	default:
		return "System needs attention! ⚠️"
	}
}

func renderProcesses(w io.Writer, entries []process.Entry, totals process.Totals, now time.Time) {
	fmt.Fprintf(w, "\n%s\n📊 SYSTEM PROCESS MANAGER\n%s\n", rule('=', 60), rule('=', 60))
	fmt.Fprintf(w, "%-6s %-15s %-10s %-6s %-10s %-12s\n", "PID", "Name", "Status", "CPU%", "Memory", "Uptime")
	fmt.Fprintln(w, rule('-', 60))
	for _, e := range entries {
		fmt.Fprintf(w, "%-6d %-15s %-10s %-6d %-10s %-12s\n",
			e.PID, e.Name, e.Status, e.CPUPercent, fmt.Sprintf("%dMB", e.MemoryMB), formatDuration(e.Uptime(now)))
	}
	fmt.Fprintln(w, rule('-', 60))
	fmt.Fprintf(w, "Total: %d processes | CPU: %d%% | Memory: %dMB\n", totals.Running, totals.CPU, totals.MemoryMB)
}

func renderListing(w io.Writer, dir string, entries []vfs.Entry) {
	fmt.Fprintf(w, "\n📁 Contents of %s:\n%s\n", dir, rule('-', 40))
	for _, e := range entries {
		icon := "📄"
		if e.Kind == vfs.KindDirectory {
			icon = "📁"
		}
		fmt.Fprintf(w, "%s %s\n", icon, e.Name)
	}
}

func renderStat(w io.Writer, info vfs.Info) {
	fmt.Fprintf(w, "\n📄 %s\n", info.Path)
	fmt.Fprintf(w, "  %-10s %s\n", "Kind:", info.Kind)
	if info.Kind == vfs.KindDirectory {
		fmt.Fprintf(w, "  %-10s %d\n", "Entries:", info.Children)
	} else {
		fmt.Fprintf(w, "  %-10s %d bytes\n", "Size:", info.Size)
		fmt.Fprintf(w, "  %-10s %s\n", "Type:", info.MIMEType)
		if info.Charset != "" {
			fmt.Fprintf(w, "  %-10s %s\n", "Charset:", info.Charset)
		}
	}
	fmt.Fprintf(w, "  %-10s %s\n", "Created:", info.CreatedAt.Format(timeLayout))
	fmt.Fprintf(w, "  %-10s %s\n", "Modified:", info.ModifiedAt.Format(timeLayout))
}

func renderPoints(w io.Writer, snap session.Snapshot) {
	user := snap.User
	if user == "" {
		user = "nobody"
	}
	fmt.Fprintf(w, "\n🏆 User Profile: %s\n", user)
	fmt.Fprintf(w, "📊 Current Points: %d\n", snap.Points)
	fmt.Fprintf(w, "🎯 Rank: %s %s\n", rankIcon(snap.Rank), snap.Rank)
	fmt.Fprintf(w, "🎯 Next milestone: %d points (%d more needed)\n", snap.NextMilestone, snap.NextMilestone-snap.Points)
}

func rankIcon(rank string) string {
	switch rank {
	case session.RankElite:
		return "🌟"
	case session.RankAdvanced:
		return "🚀"
	case session.RankExplorer:
		return "💫"
	default:
		return "🌱"
	}
}

func renderWeather(w io.Writer, rng *rand.Rand) {
	temperature := rng.Intn(41) - 5
	condition := weatherTypes[rng.Intn(len(weatherTypes))]
	fmt.Fprintln(w, "\n🌤️  Weather Report:")
	fmt.Fprintf(w, "Condition: %s\n", condition)
	fmt.Fprintf(w, "Temperature: %d°C\n", temperature)
	fmt.Fprintln(w, "Forecast: Perfect for coding! 💻")
}

func renderFortune(w io.Writer, rng *rand.Rand) {
	fmt.Fprintf(w, "\n🔮 Fortune: %s\n", fortunes[rng.Intn(len(fortunes))])
}
