package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the kosuke banner and the wizard subtitle to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _  __               _        ", "#818cf8"},
		{"| |/ /___  ___ _   _| | _____ ", "#a78bfa"},
		{"| ' // _ \\/ __| | | | |/ / _ \\", "#c084fc"},
		{"| . \\ (_) \\__ \\ |_| |   <  __/", "#e879f9"},
		{"|_|\\_\\___/|___/\\__,_|_|\\_\\___|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, termenv.String("Interactive setup: forks, deploys and wires every service of the template.").Faint())
	fmt.Fprintln(w, termenv.String("Type 'abort' at any prompt to stop; progress is saved after every step.").Faint())
	fmt.Fprintln(w)
}
