package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"sportkalender-service/internal/controller"
	"sportkalender-service/internal/tvrights"
)

const noMatchesLabel = "Keine Spiele"

// render prints the week as day sections with one aligned row per match.
func render(w io.Writer, snap controller.Snapshot) {
	fmt.Fprintf(w, "%s · %s\n", snap.League.Label, snap.Season.Label)
	fmt.Fprintf(w, "Woche %s\n", snap.Week.Label)

	anyFree := false
	for _, day := range snap.Week.Days {
		header := fmt.Sprintf("%s, %s", day.DayLabel, day.DateLabel)
		if day.IsToday {
			header += " (heute)"
		}
		fmt.Fprintf(w, "\n%s\n", header)

		if len(day.Matches) == 0 {
			fmt.Fprintf(w, "  %s\n", noMatchesLabel)
			continue
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, m := range day.Matches {
			tv, free := channelList(m.Channels)
			anyFree = anyFree || free
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", m.Kickoff, m.Home, m.Score, m.Away, tv)
		}
		_ = tw.Flush()
	}

	if anyFree {
		fmt.Fprintln(w, "\n* frei empfangbar")
	}
}

// channelList formats channels as "[Sky, ZDF*]" and reports whether any is free-to-air.
func channelList(channels []tvrights.Channel) (string, bool) {
	if len(channels) == 0 {
		return "", false
	}
	free := false
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		name := ch.Name
		if ch.IsFree {
			name += "*"
			free = true
		}
		names = append(names, name)
	}
	return "[" + strings.Join(names, ", ") + "]", free
}
