package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/iliyamo/cinema-showtimes/internal/model"
	"github.com/iliyamo/cinema-showtimes/internal/schedule"
)

type ScheduleCmd struct {
	Day string `arg:"" optional:"" help:"Day key (sun..sat) or 'today'; all days when omitted."`
}

func (c *ScheduleCmd) Run(ctx *Context) error {
	cat, err := ctx.loadCatalog()
	if err != nil {
		return err
	}
	if c.Day == "" {
		for _, d := range schedule.Build(cat.Movies()).Ordered() {
			printDay(ctx.Out, d)
		}
		return nil
	}
	key, ok := model.ParseDayKey(c.Day)
	if !ok {
		return fmt.Errorf("unknown day %q", c.Day)
	}
	printDay(ctx.Out, schedule.BuildDay(cat.Movies(), cat.ResolveDay(key)))
	return nil
}

func printDay(w io.Writer, d model.ScheduleDay) {
	fmt.Fprintln(w, headingStyle.Render(d.Heading()))
	if len(d.Entries) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  No schedule available for this day."))
		return
	}
	for _, r := range d.Entries {
		fmt.Fprintf(w, "  %-32s %-6s %-9s %s\n", r.MovieTitle, r.Rating, r.ScreenLabel, strings.Join(r.Times, ", "))
	}
}
