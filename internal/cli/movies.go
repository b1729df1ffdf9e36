package cli

import (
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-showtimes/internal/listing"
	"github.com/iliyamo/cinema-showtimes/internal/model"
)

type MoviesCmd struct {
	Search string `help:"Case-insensitive title search."`
	Genre  string `help:"Genre key, or 'all'." default:"all"`
	Day    string `help:"Day key (sun..sat) or 'today'." default:"today"`
	Sort   string `help:"Sort field." default:"title" enum:"title,rating,runtime"`
	Order  string `help:"Sort direction." default:"asc" enum:"asc,desc"`
}

func (c *MoviesCmd) Run(ctx *Context) error {
	cat, err := ctx.loadCatalog()
	if err != nil {
		return err
	}

	day, _ := model.ParseDayKey(c.Day)
	resolved := cat.ResolveDay(day)
	movies := listing.Query(cat.Movies(),
		listing.Criteria{SearchText: c.Search, Genre: c.Genre, Day: day},
		listing.SortCriteria{Field: listing.ParseSortField(c.Sort), Order: listing.ParseSortOrder(c.Order)},
		cat.ShowtimesFor)

	fmt.Fprintln(ctx.Out, headingStyle.Render(fmt.Sprintf("Now showing on %s", resolved.Label())))
	if len(movies) == 0 {
		fmt.Fprintln(ctx.Out, mutedStyle.Render("  No movies match."))
		return nil
	}
	for _, m := range movies {
		fmt.Fprintf(ctx.Out, "  %-32s %-6s %4d min  %s\n",
			m.Title, m.Rating, int(m.Runtime), strings.Join(cat.ShowtimesFor(m, resolved), ", "))
	}
	return nil
}
