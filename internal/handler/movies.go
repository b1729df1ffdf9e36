package handler

import (
    "net/http"
    "net/url"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-showtimes/internal/catalog"
    "github.com/iliyamo/cinema-showtimes/internal/listing"
    "github.com/iliyamo/cinema-showtimes/internal/model"
)

// MsgNoShowtimes replaces the joined times of a movie with no showings.
const MsgNoShowtimes = "No showtimes available"

// CatalogHandler serves the read-only listing and schedule views.
type CatalogHandler struct {
    Store *catalog.Store
}

func NewCatalogHandler(store *catalog.Store) *CatalogHandler {
    return &CatalogHandler{Store: store}
}

type movieItem struct {
    ID            string   `json:"id"`
    Title         string   `json:"title"`
    Genre         string   `json:"genre"`
    GenreLabel    string   `json:"genre_label"`
    Rating        string   `json:"rating"`
    Runtime       int      `json:"runtime"`
    Screen        int      `json:"screen"`
    Image         string   `json:"image,omitempty"`
    Alt           string   `json:"alt,omitempty"`
    Description   string   `json:"description,omitempty"`
    Showtimes     []string `json:"showtimes"`
    ShowtimesText string   `json:"showtimes_text"`
    BookingURL    string   `json:"booking_url"`
}

func toItem(m model.Movie, times []string) movieItem {
    text := MsgNoShowtimes
    if len(times) > 0 {
        text = strings.Join(times, ", ")
    }
    return movieItem{
        ID:            m.ID,
        Title:         m.Title,
        Genre:         m.Genre,
        GenreLabel:    m.GenreLabel,
        Rating:        m.Rating,
        Runtime:       int(m.Runtime),
        Screen:        m.ScreenNumber(),
        Image:         m.Image,
        Alt:           m.Alt,
        Description:   m.Description,
        Showtimes:     times,
        ShowtimesText: text,
        BookingURL:    BookingLink(m.Title),
    }
}

// BookingLink points the ticket page at a movie, escaping the title the
// way a browser's encodeURIComponent does for spaces.
func BookingLink(title string) string {
    return "tickets.html?movie=" + strings.ReplaceAll(url.QueryEscape(title), "+", "%20")
}

// ListMovies filters and sorts the listing.
// Query: search, genre (default all), day (default today), sort
// (title|rating|runtime), order (asc|desc).
func (h *CatalogHandler) ListMovies(c echo.Context) error {
    cat := h.Store.Current()

    day, _ := model.ParseDayKey(c.QueryParam("day"))
    crit := listing.Criteria{
        SearchText: c.QueryParam("search"),
        Genre:      strings.TrimSpace(c.QueryParam("genre")),
        Day:        day,
    }
    sc := listing.SortCriteria{
        Field: listing.ParseSortField(c.QueryParam("sort")),
        Order: listing.ParseSortOrder(c.QueryParam("order")),
    }

    resolved := cat.ResolveDay(day)
    movies := listing.Query(cat.Movies(), crit, sc, cat.ShowtimesFor)
    items := make([]movieItem, 0, len(movies))
    for _, m := range movies {
        items = append(items, toItem(m, cat.ShowtimesFor(m, resolved)))
    }

    return c.JSON(http.StatusOK, echo.Map{
        "day":   resolved,
        "sort":  sc.Field,
        "order": sc.Order,
        "items": items,
        "total": len(items),
    })
}

// Genres lists the genre options for the filter, in catalog order.
func (h *CatalogHandler) Genres(c echo.Context) error {
    genres := h.Store.Current().Genres()
    if genres == nil {
        genres = []catalog.Genre{}
    }
    return c.JSON(http.StatusOK, echo.Map{
        "all":   listing.AllGenres,
        "items": genres,
    })
}
