package model

import (
    "encoding/json"
    "strconv"
    "strings"
    "unicode"

    "gopkg.in/yaml.v3"
)

// Movie is one entry of the externally supplied catalog.  Movies are
// read-only once loaded; every derivation in this module works on copies
// or references and never mutates them.
//
// Fields:
//  ID          – stable slug used for anchors ("dune-part-two").
//  Title       – display title, also the booking form's movie value.
//  Genre       – filter key matched exactly against the genre selector.
//  GenreLabel  – human label for Genre.
//  Rating      – raw rating code ("PG-13").
//  Runtime     – length in minutes; malformed input decodes to 0.
//  Screen      – screen number; 0 means absent and reports as 1.
//  Showtimes   – weekday key → "HH:MM" strings in stored order.
type Movie struct {
    ID          string              `json:"id" yaml:"id"`
    Title       string              `json:"title" yaml:"title"`
    Genre       string              `json:"genre" yaml:"genre"`
    GenreLabel  string              `json:"genreLabel" yaml:"genreLabel"`
    Rating      string              `json:"rating" yaml:"rating"`
    Runtime     Minutes             `json:"runtime" yaml:"runtime"`
    Image       string              `json:"image" yaml:"image"`
    Alt         string              `json:"alt" yaml:"alt"`
    Description string              `json:"description" yaml:"description"`
    Screen      int                 `json:"screen,omitempty" yaml:"screen,omitempty"`
    Showtimes   map[DayKey][]string `json:"showtimes" yaml:"showtimes"`
}

// ScreenNumber returns the movie's screen, defaulting to 1 when absent.
func (m Movie) ScreenNumber() int {
    if m.Screen <= 0 {
        return 1
    }
    return m.Screen
}

// Minutes is a runtime in whole minutes.  Decoding is lenient: numbers,
// numeric strings and strings with a leading integer ("118 mins") are
// accepted; anything else becomes 0.
type Minutes int

func (m *Minutes) UnmarshalJSON(b []byte) error {
    var raw any
    if err := json.Unmarshal(b, &raw); err != nil {
        *m = 0
        return nil
    }
    switch v := raw.(type) {
    case float64:
        *m = Minutes(int(v))
    case string:
        *m = Minutes(leadingInt(v))
    default:
        *m = 0
    }
    return nil
}

func (m *Minutes) UnmarshalYAML(n *yaml.Node) error {
    if n.Kind != yaml.ScalarNode {
        *m = 0
        return nil
    }
    *m = Minutes(leadingInt(n.Value))
    return nil
}

// leadingInt parses an optional sign and the leading run of digits,
// ignoring whatever follows.  No digits yields 0.
func leadingInt(s string) int {
    s = strings.TrimLeftFunc(s, unicode.IsSpace)
    end := 0
    if end < len(s) && (s[end] == '-' || s[end] == '+') {
        end++
    }
    start := end
    for end < len(s) && s[end] >= '0' && s[end] <= '9' {
        end++
    }
    if end == start {
        return 0
    }
    n, err := strconv.Atoi(s[:end])
    if err != nil {
        return 0
    }
    return n
}
