package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ErrInvalidCriteria is returned by Criteria.Validate.
var ErrInvalidCriteria = errors.New("invalid search criteria")

// JobPosting is a single search result as returned by the jobs endpoint.
type JobPosting struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// CriteriaKind selects which request body shape a Criteria is sent as.
type CriteriaKind int

const (
	KindIntern CriteriaKind = iota
	KindLevels
	KindSeedURL
)

func (k CriteriaKind) String() string {
	switch k {
	case KindIntern:
		return "intern"
	case KindLevels:
		return "levels"
	case KindSeedURL:
		return "url"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps the names printed by String back to a kind.
func ParseKind(s string) (CriteriaKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "intern", "":
		return KindIntern, nil
	case "levels", "level":
		return KindLevels, nil
	case "url", "seed":
		return KindSeedURL, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidCriteria, s)
}

// Criteria holds the parameters of one search. Only the fields belonging to
// Kind are sent.
type Criteria struct {
	Kind       CriteriaKind
	Query      string
	IsIntern   bool
	LevelCodes []int
	SeedURL    string
}

func InternSearch(query string, intern bool) Criteria {
	return Criteria{Kind: KindIntern, Query: query, IsIntern: intern}
}

func LevelSearch(query string, codes ...int) Criteria {
	return Criteria{Kind: KindLevels, Query: query, LevelCodes: codes}
}

func SeedSearch(seedURL string) Criteria {
	return Criteria{Kind: KindSeedURL, SeedURL: seedURL}
}

// Label is the user-visible text of the search: the query, or the seed URL.
func (c Criteria) Label() string {
	if c.Kind == KindSeedURL {
		return c.SeedURL
	}
	return c.Query
}

// Validate checks the fields used by the criteria kind.
func (c Criteria) Validate() error {
	switch c.Kind {
	case KindIntern:
		if strings.TrimSpace(c.Query) == "" {
			return fmt.Errorf("%w: query is required", ErrInvalidCriteria)
		}
	case KindLevels:
		if strings.TrimSpace(c.Query) == "" {
			return fmt.Errorf("%w: query is required", ErrInvalidCriteria)
		}
		for _, code := range c.LevelCodes {
			if _, ok := LevelByCode(code); !ok {
				return fmt.Errorf("%w: unknown level code %d", ErrInvalidCriteria, code)
			}
		}
	case KindSeedURL:
		if strings.TrimSpace(c.SeedURL) == "" {
			return fmt.Errorf("%w: seed url is required", ErrInvalidCriteria)
		}
		u, err := url.Parse(c.SeedURL)
		if err != nil {
			return fmt.Errorf("%w: seed url: %v", ErrInvalidCriteria, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: seed url must be an absolute http(s) url", ErrInvalidCriteria)
		}
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrInvalidCriteria, c.Kind)
	}
	return nil
}

// Levels returns the selected level codes de-duplicated and in ascending order.
func (c Criteria) Levels() []int {
	seen := make(map[int]bool, len(c.LevelCodes))
	codes := make([]int, 0, len(c.LevelCodes))
	for _, code := range c.LevelCodes {
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// EffectiveLevels is the level filter the backend applies. An intern search
// without explicit levels is treated as the trainee level.
func (c Criteria) EffectiveLevels() []int {
	switch c.Kind {
	case KindLevels:
		return c.Levels()
	case KindIntern:
		if c.IsIntern {
			return []int{LevelTrainee}
		}
	}
	return nil
}

type internBody struct {
	Query    string `json:"query"`
	IsIntern bool   `json:"isIntern"`
}

type levelsBody struct {
	Query        string `json:"query"`
	ETCategories []int  `json:"ETCategories"`
}

type seedBody struct {
	StartURL string `json:"starturl"`
}

// MarshalJSON encodes the request body shape selected by Kind.
func (c Criteria) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindIntern:
		return json.Marshal(internBody{Query: c.Query, IsIntern: c.IsIntern})
	case KindLevels:
		return json.Marshal(levelsBody{Query: c.Query, ETCategories: c.Levels()})
	case KindSeedURL:
		return json.Marshal(seedBody{StartURL: c.SeedURL})
	}
	return nil, fmt.Errorf("%w: unknown kind %s", ErrInvalidCriteria, c.Kind)
}
