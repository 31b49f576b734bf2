package options

// Option is a selectable league or season.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Catalog holds the fixed league and season lists. The first entry of each list is the default.
type Catalog struct {
	leagues []Option
	seasons []Option
}

var defaultCatalog = NewCatalog(
	[]Option{
		{ID: "bl1", Label: "Bundesliga 1"},
		{ID: "bl2", Label: "Bundesliga 2"},
		{ID: "bl3", Label: "Bundesliga 3"},
		{ID: "dfb", Label: "DFB-Pokal"},
		{ID: "ucl", Label: "Champions League"},
	},
	[]Option{
		{ID: "2025", Label: "2025/26"},
		{ID: "2024", Label: "2024/25"},
		{ID: "2023", Label: "2023/24"},
	},
)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// NewCatalog copies the given lists so later changes by the caller are not observed.
func NewCatalog(leagues, seasons []Option) *Catalog {
	return &Catalog{
		leagues: append([]Option(nil), leagues...),
		seasons: append([]Option(nil), seasons...),
	}
}

// Leagues returns a copy of the league list.
func (c *Catalog) Leagues() []Option {
	return append([]Option{}, c.leagues...)
}

// Seasons returns a copy of the season list.
func (c *Catalog) Seasons() []Option {
	return append([]Option{}, c.seasons...)
}

// League looks up a league by id.
func (c *Catalog) League(id string) (Option, bool) {
	return find(c.leagues, id)
}

// Season looks up a season by id.
func (c *Catalog) Season(id string) (Option, bool) {
	return find(c.seasons, id)
}

// DefaultLeague returns the first league, or the zero Option for an empty catalog.
func (c *Catalog) DefaultLeague() Option {
	if len(c.leagues) == 0 {
		return Option{}
	}
	return c.leagues[0]
}

// DefaultSeason returns the first season, or the zero Option for an empty catalog.
func (c *Catalog) DefaultSeason() Option {
	if len(c.seasons) == 0 {
		return Option{}
	}
	return c.seasons[0]
}

// ResolveLeague returns id when known, otherwise the default league.
func (c *Catalog) ResolveLeague(id string) Option {
	if o, ok := c.League(id); ok {
		return o
	}
	return c.DefaultLeague()
}

// ResolveSeason returns id when known, otherwise the default season.
func (c *Catalog) ResolveSeason(id string) Option {
	if o, ok := c.Season(id); ok {
		return o
	}
	return c.DefaultSeason()
}

func find(list []Option, id string) (Option, bool) {
	for _, o := range list {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
