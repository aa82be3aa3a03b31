// Package location maps free-form region input onto the CWA canonical county
// and city names.
package location

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// MaxChoices is the number of autocomplete candidates a chat platform accepts.
const MaxChoices = 25

// Key is the canonical CWA locationName of a county or city.
type Key string

// Location describes one administrative region.
type Location struct {
	Key         Key    `json:"key"`
	Name        string `json:"name"`
	EnglishName string `json:"englishName"`
}

// Label renders the bilingual name shown in selection lists.
func (l Location) Label() string {
	if l.EnglishName == "" {
		return l.Name
	}
	return l.Name + " (" + l.EnglishName + ")"
}

// Choice is an autocomplete candidate.
type Choice struct {
	Name  string `json:"name"`
	Value Key    `json:"value"`
}

var regions = []Location{
	{Key: "臺北市", Name: "台北市", EnglishName: "Taipei City"},
	{Key: "新北市", Name: "新北市", EnglishName: "New Taipei City"},
	{Key: "桃園市", Name: "桃園市", EnglishName: "Taoyuan City"},
	{Key: "臺中市", Name: "台中市", EnglishName: "Taichung City"},
	{Key: "臺南市", Name: "台南市", EnglishName: "Tainan City"},
	{Key: "高雄市", Name: "高雄市", EnglishName: "Kaohsiung City"},
	{Key: "基隆市", Name: "基隆市", EnglishName: "Keelung City"},
	{Key: "新竹市", Name: "新竹市", EnglishName: "Hsinchu City"},
	{Key: "新竹縣", Name: "新竹縣", EnglishName: "Hsinchu County"},
	{Key: "苗栗縣", Name: "苗栗縣", EnglishName: "Miaoli County"},
	{Key: "彰化縣", Name: "彰化縣", EnglishName: "Changhua County"},
	{Key: "南投縣", Name: "南投縣", EnglishName: "Nantou County"},
	{Key: "雲林縣", Name: "雲林縣", EnglishName: "Yunlin County"},
	{Key: "嘉義市", Name: "嘉義市", EnglishName: "Chiayi City"},
	{Key: "嘉義縣", Name: "嘉義縣", EnglishName: "Chiayi County"},
	{Key: "屏東縣", Name: "屏東縣", EnglishName: "Pingtung County"},
	{Key: "宜蘭縣", Name: "宜蘭縣", EnglishName: "Yilan County"},
	{Key: "花蓮縣", Name: "花蓮縣", EnglishName: "Hualien County"},
	{Key: "臺東縣", Name: "台東縣", EnglishName: "Taitung County"},
	{Key: "澎湖縣", Name: "澎湖縣", EnglishName: "Penghu County"},
	{Key: "金門縣", Name: "金門縣", EnglishName: "Kinmen County"},
	{Key: "連江縣", Name: "連江縣", EnglishName: "Lienchiang County"},
}

// Short forms that are unambiguous. Hsinchu and Chiayi exist as both a city
// and a county, so only their qualified spellings resolve.
var aliases = map[string]Key{
	"taipei":     "臺北市",
	"new taipei": "新北市",
	"taoyuan":    "桃園市",
	"taichung":   "臺中市",
	"tainan":     "臺南市",
	"kaohsiung":  "高雄市",
	"keelung":    "基隆市",
	"miaoli":     "苗栗縣",
	"changhua":   "彰化縣",
	"nantou":     "南投縣",
	"yunlin":     "雲林縣",
	"pingtung":   "屏東縣",
	"yilan":      "宜蘭縣",
	"hualien":    "花蓮縣",
	"taitung":    "臺東縣",
	"penghu":     "澎湖縣",
	"kinmen":     "金門縣",
	"lienchiang": "連江縣",
	"matsu":      "連江縣",

	"台北": "臺北市",
	"臺北": "臺北市",
	"新北": "新北市",
	"桃園": "桃園市",
	"台中": "臺中市",
	"臺中": "臺中市",
	"台南": "臺南市",
	"臺南": "臺南市",
	"高雄": "高雄市",
	"基隆": "基隆市",
	"台東": "臺東縣",
	"臺東": "臺東縣",
	"馬祖": "連江縣",
}

// Catalog is an immutable lookup table over the 22 regions. It is safe for
// concurrent use.
type Catalog struct {
	ordered []Location
	byKey   map[Key]Location
	lookup  map[string]Key
	terms   []term
}

type term struct {
	text  string
	key   Key
	order int
}

// NewCatalog builds the catalog of Taiwanese counties and cities.
func NewCatalog() *Catalog {
	c := &Catalog{
		ordered: append([]Location(nil), regions...),
		byKey:   make(map[Key]Location, len(regions)),
		lookup:  make(map[string]Key, len(regions)*4+len(aliases)),
	}
	for i, loc := range c.ordered {
		c.byKey[loc.Key] = loc
		for _, spelling := range []string{string(loc.Key), loc.Name, loc.EnglishName} {
			folded := fold(spelling)
			c.lookup[folded] = loc.Key
			c.terms = append(c.terms, term{text: folded, key: loc.Key, order: i})
		}
	}
	aliasNames := make([]string, 0, len(aliases))
	for alias := range aliases {
		aliasNames = append(aliasNames, alias)
	}
	sort.Strings(aliasNames)
	for _, alias := range aliasNames {
		key := aliases[alias]
		folded := fold(alias)
		c.lookup[folded] = key
		c.terms = append(c.terms, term{text: folded, key: key, order: len(c.ordered) + c.indexOf(key)})
	}
	return c
}

// All returns every region in menu order.
func (c *Catalog) All() []Location {
	return append([]Location(nil), c.ordered...)
}

// Get returns the region for a canonical key.
func (c *Catalog) Get(key Key) (Location, bool) {
	loc, ok := c.byKey[key]
	return loc, ok
}

// Normalize resolves input to a region. Unknown input is reported, never guessed.
func (c *Catalog) Normalize(input string) (Location, bool) {
	folded := fold(input)
	if folded == "" {
		return Location{}, false
	}
	key, ok := c.lookup[folded]
	if !ok {
		return Location{}, false
	}
	return c.byKey[key], true
}

// Autocomplete returns up to MaxChoices regions whose names contain query.
// Exact matches rank before prefix matches, which rank before substring
// matches; catalog order breaks ties.
func (c *Catalog) Autocomplete(query string) []Choice {
	folded := fold(query)
	if folded == "" {
		return toChoices(c.ordered)
	}

	type hit struct {
		key   Key
		rank  int
		order int
	}
	best := make(map[Key]hit)
	for _, t := range c.terms {
		rank, ok := matchRank(t.text, folded)
		if !ok {
			continue
		}
		current, seen := best[t.key]
		if !seen || rank < current.rank || (rank == current.rank && t.order < current.order) {
			best[t.key] = hit{key: t.key, rank: rank, order: t.order}
		}
	}

	hits := make([]hit, 0, len(best))
	for _, h := range best {
		hits = append(hits, h)
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].rank != hits[j].rank {
			return hits[i].rank < hits[j].rank
		}
		return hits[i].order < hits[j].order
	})

	locs := make([]Location, 0, len(hits))
	for _, h := range hits {
		locs = append(locs, c.byKey[h.key])
	}
	return toChoices(locs)
}

func (c *Catalog) indexOf(key Key) int {
	for i, loc := range c.ordered {
		if loc.Key == key {
			return i
		}
	}
	return len(c.ordered)
}

func matchRank(candidate, query string) (int, bool) {
	switch {
	case candidate == query:
		return 0, true
	case strings.HasPrefix(candidate, query):
		return 1, true
	case strings.Contains(candidate, query):
		return 2, true
	default:
		return 0, false
	}
}

func toChoices(locs []Location) []Choice {
	if len(locs) > MaxChoices {
		locs = locs[:MaxChoices]
	}
	out := make([]Choice, 0, len(locs))
	for _, loc := range locs {
		out = append(out, Choice{Name: loc.Label(), Value: loc.Key})
	}
	return out
}

// fold trims, width-folds and case-folds input so that "ＴＡＩＰＥＩ ",
// "taipei" and "Taipei" compare equal. Whitespace runs collapse to one space.
func fold(s string) string {
	s = width.Fold.String(strings.TrimSpace(s))
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}
