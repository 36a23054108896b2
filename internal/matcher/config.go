package matcher

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the built-in buyer keyword table. Order doubles as
// tie-break priority between equally strong matches.
func DefaultConfig() Config {
	return Config{Buyers: []Keywords{
		{Buyer: "Amazon", Terms: []string{"amazon", "prime video", "mgm", "amazon mgm", "freevee"}},
		{Buyer: "Apple", Terms: []string{"apple", "apple tv+", "appletv", "tv+", "tv plus"}},
		{Buyer: "Comcast/NBCU", Terms: []string{
			"comcast", "nbc", "nbcu", "peacock", "universal", "universal pictures",
			"universal tv", "usa network", "syfy", "bravo", "telemundo", "sky",
		}},
		{Buyer: "Disney", Terms: []string{
			"disney", "disney+", "disney plus", "walt disney", "wdw", "pixar",
			"marvel", "lucasfilm", "espn", "hulu", "abc", "fx", "nat geo",
		}},
		{Buyer: "Netflix", Terms: []string{"netflix", "nflx"}},
		{Buyer: "Paramount", Terms: []string{
			"paramount", "paramount+", "paramount plus", "p+", "cbs", "showtime",
			"mtv", "nickelodeon", "nick", "pluto tv",
		}},
		{Buyer: "Sony", Terms: []string{
			"sony", "sony pictures", "spe", "crunchyroll", "funimation",
			"columbia pictures", "tri-star", "tristar", "screen gems",
			"playstation productions",
		}},
		{Buyer: "WBD", Terms: []string{
			"warner bros", "warner bros. discovery", "wbd", "wb", "warner media",
			"warner hbo", "hbo", "max", "discovery", "discovery+", "tnt", "tbs",
			"cnn", "dc studios", "warner animation",
		}},
		{Buyer: "A24", Terms: []string{"a24"}},
		{Buyer: "Lionsgate", Terms: []string{
			"lionsgate", "lions gate", "starz", "starzplay", "starz play", "grindstone",
		}},
	}}
}

// LoadConfig reads a buyer keyword table from a YAML file. The file fully
// replaces the default table; it is not merged.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, eris.Wrapf(err, "matcher: read keyword file %s", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, eris.Wrapf(err, "matcher: parse keyword file %s", path)
	}
	if len(cfg.Buyers) == 0 {
		return Config{}, eris.Wrapf(eris.New("no buyers defined"), "matcher: keyword file %s", path)
	}
	return cfg, nil
}
