package domain

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// StoreList is the YAML document the scraper reads
type StoreList struct {
	Stores []Target `yaml:"stores"`
}

// DefaultStoreList is the built-in set of public Shopify storefronts
func DefaultStoreList() StoreList {
	domains := []string{
		// beauty
		"colourpop.com", "kyliecosmetics.com", "glossier.com", "theordinary.com",
		"fentybeauty.com", "milkmakeup.com", "tartecosmetics.com", "morphe.com",
		// fashion
		"fashionnova.com", "gymshark.com", "allbirds.com", "brooklinen.com",
		"chubbiesshorts.com", "puravidabracelets.com", "mvmtwatches.com",
		// health
		"athleticgreens.com", "ritualsupplements.com",
		// home
		"bombas.com", "away.com", "casper.com",
		// food and drink
		"drinkmudwtr.com", "liquidiv.com",
		// tech accessories
		"casetify.com", "nomadgoods.com", "peakdesign.com",
	}
	out := StoreList{Stores: make([]Target, 0, len(domains))}
	for _, d := range domains {
		out.Stores = append(out.Stores, Target{Domain: d, Platform: "shopify"})
	}
	return out
}

// LoadStoreList reads a YAML store list, applies defaults and validates it
func LoadStoreList(path string) (StoreList, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return StoreList{}, err
	}
	var sl StoreList
	if err := yaml.Unmarshal(b, &sl); err != nil {
		return StoreList{}, fmt.Errorf("parse %s: %w", path, err)
	}
	sl.applyDefaults()
	if err := sl.Validate(); err != nil {
		return StoreList{}, fmt.Errorf("%s: %w", path, err)
	}
	return sl, nil
}

func (sl *StoreList) applyDefaults() {
	for i := range sl.Stores {
		sl.Stores[i].Domain = strings.ToLower(strings.TrimSpace(sl.Stores[i].Domain))
		if sl.Stores[i].Platform == "" {
			sl.Stores[i].Platform = "shopify"
		}
	}
}

// Validate rejects empty lists, blank or duplicate domains and non-shopify platforms
func (sl StoreList) Validate() error {
	if len(sl.Stores) == 0 {
		return fmt.Errorf("no stores")
	}
	seen := make(map[string]struct{}, len(sl.Stores))
	for i, t := range sl.Stores {
		if t.Domain == "" || strings.ContainsAny(t.Domain, " /") {
			return fmt.Errorf("stores[%d]: invalid domain %q", i, t.Domain)
		}
		if t.Platform != "shopify" {
			return fmt.Errorf("stores[%d]: platform %q cannot be scraped", i, t.Platform)
		}
		if _, dup := seen[t.Domain]; dup {
			return fmt.Errorf("stores[%d]: duplicate domain %q", i, t.Domain)
		}
		seen[t.Domain] = struct{}{}
	}
	return nil
}
