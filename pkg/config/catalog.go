package config

import (
	"encoding/json"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/aaurigemmafbr/letter-box-updates/pkg/tiers"
)

// 📖 Catalog holds the preconfigured signers for each location, keyed by
// lower-cased location name. It is read from the template repository
// itself (config/signatures.json), not from the local settings file, so
// signer changes ship with the templates they describe.
type Catalog map[string][]tiers.Tier

// 🏭 ParseCatalog decodes a signatures catalog from its JSON blob.
func ParseCatalog(data []byte) (Catalog, error) {
	var raw map[string][]tiers.Tier
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Errorf("parsing signatures catalog: %w", err)
	}

	c := make(Catalog, len(raw))
	for loc, ts := range raw {
		for i, t := range ts {
			if err := t.Validate(); err != nil {
				return nil, errors.Errorf("catalog location %q, signer %d: %w", loc, i, err)
			}
		}
		c[strings.ToLower(loc)] = ts
	}
	return c, nil
}

// 📍 Locations returns the known location names, sorted.
func (c Catalog) Locations() []string {
	locs := make([]string, 0, len(c))
	for loc := range c {
		locs = append(locs, loc)
	}
	sort.Strings(locs)
	return locs
}

// 🔍 Lookup returns the preconfigured signers for a location. Lookup is
// case-insensitive; an unknown location is an error naming the known ones.
func (c Catalog) Lookup(location string) ([]tiers.Tier, error) {
	ts, ok := c[strings.ToLower(location)]
	if !ok {
		return nil, errors.Errorf("unknown location %q, options: %s", location, strings.Join(c.Locations(), ", "))
	}
	return ts, nil
}

// 🔍 FindSigner returns the preconfigured signer with the given name at a
// location. Name matching is case-insensitive.
func (c Catalog) FindSigner(location, name string) (tiers.Tier, error) {
	ts, err := c.Lookup(location)
	if err != nil {
		return tiers.Tier{}, err
	}
	for _, t := range ts {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, t.Name)
	}
	return tiers.Tier{}, errors.Errorf("no signer %q at location %q, options: %s", name, location, strings.Join(names, ", "))
}
