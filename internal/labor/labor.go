// Package labor provides local labor-market estimates (salary and demand)
// for careers near a ZIP code. Estimates are additive context only; matching
// never depends on them.
package labor

import (
	"context"
	"fmt"
	"math"
	"regexp"

	"github.com/jonathan/career-compass/internal/types"
)

// Estimate is the local outlook for one career.
type Estimate struct {
	CareerID string           `json:"career_id"`
	Demand   types.DemandTier `json:"demand"`
	Salary   int              `json:"salary"`
}

// Provider returns estimates keyed by career ID. Careers without data are
// simply absent from the map.
type Provider interface {
	Estimate(ctx context.Context, zipCode string, careers []types.Career) (map[string]Estimate, error)
}

// ZipError reports a ZIP code that cannot be mapped to a region.
type ZipError struct {
	Zip string
}

func (e *ZipError) Error() string {
	return fmt.Sprintf("invalid zip code %q", e.Zip)
}

var zipPattern = regexp.MustCompile(`^(\d)\d{4}(-\d{4})?$`)

// region describes the cost-of-living multiplier and the sectors with
// above-average hiring in one ZIP prefix area.
type region struct {
	multiplier float64
	hot        []types.Sector
	cold       []types.Sector
}

// regions is keyed by the first ZIP digit.
var regions = map[byte]region{
	'0': {multiplier: 1.15, hot: []types.Sector{types.SectorHealthcare, types.SectorEducation}},
	'1': {multiplier: 1.20, hot: []types.Sector{types.SectorBusiness, types.SectorCreative}},
	'2': {multiplier: 1.05, hot: []types.Sector{types.SectorPublicService, types.SectorTechnology}},
	'3': {multiplier: 0.90, hot: []types.Sector{types.SectorHealthcare, types.SectorInfrastructure}, cold: []types.Sector{types.SectorCreative}},
	'4': {multiplier: 0.88, hot: []types.Sector{types.SectorInfrastructure}, cold: []types.Sector{types.SectorTechnology}},
	'5': {multiplier: 0.92, hot: []types.Sector{types.SectorHealthcare}, cold: []types.Sector{types.SectorCreative}},
	'6': {multiplier: 0.97, hot: []types.Sector{types.SectorInfrastructure, types.SectorBusiness}},
	'7': {multiplier: 0.93, hot: []types.Sector{types.SectorInfrastructure, types.SectorHealthcare}},
	'8': {multiplier: 1.00, hot: []types.Sector{types.SectorInfrastructure, types.SectorTechnology}},
	'9': {multiplier: 1.18, hot: []types.Sector{types.SectorTechnology, types.SectorCreative}, cold: []types.Sector{types.SectorInfrastructure}},
}

// RegionalProvider derives estimates from a static regional table. It is
// deterministic and needs no network access.
type RegionalProvider struct{}

// NewRegionalProvider creates a RegionalProvider.
func NewRegionalProvider() *RegionalProvider {
	return &RegionalProvider{}
}

// Estimate implements Provider.
func (p *RegionalProvider) Estimate(ctx context.Context, zipCode string, careers []types.Career) (map[string]Estimate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := zipPattern.FindStringSubmatch(zipCode)
	if m == nil {
		return nil, &ZipError{Zip: zipCode}
	}
	reg := regions[m[1][0]]

	out := make(map[string]Estimate, len(careers))
	for _, c := range careers {
		out[c.ID] = Estimate{
			CareerID: c.ID,
			Demand:   demandFor(c, reg),
			Salary:   int(math.Round(float64(c.AverageSalary)*reg.multiplier/100) * 100),
		}
	}
	return out, nil
}

// demandFor starts from the national growth outlook and moves one tier up
// for a hot sector or one tier down for a cold sector.
func demandFor(c types.Career, reg region) types.DemandTier {
	tiers := []types.DemandTier{types.DemandLow, types.DemandModerate, types.DemandHigh}
	idx := 1
	switch c.GrowthOutlook {
	case "high":
		idx = 2
	case "low":
		idx = 0
	}
	if containsSector(reg.hot, c.Sector) && idx < 2 {
		idx++
	}
	if containsSector(reg.cold, c.Sector) && idx > 0 {
		idx--
	}
	return tiers[idx]
}

func containsSector(list []types.Sector, s types.Sector) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
