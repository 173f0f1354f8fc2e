package costmodel

import (
	"maps"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/gosimple/slug"
)

// Category is the closed set of vendor categories. Keys are slugs so the
// same value works in URLs, the database and the template table.
type Category string

const (
	CategoryPoolService       Category = "pool-service"
	CategoryLandscaping       Category = "landscaping"
	CategoryPestControl       Category = "pest-control"
	CategoryHVAC              Category = "hvac"
	CategoryPlumbing          Category = "plumbing"
	CategoryElectrical        Category = "electrical"
	CategoryPetGrooming       Category = "pet-grooming"
	CategoryHouseCleaning     Category = "house-cleaning"
	CategoryMobileTireRepair  Category = "mobile-tire-repair"
	CategoryApplianceRepair   Category = "appliance-repair"
	CategoryHandyman          Category = "handyman"
	CategoryLandscapeLighting Category = "landscape-lighting"
	CategoryPowerWashing      Category = "power-washing"
	CategoryCarWashDetail     Category = "car-wash-detail"
	CategoryWaterFiltration   Category = "water-filtration"
	CategoryGenerator         Category = "generator"
	CategoryRoofing           Category = "roofing"
	CategoryGeneralContractor Category = "general-contractor"
	CategoryOther             Category = "other"
)

// allCategories is in display order.
var allCategories = []Category{
	CategoryPoolService,
	CategoryLandscaping,
	CategoryPestControl,
	CategoryHVAC,
	CategoryPlumbing,
	CategoryElectrical,
	CategoryPetGrooming,
	CategoryHouseCleaning,
	CategoryMobileTireRepair,
	CategoryApplianceRepair,
	CategoryHandyman,
	CategoryLandscapeLighting,
	CategoryPowerWashing,
	CategoryCarWashDetail,
	CategoryWaterFiltration,
	CategoryGenerator,
	CategoryRoofing,
	CategoryGeneralContractor,
	CategoryOther,
}

// aliases maps common alternative spellings (already slugified) onto a category.
var aliases = map[string]Category{
	"pool":                CategoryPoolService,
	"pool-cleaning":       CategoryPoolService,
	"pool-maintenance":    CategoryPoolService,
	"lawn-care":           CategoryLandscaping,
	"lawn-service":        CategoryLandscaping,
	"landscaper":          CategoryLandscaping,
	"pest":                CategoryPestControl,
	"exterminator":        CategoryPestControl,
	"heating-and-cooling": CategoryHVAC,
	"air-conditioning":    CategoryHVAC,
	"ac-repair":           CategoryHVAC,
	"plumber":             CategoryPlumbing,
	"electrician":         CategoryElectrical,
	"dog-grooming":        CategoryPetGrooming,
	"grooming":            CategoryPetGrooming,
	"maid-service":        CategoryHouseCleaning,
	"cleaning":            CategoryHouseCleaning,
	"tire-repair":         CategoryMobileTireRepair,
	"appliances":          CategoryApplianceRepair,
	"handyman-services":   CategoryHandyman,
	"outdoor-lighting":    CategoryLandscapeLighting,
	"pressure-washing":    CategoryPowerWashing,
	"car-wash":            CategoryCarWashDetail,
	"auto-detailing":      CategoryCarWashDetail,
	"mobile-detailing":    CategoryCarWashDetail,
	"water-softener":      CategoryWaterFiltration,
	"generators":          CategoryGenerator,
	"roofer":              CategoryRoofing,
	"contractor":          CategoryGeneralContractor,
}

// substringRule matches legacy free-text labels. Order matters: the more
// specific needles come first ("landscape-lighting" before "landscap").
type substringRule struct {
	needles  []string
	category Category
}

var substringRules = []substringRule{
	{[]string{"roof"}, CategoryRoofing},
	{[]string{"general-contractor"}, CategoryGeneralContractor},
	{[]string{"landscape-lighting", "outdoor-lighting"}, CategoryLandscapeLighting},
	{[]string{"hvac", "heating", "air-condition"}, CategoryHVAC},
	{[]string{"water-filt", "water-soft"}, CategoryWaterFiltration},
	{[]string{"generator"}, CategoryGenerator},
	{[]string{"power-wash", "pressure-wash"}, CategoryPowerWashing},
	{[]string{"car-wash", "detailing"}, CategoryCarWashDetail},
	{[]string{"pool"}, CategoryPoolService},
	{[]string{"landscap", "lawn"}, CategoryLandscaping},
	{[]string{"pest"}, CategoryPestControl},
	{[]string{"plumb"}, CategoryPlumbing},
	{[]string{"electric"}, CategoryElectrical},
	{[]string{"groom"}, CategoryPetGrooming},
	{[]string{"clean", "maid"}, CategoryHouseCleaning},
	{[]string{"tire"}, CategoryMobileTireRepair},
	{[]string{"appliance"}, CategoryApplianceRepair},
	{[]string{"handyman"}, CategoryHandyman},
}

// Categories returns every known category in display order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	return slices.Contains(allCategories, c)
}

func lookup(key string) (Category, bool) {
	if Category(key).Valid() {
		return Category(key), true
	}
	c, ok := aliases[key]
	return c, ok
}

// ParseCategory is the strict parser used when a vendor is created: the label
// must be a known key or alias. Matching is case- and punctuation-insensitive.
func ParseCategory(label string) (Category, error) {
	key := slug.Make(label)
	if c, ok := lookup(key); ok {
		return c, nil
	}
	return "", &UnknownCategoryError{Label: label, Suggestion: Suggest(label)}
}

// Classify maps any label to a category and never fails. Unrecognised labels
// fall through to CategoryOther.
func Classify(label string) Category {
	key := slug.Make(label)
	if key == "" {
		return CategoryOther
	}
	if c, ok := lookup(key); ok {
		return c
	}
	for _, rule := range substringRules {
		for _, needle := range rule.needles {
			if strings.Contains(key, needle) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

// Suggest returns the known category closest to label by edit distance, or ""
// when nothing is close enough to be worth offering.
func Suggest(label string) Category {
	key := slug.Make(label)
	if key == "" {
		return ""
	}
	best := Category("")
	bestDist := -1
	consider := func(candidate string, c Category) {
		d := levenshtein.ComputeDistance(key, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	for _, c := range allCategories {
		consider(string(c), c)
	}
	for _, alias := range slices.Sorted(maps.Keys(aliases)) {
		consider(alias, aliases[alias])
	}
	limit := len(key) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist > limit {
		return ""
	}
	return best
}
