package domain

import "time"

// ServiceCategory enumerates the kinds of work residents can request.
type ServiceCategory string

const (
	CategoryCleaning        ServiceCategory = "CLEANING"
	CategoryMaintenance     ServiceCategory = "MAINTENANCE"
	CategorySecurity        ServiceCategory = "SECURITY"
	CategoryGardening       ServiceCategory = "GARDENING"
	CategoryPestControl     ServiceCategory = "PEST_CONTROL"
	CategoryPoolMaintenance ServiceCategory = "POOL_MAINTENANCE"
	CategoryWasteManagement ServiceCategory = "WASTE_MANAGEMENT"
)

// CategoryInfo carries the static metadata attached to a service category.
type CategoryInfo struct {
	DisplayName       string
	Description       string
	MinDuration       time.Duration
	MaxDuration       time.Duration
	WeekendsAvailable bool
}

var categoryInfos = map[ServiceCategory]CategoryInfo{
	CategoryCleaning: {
		DisplayName:       "Cleaning",
		Description:       "Apartment and common-area cleaning",
		MinDuration:       2 * time.Hour,
		MaxDuration:       4 * time.Hour,
		WeekendsAvailable: true,
	},
	CategoryMaintenance: {
		DisplayName:       "Maintenance",
		Description:       "General repairs and upkeep",
		MinDuration:       time.Hour,
		MaxDuration:       8 * time.Hour,
		WeekendsAvailable: true,
	},
	CategorySecurity: {
		DisplayName:       "Security",
		Description:       "Security patrol and monitoring",
		MinDuration:       24 * time.Hour,
		MaxDuration:       24 * time.Hour,
		WeekendsAvailable: true,
	},
	CategoryGardening: {
		DisplayName:       "Gardening",
		Description:       "Garden and landscape care",
		MinDuration:       time.Hour,
		MaxDuration:       3 * time.Hour,
		WeekendsAvailable: true,
	},
	CategoryPestControl: {
		DisplayName:       "Pest Control",
		Description:       "Pest inspection and treatment",
		MinDuration:       30 * time.Minute,
		MaxDuration:       2 * time.Hour,
		WeekendsAvailable: false,
	},
	CategoryPoolMaintenance: {
		DisplayName:       "Pool Maintenance",
		Description:       "Pool cleaning and chemical balancing",
		MinDuration:       time.Hour,
		MaxDuration:       2 * time.Hour,
		WeekendsAvailable: false,
	},
	CategoryWasteManagement: {
		DisplayName:       "Waste Management",
		Description:       "Waste collection and disposal",
		MinDuration:       time.Hour,
		MaxDuration:       time.Hour,
		WeekendsAvailable: false,
	},
}

// Categories returns all known service categories in declaration order.
func Categories() []ServiceCategory {
	return []ServiceCategory{
		CategoryCleaning,
		CategoryMaintenance,
		CategorySecurity,
		CategoryGardening,
		CategoryPestControl,
		CategoryPoolMaintenance,
		CategoryWasteManagement,
	}
}

// Valid reports whether the category is one of the known values.
func (c ServiceCategory) Valid() bool {
	_, ok := categoryInfos[c]
	return ok
}

// Info returns the metadata for the category. Unknown categories yield the
// zero CategoryInfo and ok=false.
func (c ServiceCategory) Info() (CategoryInfo, bool) {
	info, ok := categoryInfos[c]
	return info, ok
}

// AvailableOnWeekends reports whether the category may be scheduled on a
// Saturday or Sunday.
func (c ServiceCategory) AvailableOnWeekends() bool {
	return categoryInfos[c].WeekendsAvailable
}
