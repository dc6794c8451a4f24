package domain

import (
	"fmt"
	"time"
)

// Plan is a named subscription tier.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// FileCategory groups file types a plan may convert.
type FileCategory string

const (
	FileCategoryVideo    FileCategory = "video"
	FileCategoryAudio    FileCategory = "audio"
	FileCategoryImage    FileCategory = "image"
	FileCategoryDocument FileCategory = "document"
)

// Quotas are the numeric conversion ceilings for a plan.
//
// Only the daily quota is enforced server-side; the monthly figure is
// surfaced to clients for display.
type Quotas struct {
	ConversionsPerDay   int `json:"conversions_per_day"`
	ConversionsPerMonth int `json:"conversions_per_month"`
}

// PlanLimits is the static per-plan policy.
type PlanLimits struct {
	Quotas             Quotas         `json:"quotas"`
	MaxFileSizeBytes   int64          `json:"max_file_size_bytes"`
	MaxFiles           int            `json:"max_files"`
	AllowedTypes       []FileCategory `json:"allowed_types"`
	ResumableUploads   bool           `json:"resumable_uploads"`
	PriorityProcessing bool           `json:"priority_processing"`
	APIAccess          bool           `json:"api_access"`
	CustomWatermarks   bool           `json:"custom_watermarks"`
	AdvancedSettings   bool           `json:"advanced_settings"`
}

var planLimits = map[Plan]PlanLimits{
	PlanFree: {
		Quotas:           Quotas{ConversionsPerDay: 10, ConversionsPerMonth: 300},
		MaxFileSizeBytes: 100 * 1024 * 1024,
		MaxFiles:         5,
		AllowedTypes:     []FileCategory{FileCategoryVideo, FileCategoryAudio, FileCategoryImage},
	},
	PlanPremium: {
		Quotas:             Quotas{ConversionsPerDay: 500, ConversionsPerMonth: 15000},
		MaxFileSizeBytes:   2 * 1024 * 1024 * 1024,
		MaxFiles:           20,
		AllowedTypes:       []FileCategory{FileCategoryVideo, FileCategoryAudio, FileCategoryImage, FileCategoryDocument},
		ResumableUploads:   true,
		PriorityProcessing: true,
		APIAccess:          true,
		CustomWatermarks:   true,
		AdvancedSettings:   true,
	},
}

// LimitsForPlan returns the limits for the given plan.
// Unknown plans fall back to the free tier.
func LimitsForPlan(plan Plan) PlanLimits {
	if limits, ok := planLimits[plan]; ok {
		return limits
	}
	return planLimits[PlanFree]
}

// ValidateFile checks a candidate file against the plan's limits.
// On failure the returned reason is suitable for end users.
func ValidateFile(sizeBytes int64, category FileCategory, plan Plan) (bool, string) {
	limits := LimitsForPlan(plan)

	if sizeBytes > limits.MaxFileSizeBytes {
		return false, fmt.Sprintf("file exceeds the %s plan size limit of %d MB", plan, limits.MaxFileSizeBytes/(1024*1024))
	}

	for _, allowed := range limits.AllowedTypes {
		if category == allowed {
			return true, ""
		}
	}
	return false, fmt.Sprintf("file type %q is not supported on the %s plan", category, plan)
}

// ValidateFileCount checks whether one more file can be added.
func ValidateFileCount(currentCount int, plan Plan) bool {
	return currentCount < LimitsForPlan(plan).MaxFiles
}

// ValidateConversionCount checks a batch of requested conversions against
// the remaining daily allowance.
func ValidateConversionCount(requested, remaining int) bool {
	return requested > 0 && requested <= remaining
}

// CheckDailyReset reports whether the UTC calendar day has changed since
// lastReset, which triggers zeroing of the conversion counter.
func CheckDailyReset(lastReset time.Time) bool {
	return dayChanged(lastReset, time.Now())
}

func dayChanged(lastReset, now time.Time) bool {
	a := lastReset.UTC()
	b := now.UTC()
	return a.Year() != b.Year() || a.YearDay() != b.YearDay()
}

// CalculateRemainingConversions returns the conversions left today,
// floored at zero. A counter from a previous day contributes nothing.
func CalculateRemainingConversions(plan Plan, conversionCount int, lastReset time.Time) int {
	effective := conversionCount
	if CheckDailyReset(lastReset) {
		effective = 0
	}

	remaining := LimitsForPlan(plan).Quotas.ConversionsPerDay - effective
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanConvertMore reports whether at least one conversion remains today.
func CanConvertMore(plan Plan, conversionCount int, lastReset time.Time) bool {
	return CalculateRemainingConversions(plan, conversionCount, lastReset) > 0
}
