package domain

import (
	"strings"
	"testing"
	"time"
)

func TestLimitsForPlan_KnownPlans(t *testing.T) {
	free := LimitsForPlan(PlanFree)
	if free.Quotas.ConversionsPerDay != 10 {
		t.Fatalf("expected 10 daily conversions for free, got %d", free.Quotas.ConversionsPerDay)
	}
	if free.MaxFiles != 5 {
		t.Fatalf("expected 5 max files for free, got %d", free.MaxFiles)
	}
	if free.PriorityProcessing {
		t.Fatal("free plan should not have priority processing")
	}

	premium := LimitsForPlan(PlanPremium)
	if premium.Quotas.ConversionsPerDay != 500 {
		t.Fatalf("expected 500 daily conversions for premium, got %d", premium.Quotas.ConversionsPerDay)
	}
	if !premium.ResumableUploads || !premium.APIAccess {
		t.Fatal("premium plan should have all feature flags enabled")
	}
}

func TestLimitsForPlan_UnknownFallsBackToFree(t *testing.T) {
	limits := LimitsForPlan(Plan("enterprise"))
	if limits.Quotas.ConversionsPerDay != LimitsForPlan(PlanFree).Quotas.ConversionsPerDay {
		t.Fatal("unknown plan should fall back to free limits")
	}
}

func TestValidateFile_SizeExceeded(t *testing.T) {
	ok, reason := ValidateFile(200*1024*1024, FileCategoryVideo, PlanFree)
	if ok {
		t.Fatal("expected oversized file to fail validation")
	}
	if !strings.Contains(reason, "size limit") {
		t.Fatalf("expected size-limit reason, got %q", reason)
	}
}

func TestValidateFile_UnsupportedType(t *testing.T) {
	ok, reason := ValidateFile(1024, FileCategoryDocument, PlanFree)
	if ok {
		t.Fatal("expected document type to fail on free plan")
	}
	if !strings.Contains(reason, "not supported") {
		t.Fatalf("expected unsupported-type reason, got %q", reason)
	}

	ok, _ = ValidateFile(1024, FileCategoryDocument, PlanPremium)
	if !ok {
		t.Fatal("expected document type to pass on premium plan")
	}
}

func TestValidateFile_OK(t *testing.T) {
	ok, reason := ValidateFile(10*1024*1024, FileCategoryAudio, PlanFree)
	if !ok {
		t.Fatalf("expected valid file, got reason %q", reason)
	}
}

func TestValidateFileCount_Boundary(t *testing.T) {
	for _, plan := range []Plan{PlanFree, PlanPremium} {
		maxFiles := LimitsForPlan(plan).MaxFiles
		for c := 0; c <= maxFiles+1; c++ {
			got := ValidateFileCount(c, plan)
			want := c < maxFiles
			if got != want {
				t.Fatalf("plan %s count %d: got %v, want %v", plan, c, got, want)
			}
		}
	}
}

func TestValidateConversionCount(t *testing.T) {
	if !ValidateConversionCount(1, 1) {
		t.Fatal("one conversion with one remaining should be valid")
	}
	if ValidateConversionCount(2, 1) {
		t.Fatal("two conversions with one remaining should be invalid")
	}
	if ValidateConversionCount(0, 5) {
		t.Fatal("zero requested conversions should be invalid")
	}
}

func TestCheckDailyReset(t *testing.T) {
	if CheckDailyReset(time.Now()) {
		t.Fatal("reset should not trigger for a same-day timestamp")
	}
	if !CheckDailyReset(time.Now().AddDate(0, 0, -1)) {
		t.Fatal("reset should trigger for yesterday")
	}
	if !CheckDailyReset(time.Now().AddDate(-1, 0, 0)) {
		t.Fatal("reset should trigger for the same day last year")
	}
}

func TestCalculateRemainingConversions_SameDay(t *testing.T) {
	remaining := CalculateRemainingConversions(PlanFree, 3, time.Now())
	if remaining != 7 {
		t.Fatalf("expected 7 remaining, got %d", remaining)
	}
}

func TestCalculateRemainingConversions_FloorsAtZero(t *testing.T) {
	remaining := CalculateRemainingConversions(PlanFree, 99, time.Now())
	if remaining != 0 {
		t.Fatalf("expected 0 remaining, got %d", remaining)
	}
}

func TestCalculateRemainingConversions_DayRollover(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)
	remaining := CalculateRemainingConversions(PlanFree, 10, yesterday)
	if remaining != 10 {
		t.Fatalf("expected full quota after rollover, got %d", remaining)
	}
}

func TestCanConvertMore_QuotaScenario(t *testing.T) {
	// Exhausted for today.
	if CanConvertMore(PlanFree, 10, time.Now()) {
		t.Fatal("expected no conversions left with a full counter from today")
	}

	// Same counter, but from yesterday: the reset applies.
	yesterday := time.Now().AddDate(0, 0, -1)
	if !CanConvertMore(PlanFree, 10, yesterday) {
		t.Fatal("expected conversions available after day rollover")
	}
	if got := CalculateRemainingConversions(PlanFree, 10, yesterday); got != 10 {
		t.Fatalf("expected 10 remaining after rollover, got %d", got)
	}
}
