package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"file-converter-api/internal/config"
	"file-converter-api/internal/domain"
)

func TestUserHandler_GetUser_OK(t *testing.T) {
	quota := &mockQuotaService{user: &domain.User{
		ID:              "u1",
		Email:           "test@example.com",
		Name:            "Test",
		Plan:            domain.PlanFree,
		ConversionCount: 3,
		LastReset:       time.Now(),
	}}
	container := &config.Container{QuotaService: quota, Logger: NewMockHandlerLogger()}
	handler := NewUserHandler(container)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req = createContextWithUser(req, &domain.SupabaseUser{ID: "u1", Email: "test@example.com"})

	rr := httptest.NewRecorder()
	handler.GetUser(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["id"] != "u1" {
		t.Fatalf("expected id u1, got %v", resp["id"])
	}
	if resp["plan"] != "free" {
		t.Fatalf("expected plan free, got %v", resp["plan"])
	}
	if resp["conversionCount"] != float64(3) {
		t.Fatalf("expected conversionCount 3, got %v", resp["conversionCount"])
	}
}

func TestUserHandler_GetUser_NoContext(t *testing.T) {
	container := &config.Container{Logger: NewMockHandlerLogger()}
	handler := NewUserHandler(container)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	rr := httptest.NewRecorder()
	handler.GetUser(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestUserHandler_GetUser_StoreFailure(t *testing.T) {
	quota := &mockQuotaService{err: domain.ErrConflict}
	container := &config.Container{QuotaService: quota, Logger: NewMockHandlerLogger()}
	handler := NewUserHandler(container)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req = createContextWithUser(req, &domain.SupabaseUser{ID: "u1"})
	rr := httptest.NewRecorder()
	handler.GetUser(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Internal server error") {
		t.Fatalf("expected generic error body, got %s", rr.Body.String())
	}
}

func TestUserHandler_RecordConversion_OK(t *testing.T) {
	quota := &mockQuotaService{user: &domain.User{
		ID: "u1", Plan: domain.PlanFree, ConversionCount: 2, LastReset: time.Now(),
	}}
	container := &config.Container{QuotaService: quota, Logger: NewMockHandlerLogger()}
	handler := NewUserHandler(container)

	body := strings.NewReader(`{"conversions":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/conversions", body)
	req = createContextWithUser(req, &domain.SupabaseUser{ID: "u1"})
	rr := httptest.NewRecorder()
	handler.RecordConversion(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if quota.recorded != 2 {
		t.Fatalf("expected 2 recorded conversions, got %d", quota.recorded)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["conversionCount"] != float64(4) {
		t.Fatalf("expected conversionCount 4, got %v", resp["conversionCount"])
	}
	if resp["remaining"] != float64(6) {
		t.Fatalf("expected remaining 6, got %v", resp["remaining"])
	}
}

func TestUserHandler_RecordConversion_DefaultsToOne(t *testing.T) {
	quota := &mockQuotaService{user: &domain.User{
		ID: "u1", Plan: domain.PlanFree, ConversionCount: 0, LastReset: time.Now(),
	}}
	container := &config.Container{QuotaService: quota, Logger: NewMockHandlerLogger()}
	handler := NewUserHandler(container)

	req := httptest.NewRequest(http.MethodPost, "/api/conversions", nil)
	req = createContextWithUser(req, &domain.SupabaseUser{ID: "u1"})
	rr := httptest.NewRecorder()
	handler.RecordConversion(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if quota.recorded != 1 {
		t.Fatalf("expected 1 recorded conversion, got %d", quota.recorded)
	}
}

func TestUserHandler_RecordConversion_QuotaExceeded(t *testing.T) {
	quota := &mockQuotaService{
		user:      &domain.User{ID: "u1", Plan: domain.PlanFree, ConversionCount: 10, LastReset: time.Now()},
		recordErr: domain.ErrQuotaExceeded,
	}
	container := &config.Container{QuotaService: quota, Logger: NewMockHandlerLogger()}
	handler := NewUserHandler(container)

	req := httptest.NewRequest(http.MethodPost, "/api/conversions", strings.NewReader(`{}`))
	req = createContextWithUser(req, &domain.SupabaseUser{ID: "u1"})
	rr := httptest.NewRecorder()
	handler.RecordConversion(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "limit") {
		t.Fatalf("expected quota message, got %s", rr.Body.String())
	}
}
