//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "delivery-api"
	ConsumerName = "eater-app"

	StateShopOpen       = "shop 1 is open and sells menu 1"
	StateOrderPending   = "order 1 is pending for the eater"
	StateOrderCompleted = "order 1 was completed for the eater"
	StateOrderMissing   = "no order with id 404"
)

const (
	ExistingShopID  int64 = 1
	ExistingMenuID  int64 = 1
	ExistingOrderID int64 = 1
	MissingOrderID  int64 = 404

	// ConsumerToken is a placeholder; the provider swaps in a real token for the seeded eater.
	ConsumerToken = "pact-eater-token"

	EaterEmail     = "pact.eater@example.com"
	OwnerEmail     = "pact.owner@example.com"
	Password       = "pact1234!"
	OwnerSecret    = "pact-owner-secret"
	ExampleAddr    = "Seoul, Gangnam-gu 1"
	ExamplePhone   = "010-1234-5678"
	ExampleMenu    = "Bibimbap"
	ExamplePrice   = "12000"
	ExampleMinimum = "10000"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the eater app consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExamplePlaceOrderPayload is the order request sent by the consumer.
func ExamplePlaceOrderPayload() map[string]any {
	return map[string]any{
		"shopId":  ExistingShopID,
		"menuId":  ExistingMenuID,
		"address": ExampleAddr,
		"phone":   ExamplePhone,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
