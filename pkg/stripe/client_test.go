package stripe

import (
	"context"
	"testing"

	"github.com/orienta-za/orienta-backend/pkg/config"
)

func TestNewClientValidatesKeyAgainstEnv(t *testing.T) {
	ctx := context.Background()

	client, err := NewClient(ctx, config.StripeConfig{APIKey: "sk_test_abc", Env: "test"}, nil)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if client.Environment() != "test" {
		t.Fatalf("expected test environment, got %q", client.Environment())
	}
	if client.API() == nil {
		t.Fatalf("expected api client")
	}

	if _, err := NewClient(ctx, config.StripeConfig{APIKey: "sk_live_abc", Env: "test"}, nil); err == nil {
		t.Fatal("test env should reject live key")
	}
	if _, err := NewClient(ctx, config.StripeConfig{APIKey: "sk_test_abc", Env: "live"}, nil); err == nil {
		t.Fatal("live env should reject test key")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), config.StripeConfig{Env: "test"}, nil); err == nil {
		t.Fatal("expected missing key error")
	}
}

func TestNewClientRejectsUnknownEnv(t *testing.T) {
	cfg := config.StripeConfig{APIKey: "sk_test_abc", Env: "sandbox"}
	if _, err := NewClient(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected invalid environment error")
	}
}

func TestNilClientAccessors(t *testing.T) {
	var c *Client
	if c.API() != nil {
		t.Fatal("nil client should return nil api")
	}
	if c.Environment() != "" {
		t.Fatal("nil client should return empty environment")
	}
}
