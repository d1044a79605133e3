package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMessageHistory(t *testing.T) {
	db := newTestDB(t)
	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")
	svc := NewMessageService(db)
	ctx := context.Background()

	if _, err := svc.Save(ctx, alice.ID, "hello", "Hi there", nil); err != nil {
		t.Fatal(err)
	}
	saved, err := svc.Save(ctx, alice.ID, "book_flight", "Found 2 flights.", map[string]string{"type": "flight_cards"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(saved.Payload), "flight_cards") {
		t.Errorf("payload not stored: %s", saved.Payload)
	}
	if _, err := svc.SaveForUsername(ctx, "bob", "hi", "Hello bob"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SaveForUsername(ctx, "ghost", "hi", "?"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	newest, err := svc.ListForUser(ctx, alice.ID, false)
	if err != nil || len(newest) != 2 || newest[0].Message != "book_flight" {
		t.Fatalf("newest first = %+v, %v", newest, err)
	}
	oldest, err := svc.ListForUser(ctx, alice.ID, true)
	if err != nil || oldest[0].Message != "hello" {
		t.Fatalf("oldest first = %+v, %v", oldest, err)
	}

	n, err := svc.ClearForUser(ctx, alice.ID)
	if err != nil || n != 2 {
		t.Fatalf("ClearForUser = %d, %v", n, err)
	}
	left, _ := svc.ListForUser(ctx, bob.ID, false)
	if len(left) != 1 {
		t.Errorf("other users' history must survive, got %d", len(left))
	}
}
