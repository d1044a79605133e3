package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDialogueClientSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"recipient_id":"alice","text":"Hi!"},
			{"recipient_id":"alice","text":"Pick one:","buttons":[{"title":"Packages","payload":"/travel_packages"}]},
			{"recipient_id":"alice","custom":{"type":"hotel_cards","cards":[]}},
			{"recipient_id":"alice","buttons":[{"title":"Ignored","payload":"/x"}]}
		]`))
	}))
	defer srv.Close()

	client := NewDialogueClient(srv.URL, time.Second)
	messages, err := client.Send(context.Background(), "alice", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if got["sender"] != "alice" || got["message"] != "hello" {
		t.Errorf("unexpected request body %v", got)
	}

	reply := Aggregate(messages, "fallback")
	if reply.Text != "Hi! Pick one:" {
		t.Errorf("text = %q", reply.Text)
	}
	if len(reply.Buttons) != 1 || reply.Buttons[0].Title != "Packages" {
		t.Errorf("expected the first buttons only, got %+v", reply.Buttons)
	}
	if string(reply.Custom) != `{"type":"hotel_cards","cards":[]}` {
		t.Errorf("custom = %s", reply.Custom)
	}
}

func TestAggregateFallback(t *testing.T) {
	reply := Aggregate(nil, "Sorry, I didn't understand that.")
	if reply.Text != "Sorry, I didn't understand that." || reply.Buttons == nil || reply.Custom != nil {
		t.Errorf("unexpected %+v", reply)
	}
}

func TestDialogueClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewDialogueClient(srv.URL, time.Second).Send(context.Background(), "a", "b"); !errors.Is(err, ErrUpstream) {
		t.Errorf("non-2xx: got %v", err)
	}

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer slow.Close()

	if _, err := NewDialogueClient(slow.URL, 20*time.Millisecond).Send(context.Background(), "a", "b"); !errors.Is(err, ErrUpstream) {
		t.Errorf("timeout: got %v", err)
	}
}

func TestLLMClientComplete(t *testing.T) {
	var req chatCompletionRequest
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&req)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Try Goa in winter.  "}}]}`))
	}))
	defer srv.Close()

	client := NewLLMClient(LLMOptions{URL: srv.URL, APIKey: "k", Model: "m", Referer: "http://ref", Title: "Qyra Chatbot", Timeout: time.Second})
	reply, err := client.Complete(context.Background(), "where to go?")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "Try Goa in winter." {
		t.Errorf("reply = %q", reply)
	}
	if headers.Get("Authorization") != "Bearer k" || headers.Get("X-Title") != "Qyra Chatbot" || headers.Get("HTTP-Referer") != "http://ref" {
		t.Errorf("unexpected headers %v", headers)
	}
	if req.Model != "m" || len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "where to go?" {
		t.Errorf("unexpected request %+v", req)
	}
}

func TestLLMClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		key     string
		wantErr error
	}{
		{"no key", http.StatusOK, "", ErrUpstreamAuth},
		{"unauthorized", http.StatusUnauthorized, "k", ErrUpstreamAuth},
		{"forbidden", http.StatusForbidden, "k", ErrUpstreamAuth},
		{"server error", http.StatusBadGateway, "k", ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			_, err := NewLLMClient(LLMOptions{URL: srv.URL, APIKey: tt.key, Timeout: time.Second}).Complete(context.Background(), "hi")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFallbackReply(t *testing.T) {
	tests := map[string]string{
		"hello":                "Hi! I'm Qyra, your travel assistant. Try 'book _flight' or 'how can i book hotel'!",
		"HELLO":                "Hi! I'm Qyra, your travel assistant. Try 'book _flight' or 'how can i book hotel'!",
		"book_flight":          "Flights: 1) DEL to BOM - $200, 2) DEL to BLR -  $250. Please provide more details to proceed!",
		"how can i book hotel": "To book a hotel, visit a site like Expedia or contact a travel agent. Let me know your location for options!",
		"visa for japan":       "Sorry, I couldn't process 'visa for japan' with the model. Try 'book_flight' or 'how can i book hotel'!",
	}
	for in, want := range tests {
		if got := FallbackReply(in); got != want {
			t.Errorf("FallbackReply(%q) = %q, want %q", in, got, want)
		}
	}
}
