package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendMessage(t *testing.T) {
	var gotPath string
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", srv.URL, "")
	if err := tn.SendMessage(context.Background(), "123", "ciao"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/botTOKEN/sendMessage" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if got["chat_id"] != "123" || got["text"] != "ciao" || got["parse_mode"] != ParseMode {
		t.Errorf("unexpected payload %v", got)
	}
}

func TestSendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", srv.URL, "")
	if err := tn.SendMessage(context.Background(), "1", "x"); err == nil {
		t.Error("expected error on non-200 response")
	}
}

func TestStartPolling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"result":[
			{"update_id":7,"message":{"chat":{"id":99},"text":"/analisi"}},
			{"update_id":8}
		]}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", srv.URL, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls []string
	tn.StartPolling(ctx, func(_ context.Context, chatID, text string) {
		calls = append(calls, chatID+":"+text)
		cancel()
	})

	if len(calls) != 1 || calls[0] != "99:/analisi" {
		t.Errorf("expected one handled message, got %v", calls)
	}
}
