package server

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/homework-bot/internal/config"
	"github.com/preston-bernstein/homework-bot/internal/notifier"
	"github.com/preston-bernstein/homework-bot/internal/store"
	"github.com/preston-bernstein/homework-bot/internal/teststubs"
)

func TestSelectNotifierKinds(t *testing.T) {
	n, err := selectNotifier(config.Config{Notifier: config.NotifierConfig{Kind: config.NotifierLog}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := n.(*notifier.Log); !ok {
		t.Fatalf("expected log notifier, got %T", n)
	}

	n, err = selectNotifier(config.Config{Notifier: config.NotifierConfig{
		Kind:         config.NotifierSlack,
		SlackToken:   "xoxb-test",
		SlackChannel: "C123",
	}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := n.(*notifier.Slack); !ok {
		t.Fatalf("expected slack notifier, got %T", n)
	}
}

func TestSelectNotifierTelegramUsesFactory(t *testing.T) {
	orig := telegramFactory
	defer func() { telegramFactory = orig }()

	var gotToken string
	var gotChat int64
	stub := &teststubs.StubNotifier{}
	telegramFactory = func(token string, chatID int64, logger *slog.Logger) (notifier.Notifier, error) {
		gotToken, gotChat = token, chatID
		return stub, nil
	}

	n, err := selectNotifier(config.Config{Notifier: config.NotifierConfig{
		Kind:           config.NotifierTelegram,
		TelegramToken:  "bot-token",
		TelegramChatID: "-42",
	}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != stub || gotToken != "bot-token" || gotChat != -42 {
		t.Fatalf("unexpected telegram wiring token=%q chat=%d", gotToken, gotChat)
	}
}

func TestSelectNotifierRejectsBadChatID(t *testing.T) {
	_, err := selectNotifier(config.Config{Notifier: config.NotifierConfig{
		Kind:           config.NotifierTelegram,
		TelegramChatID: "not-a-number",
	}}, nil)
	if _, ok := config.AsConfigError(err); !ok {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestOpenStateStore(t *testing.T) {
	ctx := context.Background()

	mem, err := openStateStore(ctx, config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := mem.(*store.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", mem)
	}

	db, err := openStateStore(ctx, config.Config{StateDBPath: filepath.Join(t.TempDir(), "state.db")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()
	if _, ok := db.(*store.SQLiteStore); !ok {
		t.Fatalf("expected sqlite store, got %T", db)
	}
}

func TestBuildComponentsRunsOneCycle(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{
		Provider:    config.ProviderFixture,
		Notifier:    config.NotifierConfig{Kind: config.NotifierLog},
		StateDBPath: filepath.Join(t.TempDir(), "state.db"),
	}

	comps, err := BuildComponents(ctx, cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events, err := comps.Poller.RunOnce(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected an event per fixture homework, got %d", len(events))
	}
	if err := comps.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := store.OpenSQLite(ctx, cfg.StateDBPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	state, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(state.Seen) != 2 {
		t.Fatalf("expected persisted state for both homeworks, got %+v", state.Seen)
	}
}

func TestBuildComponentsFailsOnNotifierError(t *testing.T) {
	orig := telegramFactory
	defer func() { telegramFactory = orig }()
	boom := errors.New("unauthorized")
	telegramFactory = func(string, int64, *slog.Logger) (notifier.Notifier, error) { return nil, boom }

	_, err := BuildComponents(context.Background(), config.Config{
		Provider: config.ProviderFixture,
		Notifier: config.NotifierConfig{Kind: config.NotifierTelegram, TelegramChatID: "1"},
	}, nil, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected notifier error, got %v", err)
	}
}

func TestComponentsCloseIsNilSafe(t *testing.T) {
	var c *Components
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
