package discord

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"
	"github.com/keshon/swolebro/internal/command"
	_ "github.com/keshon/swolebro/internal/command/core"
	_ "github.com/keshon/swolebro/internal/command/jcfdiscord"
	"github.com/keshon/swolebro/internal/config"
	"github.com/keshon/swolebro/pkg/cmd"
	"github.com/keshon/swolebro/pkg/throttle"
)

type overwrite struct {
	GuildID string
	Names   []string
}

type reply struct {
	InteractionID string
	Content       string
}

// fakeGateway records every outbound call.
type fakeGateway struct {
	mu         sync.Mutex
	overwrites []overwrite
	watching   []string
	replies    []reply
	channels   map[string]string

	overwriteErr error
	watchErr     error
	replyErr     error
}

func (g *fakeGateway) OverwriteCommands(guildID string, defs []*discordgo.ApplicationCommand) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	ow := overwrite{GuildID: guildID}
	for _, d := range defs {
		ow.Names = append(ow.Names, d.Name)
	}
	g.overwrites = append(g.overwrites, ow)
	return g.overwriteErr
}

func (g *fakeGateway) SetWatching(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.watching = append(g.watching, name)
	return g.watchErr
}

func (g *fakeGateway) Reply(i *discordgo.Interaction, content string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	var id string
	if i != nil {
		id = i.ID
	}
	g.replies = append(g.replies, reply{InteractionID: id, Content: content})
	return g.replyErr
}

func (g *fakeGateway) ChannelName(channelID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	name, ok := g.channels[channelID]
	if !ok {
		return "", errors.New("unknown channel")
	}
	return name, nil
}

func testRouter() (*Router, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Router{
		Registry:         cmd.DefaultRegistry,
		Log:              log.New(&buf, "", 0),
		Activity:         "u sleep",
		RegisterCommands: true,
	}, &buf
}

func TestReadyRegistersGlobalCommands(t *testing.T) {
	r, buf := testRouter()
	gw := &fakeGateway{}
	r.Handle(context.Background(), gw, Ready{Username: "swolebro", ShardID: 0})

	want := []overwrite{{GuildID: "", Names: []string{"help", "ping"}}}
	if diff := cmp.Diff(want, gw.overwrites); diff != "" {
		t.Errorf("overwrites (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"u sleep"}, gw.watching); diff != "" {
		t.Errorf("presence updates (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "Discovered Username: swolebro") {
		t.Errorf("startup identity not logged: %q", buf.String())
	}
}

func TestReadyRegistrationFailureIsNotFatal(t *testing.T) {
	r, buf := testRouter()
	gw := &fakeGateway{overwriteErr: errors.New("401 Unauthorized")}
	r.Handle(context.Background(), gw, Ready{Username: "swolebro"})

	if len(gw.watching) != 1 {
		t.Errorf("presence not set after failed registration: %v", gw.watching)
	}
	if !strings.Contains(buf.String(), "[ERR] Error registering global commands") {
		t.Errorf("registration failure not logged: %q", buf.String())
	}
}

func TestGuildDiscoveredRegistersGuildCommands(t *testing.T) {
	r, _ := testRouter()
	gw := &fakeGateway{}
	r.Handle(context.Background(), gw, GuildDiscovered{GuildID: "Test", Name: "Test"})

	want := []overwrite{{GuildID: "Test", Names: []string{"noot", "swole"}}}
	if diff := cmp.Diff(want, gw.overwrites); diff != "" {
		t.Errorf("overwrites (-want +got):\n%s", diff)
	}
	if len(gw.watching) != 0 {
		t.Errorf("guild discovery changed presence: %v", gw.watching)
	}
}

func TestGuildFailureDoesNotStopOtherGuilds(t *testing.T) {
	r, buf := testRouter()
	gw := &fakeGateway{overwriteErr: errors.New("missing access")}
	r.Handle(context.Background(), gw, GuildDiscovered{GuildID: "1", Name: "one"})
	gw.overwriteErr = nil
	r.Handle(context.Background(), gw, GuildDiscovered{GuildID: "2", Name: "two"})

	if len(gw.overwrites) != 2 {
		t.Fatalf("got %d registration calls, want 2", len(gw.overwrites))
	}
	if !strings.Contains(buf.String(), "Error registering guild commands for one") {
		t.Errorf("failure not logged: %q", buf.String())
	}
}

func TestBlacklistedGuildIsSkipped(t *testing.T) {
	r, _ := testRouter()
	r.GuildBlacklist = []string{"666"}
	gw := &fakeGateway{}
	r.Handle(context.Background(), gw, GuildDiscovered{GuildID: "666", Name: "cursed"})
	if len(gw.overwrites) != 0 {
		t.Errorf("blacklisted guild got commands: %v", gw.overwrites)
	}
}

func TestRegistrationDisabled(t *testing.T) {
	r, _ := testRouter()
	r.RegisterCommands = false
	gw := &fakeGateway{}
	r.Handle(context.Background(), gw, Ready{})
	r.Handle(context.Background(), gw, GuildDiscovered{GuildID: "1"})
	if len(gw.overwrites) != 0 {
		t.Errorf("registration ran while disabled: %v", gw.overwrites)
	}
	if len(gw.watching) != 1 {
		t.Errorf("presence should still be set, got %v", gw.watching)
	}
}

func TestRegisterTwice(t *testing.T) {
	r, _ := testRouter()
	gw := &fakeGateway{}
	for i := 0; i < 2; i++ {
		if err := r.Register(context.Background(), gw, "Test", command.ScopeGuild); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	if len(gw.overwrites) != 2 || !cmp.Equal(gw.overwrites[0], gw.overwrites[1]) {
		t.Errorf("repeated registration differs: %v", gw.overwrites)
	}
}

func TestRegisterErrorWraps(t *testing.T) {
	r, _ := testRouter()
	base := errors.New("boom")
	gw := &fakeGateway{overwriteErr: base}
	err := r.Register(context.Background(), gw, "", command.ScopeGlobal)
	if !errors.Is(err, base) {
		t.Errorf("Register err = %v, want wrapping %v", err, base)
	}
}

func TestRegisterSlowsDownOnRateLimit(t *testing.T) {
	r, _ := testRouter()
	r.Limiter = throttle.New(4, 1, 8, 1, 0.5)
	gw := &fakeGateway{overwriteErr: restError(&discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusTooManyRequests},
	})}
	if err := r.Register(context.Background(), gw, "", command.ScopeGlobal); err == nil {
		t.Fatal("expected error")
	}
	if got := r.Limiter.CurrentLimit(); got != 2 {
		t.Errorf("limit after 429 = %v, want 2", got)
	}
	if len(gw.overwrites) != 1 {
		t.Errorf("failed registration was repeated: %d calls", len(gw.overwrites))
	}
}

func TestRegisterCanceledContext(t *testing.T) {
	r, _ := testRouter()
	r.Limiter = throttle.New(1, 1, 1, 0, 0.5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gw := &fakeGateway{}
	if err := r.Register(ctx, gw, "", command.ScopeGlobal); err == nil {
		t.Error("expected error on canceled context")
	}
	if len(gw.overwrites) != 0 {
		t.Errorf("registration issued after cancel: %v", gw.overwrites)
	}
}

func TestInteractionReplies(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"swole", "Too bad you're not as swole as swolebro"},
		{"ping", "Pong!"},
		{"help", "Not yet implemented!"},
		{"noot", "noot noot"},
		{"functions", "This interaction is not implemented."},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, _ := testRouter()
			gw := &fakeGateway{}
			r.Handle(context.Background(), gw, InteractionReceived{
				Interaction: &discordgo.Interaction{ID: "42"},
				Name:        c.name,
				Context:     &command.InteractionContext{GuildID: "Test", Username: "bro"},
			})
			want := []reply{{InteractionID: "42", Content: c.want}}
			if diff := cmp.Diff(want, gw.replies); diff != "" {
				t.Errorf("replies (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReplyFailureIsLogged(t *testing.T) {
	r, buf := testRouter()
	gw := &fakeGateway{replyErr: errors.New("unknown interaction")}
	r.Handle(context.Background(), gw, InteractionReceived{Interaction: &discordgo.Interaction{}, Name: "ping"})
	if len(gw.replies) != 1 {
		t.Errorf("reply attempted %d times, want 1", len(gw.replies))
	}
	if !strings.Contains(buf.String(), "Cannot respond to slash command /ping: unknown interaction") {
		t.Errorf("reply failure not logged: %q", buf.String())
	}
}

func TestMessageLogLine(t *testing.T) {
	cases := []struct {
		name     string
		channels map[string]string
		want     string
	}{
		{"resolved", map[string]string{"c1": "general"}, "#general [bro#0001]: do you even lift\n"},
		{"lookup failure", nil, "#(no channel name) [bro#0001]: do you even lift\n"},
		{"empty name", map[string]string{"c1": ""}, "#(no channel name) [bro#0001]: do you even lift\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, buf := testRouter()
			gw := &fakeGateway{channels: c.channels}
			r.Handle(context.Background(), gw, MessageReceived{
				AuthorName:    "bro",
				Discriminator: "0001",
				ChannelID:     "c1",
				Content:       "do you even lift",
			})
			if got := buf.String(); got != c.want {
				t.Errorf("log = %q, want %q", got, c.want)
			}
			if len(gw.replies) != 0 {
				t.Errorf("message produced replies: %v", gw.replies)
			}
		})
	}
}

func TestConcurrentEvents(t *testing.T) {
	r, _ := testRouter()
	r.Log = log.New(&lockedWriter{}, "", 0)
	gw := &fakeGateway{channels: map[string]string{"c": "gym"}}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch i % 3 {
			case 0:
				r.Handle(context.Background(), gw, InteractionReceived{Interaction: &discordgo.Interaction{}, Name: "noot"})
			case 1:
				r.Handle(context.Background(), gw, MessageReceived{ChannelID: "c", Content: "hi"})
			default:
				r.Handle(context.Background(), gw, GuildDiscovered{GuildID: "g"})
			}
		}()
	}
	wg.Wait()

	if len(gw.replies) != 17 || len(gw.overwrites) != 16 {
		t.Errorf("replies=%d overwrites=%d, want 17 and 16", len(gw.replies), len(gw.overwrites))
	}
	for _, rp := range gw.replies {
		if rp.Content != "noot noot" {
			t.Errorf("unexpected reply %q", rp.Content)
		}
	}
}

type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func TestNewWithoutToken(t *testing.T) {
	for _, cfg := range []*config.Config{nil, {}, {DiscordActivity: "u sleep"}} {
		b, err := New(cfg)
		if !errors.Is(err, config.ErrMissingToken) || b != nil {
			t.Errorf("New(%+v) = %v, %v; want nil, ErrMissingToken", cfg, b, err)
		}
	}
}

func TestNewConfiguresSession(t *testing.T) {
	b, err := New(&config.Config{
		DiscordToken:          "token",
		DiscordActivity:       "the gym",
		InitSlashCommands:     false,
		DiscordGuildBlacklist: []string{"1"},
		RegistrationRate:      5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if b.dg.Token != "Bot token" {
		t.Errorf("token = %q", b.dg.Token)
	}
	want := discordgo.IntentsAllWithoutPrivileged | discordgo.IntentMessageContent
	if b.dg.Identify.Intents != want {
		t.Errorf("intents = %b, want %b", b.dg.Identify.Intents, want)
	}
	if b.router.Activity != "the gym" || b.router.RegisterCommands || !cmp.Equal(b.router.GuildBlacklist, []string{"1"}) {
		t.Errorf("router not configured from config: %+v", b.router)
	}
}
