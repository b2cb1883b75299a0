package discord

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeAPI struct {
	mu        sync.Mutex
	handlers  []interface{}
	opened    bool
	closed    bool
	responses []*discordgo.InteractionResponse
	edits     []string
	sent      []string
	renamed   map[string]string
	threads   []threadCall
	messages  []*discordgo.Message
	pages     []pageCall
	commands  []*discordgo.ApplicationCommand
	sendErr   error
}

type threadCall struct {
	parent  string
	name    string
	minutes int
}

type pageCall struct {
	limit  int
	before string
}

func (f *fakeAPI) AddHandler(handler interface{}) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, handler)
	return func() {}
}

func (f *fakeAPI) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = true
	return nil
}

func (f *fakeAPI) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeAPI) ApplicationCommandBulkOverwrite(_ string, _ string, commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.commands = commands
	return commands, nil
}

func (f *fakeAPI) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeAPI) InteractionResponseEdit(_ *discordgo.Interaction, newresp *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edits = append(f.edits, *newresp.Content)
	return &discordgo.Message{}, nil
}

func (f *fakeAPI) ChannelMessageSend(_ string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, content)
	return &discordgo.Message{Content: content}, nil
}

func (f *fakeAPI) ChannelEdit(channelID string, data *discordgo.ChannelEdit, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.renamed == nil {
		f.renamed = map[string]string{}
	}
	f.renamed[channelID] = data.Name
	return &discordgo.Channel{ID: channelID, Name: data.Name}, nil
}

func (f *fakeAPI) ThreadStart(channelID, name string, _ discordgo.ChannelType, archiveDuration int, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.threads = append(f.threads, threadCall{parent: channelID, name: name, minutes: archiveDuration})
	return &discordgo.Channel{ID: "thread-" + name}, nil
}

// ChannelMessages serves f.messages newest first, honouring before and limit.
func (f *fakeAPI) ChannelMessages(_ string, limit int, beforeID, _, _ string, _ ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	f.pages = append(f.pages, pageCall{limit: limit, before: beforeID})

	start := 0
	if beforeID != "" {
		for i, message := range f.messages {
			if message.ID == beforeID {
				start = i + 1
				break
			}
		}
	}
	end := min(start+limit, len(f.messages))
	return f.messages[start:end], nil
}

func (f *fakeAPI) ChannelTyping(_ string, _ ...discordgo.RequestOption) error {
	return nil
}

type recordingHandler struct {
	mu           sync.Mutex
	interactions []domain.Interaction
	messages     []domain.InboundMessage
}

func (h *recordingHandler) HandleCommand(_ context.Context, interaction domain.Interaction) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.interactions = append(h.interactions, interaction)
}

func (h *recordingHandler) HandleMessage(_ context.Context, message domain.InboundMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, message)
}

func newTestGateway(t *testing.T, fake *fakeAPI) *Gateway {
	t.Helper()
	return newGateway(fake, Config{AppID: "app-1", GuildID: "guild-1"}, zaptest.NewLogger(t))
}

func TestGatewayInteractionResponses(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{}
	gateway := newTestGateway(t, fake)
	interaction := domain.Interaction{ID: "i1", Handle: &discordgo.Interaction{ID: "i1"}}

	require.NoError(t, gateway.DeferResponse(context.Background(), interaction))
	require.NoError(t, gateway.EditResponse(context.Background(), interaction, "answer"))
	require.NoError(t, gateway.Respond(context.Background(), interaction, "Access denied."))

	require.Len(t, fake.responses, 2)
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, fake.responses[0].Type)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, fake.responses[1].Type)
	assert.Equal(t, "Access denied.", fake.responses[1].Data.Content)
	assert.Equal(t, []string{"answer"}, fake.edits)
}

func TestGatewayRespondWithoutHandle(t *testing.T) {
	t.Parallel()

	gateway := newTestGateway(t, &fakeAPI{})

	err := gateway.Respond(context.Background(), domain.Interaction{ID: "i1"}, "hi")
	assert.ErrorIs(t, err, errMissingInteraction)
}

func TestGatewayChannelOperations(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{}
	gateway := newTestGateway(t, fake)

	require.NoError(t, gateway.SendMessage(context.Background(), "c1", "hello"))
	require.NoError(t, gateway.SetChannelName(context.Background(), "c1", "first question"))
	require.NoError(t, gateway.SendTyping(context.Background(), "c1"))

	id, err := gateway.CreateThread(context.Background(), "general", "alice", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, domain.SessionID("thread-alice"), id)
	assert.Equal(t, []threadCall{{parent: "general", name: "alice", minutes: 60}}, fake.threads)
	assert.Equal(t, []string{"hello"}, fake.sent)
	assert.Equal(t, "first question", fake.renamed["c1"])

	fake.sendErr = errors.New("missing access")
	assert.ErrorContains(t, gateway.SendMessage(context.Background(), "c1", "again"), "send message to c1")
}

func TestGatewayFetchHistoryPages(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fake := &fakeAPI{}
	for i := 250; i > 0; i-- {
		fake.messages = append(fake.messages, &discordgo.Message{
			ID:        strconv.Itoa(i),
			Content:   "m" + strconv.Itoa(i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Author:    &discordgo.User{ID: "u1", Bot: i%2 == 0},
		})
	}
	gateway := newTestGateway(t, fake)

	bounded, err := gateway.FetchHistory(context.Background(), "t1", 32)
	require.NoError(t, err)
	require.Len(t, bounded, 32)
	assert.Equal(t, "250", bounded[0].ID)
	assert.True(t, bounded[0].AuthorBot)
	assert.Equal(t, []pageCall{{limit: 32, before: ""}}, fake.pages)

	fake.pages = nil
	all, err := gateway.FetchHistory(context.Background(), "t1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 250)
	assert.Equal(t, []pageCall{{limit: 100}, {limit: 100, before: "151"}, {limit: 100, before: "51"}}, fake.pages)
}

func TestGatewayFetchHistorySkipsSystemNotices(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	user := &discordgo.User{ID: "u1"}
	fake := &fakeAPI{messages: []*discordgo.Message{
		{ID: "5", Type: discordgo.MessageTypeReply, Content: "and channels?", Timestamp: base.Add(5 * time.Minute), Author: user},
		{ID: "4", Type: discordgo.MessageTypeChannelNameChange, Timestamp: base.Add(4 * time.Minute), Author: user},
		{ID: "3", Type: discordgo.MessageTypeChannelPinnedMessage, Timestamp: base.Add(3 * time.Minute), Author: user},
		{ID: "2", Content: "What is a goroutine?", Timestamp: base.Add(2 * time.Minute), Author: user},
		{ID: "1", Type: discordgo.MessageTypeThreadStarterMessage, Timestamp: base.Add(time.Minute), Author: user},
	}}
	gateway := newTestGateway(t, fake)

	history, err := gateway.FetchHistory(context.Background(), "t1", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "5", history[0].ID)
	assert.Equal(t, "2", history[1].ID)
	assert.Equal(t, []pageCall{{limit: 2}, {limit: 1, before: "4"}, {limit: 1, before: "3"}}, fake.pages)

	fake.pages = nil
	all, err := gateway.FetchHistory(context.Background(), "t1", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2, "fewer than limit once the thread start is reached")
	assert.Equal(t, []pageCall{{limit: 10}}, fake.pages)
}

func TestGatewayRunDispatchesEvents(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{}
	gateway := newTestGateway(t, fake)
	handler := &recordingHandler{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- gateway.Run(ctx, handler)
	}()

	require.Eventually(t, func() bool {
		fake.mu.Lock()
		defer fake.mu.Unlock()
		return fake.opened && len(fake.handlers) == 3
	}, time.Second, 5*time.Millisecond)

	fake.mu.Lock()
	handlers := append([]interface{}(nil), fake.handlers...)
	fake.mu.Unlock()

	handlers[0].(func(*discordgo.Session, *discordgo.Ready))(nil, &discordgo.Ready{User: &discordgo.User{ID: "bot", Username: "gptbridge"}})
	handlers[1].(func(*discordgo.Session, *discordgo.InteractionCreate))(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "i1",
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "general",
		Member:    &discordgo.Member{User: &discordgo.User{ID: "u1", Username: "alice"}},
		Data: discordgo.ApplicationCommandInteractionData{
			Name: "ask",
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "query", Type: discordgo.ApplicationCommandOptionString, Value: "What is Go?"},
			},
		},
	}})
	handlers[2].(func(*discordgo.Session, *discordgo.MessageCreate))(nil, &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m1",
		ChannelID: "t1",
		Content:   "hello",
		Author:    &discordgo.User{ID: "u1"},
	}})

	cancel()
	require.NoError(t, <-done)

	assert.True(t, fake.closed)
	assert.Len(t, fake.commands, 3)

	require.Len(t, handler.interactions, 1)
	got := handler.interactions[0]
	assert.Equal(t, domain.CommandAsk, got.Command)
	assert.Equal(t, domain.PrincipalID("u1"), got.PrincipalID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "What is Go?", got.Query)
	assert.NotNil(t, got.Handle)

	assert.Equal(t, []domain.InboundMessage{{ID: "m1", AuthorID: "u1", ChannelID: "t1", Content: "hello"}}, handler.messages)
}

func TestToInteractionIgnoresNonCommands(t *testing.T) {
	t.Parallel()

	_, ok := toInteraction(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		User: &discordgo.User{ID: "u1"},
	}})
	assert.False(t, ok)

	_, ok = toInboundMessage(&discordgo.MessageCreate{Message: &discordgo.Message{ID: "m1"}})
	assert.False(t, ok)
}

func TestArchiveMinutes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 60, archiveMinutes(0))
	assert.Equal(t, 60, archiveMinutes(time.Hour))
	assert.Equal(t, 1440, archiveMinutes(2*time.Hour))
	assert.Equal(t, 10080, archiveMinutes(30*24*time.Hour))
}

func TestApplicationCommands(t *testing.T) {
	t.Parallel()

	commands := applicationCommands()
	require.Len(t, commands, 3)
	assert.Equal(t, "ask", commands[0].Name)
	require.Len(t, commands[0].Options, 1)
	assert.True(t, commands[0].Options[0].Required)
	assert.Equal(t, "start-session", commands[1].Name)
	assert.Equal(t, "stop-session", commands[2].Name)
}
