// Package discord connects the command router to a Discord bot session.
package discord

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"

	"github.com/celestiaorg/vmbot/internal/config"
	"github.com/celestiaorg/vmbot/internal/logger"
	"github.com/celestiaorg/vmbot/internal/metrics"
	"github.com/celestiaorg/vmbot/internal/router"
)

// Dispatcher runs a parsed command
type Dispatcher interface {
	Handle(ctx context.Context, name string, cc router.CommandContext)
}

// messageSender is the part of *discordgo.Session used to reply
type messageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Gateway receives Discord messages and hands commands to a Dispatcher.
// discordgo runs each event handler in its own goroutine.
type Gateway struct {
	session    *discordgo.Session
	prefix     string
	dispatcher Dispatcher
	metrics    *metrics.Metrics

	mu        sync.RWMutex
	ctx       context.Context
	connected atomic.Bool
}

// NewGateway creates a Discord session for the bot token in cfg. The session
// is not opened until Open is called.
func NewGateway(cfg *config.BotConfig, d Dispatcher, m *metrics.Metrics) (*Gateway, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentDirectMessages | discordgo.IntentMessageContent

	g := &Gateway{
		session:    session,
		prefix:     cfg.CommandPrefix,
		dispatcher: d,
		metrics:    m,
		ctx:        context.Background(),
	}

	session.AddHandler(g.onReady)
	session.AddHandler(g.onDisconnect)
	session.AddHandler(g.onMessageCreate)

	return g, nil
}

// Open connects to Discord. Commands run with ctx until Close.
func (g *Gateway) Open(ctx context.Context) error {
	g.mu.Lock()
	g.ctx = ctx
	g.mu.Unlock()

	if err := g.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	return nil
}

// Close disconnects from Discord
func (g *Gateway) Close() error {
	g.setConnected(false)
	return g.session.Close()
}

// Connected reports whether the websocket session is ready
func (g *Gateway) Connected() bool {
	return g.connected.Load()
}

func (g *Gateway) setConnected(connected bool) {
	g.connected.Store(connected)
	g.metrics.SetGatewayConnected(connected)
}

func (g *Gateway) baseContext() context.Context {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ctx
}

func (g *Gateway) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	g.setConnected(true)
	if r.User != nil {
		logger.Infof("Logged in to Discord as %s", r.User.String())
	}
}

func (g *Gateway) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	g.setConnected(false)
	logger.Warnf("Discord session disconnected")
}

func (g *Gateway) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}
	g.handleMessage(g.baseContext(), s, selfID, m.Message)
}

// handleMessage turns a chat message into a command invocation. Messages from
// bots, including this one, are ignored.
func (g *Gateway) handleMessage(ctx context.Context, sender messageSender, selfID string, msg *discordgo.Message) {
	if msg == nil || msg.Author == nil {
		return
	}
	if msg.Author.Bot || msg.Author.ID == selfID {
		return
	}

	name, ok := ParseCommand(g.prefix, msg.Content)
	if !ok {
		return
	}

	channelID := msg.ChannelID
	g.dispatcher.Handle(ctx, name, router.CommandContext{
		ChannelID: channelID,
		UserID:    msg.Author.ID,
		Username:  msg.Author.Username,
		Reply: router.ReplierFunc(func(ctx context.Context, content string) error {
			_, err := sender.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
			return err
		}),
	})
}
