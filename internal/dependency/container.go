// Package dependency wires core goodfoods services using go.uber.org/dig.
package dependency

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/goodfoods/goodfoods/internal/agent"
	"github.com/goodfoods/goodfoods/internal/bus"
	"github.com/goodfoods/goodfoods/internal/channels"
	"github.com/goodfoods/goodfoods/internal/config"
	"github.com/goodfoods/goodfoods/internal/directory"
	"github.com/goodfoods/goodfoods/internal/ledger"
	"github.com/goodfoods/goodfoods/internal/providers"
	"github.com/goodfoods/goodfoods/internal/reminder"
	"github.com/goodfoods/goodfoods/internal/schema"
	"github.com/goodfoods/goodfoods/internal/session"
	"github.com/goodfoods/goodfoods/internal/tools"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	provider    schema.LLMProvider
	inboundBus  *bus.AgentBus
	outboundBus *bus.ChannelBus
	consoleBus  *bus.ConsoleBus
	loop        *agent.AgentLoop
	channelMgr  *channels.Manager
	reminderSvc *reminder.Service
	branches    *directory.Directory
	store       *ledger.Ledger
}

func (c *Container) Provider() schema.LLMProvider      { return c.provider }
func (c *Container) AgentBus() *bus.AgentBus           { return c.inboundBus }
func (c *Container) ChannelBus() *bus.ChannelBus       { return c.outboundBus }
func (c *Container) ConsoleBus() *bus.ConsoleBus       { return c.consoleBus }
func (c *Container) AgentLoop() *agent.AgentLoop       { return c.loop }
func (c *Container) ChannelManager() *channels.Manager { return c.channelMgr }
func (c *Container) ReminderService() *reminder.Service {
	return c.reminderSvc
}
func (c *Container) Directory() *directory.Directory { return c.branches }
func (c *Container) Ledger() *ledger.Ledger          { return c.store }

// LLMModel is a named string type so dig can distinguish it from plain
// strings when injecting the effective model name.
type LLMModel string

// New builds and wires all core services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(newProvider); err != nil {
		return nil, err
	}
	if err := d.Provide(resolveLLMModel); err != nil {
		return nil, err
	}
	if err := d.Provide(newAgentBus); err != nil {
		return nil, err
	}
	if err := d.Provide(newChannelBus); err != nil {
		return nil, err
	}
	if err := d.Provide(newConsoleBus); err != nil {
		return nil, err
	}
	if err := d.Provide(newSessionManager); err != nil {
		return nil, err
	}
	if err := d.Provide(newDirectory); err != nil {
		return nil, err
	}
	if err := d.Provide(newLedger); err != nil {
		return nil, err
	}
	if err := d.Provide(newToolRegistry); err != nil {
		return nil, err
	}
	if err := d.Provide(newDispatcher); err != nil {
		return nil, err
	}
	if err := d.Provide(newPromptContext); err != nil {
		return nil, err
	}
	if err := d.Provide(newAgentSettings); err != nil {
		return nil, err
	}
	if err := d.Provide(newAgentLoop); err != nil {
		return nil, err
	}
	if err := d.Provide(newChannelManager); err != nil {
		return nil, err
	}
	if err := d.Provide(newReminderService); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		provider schema.LLMProvider,
		inbound *bus.AgentBus,
		outbound *bus.ChannelBus,
		console *bus.ConsoleBus,
		loop *agent.AgentLoop,
		channelMgr *channels.Manager,
		reminderSvc *reminder.Service,
		branches *directory.Directory,
		store *ledger.Ledger,
	) {
		result = &Container{
			provider:    provider,
			inboundBus:  inbound,
			outboundBus: outbound,
			consoleBus:  console,
			loop:        loop,
			channelMgr:  channelMgr,
			reminderSvc: reminderSvc,
			branches:    branches,
			store:       store,
		}
	})
	return result, err
}

func newProvider(cfg *config.Config) (schema.LLMProvider, error) {
	model := cfg.Agents.Defaults.Model
	result := cfg.MatchProvider(model)

	if result.Provider == nil {
		return nil, fmt.Errorf("no API key configured for model %q — edit %s", model, config.ConfigPath())
	}

	apiBase := result.Provider.APIBase
	if apiBase == "" {
		apiBase = cfg.GetAPIBase(model)
	}
	return providers.New(providers.Params{
		APIKey:       cfg.GetAPIKey(model),
		APIBase:      apiBase,
		ExtraHeaders: result.Provider.ExtraHeaders,
		DefaultModel: model,
		ProviderName: result.Name,
	}), nil
}

func newAgentBus() *bus.AgentBus {
	return bus.NewAgentBus(100)
}

func newChannelBus() *bus.ChannelBus {
	return bus.NewChannelBus(100)
}

func newConsoleBus() *bus.ConsoleBus {
	return bus.NewConsoleBus(100)
}

func newSessionManager(cfg *config.Config) (*session.Manager, error) {
	return session.NewManager(cfg.WorkspacePath())
}

func newDirectory(cfg *config.Config) *directory.Directory {
	return directory.Load(cfg.DirectoryPath())
}

func newLedger(cfg *config.Config) *ledger.Ledger {
	return ledger.New(cfg.LedgerPath())
}

func newToolRegistry(dir *directory.Directory, store *ledger.Ledger) (*tools.Registry, error) {
	return tools.NewDefaultRegistry(dir, store)
}

func newDispatcher(registry *tools.Registry) (*tools.Dispatcher, error) {
	return tools.NewDispatcher(registry)
}

func newPromptContext(cfg *config.Config, dir *directory.Directory) *agent.PromptContext {
	return agent.NewPromptContext(dir, cfg.PersonaPath())
}

// resolveLLMModel picks the effective model: the persona override wins
// over the configured default.
func resolveLLMModel(cfg *config.Config, pc *agent.PromptContext) LLMModel {
	if m := pc.Persona().Model; m != "" {
		return LLMModel(m)
	}
	return LLMModel(cfg.Agents.Defaults.Model)
}

func newAgentSettings(cfg *config.Config, m LLMModel, pc *agent.PromptContext) schema.AgentSettings {
	temperature := cfg.Agents.Defaults.Temperature
	if t := pc.Persona().Temperature; t != nil {
		temperature = *t
	}

	return schema.NewAgentSettings(
		string(m),
		cfg.Agents.Defaults.MaxToolIter,
		temperature,
		cfg.Agents.Defaults.MaxTokens,
		cfg.Agents.Defaults.MemoryWindow,
	)
}

func newAgentLoop(
	inbound *bus.AgentBus,
	outbound *bus.ChannelBus,
	console *bus.ConsoleBus,
	provider schema.LLMProvider,
	settings schema.AgentSettings,
	sessions *session.Manager,
	registry *tools.Registry,
	dispatcher *tools.Dispatcher,
	pc *agent.PromptContext,
) *agent.AgentLoop {
	return agent.NewAgentLoop(inbound, outbound, console, provider, settings, sessions, registry, dispatcher, pc)
}

func newChannelManager(
	cfg *config.Config,
	inbound *bus.AgentBus,
	outbound *bus.ChannelBus,
	console *bus.ConsoleBus,
) *channels.Manager {
	return channels.NewManager(cfg, inbound, outbound, console)
}

func newReminderService(cfg *config.Config, store *ledger.Ledger, outbound *bus.ChannelBus) *reminder.Service {
	return reminder.NewService(&cfg.Reminders, store, outbound)
}
