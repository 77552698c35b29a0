package main

import (
	"fmt"

	"github.com/pithecene-io/memsketch/cli/config"
	"github.com/pithecene-io/memsketch/handler"
	"github.com/pithecene-io/memsketch/log"
	"github.com/pithecene-io/memsketch/manager"
	"github.com/pithecene-io/memsketch/policy"
)

// buildHandler constructs the handler named by cfg.Handler.
func buildHandler(cfg *config.Config) (handler.Handler, error) {
	switch cfg.Handler {
	case "event":
		return handler.NewEventHandler(), nil
	case "dfr":
		return handler.NewDfrHandler(), nil
	case "trace":
		return handler.NewTraceHandler(), nil
	case "variant":
		return handler.NewVariantHandler(), nil
	default:
		return nil, fmt.Errorf("unknown handler %q", cfg.Handler)
	}
}

// buildPolicy constructs the retention policy named by cfg.Policy.Name.
func buildPolicy(cfg *config.Config) (policy.RetentionPolicy, error) {
	pc := cfg.Policy
	switch pc.Name {
	case "sliding_window":
		return policy.NewSlidingWindowPolicy(pc.WindowSize)
	case "tumbling_window":
		return policy.NewTumblingWindowPolicy(pc.WindowSize)
	case "reservoir_sampling":
		var rng policy.RNG
		if pc.Seed != nil {
			rng = policy.NewSeededRNG(*pc.Seed)
		}
		return policy.NewReservoirSamplingPolicy(pc.Budget, rng)
	case "lossy_count":
		return policy.NewLossyCountPolicy(pc.Epsilon)
	case "lossy_count_with_budget":
		return policy.NewLossyCountWithBudgetPolicy(pc.Budget)
	case "exponential_decay_counting":
		return policy.NewExponentialDecayCountingPolicy(pc.Budget, pc.Decay, nil)
	default:
		return nil, fmt.Errorf("unknown policy %q", pc.Name)
	}
}

// loggablePolicy is implemented by the retention policies whose trim or
// eviction step accepts an optional logger (LossyCountWithBudgetPolicy,
// ExponentialDecayCountingPolicy).
type loggablePolicy interface {
	SetLogger(*log.Logger)
}

// buildManager constructs a MemoryManager from cfg, wiring a session
// logger at cfg.Logging.Level into both the manager and, if the chosen
// policy supports it, the policy's own eviction logging.
func buildManager(cfg *config.Config, sessionID string) (*manager.MemoryManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h, err := buildHandler(cfg)
	if err != nil {
		return nil, err
	}
	p, err := buildPolicy(cfg)
	if err != nil {
		return nil, err
	}

	logger := log.NewLogger(log.SessionMeta{
		SessionID: sessionID,
		Policy:    cfg.Policy.Name,
		Handler:   cfg.Handler,
		Level:     log.ParseLevel(cfg.Logging.Level),
	})
	if lp, ok := p.(loggablePolicy); ok {
		lp.SetLogger(logger)
	}

	mgr, err := manager.New(h, p)
	if err != nil {
		return nil, err
	}
	mgr.SetLogger(logger)
	return mgr, nil
}
