package entitlement

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lv-asc/vangarments/pkg/entitlement"
	"github.com/lv-asc/vangarments/pkg/upgrade"
)

// discardHandler is a stand-in for slog.DiscardHandler, which requires Go 1.24.
type discardHandler struct{}

func (d discardHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (d discardHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (d discardHandler) WithAttrs(_ []slog.Attr) slog.Handler          { return d }
func (d discardHandler) WithGroup(_ string) slog.Handler               { return d }

// AccessEvaluator is the feature access surface exposed over HTTP.
type AccessEvaluator interface {
	HasFeatureAccess(ctx context.Context, userID uuid.UUID, id entitlement.FeatureID, actx *entitlement.AccessContext) (entitlement.AccessDecision, error)
	CheckUsageLimits(ctx context.Context, userID uuid.UUID) (entitlement.LimitsReport, error)
	UserFeatures(ctx context.Context, userID uuid.UUID, includeRestricted bool) (entitlement.FeatureBreakdown, error)
}

// PromptGenerator is the upgrade flow surface exposed over HTTP.
type PromptGenerator interface {
	TriggerUpgradePrompt(ctx context.Context, userID uuid.UUID, req upgrade.UsagePromptRequest) (*upgrade.Prompt, error)
	ShowFeatureDiscoveryPrompt(ctx context.Context, userID uuid.UUID, featureID entitlement.FeatureID) (*upgrade.Prompt, error)
	GenerateUpgradeFlow(ctx context.Context, userID uuid.UUID, targetTier entitlement.Tier, fctx *upgrade.FlowContext) ([]upgrade.Step, error)
}

// Service bundles the dependencies of the entitlement HTTP module.
type Service struct {
	evaluator AccessEvaluator
	generator PromptGenerator
	log       *slog.Logger
}

// NewService creates the HTTP module service. Evaluator and generator are
// required; a nil logger discards logs.
func NewService(evaluator AccessEvaluator, generator PromptGenerator, log *slog.Logger) *Service {
	if evaluator == nil {
		panic("entitlement module: evaluator is required")
	}
	if generator == nil {
		panic("entitlement module: generator is required")
	}
	if log == nil {
		log = slog.New(discardHandler{})
	}
	return &Service{
		evaluator: evaluator,
		generator: generator,
		log:       log,
	}
}
