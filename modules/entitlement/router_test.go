package entitlement_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entmodule "github.com/lv-asc/vangarments/modules/entitlement"
	"github.com/lv-asc/vangarments/pkg/entitlement"
	"github.com/lv-asc/vangarments/pkg/subscription"
	"github.com/lv-asc/vangarments/pkg/upgrade"
	"github.com/lv-asc/vangarments/pkg/usage"
)

type testEnv struct {
	server *httptest.Server
	subs   subscription.Store
	userID uuid.UUID
}

func newTestEnv(t *testing.T, snapshot usage.Snapshot) *testEnv {
	t.Helper()

	subs := subscription.NewMemStore()
	evaluator := entitlement.NewEvaluator(subs, usage.Static(snapshot))
	generator := upgrade.NewGenerator(subs, upgrade.NewMemPromptStore(), nil)

	svc := entmodule.NewService(evaluator, generator, nil)
	srv := httptest.NewServer(entmodule.Router(svc, entmodule.RouterOptions{}))
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, subs: subs, userID: uuid.New()}
}

func (e *testEnv) subscribe(t *testing.T, plan subscription.PlanType, overrides map[string]bool) {
	t.Helper()
	require.NoError(t, e.subs.Save(context.Background(), &subscription.Subscription{
		ID:        uuid.New(),
		UserID:    e.userID,
		Type:      plan,
		Overrides: overrides,
		Status:    subscription.StatusActive,
	}))
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(e.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func (e *testEnv) post(t *testing.T, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(e.server.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestCatalogEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, usage.Snapshot{})

	t.Run("returns full catalog", func(t *testing.T) {
		resp, body := env.get(t, "/features")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var features []entitlement.Feature
		require.NoError(t, json.Unmarshal(body, &features))
		assert.Len(t, features, len(entitlement.AllFeatures()))
	})

	t.Run("filters by category", func(t *testing.T) {
		resp, body := env.get(t, "/features?category=marketplace")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var features []entitlement.Feature
		require.NoError(t, json.Unmarshal(body, &features))
		require.NotEmpty(t, features)
		for _, f := range features {
			assert.Equal(t, entitlement.CategoryMarketplace, f.Category)
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		resp, _ := env.get(t, "/features?category=couture")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("filters by tier", func(t *testing.T) {
		resp, body := env.get(t, "/features?tier=free")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var features []entitlement.Feature
		require.NoError(t, json.Unmarshal(body, &features))
		for _, f := range features {
			assert.Equal(t, entitlement.TierFree, f.MinTier)
		}
	})

	t.Run("rejects unknown tier", func(t *testing.T) {
		resp, _ := env.get(t, "/features?tier=platinum")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestFeatureAccessEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("free user denied premium feature with 200", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{})
		resp, body := env.get(t, "/users/"+env.userID.String()+"/features/marketplace_trading/access")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var decision entitlement.AccessDecision
		require.NoError(t, json.Unmarshal(body, &decision))
		assert.False(t, decision.HasAccess)
		assert.Equal(t, entitlement.TierPremium, decision.UpgradeRequired)
	})

	t.Run("premium user granted", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{})
		env.subscribe(t, subscription.PlanPremium, nil)

		resp, body := env.get(t, "/users/"+env.userID.String()+"/features/marketplace_trading/access")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var decision entitlement.AccessDecision
		require.NoError(t, json.Unmarshal(body, &decision))
		assert.True(t, decision.HasAccess)
	})

	t.Run("usage cap denial carries reason", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{})
		resp, body := env.get(t, "/users/"+env.userID.String()+"/features/wardrobe_cataloging/access?currentUsage=100")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var decision entitlement.AccessDecision
		require.NoError(t, json.Unmarshal(body, &decision))
		assert.False(t, decision.HasAccess)
		assert.Contains(t, decision.Reason, "Maximum 100")
	})

	t.Run("linking flag grants sharing", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{})
		resp, body := env.get(t, "/users/"+env.userID.String()+"/features/basic_social_sharing/access?linked=true")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var decision entitlement.AccessDecision
		require.NoError(t, json.Unmarshal(body, &decision))
		assert.True(t, decision.HasAccess)
	})

	t.Run("unknown feature returns 404", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{})
		resp, _ := env.get(t, "/users/"+env.userID.String()+"/features/time_travel/access")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed user id returns 400", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{})
		resp, _ := env.get(t, "/users/not-a-uuid/features/style_feed/access")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("lookup failure returns 502", func(t *testing.T) {
		t.Parallel()

		failing := usage.ProviderFunc(func(context.Context, uuid.UUID) (usage.Snapshot, error) {
			return usage.Snapshot{}, errors.New("connection reset")
		})
		subs := subscription.NewMemStore()
		svc := entmodule.NewService(
			entitlement.NewEvaluator(subs, failing),
			upgrade.NewGenerator(subs, upgrade.NewMemPromptStore(), nil),
			nil,
		)
		srv := httptest.NewServer(entmodule.Router(svc, entmodule.RouterOptions{}))
		t.Cleanup(srv.Close)

		resp, err := http.Get(srv.URL + "/users/" + uuid.NewString() + "/limits")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestUserFeaturesEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, usage.Snapshot{})

	t.Run("available only by default", func(t *testing.T) {
		resp, body := env.get(t, "/users/"+env.userID.String()+"/features")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var breakdown entitlement.FeatureBreakdown
		require.NoError(t, json.Unmarshal(body, &breakdown))
		assert.NotEmpty(t, breakdown.Available)
		assert.Empty(t, breakdown.Restricted)
	})

	t.Run("restricted included on request", func(t *testing.T) {
		resp, body := env.get(t, "/users/"+env.userID.String()+"/features?includeRestricted=true")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var breakdown entitlement.FeatureBreakdown
		require.NoError(t, json.Unmarshal(body, &breakdown))
		assert.NotEmpty(t, breakdown.Restricted)
	})
}

func TestUsageLimitsEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("free user near cap gets warning", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{WardrobeItems: 85})
		resp, body := env.get(t, "/users/"+env.userID.String()+"/limits")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var report entitlement.LimitsReport
		require.NoError(t, json.Unmarshal(body, &report))
		require.Len(t, report.Warnings, 1)
		assert.Equal(t, entitlement.FeatureWardrobeCataloging, report.Warnings[0].Feature)
	})

	t.Run("premium user gets empty report", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{WardrobeItems: 250})
		env.subscribe(t, subscription.PlanPremium, nil)

		resp, body := env.get(t, "/users/"+env.userID.String()+"/limits")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var report entitlement.LimitsReport
		require.NoError(t, json.Unmarshal(body, &report))
		assert.Empty(t, report.Warnings)
		assert.Empty(t, report.Blocked)
	})
}

func TestPromptEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("usage prompt created", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{})
		resp, body := env.post(t, "/users/"+env.userID.String()+"/prompts/usage",
			`{"featureName":"wardrobe_cataloging","currentUsage":95,"limit":100}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var prompt upgrade.Prompt
		require.NoError(t, json.Unmarshal(body, &prompt))
		assert.NotEqual(t, uuid.Nil, prompt.ID)
		assert.Equal(t, upgrade.UrgencyHigh, prompt.Content.Urgency)
		assert.Equal(t, "Upgrade Now", prompt.Content.CTA)
	})

	t.Run("usage prompt requires body fields", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{})
		resp, _ := env.post(t, "/users/"+env.userID.String()+"/prompts/usage", `{"currentUsage":5}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("discovery prompt created", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{})
		resp, body := env.post(t, "/users/"+env.userID.String()+"/prompts/discovery/marketplace_trading", "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var prompt upgrade.Prompt
		require.NoError(t, json.Unmarshal(body, &prompt))
		assert.Equal(t, upgrade.PromptFeatureDiscovery, prompt.Type)
		assert.Contains(t, prompt.Content.Title, "Unlock")
	})

	t.Run("discovery prompt for unknown feature returns 404", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{})
		resp, _ := env.post(t, "/users/"+env.userID.String()+"/prompts/discovery/time_travel", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpgradeFlowEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("returns five steps in order", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{})
		resp, body := env.post(t, "/users/"+env.userID.String()+"/upgrade-flow",
			`{"targetTier":"premium","context":{"featureName":"wardrobe_cataloging","currentUsage":100,"limit":100}}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var flow struct {
			Steps []upgrade.Step `json:"steps"`
		}
		require.NoError(t, json.Unmarshal(body, &flow))
		require.Len(t, flow.Steps, 5)

		types := make([]upgrade.StepType, 0, 5)
		for _, step := range flow.Steps {
			types = append(types, step.Type)
		}
		assert.Equal(t, []upgrade.StepType{
			upgrade.StepFeatureBlocked,
			upgrade.StepValueProposition,
			upgrade.StepPricingComparison,
			upgrade.StepPayment,
			upgrade.StepConfirmation,
		}, types)
	})

	t.Run("unknown target tier returns 400", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{})
		resp, _ := env.post(t, "/users/"+env.userID.String()+"/upgrade-flow", `{"targetTier":"platinum"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing target tier returns 400", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, usage.Snapshot{})
		resp, _ := env.post(t, "/users/"+env.userID.String()+"/upgrade-flow", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, usage.Snapshot{})
	resp, body := env.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ALIVE", string(body))
}
