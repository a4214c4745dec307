package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accessusecases "github.com/quiniela-inc/quiniela/internal/application/access/usecases"
	settingusecases "github.com/quiniela-inc/quiniela/internal/application/setting/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/domain/prediction"
	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

type memPoolRepo struct{ p *pool.Pool }

func (r *memPoolRepo) Create(context.Context, *pool.Pool) error { return nil }
func (r *memPoolRepo) Update(context.Context, *pool.Pool) error { return nil }
func (r *memPoolRepo) GetByID(_ context.Context, id uint) (*pool.Pool, error) {
	if r.p.ID() == id {
		return r.p, nil
	}
	return nil, pool.ErrPoolNotFound
}
func (r *memPoolRepo) GetBySID(_ context.Context, sid string) (*pool.Pool, error) {
	if r.p.SID() == sid {
		return r.p, nil
	}
	return nil, pool.ErrPoolNotFound
}
func (r *memPoolRepo) ListByTenant(context.Context, uint, int, int) ([]*pool.Pool, int64, error) {
	return []*pool.Pool{r.p}, 1, nil
}

type memPolicyRepo struct{ p *access.Policy }

func (r *memPolicyRepo) Create(context.Context, *access.Policy) error { return nil }
func (r *memPolicyRepo) Update(context.Context, *access.Policy) error { return nil }
func (r *memPolicyRepo) GetByID(context.Context, uint) (*access.Policy, error) {
	return r.p, nil
}
func (r *memPolicyRepo) GetBySID(context.Context, string) (*access.Policy, error) {
	return r.p, nil
}
func (r *memPolicyRepo) GetByPoolID(context.Context, uint) (*access.Policy, error) {
	return r.p, nil
}

type memRegistrationRepo struct{ reg *access.Registration }

func (r *memRegistrationRepo) Create(context.Context, *access.Registration) error { return nil }
func (r *memRegistrationRepo) GetByID(context.Context, uint) (*access.Registration, error) {
	return r.reg, nil
}
func (r *memRegistrationRepo) GetBySID(context.Context, string) (*access.Registration, error) {
	return r.reg, nil
}
func (r *memRegistrationRepo) GetByUserAndPool(_ context.Context, userID, poolID uint) (*access.Registration, error) {
	if r.reg != nil && r.reg.UserID() == userID && r.reg.PoolID() == poolID {
		return r.reg, nil
	}
	return nil, access.ErrRegistrationNotFound
}
func (r *memRegistrationRepo) CountByPool(context.Context, uint) (int64, error) { return 1, nil }
func (r *memRegistrationRepo) ListByPool(context.Context, uint, int, int) ([]*access.Registration, int64, error) {
	return []*access.Registration{r.reg}, 1, nil
}

type memMatchRepo struct{ m *prediction.Match }

func (r *memMatchRepo) Create(context.Context, *prediction.Match) error { return nil }
func (r *memMatchRepo) Update(context.Context, *prediction.Match) error { return nil }
func (r *memMatchRepo) GetByID(context.Context, uint) (*prediction.Match, error) {
	return r.m, nil
}
func (r *memMatchRepo) GetBySID(_ context.Context, sid string) (*prediction.Match, error) {
	if r.m.SID() == sid {
		return r.m, nil
	}
	return nil, prediction.ErrMatchNotFound
}
func (r *memMatchRepo) ListByPool(context.Context, uint) ([]*prediction.Match, error) {
	return []*prediction.Match{r.m}, nil
}

type memPredictionRepo struct {
	picks map[uint]*prediction.Prediction // by match ID, single registration
}

func (r *memPredictionRepo) Upsert(_ context.Context, p *prediction.Prediction) error {
	if r.picks == nil {
		r.picks = map[uint]*prediction.Prediction{}
	}
	r.picks[p.MatchID()] = p
	return nil
}
func (r *memPredictionRepo) GetByRegistrationAndMatch(_ context.Context, _, matchID uint) (*prediction.Prediction, error) {
	if p, ok := r.picks[matchID]; ok {
		return p, nil
	}
	return nil, prediction.ErrPredictionNotFound
}
func (r *memPredictionRepo) ListByRegistration(context.Context, uint) ([]*prediction.Prediction, error) {
	return nil, nil
}
func (r *memPredictionRepo) ListByMatch(context.Context, uint) ([]*prediction.Prediction, error) {
	return nil, nil
}

type noSettings struct{}

func (noSettings) Get(context.Context, setting.Scope, setting.ScopeRef, string) (*setting.Setting, error) {
	return nil, setting.ErrSettingNotFound
}
func (noSettings) ListForScope(context.Context, setting.ScopeRef) ([]*setting.Setting, error) {
	return nil, nil
}
func (noSettings) Upsert(context.Context, *setting.Setting) error { return nil }
func (noSettings) Delete(context.Context, setting.Scope, setting.ScopeRef, string) error {
	return nil
}

func newSaveFixture(t *testing.T, kickoff time.Time) (*SavePredictionUseCase, *pool.Pool, *prediction.Match, *memPredictionRepo) {
	t.Helper()

	p, err := pool.NewPool(1, "Mundial 2026", "")
	require.NoError(t, err)
	p.SetID(10)
	require.NoError(t, p.Activate())

	policy, err := access.NewPolicy(p.ID(), access.AccessPublic)
	require.NoError(t, err)
	policy.SetID(20)

	reg, err := access.NewRegistration(p.ID(), 1, 100, "Player", "player@example.com", "", nil, nil)
	require.NoError(t, err)
	reg.SetID(30)

	match, err := prediction.NewMatch(p.ID(), "México", "Polonia", kickoff)
	require.NoError(t, err)
	match.SetID(40)

	log := logger.NewLogger()
	assertUC := accessusecases.NewAssertAccessUseCase(
		&memPoolRepo{p: p}, &memPolicyRepo{p: policy}, &memRegistrationRepo{reg: reg}, nil, nil, log,
	)
	registry := setting.DefaultRegistry()
	values := settingusecases.NewValues(
		settingusecases.NewResolveSettingUseCase(noSettings{}, registry, log), registry, log,
	)
	picks := &memPredictionRepo{}
	uc := NewSavePredictionUseCase(assertUC, &memMatchRepo{m: match}, picks, values, log)
	return uc, p, match, picks
}

func TestSavePrediction(t *testing.T) {
	ctx := context.Background()
	uc, p, match, picks := newSaveFixture(t, time.Now().UTC().Add(48*time.Hour))

	cmd := SavePredictionCommand{
		TenantID: 1, TenantSID: "tn_test", PoolSID: p.SID(),
		UserID: 100, MatchSID: match.SID(), HomeGoals: 2, AwayGoals: 0,
	}
	pick, err := uc.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, pick.HomeGoals())

	// Saving again replaces the pick, it does not duplicate it.
	cmd.HomeGoals, cmd.AwayGoals = 1, 1
	pick, err = uc.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, pick.HomeGoals())
	assert.Len(t, picks.picks, 1)
}

func TestSavePrediction_Locked(t *testing.T) {
	ctx := context.Background()
	uc, p, match, _ := newSaveFixture(t, time.Now().UTC().Add(-time.Minute))

	_, err := uc.Execute(ctx, SavePredictionCommand{
		TenantID: 1, TenantSID: "tn_test", PoolSID: p.SID(),
		UserID: 100, MatchSID: match.SID(), HomeGoals: 2, AwayGoals: 0,
	})
	assert.ErrorIs(t, err, prediction.ErrPredictionsLocked)
}

func TestSavePrediction_NotRegistered(t *testing.T) {
	ctx := context.Background()
	uc, p, match, _ := newSaveFixture(t, time.Now().UTC().Add(48*time.Hour))

	_, err := uc.Execute(ctx, SavePredictionCommand{
		TenantID: 1, TenantSID: "tn_test", PoolSID: p.SID(),
		UserID: 999, MatchSID: match.SID(), HomeGoals: 2, AwayGoals: 0,
	})
	var denied *access.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, access.ReasonRegistrationRequired, denied.Reason)
}
