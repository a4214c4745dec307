package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	settingusecases "github.com/quiniela-inc/quiniela/internal/application/setting/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/domain/audit"
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// noSettings always falls through to registry defaults.
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

func defaultValues() *settingusecases.Values {
	registry := setting.DefaultRegistry()
	resolver := settingusecases.NewResolveSettingUseCase(noSettings{}, registry, logger.NewLogger())
	return settingusecases.NewValues(resolver, registry, logger.NewLogger())
}

type fakePoolRepo struct {
	pools map[string]*pool.Pool // by SID
}

func newFakePoolRepo() *fakePoolRepo { return &fakePoolRepo{pools: map[string]*pool.Pool{}} }

func (r *fakePoolRepo) Create(_ context.Context, p *pool.Pool) error {
	r.pools[p.SID()] = p
	return nil
}
func (r *fakePoolRepo) Update(_ context.Context, p *pool.Pool) error {
	r.pools[p.SID()] = p
	return nil
}
func (r *fakePoolRepo) GetByID(_ context.Context, id uint) (*pool.Pool, error) {
	for _, p := range r.pools {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, pool.ErrPoolNotFound
}
func (r *fakePoolRepo) GetBySID(_ context.Context, sid string) (*pool.Pool, error) {
	if p, ok := r.pools[sid]; ok {
		return p, nil
	}
	return nil, pool.ErrPoolNotFound
}
func (r *fakePoolRepo) ListByTenant(_ context.Context, tenantID uint, _, _ int) ([]*pool.Pool, int64, error) {
	var out []*pool.Pool
	for _, p := range r.pools {
		if p.TenantID() == tenantID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

type fakePolicyRepo struct {
	byPool map[uint]*access.Policy
}

func newFakePolicyRepo() *fakePolicyRepo { return &fakePolicyRepo{byPool: map[uint]*access.Policy{}} }

func (r *fakePolicyRepo) Create(_ context.Context, p *access.Policy) error {
	r.byPool[p.PoolID()] = p
	return nil
}
func (r *fakePolicyRepo) Update(_ context.Context, p *access.Policy) error {
	r.byPool[p.PoolID()] = p
	return nil
}
func (r *fakePolicyRepo) GetByID(_ context.Context, id uint) (*access.Policy, error) {
	for _, p := range r.byPool {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, access.ErrPolicyNotFound
}
func (r *fakePolicyRepo) GetBySID(_ context.Context, sid string) (*access.Policy, error) {
	for _, p := range r.byPool {
		if p.SID() == sid {
			return p, nil
		}
	}
	return nil, access.ErrPolicyNotFound
}
func (r *fakePolicyRepo) GetByPoolID(_ context.Context, poolID uint) (*access.Policy, error) {
	if p, ok := r.byPool[poolID]; ok {
		return p, nil
	}
	return nil, access.ErrPolicyNotFound
}

type fakeCodeRepo struct {
	codes  map[uint]*access.InviteCode
	nextID uint
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{codes: map[uint]*access.InviteCode{}, nextID: 1}
}

func (r *fakeCodeRepo) CreateBatch(_ context.Context, codes []*access.InviteCode) error {
	for _, c := range codes {
		c.SetID(r.nextID)
		r.codes[r.nextID] = c
		r.nextID++
	}
	return nil
}
func (r *fakeCodeRepo) GetByID(_ context.Context, id uint) (*access.InviteCode, error) {
	if c, ok := r.codes[id]; ok {
		return c, nil
	}
	return nil, access.ErrCodeNotFound
}
func (r *fakeCodeRepo) GetByCode(_ context.Context, tenantID uint, code string) (*access.InviteCode, error) {
	for _, c := range r.codes {
		if c.TenantID() == tenantID && c.Code() == code {
			return c, nil
		}
	}
	return nil, access.ErrCodeNotFound
}
func (r *fakeCodeRepo) Consume(_ context.Context, codeID uint, now time.Time) error {
	c, ok := r.codes[codeID]
	if !ok {
		return access.ErrCodeNotFound
	}
	if denied := c.CheckConsumable(now); denied != nil {
		return access.ErrCodeExhausted
	}
	return c.RecordUse(now)
}
func (r *fakeCodeRepo) UpdateStatus(_ context.Context, codeID uint, status access.CodeStatus) error {
	c, ok := r.codes[codeID]
	if !ok {
		return access.ErrCodeNotFound
	}
	if status == access.CodePaused {
		c.Pause()
	}
	return nil
}
func (r *fakeCodeRepo) ListByBatchID(_ context.Context, batchID uint) ([]*access.InviteCode, error) {
	var out []*access.InviteCode
	for _, c := range r.codes {
		if c.BatchID() == batchID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *fakeCodeRepo) PauseByBatchID(_ context.Context, batchID uint) error {
	for _, c := range r.codes {
		if c.BatchID() == batchID {
			c.Pause()
		}
	}
	return nil
}
func (r *fakeCodeRepo) ResumeByBatchID(_ context.Context, batchID uint, now time.Time) error {
	for _, c := range r.codes {
		if c.BatchID() == batchID {
			c.Resume(now)
		}
	}
	return nil
}

type fakeInvitationRepo struct {
	invitations map[uint]*access.Invitation
	nextID      uint
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: map[uint]*access.Invitation{}, nextID: 1}
}

func (r *fakeInvitationRepo) Create(_ context.Context, inv *access.Invitation) error {
	inv.SetID(r.nextID)
	r.invitations[r.nextID] = inv
	r.nextID++
	return nil
}
func (r *fakeInvitationRepo) Update(_ context.Context, inv *access.Invitation) error {
	r.invitations[inv.ID()] = inv
	return nil
}
func (r *fakeInvitationRepo) GetByID(_ context.Context, id uint) (*access.Invitation, error) {
	if inv, ok := r.invitations[id]; ok {
		return inv, nil
	}
	return nil, access.ErrInvitationNotFound
}
func (r *fakeInvitationRepo) GetBySID(_ context.Context, sid string) (*access.Invitation, error) {
	for _, inv := range r.invitations {
		if inv.SID() == sid {
			return inv, nil
		}
	}
	return nil, access.ErrInvitationNotFound
}
func (r *fakeInvitationRepo) GetByToken(_ context.Context, token string) (*access.Invitation, error) {
	for _, inv := range r.invitations {
		if inv.Token() == token {
			return inv, nil
		}
	}
	return nil, access.ErrInvitationNotFound
}
func (r *fakeInvitationRepo) GetByPolicyAndEmail(_ context.Context, policyID uint, email string) (*access.Invitation, error) {
	for _, inv := range r.invitations {
		if inv.PolicyID() == policyID && inv.Email() == email {
			return inv, nil
		}
	}
	return nil, access.ErrInvitationNotFound
}
func (r *fakeInvitationRepo) Accept(_ context.Context, invitationID uint, acceptedAt time.Time) error {
	inv, ok := r.invitations[invitationID]
	if !ok {
		return access.ErrInvitationNotFound
	}
	return inv.Accept(acceptedAt)
}
func (r *fakeInvitationRepo) ListByPolicyID(_ context.Context, policyID uint, _, _ int) ([]*access.Invitation, int64, error) {
	var out []*access.Invitation
	for _, inv := range r.invitations {
		if inv.PolicyID() == policyID {
			out = append(out, inv)
		}
	}
	return out, int64(len(out)), nil
}
func (r *fakeInvitationRepo) ExpirePending(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, inv := range r.invitations {
		if inv.MarkExpired(now) {
			n++
		}
	}
	return n, nil
}

type fakeRegistrationRepo struct {
	registrations map[uint]*access.Registration
	nextID        uint
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{registrations: map[uint]*access.Registration{}, nextID: 1}
}

func (r *fakeRegistrationRepo) Create(_ context.Context, reg *access.Registration) error {
	for _, existing := range r.registrations {
		if existing.UserID() == reg.UserID() && existing.PoolID() == reg.PoolID() {
			return access.ErrRegistrationExists
		}
	}
	reg.SetID(r.nextID)
	r.registrations[r.nextID] = reg
	r.nextID++
	return nil
}
func (r *fakeRegistrationRepo) GetByID(_ context.Context, id uint) (*access.Registration, error) {
	if reg, ok := r.registrations[id]; ok {
		return reg, nil
	}
	return nil, access.ErrRegistrationNotFound
}
func (r *fakeRegistrationRepo) GetBySID(_ context.Context, sid string) (*access.Registration, error) {
	for _, reg := range r.registrations {
		if reg.SID() == sid {
			return reg, nil
		}
	}
	return nil, access.ErrRegistrationNotFound
}
func (r *fakeRegistrationRepo) GetByUserAndPool(_ context.Context, userID, poolID uint) (*access.Registration, error) {
	for _, reg := range r.registrations {
		if reg.UserID() == userID && reg.PoolID() == poolID {
			return reg, nil
		}
	}
	return nil, access.ErrRegistrationNotFound
}
func (r *fakeRegistrationRepo) CountByPool(_ context.Context, poolID uint) (int64, error) {
	var n int64
	for _, reg := range r.registrations {
		if reg.PoolID() == poolID {
			n++
		}
	}
	return n, nil
}
func (r *fakeRegistrationRepo) ListByPool(_ context.Context, poolID uint, _, _ int) ([]*access.Registration, int64, error) {
	var out []*access.Registration
	for _, reg := range r.registrations {
		if reg.PoolID() == poolID {
			out = append(out, reg)
		}
	}
	return out, int64(len(out)), nil
}

type fakeAuditRepo struct {
	entries []*audit.Entry
}

func (r *fakeAuditRepo) Create(_ context.Context, e *audit.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}
func (r *fakeAuditRepo) ListByTenant(_ context.Context, tenantID uint, _, _ int) ([]*audit.Entry, int64, error) {
	var out []*audit.Entry
	for _, e := range r.entries {
		if e.TenantID() != nil && *e.TenantID() == tenantID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

// fixture wires one tenant, one active pool and its policy into fresh fakes.
type fixture struct {
	pools         *fakePoolRepo
	policies      *fakePolicyRepo
	codes         *fakeCodeRepo
	invitations   *fakeInvitationRepo
	registrations *fakeRegistrationRepo
	audits        *fakeAuditRepo
	values        *settingusecases.Values

	pool   *pool.Pool
	policy *access.Policy
}

const (
	testTenantID  = uint(1)
	testTenantSID = "tn_test"
)

func newFixture(t *testing.T, accessType access.AccessType) *fixture {
	t.Helper()

	p, err := pool.NewPool(testTenantID, "Mundial 2026", "office pool")
	require.NoError(t, err)
	p.SetID(10)
	require.NoError(t, p.Activate())

	policy, err := access.NewPolicy(p.ID(), accessType)
	require.NoError(t, err)
	policy.SetID(20)

	f := &fixture{
		pools:         newFakePoolRepo(),
		policies:      newFakePolicyRepo(),
		codes:         newFakeCodeRepo(),
		invitations:   newFakeInvitationRepo(),
		registrations: newFakeRegistrationRepo(),
		audits:        &fakeAuditRepo{},
		values:        defaultValues(),
		pool:          p,
		policy:        policy,
	}
	require.NoError(t, f.pools.Create(context.Background(), p))
	require.NoError(t, f.policies.Create(context.Background(), policy))
	return f
}

func (f *fixture) command(userID uint) RegistrationCommand {
	return RegistrationCommand{
		TenantID:    testTenantID,
		TenantSID:   testTenantSID,
		PoolSID:     f.pool.SID(),
		UserID:      userID,
		UserSID:     "usr_test",
		DisplayName: "Player",
		Email:       "player@example.com",
	}
}

func (f *fixture) mintCodes(t *testing.T, count, usesPerCode int, expiresAt *time.Time) []*access.InviteCode {
	t.Helper()
	batch, err := access.NewCodeBatch(f.policy.ID(), testTenantID, "wave", count, usesPerCode, expiresAt)
	require.NoError(t, err)
	batch.SetID(30)
	codes, err := batch.GenerateCodes()
	require.NoError(t, err)
	require.NoError(t, f.codes.CreateBatch(context.Background(), codes))
	return codes
}

func (f *fixture) invite(t *testing.T, email string, expiresAt time.Time) *access.Invitation {
	t.Helper()
	inv, err := access.NewInvitation(f.policy.ID(), testTenantID, email, expiresAt)
	require.NoError(t, err)
	require.NoError(t, f.invitations.Create(context.Background(), inv))
	return inv
}
