package http

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accessusecases "github.com/quiniela-inc/quiniela/internal/application/access/usecases"
	poolusecases "github.com/quiniela-inc/quiniela/internal/application/pool/usecases"
	predictionusecases "github.com/quiniela-inc/quiniela/internal/application/prediction/usecases"
	settingusecases "github.com/quiniela-inc/quiniela/internal/application/setting/usecases"
	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/auth"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/cache"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/captcha"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/config"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/email"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/ratelimit"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/repository"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/handlers"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/handlers/admin"
	"github.com/quiniela-inc/quiniela/internal/interfaces/http/middleware"
	"github.com/quiniela-inc/quiniela/internal/shared/db"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

// Container wires repositories, use cases, handlers and middleware for the
// HTTP server. Redis, the mailer and the captcha verifier are optional; a
// nil value degrades the corresponding feature instead of failing startup.
type Container struct {
	AccessHandler     *handlers.AccessHandler
	PredictionHandler *handlers.PredictionHandler
	SettingHandler    *admin.SettingHandler
	PoolHandler       *admin.PoolHandler
	CodeBatchHandler  *admin.CodeBatchHandler
	InvitationHandler *admin.InvitationHandler
	MatchHandler      *admin.MatchHandler

	AuthMiddleware   *middleware.AuthMiddleware
	TenantMiddleware *middleware.TenantMiddleware
	RateLimiter      ratelimit.RateLimiter
	Values           *settingusecases.Values
}

// BuildContainer assembles the full dependency graph on top of an open
// database handle.
func BuildContainer(gdb *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Container {
	tm := db.NewTransactionManager(gdb)

	tenantRepo := repository.NewTenantRepository(gdb)
	poolRepo := repository.NewPoolRepository(gdb)
	settingRepo := repository.NewSettingRepository(gdb)
	policyRepo := repository.NewAccessPolicyRepository(gdb)
	batchRepo := repository.NewCodeBatchRepository(gdb)
	codeRepo := repository.NewInviteCodeRepository(gdb)
	invitationRepo := repository.NewInvitationRepository(gdb)
	registrationRepo := repository.NewRegistrationRepository(gdb)
	matchRepo := repository.NewMatchRepository(gdb)
	predictionRepo := repository.NewPredictionRepository(gdb)
	auditRepo := repository.NewAuditLogRepository(gdb)

	registry := setting.DefaultRegistry()

	resolveSetting := settingusecases.NewResolveSettingUseCase(settingRepo, registry, log)
	resolveAll := settingusecases.NewResolveAllSettingsUseCase(settingRepo, registry, log)
	upsertSetting := settingusecases.NewUpsertSettingUseCase(settingRepo, registry, log)
	deleteSetting := settingusecases.NewDeleteSettingUseCase(settingRepo, registry, log)

	var limiter ratelimit.RateLimiter
	if redisClient != nil {
		if cfg.Settings.CacheEnabled {
			settingsCache := cache.NewSettingsCache(redisClient, log)
			resolveSetting.SetCache(settingsCache)
			upsertSetting.SetCache(settingsCache)
			deleteSetting.SetCache(settingsCache)
		}
		limiter = ratelimit.NewRedisRateLimiter(redisClient)
	}

	values := settingusecases.NewValues(resolveSetting, registry, log)

	validateCode := accessusecases.NewValidateCodeUseCase(poolRepo, policyRepo, codeRepo, log)
	validateInvitation := accessusecases.NewValidateInvitationUseCase(invitationRepo, log)
	registerPublic := accessusecases.NewRegisterPublicUseCase(poolRepo, policyRepo, registrationRepo, auditRepo, values, tm, log)
	registerWithCode := accessusecases.NewRegisterWithCodeUseCase(poolRepo, policyRepo, codeRepo, registrationRepo, auditRepo, values, tm, log)
	registerWithInvite := accessusecases.NewRegisterWithInvitationUseCase(poolRepo, policyRepo, invitationRepo, registrationRepo, auditRepo, values, tm, log)

	if verifier := captcha.NewTurnstileVerifier(&cfg.Captcha, log); verifier != nil {
		registerPublic.SetCaptchaVerifier(verifier)
		registerWithCode.SetCaptchaVerifier(verifier)
		registerWithInvite.SetCaptchaVerifier(verifier)
	}

	assertAccess := accessusecases.NewAssertAccessUseCase(poolRepo, policyRepo, registrationRepo, codeRepo, invitationRepo, log)

	createBatch := accessusecases.NewCreateCodeBatchUseCase(poolRepo, policyRepo, batchRepo, codeRepo, tm, log)
	pauseBatch := accessusecases.NewPauseCodeBatchUseCase(batchRepo, codeRepo, tm, log)
	createInvitation := accessusecases.NewCreateInvitationUseCase(poolRepo, policyRepo, invitationRepo, values, log)
	resendInvitation := accessusecases.NewResendInvitationUseCase(poolRepo, invitationRepo, log)

	if mailer := email.NewSMTPInvitationMailer(&cfg.Email); mailer != nil {
		createInvitation.SetMailer(mailer)
		resendInvitation.SetMailer(mailer)
	} else {
		log.Warnw("email delivery not configured, invitations will not be sent")
	}

	createPool := poolusecases.NewCreatePoolUseCase(poolRepo, policyRepo, tm, log)
	updatePoolStatus := poolusecases.NewUpdatePoolStatusUseCase(poolRepo, log)
	updatePolicy := poolusecases.NewUpdatePolicyUseCase(poolRepo, policyRepo, log)

	createMatch := predictionusecases.NewCreateMatchUseCase(poolRepo, matchRepo, log)
	recordResult := predictionusecases.NewRecordResultUseCase(poolRepo, matchRepo, predictionRepo, tm, log)
	savePrediction := predictionusecases.NewSavePredictionUseCase(assertAccess, matchRepo, predictionRepo, values, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)

	return &Container{
		AccessHandler:     handlers.NewAccessHandler(validateCode, validateInvitation, registerPublic, registerWithCode, registerWithInvite, log),
		PredictionHandler: handlers.NewPredictionHandler(savePrediction, log),
		SettingHandler:    admin.NewSettingHandler(resolveSetting, resolveAll, upsertSetting, deleteSetting, log),
		PoolHandler:       admin.NewPoolHandler(createPool, updatePoolStatus, updatePolicy, log),
		CodeBatchHandler:  admin.NewCodeBatchHandler(createBatch, pauseBatch, log),
		InvitationHandler: admin.NewInvitationHandler(createInvitation, resendInvitation, log),
		MatchHandler:      admin.NewMatchHandler(createMatch, recordResult, log),

		AuthMiddleware:   middleware.NewAuthMiddleware(jwtService, log),
		TenantMiddleware: middleware.NewTenantMiddleware(tenantRepo, log),
		RateLimiter:      limiter,
		Values:           values,
	}
}
