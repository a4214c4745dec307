package migration

import (
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every model the development schema is built from.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.TenantModel{},
		&models.PoolModel{},
		&models.SettingModel{},
		&models.AccessPolicyModel{},
		&models.CodeBatchModel{},
		&models.InviteCodeModel{},
		&models.InvitationModel{},
		&models.RegistrationModel{},
		&models.MatchModel{},
		&models.PredictionModel{},
		&models.AuditLogModel{},
	}
}
