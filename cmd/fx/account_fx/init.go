package account_fx

import (
	"go.uber.org/fx"

	"devtutor/internal/api/controllers"
	"devtutor/internal/repositories"
	"devtutor/internal/services"
)

var Module = fx.Provide(
	repositories.NewAccountRepository,
	services.NewAccountService,
	controllers.NewAccountController)
