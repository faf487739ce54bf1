package conversation_fx

import (
	"go.uber.org/fx"

	"devtutor/internal/api/controllers"
	"devtutor/internal/repositories"
	"devtutor/internal/services"
)

var Module = fx.Provide(
	repositories.NewConversationRepository,
	repositories.NewMessageRepository,
	services.NewConversationService,
	services.NewChatService,
	controllers.NewConversationController,
	controllers.NewChatController)
