package handler

import (
	"roomchat/internal/app/chat"
	"roomchat/internal/app/user"
	"roomchat/internal/configs"
)

// AppDeps carries the collaborators shared by every handler.
type AppDeps struct {
	Manager  *chat.Manager
	Config   *configs.AppConfig
	Accounts user.Store
}
