package utils

import "errors"

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrConversationNotFound   = errors.New("conversation not found")
	ErrOffTopicConversation   = errors.New("first message is off-topic")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrDatabaseError          = errors.New("database error")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected AI behavior")
)
