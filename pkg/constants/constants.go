package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	UserKey        ContextKey = "user"
	ProjectKey     ContextKey = "project"
	LocalizerKey   ContextKey = "localizer"
	LocaleKey      ContextKey = "locale"
	LoggerKey      ContextKey = "logger"
	RequestStart   ContextKey = "requestStart"
	PoolKey        ContextKey = "pool"
	TxKey          ContextKey = "tx"
	CommitHooksKey ContextKey = "commitHooks"
	ParamsKey      ContextKey = "params"
	RequestIDKey   ContextKey = "requestID"
)

const (
	UserIDHeader    = "X-User-Id"
	RequestIDHeader = "X-Request-Id"
)

var Validate = validator.New(validator.WithRequiredStructEnabled())
