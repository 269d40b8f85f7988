// internal/app/features/conversations/handler.go
package conversations

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the conversations
// feature: the 1:1 conversation list and explicit read receipts.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a conversations Handler. It is called from the
// bootstrap BuildHandler function, where the app's DB and logger are
// already initialized.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}
