package ws

import (
	"context"

	"animal-chess/internal/bot"
	"animal-chess/internal/game"
	"animal-chess/internal/room"
)

// RoomManager is the part of room.Manager the hub drives.
type RoomManager interface {
	State(id string) (room.Snapshot, error)
	Apply(id string, mv game.Move) (game.Transition, room.Snapshot, error)
	BotMove(ctx context.Context, id string) (game.Transition, bot.Suggestion, room.Snapshot, error)
}
