package events

import (
	"context"

	"github.com/groblegark/bingod/internal/model"
)

// Event topic constants
const (
	TopicEventCreated    = "bingo.event.created"
	TopicEventStarted    = "bingo.event.started"
	TopicEventEnded      = "bingo.event.ended"
	TopicEventDeleted    = "bingo.event.deleted"
	TopicNumberDrawn     = "bingo.draw.drawn"
	TopicDrawUndone      = "bingo.draw.undone"
	TopicCurrentCleared  = "bingo.current.cleared"
	TopicCurrentReplaced = "bingo.current.replaced"
	TopicCurrentResumed  = "bingo.current.resumed"
)

// Event types

type EventCreated struct {
	Event *model.Event `json:"event"`
}

type EventStarted struct {
	Event *model.Event `json:"event"`
}

type EventEnded struct {
	Event *model.Event `json:"event"`
}

type EventDeleted struct {
	StorageLocation string `json:"eventFile"`
}

type NumberDrawn struct {
	EventID   string `json:"eventId"`
	Number    int    `json:"number"`
	Label     string `json:"label"`
	DrawCount int    `json:"drawCount"`
	Remaining int    `json:"remaining"`
}

type DrawUndone struct {
	EventID   string `json:"eventId"`
	Number    int    `json:"number"` // the number that was reverted
	DrawCount int    `json:"drawCount"`
	Remaining int    `json:"remaining"`
}

type CurrentCleared struct{}

type CurrentReplaced struct {
	Event *model.Event `json:"event"`
}

type CurrentResumed struct {
	Event *model.Event `json:"event"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
