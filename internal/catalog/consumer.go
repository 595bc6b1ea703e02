package catalog

import (
	"context"
	"log/slog"

	"github.com/brucee63/namematch/internal/table"
	"github.com/brucee63/namematch/pkg/kafka"
)

// Event is the Kafka message payload for a candidate change. A Deleted event
// removes the candidate; otherwise Fields replaces the candidate's row.
type Event struct {
	ID      string            `json:"id"`
	Fields  map[string]string `json:"fields,omitempty"`
	Deleted bool              `json:"deleted,omitempty"`
}

// HandleEvent returns a Kafka MessageHandler that applies candidate upsert
// and delete events to the store. Undecodable events are logged and skipped
// so one bad message cannot stall the topic.
func HandleEvent(store *Store, idColumn string) kafka.MessageHandler {
	logger := slog.Default().With("component", "catalog-consumer")
	return func(ctx context.Context, key []byte, value []byte) error {
		event, err := kafka.DecodeJSON[Event](value)
		if err != nil {
			logger.Error("failed to decode candidate event", "key", string(key), "error", err)
			return nil
		}
		if event.ID == "" {
			logger.Error("candidate event missing id", "key", string(key))
			return nil
		}

		if event.Deleted {
			store.Delete(event.ID)
			logger.Debug("candidate deleted", "id", event.ID)
			return nil
		}

		row := make(table.Row, len(event.Fields)+1)
		for k, v := range event.Fields {
			row[k] = v
		}
		if _, ok := row[idColumn]; !ok {
			row[idColumn] = event.ID
		}
		store.Upsert(event.ID, row)
		logger.Debug("candidate upserted", "id", event.ID)
		return nil
	}
}
