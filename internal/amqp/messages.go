package amqp

import (
	"encoding/json"
	"time"
)

// BatchProcessedMessage announces that an upload batch finished its
// simulated extraction and its receipts were appended to the store.
// Consumers interested in the records themselves read them from the store.
type BatchProcessedMessage struct {
	BatchID      string    `json:"batch_id"`
	ReceiptCount int       `json:"receipt_count"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewBatchProcessedMessage(batchID string, receiptCount int) *BatchProcessedMessage {
	return &BatchProcessedMessage{
		BatchID:      batchID,
		ReceiptCount: receiptCount,
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *BatchProcessedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BatchProcessedMessageFromJSON creates a message from JSON bytes
func BatchProcessedMessageFromJSON(data []byte) (*BatchProcessedMessage, error) {
	var msg BatchProcessedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
