package model

// Message is a delivered record with its value decoded through the schema registry.
type Message struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}
