package model

// Message is the inbound produce request. Value is encoded against the registered schema.
type Message struct {
	Key   string         `json:"key"`
	Value map[string]any `json:"value" validate:"required"`
}

// RecordMetadata is the broker acknowledgement of a single write.
type RecordMetadata struct {
	TopicName  string `json:"topicName"`
	Partition  int32  `json:"partition"`
	ErrorCode  int16  `json:"errorCode"`
	BaseOffset int64  `json:"baseOffset"`
}
