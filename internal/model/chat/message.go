package chat

import "time"

// Speaker identifies who produced a turn. Only two participants exist.
type Speaker string

const (
	SpeakerUser    Speaker = "user"
	SpeakerAdvisor Speaker = "advisor"
)

// Message is one immutable turn of a counselling conversation.
type Message struct {
	ID        string    `json:"id"`
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
