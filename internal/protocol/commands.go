package protocol

import "encoding/json"

// Action types shared by derived commands and the action log.
const (
	TypeMove = "MOVE"
	TypeJump = "JUMP"
	TypePush = "PUSH"
	TypePull = "PULL"
)

// CommandMsg is one step of a derived movement plan.
type CommandMsg struct {
	Type string `json:"type"`
	From [2]int `json:"from"`
	To   [2]int `json:"to"`
	Dir  string `json:"dir"`
}

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type string `json:"type"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
