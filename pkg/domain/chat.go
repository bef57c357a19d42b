package domain

// ChatRole はチャットメッセージの発言者です。
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage はチャット履歴の1件分です。
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}
