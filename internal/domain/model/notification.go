package model

// Attachment is a single rich message block in a chat payload.
type Attachment struct {
	Text  string `json:"text"`
	Color string `json:"color"`
	Title string `json:"title"`
}

// Payload is the chat webhook message derived from a build.
type Payload struct {
	Username    string       `json:"username"`
	Attachments []Attachment `json:"attachments"`
}
