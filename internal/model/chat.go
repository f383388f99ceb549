package model

// ChatMessage is a single turn inside a chat session.
//
// The ID is a float because the web client generates message IDs with
// Date.now(), which arrives as a JSON number with millisecond precision.
// We keep the client's numbering rather than re-keying server-side —
// messages are only ever written as part of a whole-session save.
//
// Image, when present, is a data URL ("data:image/png;base64,...")
// attached by the user alongside their prompt. It is stored verbatim.
type ChatMessage struct {
	ID    float64 `json:"id"`
	Role  string  `json:"role"` // "user" or "assistant"
	Text  string  `json:"text"`
	Image string  `json:"image,omitempty"`
}

// ChatSession is one conversation owned by exactly one user.
//
// The (ID, Username) pair is the storage key: saving an existing ID for
// the same user replaces the whole session, messages included. Username
// is stamped server-side from the authenticated identity on every save —
// whatever the client sends in that field is ignored.
//
// Timestamp is milliseconds since the Unix epoch (client-generated, used
// only for most-recent-first ordering).
type ChatSession struct {
	ID        string        `json:"id"`
	Username  string        `json:"-"`
	Title     string        `json:"title"`
	Timestamp float64       `json:"timestamp"`
	Messages  []ChatMessage `json:"messages"`
}
