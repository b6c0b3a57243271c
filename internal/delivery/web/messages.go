package web

// Messages coming from clients.
type clientMessage struct {
	Type   string `json:"type"`             // "start" or "answer"
	Option string `json:"option,omitempty"` // selected option of an answer
}

// Messages sent to clients.
type imageMessage struct {
	Type string `json:"type"` // "prompt_image", "reveal_show"
	Src  string `json:"src"`  // image URL, empty clears the image
}

type textMessage struct {
	Type string `json:"type"` // "prompt_text"
	Text string `json:"text"`
}

type signalMessage struct {
	Type string `json:"type"` // "reveal_hide", "crossfade"
}

type optionsMessage struct {
	Type    string   `json:"type"` // "options"
	Options []string `json:"options"`
}

type markMessage struct {
	Type   string `json:"type"` // "mark"
	Option string `json:"option"`
	Mark   string `json:"mark"` // "none", "correct", "incorrect"
}

type lifeMessage struct {
	Type  string `json:"type"` // "life"
	Index int    `json:"index"`
	State string `json:"state"` // "full", "lost"
}

type popupMessage struct {
	Type string `json:"type"` // "popup"
	Kind string `json:"kind"` // "completed", "game_over"
}

type verdictMessage struct {
	Type    string `json:"type"`    // "verdict"
	Verdict string `json:"verdict"` // "correct", "incorrect", "ignored"
}

type errorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

// deckSummary is a deck as listed by /api/decks.
type deckSummary struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Items int    `json:"items"`
}
