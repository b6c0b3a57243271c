package web

import (
	"strings"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
)

// presenter turns engine output into messages for one websocket client.
// Sends never block: a client that cannot keep up is disconnected.
type presenter struct {
	client *client
}

func (p presenter) SetPromptImage(src string) {
	p.client.enqueue(imageMessage{Type: "prompt_image", Src: imageURL(src)})
}

func (p presenter) SetPromptText(text string) {
	p.client.enqueue(textMessage{Type: "prompt_text", Text: text})
}

func (p presenter) ShowRevealImage(src string) {
	p.client.enqueue(imageMessage{Type: "reveal_show", Src: imageURL(src)})
}

func (p presenter) HideRevealImage() {
	p.client.enqueue(signalMessage{Type: "reveal_hide"})
}

func (p presenter) Crossfade() {
	p.client.enqueue(signalMessage{Type: "crossfade"})
}

func (p presenter) SetOptionList(options []string) {
	p.client.enqueue(optionsMessage{Type: "options", Options: options})
}

func (p presenter) MarkOption(option string, mark entities.OptionMark) {
	p.client.enqueue(markMessage{Type: "mark", Option: option, Mark: string(mark)})
}

func (p presenter) SetLifeIcon(index int, state entities.LifeState) {
	p.client.enqueue(lifeMessage{Type: "life", Index: index, State: string(state)})
}

func (p presenter) ShowPopup(kind entities.PopupKind) {
	p.client.enqueue(popupMessage{Type: "popup", Kind: string(kind)})
}

// imageURL keeps remote URLs and serves anything else from /assets/.
func imageURL(src string) string {
	if src == "" || strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	return "/assets/" + strings.TrimPrefix(src, "/")
}
