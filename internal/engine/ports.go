package engine

import (
	"context"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
)

// Presenter renders the session. The engine never touches a display surface directly.
//
// Methods are called while the engine holds its lock, so a presenter must not
// call back into the engine synchronously. Loading a question always ends with
// SetOptionList; message based presenters can flush on it.
type Presenter interface {
	SetPromptImage(src string) // empty src clears the image
	SetPromptText(text string) // empty text clears the text
	ShowRevealImage(src string)
	HideRevealImage()
	Crossfade()
	SetOptionList(options []string)
	MarkOption(option string, mark entities.OptionMark)
	SetLifeIcon(index int, state entities.LifeState)
	ShowPopup(kind entities.PopupKind)
}

// LivesStore persists the life count between sessions.
type LivesStore interface {
	LoadLives(ctx context.Context) (lives int, ok bool, err error)
	SaveLives(ctx context.Context, lives int) error
}

// NopPresenter ignores every call. Used when a session has nothing to render to.
type NopPresenter struct{}

func (NopPresenter) SetPromptImage(string)                  {}
func (NopPresenter) SetPromptText(string)                   {}
func (NopPresenter) ShowRevealImage(string)                 {}
func (NopPresenter) HideRevealImage()                       {}
func (NopPresenter) Crossfade()                             {}
func (NopPresenter) SetOptionList([]string)                 {}
func (NopPresenter) MarkOption(string, entities.OptionMark) {}
func (NopPresenter) SetLifeIcon(int, entities.LifeState)    {}
func (NopPresenter) ShowPopup(entities.PopupKind)           {}

type noStore struct{}

func (noStore) LoadLives(context.Context) (int, bool, error) { return 0, false, nil }
func (noStore) SaveLives(context.Context, int) error         { return nil }
