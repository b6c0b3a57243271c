package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionPlay   = "play"
	actionAnswer = "ans"
	actionMenu   = "menu"
	actionLives  = "lives"
)

// Lives sub-actions.
const (
	livesReset = "reset"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// answerParams returns the question sequence number and option index of an answer callback.
func (cd callbackData) answerParams() (seq, index int, ok bool) {
	if cd.Action != actionAnswer || len(cd.Params) != 2 {
		return 0, 0, false
	}
	seq, err1 := strconv.Atoi(cd.Params[0])
	index, err2 := strconv.Atoi(cd.Params[1])
	if err1 != nil || err2 != nil || seq < 1 || index < 0 {
		return 0, 0, false
	}
	return seq, index, true
}

// buildPlayCallback builds callback data for starting a deck.
func buildPlayCallback(deck string) string {
	return callbackData{
		Action: actionPlay,
		Params: []string{deck},
	}.encode()
}

// buildAnswerCallback builds callback data for picking an option of a question.
func buildAnswerCallback(seq, index int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(seq), strconv.Itoa(index)},
	}.encode()
}

// buildMenuCallback builds callback data for opening the deck menu.
func buildMenuCallback() string {
	return actionMenu
}

// buildLivesResetCallback builds callback data for resetting the life counter.
func buildLivesResetCallback() string {
	return callbackData{
		Action: actionLives,
		Params: []string{livesReset},
	}.encode()
}
