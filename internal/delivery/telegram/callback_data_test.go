package telegram

import "testing"

func TestCallbackRoundTrip(t *testing.T) {
	cd := decodeCallback(buildAnswerCallback(3, 2))
	seq, index, ok := cd.answerParams()
	if !ok || seq != 3 || index != 2 {
		t.Errorf("Expected seq 3 index 2, got %d %d (ok=%v)", seq, index, ok)
	}

	play := decodeCallback(buildPlayCallback("logos"))
	if play.Action != actionPlay || len(play.Params) != 1 || play.Params[0] != "logos" {
		t.Errorf("Unexpected play callback: %+v", play)
	}

	if menu := decodeCallback(buildMenuCallback()); menu.Action != actionMenu || len(menu.Params) != 0 {
		t.Errorf("Unexpected menu callback: %+v", menu)
	}
}

func TestAnswerParamsRejectsMalformedData(t *testing.T) {
	for _, data := range []string{"ans", "ans:1", "ans:x:1", "ans:1:-1", "ans:0:1", "play:1:2"} {
		if _, _, ok := decodeCallback(data).answerParams(); ok {
			t.Errorf("Expected %q to be rejected", data)
		}
	}
}
