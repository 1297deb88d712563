package emotion

import "testing"

func TestAnnotate_KnownTag(t *testing.T) {
	got := Annotate("너무 더워서 (분노) 짜증이 나요")
	want := "너무 더워서 😡 짜증이 나요"
	if got != want {
		t.Errorf("Annotate = %q, want %q", got, want)
	}
}

func TestAnnotate_MultipleTags(t *testing.T) {
	got := Annotate("(기쁨) 친구가 와서 (놀람) 깜짝 파티를 했어요")
	want := "😊 친구가 와서 😲 깜짝 파티를 했어요"
	if got != want {
		t.Errorf("Annotate = %q, want %q", got, want)
	}
}

func TestAnnotate_UnknownTagUnchanged(t *testing.T) {
	in := "오늘은 (미정의) 기분이에요"
	if got := Annotate(in); got != in {
		t.Errorf("Annotate = %q, want input unchanged", got)
	}
}

func TestAnnotate_NoTags(t *testing.T) {
	in := "평범한 하루였어요"
	if got := Annotate(in); got != in {
		t.Errorf("Annotate = %q, want input unchanged", got)
	}
}

func TestAnnotate_Idempotent(t *testing.T) {
	once := Annotate("퇴근하고 (피곤) 쉬고 싶어요")
	twice := Annotate(once)
	if once != twice {
		t.Errorf("second pass changed output: %q vs %q", once, twice)
	}
}

func TestKnown(t *testing.T) {
	if !Known("슬픔") {
		t.Error("Known(슬픔) = false, want true")
	}
	if Known("미정의") {
		t.Error("Known(미정의) = true, want false")
	}
}
