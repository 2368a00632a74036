package notify

import (
	"bytes"
	"testing"
)

func TestGreet(t *testing.T) {
	var got []string
	Greet(NotifierFunc(func(m string) { got = append(got, m) }))
	if len(got) != 1 || got[0] != "This is a game of life" {
		t.Fatalf("unexpected notifications %q", got)
	}
}

func TestWriterNotifier(t *testing.T) {
	var b bytes.Buffer
	Greet(NewWriterNotifier(&b, false))
	if b.String() != "[!] This is a game of life\n" {
		t.Fatalf("unexpected output %q", b.String())
	}

	b.Reset()
	NewWriterNotifier(&b, true).Notify("hi")
	if b.String() == "[!] hi\n" || !bytes.Contains(b.Bytes(), []byte("[!] hi")) {
		t.Fatalf("expected colored output, got %q", b.String())
	}
}
