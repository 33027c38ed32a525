package networking

import (
	"bytes"
	"testing"
)

func TestHeaderCodecRoundTrip(t *testing.T) {
	h := Header{Magic: Magic, Local: Local{Seq: 7, Ack: 3}, MsgType: MsgNormal}

	var buf bytes.Buffer
	if err := h.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf.Len() != HeaderSize {
		t.Fatalf("encoded header is %d bytes, want %d", buf.Len(), HeaderSize)
	}

	got, err := DecodeHeader(&buf)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if got != h {
		t.Fatalf("DecodeHeader() = %+v, want %+v", got, h)
	}
}

func TestDecodeHeaderShortReadErrors(t *testing.T) {
	_, err := DecodeHeader(bytes.NewReader([]byte{1, 2, 3}))
	if err == nil {
		t.Fatal("expected error decoding a truncated header")
	}
}

func TestMsgTypeString(t *testing.T) {
	cases := map[MsgType]string{
		MsgPing:   "ping",
		MsgPong:   "pong",
		MsgNormal: "normal",
		MsgType(9): "unknown",
	}
	for mt, want := range cases {
		if got := mt.String(); got != want {
			t.Fatalf("MsgType(%d).String() = %q, want %q", mt, got, want)
		}
	}
}
