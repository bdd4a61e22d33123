package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func buildAU(t *testing.T, encoding, rate, channels uint32, body []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	h := auHeader{
		Magic:      auMagic,
		DataOffset: auHeaderSize,
		DataSize:   uint32(len(body)),
		Encoding:   encoding,
		SampleRate: rate,
		Channels:   channels,
	}
	if err := binary.Write(&buf, binary.BigEndian, h); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	buf.Write(body)
	return buf.Bytes()
}

func TestULawToPCM(t *testing.T) {
	tests := []struct {
		in   byte
		want int16
	}{
		{0x00, -32124},
		{0x80, 32124},
		{0xFF, 0},
		{0x7F, 0},
		{0x0F, -16764},
		{0xF0, 120},
	}
	for _, tt := range tests {
		if got := ulawToPCM(tt.in); got != tt.want {
			t.Errorf("ulawToPCM(0x%02x) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecodeAUMonoULaw(t *testing.T) {
	data := buildAU(t, auEncodingULaw, 8000, 1, []byte{0x00, 0x80, 0xFF})

	s, err := DecodeAU(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeAU failed: %v", err)
	}
	if s.SampleRate() != 8000 {
		t.Errorf("SampleRate = %d, want 8000", s.SampleRate())
	}
	// 3 帧 × 2 声道 × 2 字节
	if s.Length() != 12 {
		t.Fatalf("Length = %d, want 12", s.Length())
	}

	pcm, _ := io.ReadAll(s)
	left := int16(binary.LittleEndian.Uint16(pcm[0:]))
	right := int16(binary.LittleEndian.Uint16(pcm[2:]))
	if left != -32124 || right != -32124 {
		t.Errorf("first frame = (%d, %d), want mono copied to both channels", left, right)
	}
}

func TestDecodeAUStereoPCM16(t *testing.T) {
	body := []byte{0x01, 0x00, 0xFF, 0xFF} // L=256, R=-1（大端）
	s, err := DecodeAU(bytes.NewReader(buildAU(t, auEncodingPCM16, 22050, 2, body)))
	if err != nil {
		t.Fatalf("DecodeAU failed: %v", err)
	}

	pcm, _ := io.ReadAll(s)
	if len(pcm) != 4 {
		t.Fatalf("pcm length = %d, want 4", len(pcm))
	}
	if l := int16(binary.LittleEndian.Uint16(pcm[0:])); l != 256 {
		t.Errorf("left = %d, want 256", l)
	}
	if r := int16(binary.LittleEndian.Uint16(pcm[2:])); r != -1 {
		t.Errorf("right = %d, want -1", r)
	}

	// 可以回到开头重新播放
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	again, _ := io.ReadAll(s)
	if !bytes.Equal(again, pcm) {
		t.Error("data after seek differs")
	}
}

func TestDecodeAUErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantNot bool // 期望 ErrNotAU
	}{
		{"太短", []byte{1, 2, 3}, true},
		{"魔数错误", append([]byte("RIFF"), make([]byte, 20)...), true},
		{"不支持的编码", buildAU(t, 27, 8000, 1, []byte{0}), false},
		{"声道数错误", buildAU(t, auEncodingULaw, 8000, 3, []byte{0}), false},
		{"采样率为零", buildAU(t, auEncodingULaw, 0, 1, []byte{0}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAU(bytes.NewReader(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.Is(err, ErrNotAU); got != tt.wantNot {
				t.Errorf("errors.Is(err, ErrNotAU) = %v, want %v (err: %v)", got, tt.wantNot, err)
			}
		})
	}
}
