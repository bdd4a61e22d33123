// Package audio 解码 ebiten 自带解码器不支持的音效格式
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Sun/NeXT .au 文件头（大端，至少 24 字节）
type auHeader struct {
	Magic      uint32 // ".snd"
	DataOffset uint32
	DataSize   uint32 // 0xFFFFFFFF 表示未知，读到文件末尾
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

const (
	auMagic         = 0x2e736e64
	auHeaderSize    = 24
	auUnknownSize   = 0xFFFFFFFF
	auEncodingULaw  = 1 // 8-bit μ-law
	auEncodingPCM16 = 3 // 16-bit 线性 PCM（大端）
)

// ErrNotAU 数据不是 .au 文件
var ErrNotAU = errors.New("not an AU file")

// AUStream 解码后的 .au 音效
//
// 输出固定为 ebiten 需要的 16-bit 小端立体声 PCM，单声道会复制到两个声道。
// 采样率保持文件原值，由调用方按音频上下文重采样。
type AUStream struct {
	*bytes.Reader
	sampleRate int
}

// SampleRate 返回原始采样率（Hz）
func (s *AUStream) SampleRate() int {
	return s.sampleRate
}

// Length 返回解码后 PCM 数据的总字节数
func (s *AUStream) Length() int64 {
	return s.Size()
}

// DecodeAU 读取并完整解码一个 .au 文件
// 支持 μ-law 和 16-bit PCM，单声道或立体声
func DecodeAU(r io.Reader) (*AUStream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read AU data: %w", err)
	}
	if len(data) < auHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrNotAU, len(data))
	}

	var h auHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &h); err != nil {
		return nil, fmt.Errorf("failed to read AU header: %w", err)
	}
	if h.Magic != auMagic {
		return nil, fmt.Errorf("%w: magic 0x%08x", ErrNotAU, h.Magic)
	}
	if h.Channels < 1 || h.Channels > 2 {
		return nil, fmt.Errorf("unsupported AU channel count: %d", h.Channels)
	}
	if h.SampleRate == 0 {
		return nil, fmt.Errorf("invalid AU sample rate: 0")
	}
	if int(h.DataOffset) < auHeaderSize || int(h.DataOffset) > len(data) {
		return nil, fmt.Errorf("invalid AU data offset: %d (file size %d)", h.DataOffset, len(data))
	}

	body := data[h.DataOffset:]
	if h.DataSize != auUnknownSize && int(h.DataSize) < len(body) {
		body = body[:h.DataSize]
	}

	var samples []int16
	switch h.Encoding {
	case auEncodingULaw:
		samples = make([]int16, len(body))
		for i, b := range body {
			samples[i] = ulawToPCM(b)
		}
	case auEncodingPCM16:
		samples = make([]int16, len(body)/2)
		for i := range samples {
			samples[i] = int16(binary.BigEndian.Uint16(body[i*2:]))
		}
	default:
		return nil, fmt.Errorf("unsupported AU encoding: %d", h.Encoding)
	}

	return &AUStream{
		Reader:     bytes.NewReader(toStereoLE(samples, int(h.Channels))),
		sampleRate: int(h.SampleRate),
	}, nil
}

// ulawToPCM G.711 μ-law 解码
func ulawToPCM(u byte) int16 {
	u = ^u
	t := (int32(u&0x0F) << 3) + 0x84
	t <<= (u & 0x70) >> 4
	if u&0x80 != 0 {
		return int16(0x84 - t)
	}
	return int16(t - 0x84)
}

// toStereoLE 交错样本转为小端立体声字节流
func toStereoLE(samples []int16, channels int) []byte {
	frames := len(samples) / channels
	out := make([]byte, frames*4)
	for f := 0; f < frames; f++ {
		l := samples[f*channels]
		r := l
		if channels == 2 {
			r = samples[f*channels+1]
		}
		binary.LittleEndian.PutUint16(out[f*4:], uint16(l))
		binary.LittleEndian.PutUint16(out[f*4+2:], uint16(r))
	}
	return out
}
