package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	auaudio "github.com/gonewx/duckshot/internal/audio"
)

// ResourceManager is responsible for centralized management of game resources.
// It loads images, sound effects and fonts through an AssetResolver and caches
// them so each resource is decoded only once.
//
// Missing images requested through LoadRequiredSprite are fatal; missing sound
// effects degrade to silence.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The internal caches use standard Go maps.
// For the current single-threaded game loop, no synchronization is needed.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext, DefaultAssetResolver(""))
//	img, err := rm.LoadRequiredSprite("bathtub.png", 520, 340)
//	if err != nil {
//	    return err
//	}
type ResourceManager struct {
	resolver      *AssetResolver
	imageCache    map[string]*ebiten.Image    // Cache for loaded images: key -> Image
	audioCache    map[string]*audio.Player    // Cache for sound effect players: name -> Player
	audioContext  *audio.Context              // Global audio context, may be nil (no audio)
	fontFaceCache map[float64]*text.GoTextFace // Cache for default text faces: size -> face
	fontSource    *text.GoTextFaceSource
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - audioContext: The global audio context; nil disables sound loading.
//   - resolver: Resolves asset names to file contents.
func NewResourceManager(audioContext *audio.Context, resolver *AssetResolver) *ResourceManager {
	if resolver == nil {
		resolver = NewAssetResolver()
	}
	return &ResourceManager{
		resolver:      resolver,
		imageCache:    make(map[string]*ebiten.Image),
		audioCache:    make(map[string]*audio.Player),
		audioContext:  audioContext,
		fontFaceCache: make(map[float64]*text.GoTextFace),
	}
}

// Resolver returns the asset resolver used by this manager.
func (rm *ResourceManager) Resolver() *AssetResolver {
	return rm.resolver
}

// DecodeImage decodes PNG/JPEG data into an image.
func DecodeImage(name string, data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", name, err)
	}
	return img, nil
}

// LoadRequiredSprite loads an image that the game cannot run without and
// scales it to width x height. If the image has already been loaded at that
// size, it returns the cached version.
//
// Returns an error wrapping ErrAssetNotFound when no candidate location
// contains the file.
func (rm *ResourceManager) LoadRequiredSprite(name string, width, height int) (*ebiten.Image, error) {
	key := fmt.Sprintf("%s@%dx%d", name, width, height)
	if cached, exists := rm.imageCache[key]; exists {
		return cached, nil
	}

	data, err := rm.resolver.Resolve(name, FallbackFatal)
	if err != nil {
		return nil, err
	}
	src, err := DecodeImage(name, data)
	if err != nil {
		return nil, err
	}

	scaled := scaleImage(ebiten.NewImageFromImage(src), width, height)
	rm.imageCache[key] = scaled
	return scaled, nil
}

// scaleImage draws src onto a new width x height image with linear filtering.
func scaleImage(src *ebiten.Image, width, height int) *ebiten.Image {
	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return src
	}
	dst := ebiten.NewImage(width, height)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width)/float64(b.Dx()), float64(height)/float64(b.Dy()))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
	return dst
}

// LoadSoundEffect loads a one-shot sound effect and caches its player.
// Supported formats: WAV, MP3, OGG and Sun .au, chosen by file extension.
//
// A missing file is not an error: it returns (nil, nil) and the caller stays
// silent. The same applies when the manager has no audio context.
func (rm *ResourceManager) LoadSoundEffect(name string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[name]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, nil
	}

	audioData, err := rm.resolver.Resolve(name, FallbackPlaceholder)
	if err != nil || audioData == nil {
		return nil, err
	}

	stream, err := decodeSound(name, bytes.NewReader(audioData), rm.audioContext.SampleRate())
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", name, err)
	}

	rm.audioCache[name] = player
	return player, nil
}

// decodeSound decodes by extension without looping and resamples every
// format to sampleRate so sounds from --assets keep their pitch.
func decodeSound(name string, reader io.ReadSeeker, sampleRate int) (io.ReadSeeker, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV sound effect %s: %w", name, err)
		}
		return s, nil
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound effect %s: %w", name, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound effect %s: %w", name, err)
		}
		return s, nil
	case ".au":
		s, err := auaudio.DecodeAU(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode AU sound effect %s: %w", name, err)
		}
		if s.SampleRate() == sampleRate {
			return s, nil
		}
		return audio.Resample(s, s.Length(), s.SampleRate(), sampleRate), nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg, .au)", ext)
	}
}

// LoadDefaultFont returns a text face of the given size backed by the Go
// Regular font bundled with golang.org/x/image.
func (rm *ResourceManager) LoadDefaultFont(size float64) (*text.GoTextFace, error) {
	if face, exists := rm.fontFaceCache[size]; exists {
		return face, nil
	}

	if rm.fontSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to load default font: %w", err)
		}
		rm.fontSource = src
	}

	face := &text.GoTextFace{Source: rm.fontSource, Size: size}
	rm.fontFaceCache[size] = face
	return face, nil
}
