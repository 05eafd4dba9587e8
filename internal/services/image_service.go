package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/fakeguard/fakeguard/internal/dto"
)

const MaxImageBytes = 4 << 20

var (
	ErrEmptyImage       = errors.New("image is empty")
	ErrImageTooLarge    = errors.New("image exceeds 4MB")
	ErrUnsupportedImage = errors.New("unsupported image format; use JPEG, PNG or GIF")
	ErrInvalidImageData = errors.New("image_data is not valid base64")
)

const (
	VerdictAuthentic  = "likely_authentic"
	VerdictSuspicious = "suspicious"
	VerdictFake       = "likely_fake"
)

var reverseSearchSources = []string{"stock-archive", "social-index", "news-images", "dating-profiles", "ai-gallery"}

type ImageService struct {
	now func() time.Time
}

func NewImageService() *ImageService {
	return &ImageService{now: time.Now}
}

// DecodeImageData accepts plain base64 or a data: URL.
func DecodeImageData(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyImage
	}
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx < 0 {
			return nil, ErrInvalidImageData
		}
		s = s[idx+1:]
	}
	if base64.StdEncoding.DecodedLen(len(s)) > MaxImageBytes+3 {
		return nil, ErrImageTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidImageData
	}
	return data, nil
}

// Verify checks the image header and returns mock forensic verdicts keyed on its content hash.
func (s *ImageService) Verify(data []byte) (*dto.ImageVerificationResult, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if len(data) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	sum := sha256.Sum256(data)
	manipulation := int(sum[0]) % 100
	aiScore := int(sum[1]) % 100

	matches := make([]dto.ReverseSearchMatch, 0, 3)
	for i := 0; i < int(sum[3])%4; i++ {
		b := sum[4+i]
		source := reverseSearchSources[int(b)%len(reverseSearchSources)]
		matches = append(matches, dto.ReverseSearchMatch{
			Source:     source,
			URL:        fmt.Sprintf("https://%s.example.com/img/%s", source, hex.EncodeToString(sum[8+i*4:12+i*4])),
			Similarity: round2(0.6 + float64(b%40)/100),
		})
	}

	return &dto.ImageVerificationResult{
		SHA256:            hex.EncodeToString(sum[:]),
		Format:            format,
		Width:             cfg.Width,
		Height:            cfg.Height,
		SizeBytes:         len(data),
		ManipulationScore: manipulation,
		IsManipulated:     manipulation >= 60,
		AIGeneratedScore:  aiScore,
		IsAIGenerated:     aiScore >= 60,
		IsStockPhoto:      sum[2]%5 == 0,
		Matches:           matches,
		Verdict:           imageVerdict(manipulation, aiScore),
		VerifiedAt:        s.now().UTC(),
	}, nil
}

func imageVerdict(manipulation, aiScore int) string {
	worst := manipulation
	if aiScore > worst {
		worst = aiScore
	}
	switch {
	case worst >= 70:
		return VerdictFake
	case worst >= 40:
		return VerdictSuspicious
	default:
		return VerdictAuthentic
	}
}
