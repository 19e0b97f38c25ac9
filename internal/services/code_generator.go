package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/rs/zerolog"

	"github.com/kaukau001/url-shortener-api/internal/apperrors"
	"github.com/kaukau001/url-shortener-api/internal/repository"
)

const (
	codeLength  = 6
	maxAttempts = 10

	// URL-safe alphabet without the ambiguous 0/O/1/l/I/o pairs.
	codeAlphabet = "23456789abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ-_"
)

// CodeGenerator produces short codes that are unique among ACTIVE links.
// The draw function is injectable so collision paths are testable without
// relying on real randomness.
type CodeGenerator struct {
	links repository.LinkRepository
	log   zerolog.Logger
	draw  func() (string, error)
}

func NewCodeGenerator(links repository.LinkRepository, log zerolog.Logger) *CodeGenerator {
	return &CodeGenerator{
		links: links,
		log:   log.With().Str("component", "code_generator").Logger(),
		draw:  randomCode,
	}
}

// Generate draws fresh codes until one is not ACTIVE-in-use, up to
// maxAttempts. Exhausting the attempts is fatal for the request; each
// collision on the way there is only logged.
func (g *CodeGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		code, err := g.draw()
		if err != nil {
			return "", apperrors.Internal("draw short code", err)
		}

		active, err := g.links.IsCodeActive(ctx, code)
		if err != nil {
			return "", err
		}
		if !active {
			return code, nil
		}

		g.log.Warn().
			Int("attempt", attempt).
			Str("code", code).
			Msg("short code collision")
	}

	return "", apperrors.CodeGeneration(
		fmt.Sprintf("unable to generate unique short code after %d attempts", maxAttempts))
}

func randomCode() (string, error) {
	b := make([]byte, codeLength)
	alphabetLen := big.NewInt(int64(len(codeAlphabet)))

	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}
