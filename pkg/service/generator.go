package service

import (
	"crypto/rand"
	"fmt"
)

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// CodeLength is the fixed length of a public short code.
const CodeLength = 6

// CodeGenerator produces random short codes. It is an interface so tests
// can force repeat-call sequences.
type CodeGenerator interface {
	Generate() (string, error)
}

type RandomCodeGenerator struct{}

func NewRandomCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{}
}

// Generate draws CodeLength i.i.d. characters from the 62-char alphabet.
func (g *RandomCodeGenerator) Generate() (string, error) {
	code := make([]byte, CodeLength)
	buf := make([]byte, 1)
	for i := 0; i < CodeLength; {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}
		// 248 is the largest multiple of 62 that fits in a byte; values at
		// or above it would bias the low end of the alphabet.
		if buf[0] >= 248 {
			continue
		}
		code[i] = codeAlphabet[int(buf[0])%len(codeAlphabet)]
		i++
	}
	return string(code), nil
}
