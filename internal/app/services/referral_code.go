package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	codeStemLength   = 6
	codeStemFiller   = 'X'
	codeSuffixDigits = 10000 // suffix range 0000-9999
)

// randomCodeSuffix is the production suffix source
func randomCodeSuffix() int {
	return rand.IntN(codeSuffixDigits)
}

// buildCodeStem derives the 6-letter stem of a referral code from the
// participant's name: parts concatenated, uppercased, non-letters stripped,
// truncated to 6 and right-padded with X when shorter.
func buildCodeStem(firstName, lastName string) string {
	var stem strings.Builder
	for _, r := range strings.ToUpper(firstName + lastName) {
		if r >= 'A' && r <= 'Z' {
			stem.WriteRune(r)
			if stem.Len() == codeStemLength {
				break
			}
		}
	}
	for stem.Len() < codeStemLength {
		stem.WriteByte(codeStemFiller)
	}
	return stem.String()
}

// generateReferralCode produces a referral code that is unique among existing
// participants at the time of the check: the name stem plus a 4-digit random
// suffix, retried with a fresh suffix on collision. After the configured
// number of attempts it falls back to a deterministic suffix taken from the
// current time; that code is not re-checked, termination is guaranteed and
// uniqueness is ultimately enforced by the database constraint.
//
// A storage failure during a collision check aborts generation: an unverified
// candidate is never treated as unique.
func (s *RSVPService) generateReferralCode(ctx context.Context, firstName, lastName string) (string, error) {
	stem := buildCodeStem(firstName, lastName)

	for attempt := 0; attempt < s.codeAttempts; attempt++ {
		code := fmt.Sprintf("%s%04d", stem, s.codeSuffix())

		exists, err := s.participantRepo.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("error checking referral code uniqueness: %w", err)
		}
		if !exists {
			return code, nil
		}

		s.logger.Debug().Str("code", code).Int("attempt", attempt+1).Msg("Referral code collision, retrying")
	}

	fallback := fmt.Sprintf("%s%04d", stem, time.Now().Unix()%codeSuffixDigits)
	s.logger.Warn().
		Str("code", fallback).
		Int("attempts", s.codeAttempts).
		Msg("Referral code generation exhausted retries, using time-based fallback")

	return fallback, nil
}
