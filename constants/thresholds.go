package constants

// Confidence and verification thresholds. Stable values; tuning them changes
// API behavior, so they live here rather than in per-package config.
const (
	// DefaultFieldConfidence is assigned to every successfully extracted
	// field. Flat until per-token OCR probabilities are plumbed through.
	DefaultFieldConfidence = 0.8

	// FallbackConfidenceThreshold gates the remote cleanup call: below this
	// OCR confidence the fallback collaborator is consulted.
	FallbackConfidenceThreshold = 0.75

	// FieldConfidenceFloor is the per-field score under which a fallback
	// value wins the merge even when OCR produced something.
	FieldConfidenceFloor = 0.65

	// VerifyMismatchThreshold marks a submitted field as a mismatch.
	VerifyMismatchThreshold = 0.8

	// VerifyPassThreshold is the minimum overall score for a pass verdict.
	VerifyPassThreshold = 0.85

	// SubstringMatchFloor is the minimum score granted when one compared
	// value contains the other.
	SubstringMatchFloor = 0.85
)
