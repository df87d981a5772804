// Package scan is an explicitly stubbed document analyzer.
//
// The interface is real (arbitrary image bytes in, a structured result out)
// but no recognition happens: results are drawn at random from a small fixed
// catalog, with a random confidence percentage. A real OCR engine can be
// swapped in behind Analyzer without changing the calling contract, which is
// why the non-determinism and the result shape are kept as-is.
package scan

import (
	"math/rand"

	"github.com/google/uuid"
)

// Result is one canned "analysis" of an uploaded document.
type Result struct {
	ScanID            string   `json:"scanId"`
	DocumentType      string   `json:"documentType"`
	BodyText          string   `json:"bodyText"`
	KeyPoints         []string `json:"keyPoints"`
	ConfidencePercent int      `json:"confidencePercent"`
}

// Analyzer produces a Result from raw image bytes.
type Analyzer interface {
	Scan(imageBytes []byte) Result
}

// profile is one entry in the canned catalog.
type profile struct {
	documentType string
	bodyText     string
	keyPoints    []string
}

var catalog = []profile{
	{
		documentType: "lecture notes",
		bodyText:     "Handwritten notes covering key formulas and definitions, with a summary box in the bottom margin.",
		keyPoints: []string{
			"Three core definitions highlighted",
			"Worked example on the second half of the page",
			"Summary box flags two topics for review",
		},
	},
	{
		documentType: "printed article",
		bodyText:     "A printed article with an abstract, three sections, and a short conclusion referencing further reading.",
		keyPoints: []string{
			"Abstract states the main claim up front",
			"Middle section contains the supporting data",
			"Conclusion lists two follow-up sources",
		},
	},
	{
		documentType: "to-do list",
		bodyText:     "A short task list with checkboxes; several items are crossed out and two are underlined.",
		keyPoints: []string{
			"Five tasks total, three already done",
			"Two underlined items look time-sensitive",
			"No dates attached to remaining tasks",
		},
	},
}

// Stub implements Analyzer with canned catalog picks.
type Stub struct {
	rng *rand.Rand
}

// NewStub creates a Stub. A nil source uses the shared global generator.
func NewStub(rng *rand.Rand) *Stub {
	return &Stub{rng: rng}
}

// Scan ignores the actual pixel content and returns a random catalog entry
// with a confidence in [70,100].
func (s *Stub) Scan(_ []byte) Result {
	pick := s.intn(len(catalog))
	p := catalog[pick]
	return Result{
		ScanID:            uuid.NewString(),
		DocumentType:      p.documentType,
		BodyText:          p.bodyText,
		KeyPoints:         p.keyPoints,
		ConfidencePercent: 70 + s.intn(31),
	}
}

func (s *Stub) intn(n int) int {
	if s.rng != nil {
		return s.rng.Intn(n)
	}
	return rand.Intn(n)
}
