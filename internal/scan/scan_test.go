package scan

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanStaysWithinCatalog(t *testing.T) {
	stub := NewStub(rand.New(rand.NewSource(42)))

	knownTypes := map[string]bool{}
	for _, p := range catalog {
		knownTypes[p.documentType] = true
	}

	for i := 0; i < 200; i++ {
		result := stub.Scan([]byte{0xde, 0xad, byte(i)})
		assert.True(t, knownTypes[result.DocumentType], "unexpected document type %q", result.DocumentType)
		assert.GreaterOrEqual(t, result.ConfidencePercent, 70)
		assert.LessOrEqual(t, result.ConfidencePercent, 100)
		assert.NotEmpty(t, result.BodyText)
		assert.NotEmpty(t, result.KeyPoints)
		assert.NotEmpty(t, result.ScanID)
	}
}

func TestScanIgnoresInput(t *testing.T) {
	// Same seed, different bytes: the picks only depend on the generator.
	a := NewStub(rand.New(rand.NewSource(7)))
	b := NewStub(rand.New(rand.NewSource(7)))

	ra := a.Scan([]byte("one payload"))
	rb := b.Scan(nil)

	assert.Equal(t, ra.DocumentType, rb.DocumentType)
	assert.Equal(t, ra.ConfidencePercent, rb.ConfidencePercent)
}
