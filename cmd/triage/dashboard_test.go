package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sharkgitz/eboxai/internal/model"
)

func TestTrustLine(t *testing.T) {
	line := trustLine(model.TrustMetrics{
		AverageConfidence: 87.5,
		HallucinationRate: 12.0,
		RAGUsage:          "100%",
	})
	assert.Equal(t, "Trust: 87.5% confidence, 12.0% hallucination rate, RAG 100%", line)
}
