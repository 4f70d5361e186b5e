package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulator_ThresholdIsExclusive(t *testing.T) {
	// Arrange
	acc := NewAccumulator(DefaultConfig())

	// Act: уверенность ровно на пороге и чуть выше
	acc.Add([]Detection{
		{Label: "cup", Confidence: 0.5},
		{Label: "book", Confidence: 0.50001},
	}, nil)

	// Assert: ровно 0.5 отбрасывается, 0.50001 проходит
	assert.Equal(t, []string{"book"}, acc.Labels(),
		"порог должен быть строго нижней границей")
}

func TestAccumulator_ExcludedClasses(t *testing.T) {
	acc := NewAccumulator(DefaultConfig())

	acc.Add([]Detection{
		{Label: "person", Confidence: 0.99},
		{Label: "Hand", Confidence: 0.95},
		{Label: " human face ", Confidence: 0.9},
		{Label: "chair", Confidence: 0.8},
	}, nil)

	assert.Equal(t, []string{"chair"}, acc.Labels(),
		"классы, относящиеся к человеку, не должны попадать в результат")
}

func TestAccumulator_NormalizationAndDeduplication(t *testing.T) {
	acc := NewAccumulator(DefaultConfig())

	acc.Add([]Detection{
		{Label: "Cup", Confidence: 0.9},
		{Label: " cup ", Confidence: 0.8},
		{Label: "CUP", Confidence: 0.7},
		{Label: "book", Confidence: 0.6},
	}, nil)

	assert.Equal(t, []string{"cup", "book"}, acc.Labels(),
		"метки должны приводиться к нижнему регистру, обрезаться и схлопываться")
}

func TestAccumulator_OnNewCalledOncePerLabel(t *testing.T) {
	acc := NewAccumulator(DefaultConfig())

	var events []string
	onNew := func(label string) { events = append(events, label) }

	acc.Add([]Detection{{Label: "cup", Confidence: 0.9}}, onNew)
	acc.Add([]Detection{
		{Label: "cup", Confidence: 0.95},
		{Label: "book", Confidence: 0.9},
	}, onNew)

	assert.Equal(t, []string{"cup", "book"}, events,
		"колбэк должен вызываться один раз на каждую новую метку")
}

func TestAccumulator_EmptyAndBlankLabels(t *testing.T) {
	acc := NewAccumulator(DefaultConfig())

	acc.Add([]Detection{
		{Label: "", Confidence: 0.9},
		{Label: "   ", Confidence: 0.9},
	}, nil)

	assert.Empty(t, acc.Labels())
}
