package listing

import (
	"testing"

	"eventify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFAQ(t *testing.T) {
	d := NewDraft("vendor-1")

	assert.False(t, AddFAQ(d, models.FAQ{Question: "   ", Answer: "Yes"}))
	assert.False(t, AddFAQ(d, models.FAQ{Question: "Parking?", Answer: ""}))
	assert.Empty(t, d.FAQs)

	assert.True(t, AddFAQ(d, models.FAQ{Question: " Parking? ", Answer: " Yes, 40 cars "}))
	assert.True(t, AddFAQ(d, models.FAQ{Question: "Parking?", Answer: "Yes, 40 cars"}))

	require.Len(t, d.FAQs, 2)
	assert.Equal(t, models.FAQ{Question: "Parking?", Answer: "Yes, 40 cars"}, d.FAQs[0])
}

func TestRemoveFAQ(t *testing.T) {
	d := NewDraft("vendor-1")
	AddFAQ(d, models.FAQ{Question: "q1", Answer: "a1"})
	AddFAQ(d, models.FAQ{Question: "q2", Answer: "a2"})

	require.NoError(t, RemoveFAQ(d, 0))
	assert.Equal(t, []models.FAQ{{Question: "q2", Answer: "a2"}}, d.FAQs)
	assert.ErrorIs(t, RemoveFAQ(d, 1), ErrIndexOutOfRange)
}
