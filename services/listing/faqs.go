package listing

import (
	"strings"

	"eventify/models"
)

// AddFAQ appends faq when both question and answer are filled in. It reports whether
// the entry was added.
func AddFAQ(d *models.ServiceDraft, faq models.FAQ) bool {
	q := strings.TrimSpace(faq.Question)
	a := strings.TrimSpace(faq.Answer)
	if q == "" || a == "" {
		return false
	}
	d.FAQs = append(d.FAQs, models.FAQ{Question: q, Answer: a})
	return true
}

// RemoveFAQ deletes the FAQ at index.
func RemoveFAQ(d *models.ServiceDraft, index int) error {
	if index < 0 || index >= len(d.FAQs) {
		return indexError("faq", index, len(d.FAQs))
	}
	d.FAQs = append(d.FAQs[:index], d.FAQs[index+1:]...)
	return nil
}
