package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineIsThreeDaysOut(t *testing.T) {
	submitted := time.Date(2026, time.August, 28, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "Monday, August 31, 2026", Deadline(submitted))
}

func TestConfirmationSubject(t *testing.T) {
	assert.Equal(t, "Application Confirmation - Programme Officer",
		ConfirmationSubject("Programme Officer"))
}

func TestConfirmationRendersFields(t *testing.T) {
	html, err := Confirmation("Wanjiru Otieno", "Programme Officer", "Monday, August 31, 2026")
	require.NoError(t, err)

	assert.Contains(t, html, "Dear Wanjiru Otieno,")
	assert.Contains(t, html, "<strong>Programme Officer</strong>")
	assert.Contains(t, html, "Monday, August 31, 2026")
	assert.Contains(t, html, RecruitmentInbox)
	assert.Contains(t, html, "5-minute video")
}

func TestConfirmationEscapesApplicantInput(t *testing.T) {
	html, err := Confirmation(`<script>alert("x")</script>`, "Programme Officer", "Monday, August 31, 2026")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
