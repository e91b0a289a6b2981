package mailer

import (
	"bytes"
	"html/template"
	"time"
)

const (
	FromAddress       = "careers@unedp.org"
	RecruitmentInbox  = "careers@unedp.org"
	followUpWindowHrs = 72
)

// Deadline is the candidate's follow-up cutoff: three days after submission,
// rendered the way the confirmation email shows it.
func Deadline(submittedAt time.Time) string {
	return submittedAt.Add(followUpWindowHrs * time.Hour).Format("Monday, January 2, 2006")
}

func ConfirmationSubject(jobTitle string) string {
	return "Application Confirmation - " + jobTitle
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;line-height:1.6;color:#333;max-width:600px;margin:0 auto;padding:20px;">
  <div style="background:#f9fafb;border-radius:8px;padding:40px;margin:20px 0;">
    <div style="text-align:center;margin-bottom:30px;">
      <div style="font-size:24px;font-weight:bold;color:#1e40af;">UNEDP</div>
      <div style="font-size:12px;color:#6b7280;">UN Economic Development Programme</div>
    </div>

    <div style="font-size:24px;font-weight:600;color:#1f2937;margin-bottom:20px;">Application Received!</div>

    <div style="background:white;padding:30px;border-radius:8px;">
      <p>Dear {{.ApplicantName}},</p>

      <p>Thank you for applying for the <strong>{{.JobTitle}}</strong> position at UNEDP. We truly appreciate your interest in joining our team!</p>

      <div style="margin:25px 0;">
        <div style="font-size:18px;font-weight:600;color:#1f2937;margin-bottom:12px;">Next Steps: Video Submission Required</div>
        <p>Due to the high volume of applications we receive, we are unable to schedule one-on-one interviews. Instead, we kindly ask you to submit a <strong>5-minute video</strong> showcasing your qualifications and motivation for this role.</p>
        <div style="background:#f0fdf4;border-left:4px solid #22c55e;padding:15px;margin:15px 0;border-radius:4px;">
          <strong>Recording Options:</strong>
          <ul>
            <li><strong>Loom:</strong> visit <a href="https://loom.com" style="color:#3b82f6;">loom.com</a> to record your video (free option available)</li>
            <li><strong>Google Drive:</strong> upload a pre-recorded video</li>
          </ul>
          <strong>Important:</strong> please set the link to "Anyone with the link can view".
        </div>
      </div>

      <div style="margin:25px 0;">
        <div style="font-size:18px;font-weight:600;color:#1f2937;margin-bottom:12px;">Supporting Documents</div>
        <div style="background:#fce7f3;border-left:4px solid #ec4899;padding:15px;border-radius:4px;">
          <p>Please email the following documents to <a href="mailto:{{.RecruitmentInbox}}" style="color:#3b82f6;">{{.RecruitmentInbox}}</a>:</p>
          <ul>
            <li>Valid ID or Passport</li>
            <li>Education Certificates (Degree, Diploma, etc.)</li>
            <li>Certificates of Experience or Training</li>
            <li><strong>Link to your 5-minute video</strong> (Loom or Google Drive)</li>
          </ul>
          <p style="margin-top:15px;font-size:14px;">Please include "Application for {{.JobTitle}}" in the email subject line.</p>
        </div>
      </div>

      <div style="background:#fef3c7;border-left:4px solid #f59e0b;padding:15px;margin:20px 0;border-radius:4px;font-weight:600;color:#92400e;">
        <strong>Important Deadline:</strong><br>
        Please submit your video and documents by <strong>{{.Deadline}}</strong>. Applications received after this date may not be reviewed.
      </div>

      <p style="margin-top:30px;">We will carefully review all submissions. The most suitable candidates will be contacted for further discussions.</p>

      <p>Best regards,<br>
      <strong>UNEDP Recruitment Team</strong><br>
      UN Economic Development Programme</p>
    </div>

    <div style="text-align:center;margin-top:40px;padding-top:20px;border-top:1px solid #e5e7eb;font-size:12px;color:#6b7280;">
      <p>&copy; {{.Year}} UN Economic Development Programme (UNEDP). All rights reserved.</p>
      <p>This email was sent because you submitted an application for a position at UNEDP. If you did not submit an application, please ignore this email.</p>
    </div>
  </div>
</body>
</html>`))

type confirmationData struct {
	ApplicantName    string
	JobTitle         string
	Deadline         string
	RecruitmentInbox string
	Year             int
}

// Confirmation renders the fixed application-received email body.
func Confirmation(applicantName, jobTitle, deadline string) (string, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, confirmationData{
		ApplicantName:    applicantName,
		JobTitle:         jobTitle,
		Deadline:         deadline,
		RecruitmentInbox: RecruitmentInbox,
		Year:             time.Now().Year(),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
