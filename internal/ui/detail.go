package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/five82/jobpanel/internal/jobview"
)

// detailLabelWidth is the label column of the detail pane.
const detailLabelWidth = 11

// detailRow is one labelled value in the detail pane.
type detailRow struct {
	label string
	value string
}

// detailRows lists the fields shown for a job. Rows with empty values are skipped.
func detailRows(job jobview.JobRecord) []detailRow {
	return []detailRow{
		{"Payload ID", job.PayloadID},
		{"Job ID", job.Field("job_id", "jobId")},
		{"Type", job.JobType},
		{"Name", job.Field("name")},
		{"Version", job.Field("version")},
		{"Tags", strings.Join(job.Tags, ", ")},
		{"Queue", job.Field("queue", "job_queue", "jobQueue")},
		{"Username", job.Field("username", "user")},
		{"Queued", formatTimestamp(job.Field("time_queued", "queuedTime", "queued_time"))},
		{"Started", formatTimestamp(job.StartTime)},
		{"Ended", formatTimestamp(job.Field(endTimeKeys...))},
		{"Duration", jobDuration(job)},
		{"Command", job.Field("command", "cmd")},
		{"Image", job.Field("container_image_name", "container_image_url", "image")},
		{"Instance", job.Field("ec2_instance_type", "instance_type")},
		{"Instance ID", job.Field("ec2_instance_id")},
		{"Zone", job.Field("ec2_availability_zone")},
		{"Disk usage", job.Field("disk_usage", "job_dir_size")},
	}
}

var endTimeKeys = []string{"time_end", "endTime", "end_time", "timeEnd"}

// jobDuration prefers end minus start and falls back to the API's duration field.
func jobDuration(job jobview.JobRecord) string {
	start, startOK := jobview.ParseTimestamp(job.StartTime)
	end, endOK := jobview.ParseTimestamp(job.Field(endTimeKeys...))
	if startOK && endOK && !end.Before(start) {
		return formatDuration(end.Sub(start))
	}
	return job.Field("duration")
}

// syncDetail renders the selected job into the detail viewport.
func (m *Model) syncDetail() {
	if m.view.Selected == nil {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(m.renderDetailContent(m.view.Selected.Job, m.detail.Width))
}

func (m Model) renderDetailContent(job jobview.JobRecord, width int) string {
	styles := m.theme.Styles()
	labelStyle := styles.MutedText.Width(detailLabelWidth)
	valueWidth := max(width-detailLabelWidth-1, 10)

	var b strings.Builder
	b.WriteString(styles.StatusStyle(job.Status).Render(strings.ToUpper(job.Status.String())))
	b.WriteString("\n\n")

	for _, row := range detailRows(job) {
		if strings.TrimSpace(row.value) == "" {
			continue
		}
		value := wrap.String(wordwrap.String(row.value, valueWidth), valueWidth)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(row.label), " ", styles.Text.Render(value)))
		b.WriteString("\n")
	}

	if msg := job.Field("error", "error_message", "errorMessage", "traceback"); msg != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render("Error"))
		b.WriteString("\n")
		b.WriteString(styles.DangerText.UnsetBold().Render(wrap.String(wordwrap.String(msg, width), width)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderDetailPane renders the detail viewport or its placeholder.
func (m Model) renderDetailPane() string {
	box := m.boxes.detail
	if m.view.Selected == nil {
		styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
		placeholder := "\n" + styles.FaintText.Width(box.inner().width).Align(lipgloss.Center).Render("Select a job")
		return m.renderTitledBox("Details", placeholder, box.width, box.height, false)
	}
	title := "Job " + truncateMiddle(m.view.Selected.PayloadID, max(box.width-12, 8))
	return m.renderTitledBox(title, m.detail.View(), box.width, box.height, m.focus == paneDetail)
}
