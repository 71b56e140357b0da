package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/mailer"
)

// Step is one scraper invocation, run through the shell.
type Step struct {
	Name    string
	Command string
}

type StepResult struct {
	Name     string
	Duration time.Duration
	Err      error
	TimedOut bool
	Output   string
}

func (s *StepResult) Status() string {
	switch {
	case s.TimedOut:
		return "timeout"
	case s.Err != nil:
		return "error"
	default:
		return "ok"
	}
}

type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Steps      []StepResult
	Errors     []string
}

// Runner drives a full update run: every scraper sequentially, then the
// ingestion pipeline, then temp cleanup, then a summary mail. One scraper
// failing or timing out never stops the run.
type Runner struct {
	logger   logger.ZapLogger
	mail     mailer.Sender
	reportTo []string
	timeout  time.Duration
}

func NewRunner(mail mailer.Sender, reportTo []string, timeout time.Duration, log logger.ZapLogger) *Runner {
	return &Runner{
		logger:   log,
		mail:     mail,
		reportTo: reportTo,
		timeout:  timeout,
	}
}

func (r *Runner) Run(ctx context.Context, steps []Step, ingest func(context.Context) error, tempDirs []string) *Report {
	report := &Report{StartedAt: time.Now()}

	for i, step := range steps {
		result := r.runStep(ctx, step)
		report.Steps = append(report.Steps, result)
		if result.Err != nil {
			report.Errors = append(report.Errors,
				fmt.Sprintf("%s: %v", step.Name, result.Err))
		}
		r.logETA(report.Steps, len(steps)-i-1)
	}

	ingestStart := time.Now()
	ingestResult := StepResult{Name: "ingest", Err: ingest(ctx)}
	ingestResult.Duration = time.Since(ingestStart)
	report.Steps = append(report.Steps, ingestResult)
	if ingestResult.Err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("ingest: %v", ingestResult.Err))
	}

	for _, dir := range tempDirs {
		if err := os.RemoveAll(dir); err != nil {
			r.logger.Warn("failed to remove temp dir", zap.String("dir", dir), zap.Error(err))
			report.Errors = append(report.Errors, fmt.Sprintf("cleanup %s: %v", dir, err))
		}
	}

	report.FinishedAt = time.Now()
	r.sendReport(report)
	return report
}

func (r *Runner) runStep(ctx context.Context, step Step) StepResult {
	r.logger.Info("running scraper", zap.String("step", step.Name))

	stepCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	cmd := exec.CommandContext(stepCtx, "sh", "-c", step.Command)
	output, err := cmd.CombinedOutput()

	result := StepResult{
		Name:     step.Name,
		Duration: time.Since(start),
		Output:   tail(string(output), 500),
	}
	if err != nil {
		if errors.Is(stepCtx.Err(), context.DeadlineExceeded) {
			result.TimedOut = true
			result.Err = fmt.Errorf("timed out after %s", r.timeout)
		} else {
			result.Err = err
		}
		r.logger.Error("scraper failed",
			zap.String("step", step.Name),
			zap.Bool("timeout", result.TimedOut),
			zap.Duration("duration", result.Duration),
			zap.String("output", result.Output),
			zap.Error(err))
		return result
	}

	r.logger.Info("scraper finished",
		zap.String("step", step.Name),
		zap.Duration("duration", result.Duration))
	return result
}

// logETA estimates time left from the running average of completed steps.
func (r *Runner) logETA(done []StepResult, remaining int) {
	if remaining == 0 || len(done) == 0 {
		return
	}
	var total time.Duration
	for _, s := range done {
		total += s.Duration
	}
	avg := total / time.Duration(len(done))
	r.logger.Info("run progress",
		zap.Int("completed", len(done)),
		zap.Int("remaining", remaining),
		zap.Duration("eta", avg*time.Duration(remaining)))
}

// sendReport always mails the summary, failures included, and only logs when
// the mail itself cannot be delivered.
func (r *Runner) sendReport(report *Report) {
	if len(r.reportTo) == 0 {
		r.logger.Debug("no report recipients configured, skipping summary mail")
		return
	}

	data := mailer.RunReportData{
		FinishedAt: report.FinishedAt,
		Total:      report.FinishedAt.Sub(report.StartedAt).Round(time.Second),
		Errors:     report.Errors,
	}
	for _, s := range report.Steps {
		data.Steps = append(data.Steps, mailer.RunReportStep{
			Name:     s.Name,
			Status:   s.Status(),
			Duration: s.Duration.Round(time.Millisecond),
		})
	}

	body, err := mailer.RenderRunReport(data)
	if err != nil {
		r.logger.Error("failed to render run report", zap.Error(err))
		return
	}

	subject := fmt.Sprintf("Actualización de precios: %d pasos, %d errores",
		len(report.Steps), len(report.Errors))
	if err := r.mail.Send(r.reportTo, subject, body); err != nil {
		r.logger.Warn("failed to send run report", zap.Error(err))
	}
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
