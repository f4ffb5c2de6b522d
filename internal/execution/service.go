package execution

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CodeLab-25-26J-102/workspace-backend/internal/languages"
)

var (
	// ErrLanguageRequired is raised before any network call is made.
	ErrLanguageRequired = errors.New("language is required")
	// ErrJudgeUnavailable covers transport failures, timeouts and malformed
	// judge replies. It is never conflated with a compile or runtime error and
	// is never retried automatically: a silent retry could double-submit a
	// side-effecting run.
	ErrJudgeUnavailable = errors.New("execution backend unavailable")
)

// Status classifies one finished run.
type Status string

const (
	StatusSuccess      Status = "success"
	StatusCompileError Status = "compile_error"
	StatusRuntimeError Status = "runtime_error"
)

// NoOutputMarker stands in for stdout when a run succeeds without output.
const NoOutputMarker = "No output"

// RunRequest is one editor buffer handed to the judge. It is never persisted.
type RunRequest struct {
	LanguageTag string
	SourceCode  string
	Stdin       string
}

// Result is the normalized four-channel outcome of a run.
type Result struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output"`
	Status        Status `json:"status"`
}

// JudgeClient is the outbound judge boundary.
type JudgeClient interface {
	Submit(ctx context.Context, sub Submission) (*SubmissionResult, error)
	Get(ctx context.Context, token string) (*SubmissionResult, error)
}

// Service is the execution gateway. It performs no persistence and no
// ownership check; scratch buffers run exactly like attached files.
type Service struct {
	Judge        JudgeClient
	PollInterval time.Duration
}

func NewService(judge JudgeClient) *Service {
	return &Service{
		Judge:        judge,
		PollInterval: 500 * time.Millisecond,
	}
}

// Run resolves the language, submits to the judge, waits for a terminal
// state and normalizes the reply. The contract upward is synchronous even
// when the judge itself queues the submission.
func (s *Service) Run(ctx context.Context, req RunRequest) (*Result, error) {
	tag := strings.TrimSpace(req.LanguageTag)
	if tag == "" {
		return nil, ErrLanguageRequired
	}
	judgeID := languages.JudgeID(tag)

	start := time.Now()
	raw, err := s.Judge.Submit(ctx, Submission{
		SourceCode: req.SourceCode,
		LanguageID: judgeID,
		Stdin:      req.Stdin,
	})
	if err != nil {
		recordJudgeCall(time.Since(start), err)
		return nil, fmt.Errorf("%w: %v", ErrJudgeUnavailable, err)
	}

	raw, err = s.awaitTerminal(ctx, raw)
	recordJudgeCall(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJudgeUnavailable, err)
	}

	return classify(raw), nil
}

// awaitTerminal polls queued submissions until the judge settles. Judges
// honoring wait=true return terminal results immediately and never loop here.
func (s *Service) awaitTerminal(ctx context.Context, raw *SubmissionResult) (*SubmissionResult, error) {
	for !raw.Terminal() {
		if raw.Token == "" {
			return nil, fmt.Errorf("non-terminal reply without token")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.PollInterval):
		}

		next, err := s.Judge.Get(ctx, raw.Token)
		if err != nil {
			return nil, err
		}
		raw = next
	}
	return raw, nil
}

// classify applies the priority rule: a populated compile channel wins over
// stderr because a compile failure means no program ever ran; stderr wins
// over stdout; an entirely silent success carries the no-output marker.
func classify(raw *SubmissionResult) *Result {
	res := &Result{
		Stdout:        deref(raw.Stdout),
		Stderr:        deref(raw.Stderr),
		CompileOutput: deref(raw.CompileOutput),
	}

	switch {
	case strings.TrimSpace(res.CompileOutput) != "":
		res.Status = StatusCompileError
	case strings.TrimSpace(res.Stderr) != "":
		res.Status = StatusRuntimeError
	default:
		res.Status = StatusSuccess
		if strings.TrimSpace(res.Stdout) == "" {
			res.Stdout = NoOutputMarker
		}
	}
	return res
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
