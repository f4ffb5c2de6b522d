package execution_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeLab-25-26J-102/workspace-backend/internal/execution"
)

type fakeJudge struct {
	submit  func(ctx context.Context, sub execution.Submission) (*execution.SubmissionResult, error)
	get     func(ctx context.Context, token string) (*execution.SubmissionResult, error)
	submits int
	gets    int
}

func (f *fakeJudge) Submit(ctx context.Context, sub execution.Submission) (*execution.SubmissionResult, error) {
	f.submits++
	return f.submit(ctx, sub)
}

func (f *fakeJudge) Get(ctx context.Context, token string) (*execution.SubmissionResult, error) {
	f.gets++
	return f.get(ctx, token)
}

func strPtr(s string) *string { return &s }

func terminalResult(stdout, stderr, compileOutput *string) *execution.SubmissionResult {
	res := &execution.SubmissionResult{
		Token:         "tok",
		Stdout:        stdout,
		Stderr:        stderr,
		CompileOutput: compileOutput,
	}
	res.Status.ID = 3
	res.Status.Description = "Accepted"
	return res
}

func newService(judge execution.JudgeClient) *execution.Service {
	svc := execution.NewService(judge)
	svc.PollInterval = time.Millisecond
	return svc
}

func TestRunClassification(t *testing.T) {
	cases := []struct {
		name       string
		raw        *execution.SubmissionResult
		wantStatus execution.Status
		wantStdout string
	}{
		{
			name:       "stdout only is success",
			raw:        terminalResult(strPtr("42\n"), nil, nil),
			wantStatus: execution.StatusSuccess,
			wantStdout: "42\n",
		},
		{
			name:       "compile output wins over stderr",
			raw:        terminalResult(nil, strPtr("ld: warning"), strPtr("error: expected ';'")),
			wantStatus: execution.StatusCompileError,
			wantStdout: "",
		},
		{
			name:       "stderr alone is a runtime error",
			raw:        terminalResult(nil, strPtr("Traceback (most recent call last)"), nil),
			wantStatus: execution.StatusRuntimeError,
			wantStdout: "",
		},
		{
			name:       "all channels empty is success with marker",
			raw:        terminalResult(nil, nil, nil),
			wantStatus: execution.StatusSuccess,
			wantStdout: execution.NoOutputMarker,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			judge := &fakeJudge{
				submit: func(ctx context.Context, sub execution.Submission) (*execution.SubmissionResult, error) {
					return tc.raw, nil
				},
			}

			res, err := newService(judge).Run(context.Background(), execution.RunRequest{
				LanguageTag: "python",
				SourceCode:  "print(42)",
			})
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, res.Status)
			assert.Equal(t, tc.wantStdout, res.Stdout)
		})
	}
}

func TestRunCompileErrorScenario(t *testing.T) {
	judge := &fakeJudge{
		submit: func(ctx context.Context, sub execution.Submission) (*execution.SubmissionResult, error) {
			assert.Equal(t, 54, sub.LanguageID)
			return terminalResult(nil, nil, strPtr("error: expected ';'")), nil
		},
	}

	res, err := newService(judge).Run(context.Background(), execution.RunRequest{
		LanguageTag: "cpp",
		SourceCode:  "int main() { return 0 }",
	})
	require.NoError(t, err)

	assert.Equal(t, execution.StatusCompileError, res.Status)
	assert.Empty(t, res.Stdout)
	assert.Equal(t, "error: expected ';'", res.CompileOutput)
}

func TestRunEmptyLanguageIsLocalError(t *testing.T) {
	judge := &fakeJudge{
		submit: func(ctx context.Context, sub execution.Submission) (*execution.SubmissionResult, error) {
			return terminalResult(nil, nil, nil), nil
		},
	}

	_, err := newService(judge).Run(context.Background(), execution.RunRequest{
		LanguageTag: "   ",
		SourceCode:  "print(1)",
	})
	require.ErrorIs(t, err, execution.ErrLanguageRequired)
	assert.Zero(t, judge.submits, "no network call may happen for an unmappable tag")
}

func TestRunUnknownTagUsesDefaultLanguage(t *testing.T) {
	judge := &fakeJudge{
		submit: func(ctx context.Context, sub execution.Submission) (*execution.SubmissionResult, error) {
			assert.Equal(t, 63, sub.LanguageID) // javascript, the registry default
			return terminalResult(strPtr("ok"), nil, nil), nil
		},
	}

	_, err := newService(judge).Run(context.Background(), execution.RunRequest{
		LanguageTag: "ruby",
		SourceCode:  "puts :ok",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, judge.submits)
}

func TestRunJudgeFailureIsBackendUnavailable(t *testing.T) {
	judge := &fakeJudge{
		submit: func(ctx context.Context, sub execution.Submission) (*execution.SubmissionResult, error) {
			return nil, fmt.Errorf("connection refused")
		},
	}

	_, err := newService(judge).Run(context.Background(), execution.RunRequest{
		LanguageTag: "python",
		SourceCode:  "print(1)",
	})
	require.ErrorIs(t, err, execution.ErrJudgeUnavailable)
	assert.NotErrorIs(t, err, execution.ErrLanguageRequired)
}

func TestRunPollsQueuedSubmission(t *testing.T) {
	queued := &execution.SubmissionResult{Token: "tok-q"}
	queued.Status.ID = 1
	processing := &execution.SubmissionResult{Token: "tok-q"}
	processing.Status.ID = 2

	polls := 0
	judge := &fakeJudge{
		submit: func(ctx context.Context, sub execution.Submission) (*execution.SubmissionResult, error) {
			return queued, nil
		},
		get: func(ctx context.Context, token string) (*execution.SubmissionResult, error) {
			require.Equal(t, "tok-q", token)
			polls++
			if polls < 2 {
				return processing, nil
			}
			return terminalResult(strPtr("done\n"), nil, nil), nil
		},
	}

	res, err := newService(judge).Run(context.Background(), execution.RunRequest{
		LanguageTag: "java",
		SourceCode:  "class Main {}",
	})
	require.NoError(t, err)

	assert.Equal(t, execution.StatusSuccess, res.Status)
	assert.Equal(t, "done\n", res.Stdout)
	assert.Equal(t, 2, judge.gets)
}

func TestRunPollFailureIsBackendUnavailable(t *testing.T) {
	queued := &execution.SubmissionResult{Token: "tok-q"}
	queued.Status.ID = 1

	judge := &fakeJudge{
		submit: func(ctx context.Context, sub execution.Submission) (*execution.SubmissionResult, error) {
			return queued, nil
		},
		get: func(ctx context.Context, token string) (*execution.SubmissionResult, error) {
			return nil, errors.New("judge gone")
		},
	}

	_, err := newService(judge).Run(context.Background(), execution.RunRequest{
		LanguageTag: "python",
		SourceCode:  "print(1)",
	})
	require.ErrorIs(t, err, execution.ErrJudgeUnavailable)
}

func TestRunQueuedReplyWithoutTokenIsBackendUnavailable(t *testing.T) {
	queued := &execution.SubmissionResult{}
	queued.Status.ID = 1

	judge := &fakeJudge{
		submit: func(ctx context.Context, sub execution.Submission) (*execution.SubmissionResult, error) {
			return queued, nil
		},
	}

	_, err := newService(judge).Run(context.Background(), execution.RunRequest{
		LanguageTag: "python",
		SourceCode:  "print(1)",
	})
	require.ErrorIs(t, err, execution.ErrJudgeUnavailable)
}
