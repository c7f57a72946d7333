package errz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKindString(t *testing.T) {
	require.Equal(t, "load error", ErrLoad.String())
	require.Equal(t, "execution error", ErrExec.String())
	require.Equal(t, "error", ErrorKind(99).String())
}

func TestLoadError(t *testing.T) {
	cause := errors.New("boom")
	err := LoadErrorf("bad %s", "input").WithPath("story.hlct").WithLine(3).WithCause(cause)
	require.Equal(t, "load error: bad input (story.hlct:3)", err.Error())
	require.ErrorIs(t, err, cause)

	require.Equal(t, "load error: bad input", LoadErrorf("bad input").Error())
	require.Equal(t, "load error: bad input (story.hlct)",
		LoadErrorf("bad input").WithPath("story.hlct").Error())
	require.Equal(t, "load error: bad input (line 3)",
		LoadErrorf("bad input").WithLine(3).Error())
}

func TestExecutionError(t *testing.T) {
	err := ExecErrorf("call of nil method").At(7, "CALL")
	require.Equal(t, "execution error: call of nil method (ip=7 op=CALL)", err.Error())

	require.Equal(t, "execution error: oops (ip=0)", ExecErrorf("oops").Error())
}

func TestExecutionErrorTracebackCopy(t *testing.T) {
	traceback := []int{1, 2}
	err := ExecErrorf("oops").WithTraceback(traceback)
	traceback[0] = 99
	require.Equal(t, []int{1, 2}, err.Traceback)

	msg := err.FriendlyErrorMessage()
	require.Contains(t, msg, "execution error: oops")
	require.Contains(t, msg, "called from instruction 2")
	require.Contains(t, msg, "called from instruction 1")
}
