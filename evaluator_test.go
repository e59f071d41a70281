package quotient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSource is the shared execute-to-completion helper every evaluator test
// builds on: a fresh Evaluator, one execute call, and the raw error (if
// any) so each test can assert on Kind directly instead of string-matching
// "Error: ...".
func runSource(t *testing.T, source string) (*Evaluator, error) {
	t.Helper()
	ev := NewEvaluator()
	err := ev.execute(source)
	return ev, err
}

func TestEvaluator_ArithmeticLeavesResultOnStack(t *testing.T) {
	ev, err := runSource(t, "3 4 +")
	require.NoError(t, err)
	require.Len(t, ev.Stack, 1)
	assert.Equal(t, "7", ev.Stack[0].Format())
}

func TestEvaluator_StackUnderflow(t *testing.T) {
	_, err := runSource(t, "1 +")
	assert.True(t, errIsKind(err, StackUnderflow))
}

func TestEvaluator_FailingPrimitiveLeavesStackUntouched(t *testing.T) {
	// 1 true + must fail with TypeError, but the earlier 1 and the Boolean
	// must both still be exactly where they were (spec §8's Stack
	// atomicity: a failing op is a no-op on Stack/Register/Dictionary).
	ev := NewEvaluator()
	err := ev.execute(`1 true`)
	require.NoError(t, err)
	before := append([]Value(nil), ev.Stack...)

	err = ev.advance(newContinuation(mustTokenize(t, "+")))
	assert.True(t, errIsKind(err, TypeError))
	assert.Equal(t, before, ev.Stack)
}

func mustTokenize(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := Tokenize(src)
	require.NoError(t, err)
	return toks
}

func TestEvaluator_DefAndInvokeUserWord(t *testing.T) {
	ev, err := runSource(t, `[ 1 + ] DEF INC 41 INC`)
	require.NoError(t, err)
	require.Len(t, ev.Stack, 1)
	assert.Equal(t, "42", ev.Stack[0].Format())
}

func TestEvaluator_DefCapturesTrailingDescription(t *testing.T) {
	ev, err := runSource(t, `[ 1 + ] DEF INC # adds one
`)
	require.NoError(t, err)
	w := ev.Dict.Lookup("INC")
	require.NotNil(t, w)
	require.NotNil(t, w.Description)
	assert.Equal(t, "adds one", *w.Description)
}

func TestEvaluator_DefDoesNotCaptureCommentOnALaterLine(t *testing.T) {
	ev, err := runSource(t, "[ 1 + ] DEF INC\n\n# unrelated comment three lines down\n")
	require.NoError(t, err)
	w := ev.Dict.Lookup("INC")
	require.NotNil(t, w)
	assert.Nil(t, w.Description)
}

func TestEvaluator_DefRequiresVectorBody(t *testing.T) {
	_, err := runSource(t, `1 DEF BAD`)
	assert.True(t, errIsKind(err, TypeError))
}

func TestEvaluator_DefRejectsBuiltinName(t *testing.T) {
	_, err := runSource(t, `[ 1 ] DEF DUP`)
	assert.True(t, errIsKind(err, IsBuiltin))
}

func TestEvaluator_DelRemovesUnprotectedUserWord(t *testing.T) {
	ev, err := runSource(t, `[ 1 ] DEF ONE DEL ONE`)
	require.NoError(t, err)
	assert.Nil(t, ev.Dict.Lookup("ONE"))
}

func TestEvaluator_DelProtectedWordFails(t *testing.T) {
	_, err := runSource(t, `[ 1 ] DEF ONE [ ONE ] DEF CALLER DEL ONE`)
	assert.True(t, errIsKind(err, Protected))
}

func TestEvaluator_IfTrueBranch(t *testing.T) {
	ev, err := runSource(t, `true [ 1 ] [ 2 ] IF`)
	require.NoError(t, err)
	assert.Equal(t, "1", ev.Stack[0].Format())
}

func TestEvaluator_IfFalseBranch(t *testing.T) {
	ev, err := runSource(t, `false [ 1 ] [ 2 ] IF`)
	require.NoError(t, err)
	assert.Equal(t, "2", ev.Stack[0].Format())
}

func TestEvaluator_IfRequiresVectorBranches(t *testing.T) {
	_, err := runSource(t, `true 1 2 IF`)
	assert.True(t, errIsKind(err, TypeError))
}

func TestEvaluator_IfSpliceContinuesInSameFrame(t *testing.T) {
	// After the splice, code following IF in source order must still run
	// against the same (now-extended) stack — not a fresh nested call.
	ev, err := runSource(t, `true [ 10 ] [ 20 ] IF 1 +`)
	require.NoError(t, err)
	assert.Equal(t, "11", ev.Stack[0].Format())
}

func TestEvaluator_NestedUserWordCallIsAtomic(t *testing.T) {
	ev, err := runSource(t, `[ 1 + ] DEF INC [ INC INC ] DEF INC2 40 INC2`)
	require.NoError(t, err)
	assert.Equal(t, "42", ev.Stack[0].Format())
}

func TestEvaluator_DeepRecursionThroughIfStaysWithinCallDepth(t *testing.T) {
	// A classic down-counting loop via IF/recursive call: countdown from N
	// to 0. Each recursive call goes through runBody and adds one to
	// callDepth, so this nests 3000 deep; that is well under
	// DefaultMaxCallDepth, so the run must complete without error.
	ev := NewEvaluator()
	err := ev.execute(`
		[ DUP 0 = [ DROP ] [ DUP 1 - COUNTDOWN DROP ] IF ] DEF COUNTDOWN
		3000 COUNTDOWN
	`)
	require.NoError(t, err)
}

func TestEvaluator_Iteration_VectorVector(t *testing.T) {
	ev, err := runSource(t, `[ 1 2 3 ] [ 10 20 30 ] +`)
	require.NoError(t, err)
	assert.Equal(t, "[ 11 22 33 ]", ev.Stack[0].Format())
}

func TestEvaluator_Iteration_VectorScalarBroadcast(t *testing.T) {
	ev, err := runSource(t, `[ 1 2 3 ] 10 +`)
	require.NoError(t, err)
	assert.Equal(t, "[ 11 12 13 ]", ev.Stack[0].Format())
}

func TestEvaluator_Iteration_LengthMismatch(t *testing.T) {
	_, err := runSource(t, `[ 1 2 ] [ 1 2 3 ] +`)
	assert.True(t, errIsKind(err, LengthMismatch))
}

func TestEvaluator_Iteration_NestedVectors(t *testing.T) {
	ev, err := runSource(t, `[ [ 1 2 ] [ 3 4 ] ] 1 +`)
	require.NoError(t, err)
	assert.Equal(t, "[ [ 2 3 ] [ 4 5 ] ]", ev.Stack[0].Format())
}

func TestEvaluator_RegisterOccupiedAndEmpty(t *testing.T) {
	_, err := runSource(t, `1 >R R>`)
	require.NoError(t, err)

	_, err = runSource(t, `1 >R 2 >R`)
	assert.True(t, errIsKind(err, RegisterOccupied))

	_, err = runSource(t, `R>`)
	assert.True(t, errIsKind(err, RegisterEmpty))
}

func TestEvaluator_OutputBuiltins(t *testing.T) {
	ev, err := runSource(t, `"hi" PRINT SPACE 42 . CR`)
	require.NoError(t, err)
	assert.Equal(t, "hi 42\n", ev.output.String())
}

func TestEvaluator_StepMatchesExecuteResult(t *testing.T) {
	const src = `[ 1 + ] DEF INC 10 INC 20 INC +`

	stepped := NewEvaluator()
	require.NoError(t, stepped.initStep(src))
	for {
		r := stepped.step()
		require.NoError(t, r.Err)
		if !r.HasMore {
			break
		}
	}

	executed := NewEvaluator()
	require.NoError(t, executed.execute(src))

	assert.Equal(t, executed.Stack, stepped.Stack)
}

func TestEvaluator_StepPositionAdvancesOnlyOverRawTokens(t *testing.T) {
	ev := NewEvaluator()
	require.NoError(t, ev.initStep(`true [ 1 ] [ 2 ] IF`))

	var lastPosition, total int
	for {
		r := ev.step()
		require.NoError(t, r.Err)
		lastPosition, total = r.Position, r.Total
		if !r.HasMore {
			break
		}
	}
	// Raw top-level tokens: true, [, 1, ], [, 2, ], IF = 8; the spliced-in
	// branch element never increments position/total beyond that.
	assert.Equal(t, 8, total)
	assert.Equal(t, 8, lastPosition)
}

func TestEvaluator_CustomWordsDirtyFlag(t *testing.T) {
	ev := NewEvaluator()
	assert.False(t, ev.CustomWordsDirty)
	require.NoError(t, ev.execute(`[ 1 ] DEF ONE`))
	assert.True(t, ev.CustomWordsDirty)
}

func TestEvaluator_UnknownWordFails(t *testing.T) {
	_, err := runSource(t, `NOSUCHWORD`)
	assert.True(t, errIsKind(err, UnknownWord))
}

func TestEvaluator_StepLimitExceeded(t *testing.T) {
	ev := NewEvaluator()
	ev.stepLimit = 5
	err := ev.execute(`[ DUP COUNTDOWN ] DEF COUNTDOWN 1 COUNTDOWN`)
	assert.True(t, errIsKind(err, StepLimitExceeded))
}
